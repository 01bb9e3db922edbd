package config

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSection is a test implementation of the Section interface
type mockSection struct {
	id          string
	data        map[string]any
	validateErr error
}

func (m *mockSection) ID() string                        { return m.id }
func (m *mockSection) Title() string                     { return "Mock " + m.id }
func (m *mockSection) Description() string               { return "mock section" }
func (m *mockSection) Data() map[string]any              { return m.data }
func (m *mockSection) SetData(data map[string]any) error { m.data = data; return nil }
func (m *mockSection) Validate() error                   { return m.validateErr }
func (m *mockSection) Reset()                            { m.data = map[string]any{} }

// mockStore is an in-memory Store with injectable failures
type mockStore struct {
	sections map[string]map[string]any
	loadErr  error
	saveErr  error
	saves    int
}

func newMockStore() *mockStore {
	return &mockStore{sections: map[string]map[string]any{}}
}

func (m *mockStore) Load() error { return m.loadErr }

func (m *mockStore) Save() error {
	m.saves++
	return m.saveErr
}

func (m *mockStore) GetSection(id string) (map[string]any, error) {
	if data, ok := m.sections[id]; ok {
		return data, nil
	}
	return map[string]any{}, nil
}

func (m *mockStore) SetSection(id string, data map[string]any) error {
	m.sections[id] = data
	return nil
}

func (m *mockStore) GetAll() (map[string]map[string]any, error) { return m.sections, nil }

func (m *mockStore) SetAll(data map[string]map[string]any) error {
	m.sections = data
	return nil
}

func TestNewManager(t *testing.T) {
	store := newMockStore()
	manager := NewManager(store)

	require.NotNil(t, manager)
	assert.Same(t, store, manager.Store())
	assert.Empty(t, manager.GetSections())
}

func TestManager_RegisterSection(t *testing.T) {
	t.Run("rejects duplicates", func(t *testing.T) {
		manager := NewManager(newMockStore())
		require.NoError(t, manager.RegisterSection(&mockSection{id: "dup"}))
		assert.Error(t, manager.RegisterSection(&mockSection{id: "dup"}))
	})

	t.Run("keeps registration order", func(t *testing.T) {
		manager := NewManager(newMockStore())
		for _, id := range []string{"first", "second", "third"} {
			require.NoError(t, manager.RegisterSection(&mockSection{id: id}))
		}

		sections := manager.GetSections()
		require.Len(t, sections, 3)
		assert.Equal(t, "first", sections[0].ID())
		assert.Equal(t, "second", sections[1].ID())
		assert.Equal(t, "third", sections[2].ID())
	})

	t.Run("unknown section", func(t *testing.T) {
		manager := NewManager(newMockStore())
		_, ok := manager.GetSection("missing")
		assert.False(t, ok)
	})
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("applies stored data", func(t *testing.T) {
		store := newMockStore()
		store.sections["test"] = map[string]any{"key": "value"}

		manager := NewManager(store)
		section := &mockSection{id: "test", data: map[string]any{}}
		require.NoError(t, manager.RegisterSection(section))

		require.NoError(t, manager.LoadAll())
		assert.Equal(t, "value", section.data["key"])
	})

	t.Run("keeps defaults when nothing stored", func(t *testing.T) {
		manager := NewManager(newMockStore())
		section := &mockSection{id: "test", data: map[string]any{"default": true}}
		require.NoError(t, manager.RegisterSection(section))

		require.NoError(t, manager.LoadAll())
		assert.Equal(t, true, section.data["default"])
	})

	t.Run("store error", func(t *testing.T) {
		store := newMockStore()
		store.loadErr = fmt.Errorf("load error")
		assert.Error(t, NewManager(store).LoadAll())
	})
}

func TestManager_SaveAll(t *testing.T) {
	t.Run("writes sections then saves", func(t *testing.T) {
		store := newMockStore()
		manager := NewManager(store)
		require.NoError(t, manager.RegisterSection(&mockSection{id: "a", data: map[string]any{"k": "v"}}))

		require.NoError(t, manager.SaveAll())
		assert.Equal(t, "v", store.sections["a"]["k"])
		assert.Equal(t, 1, store.saves)
	})

	t.Run("validation failure prevents save", func(t *testing.T) {
		store := newMockStore()
		manager := NewManager(store)
		require.NoError(t, manager.RegisterSection(&mockSection{id: "a", validateErr: fmt.Errorf("bad")}))

		assert.Error(t, manager.SaveAll())
		assert.Equal(t, 0, store.saves)
	})

	t.Run("store save error", func(t *testing.T) {
		store := newMockStore()
		store.saveErr = fmt.Errorf("disk full")
		manager := NewManager(store)
		require.NoError(t, manager.RegisterSection(&mockSection{id: "a"}))

		assert.Error(t, manager.SaveAll())
	})
}

func TestManager_ResetAll(t *testing.T) {
	manager := NewManager(newMockStore())
	a := &mockSection{id: "a", data: map[string]any{"k": 1}}
	b := &mockSection{id: "b", data: map[string]any{"k": 2}}
	require.NoError(t, manager.RegisterSection(a))
	require.NoError(t, manager.RegisterSection(b))

	manager.ResetAll()
	assert.Empty(t, a.data)
	assert.Empty(t, b.data)
}

func TestManager_ConcurrentRegistration(t *testing.T) {
	manager := NewManager(newMockStore())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = manager.RegisterSection(&mockSection{id: fmt.Sprintf("section%d", i)})
			manager.GetSections()
		}(i)
	}
	wg.Wait()

	assert.Len(t, manager.GetSections(), 10)
}
