package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempLogDir points the package at a temp directory with a fresh session.
func useTempLogDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	origDir, origErr, origSession := logDir, initErr, sessionID

	logDir = dir
	initErr = nil
	initOnce = sync.Once{}
	sessionID = ""
	sessionIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDir, initErr, sessionID = origDir, origErr, origSession
		initOnce = sync.Once{}
		sessionIDOnce = sync.Once{}
	})
	return dir
}

func readLog(t *testing.T, l *Logger) string {
	t.Helper()
	content, err := os.ReadFile(l.LogPath())
	require.NoError(t, err)
	return string(content)
}

func TestNewLogger(t *testing.T) {
	dir := useTempLogDir(t)

	logger, err := NewLogger("convert")
	require.NoError(t, err)
	defer logger.Close()

	assert.NotEmpty(t, logger.SessionID())
	assert.Equal(t, dir, filepath.Dir(logger.LogPath()))
	assert.True(t, strings.HasSuffix(logger.LogPath(), "-qbank.log"))
	assert.FileExists(t, logger.LogPath())
}

func TestLogger_LevelsAndFormat(t *testing.T) {
	useTempLogDir(t)

	logger, err := NewLogger("tui")
	require.NoError(t, err)
	defer logger.Close()

	logger.Debugf("hidden %d", 1)
	logger.Infof("converted %d ids", 3)
	logger.Warnf("warned")
	logger.Errorf("failed: %s", "boom")

	content := readLog(t, logger)
	assert.NotContains(t, content, "hidden")
	assert.Contains(t, content, "[tui] [INFO] converted 3 ids")
	assert.Contains(t, content, "[tui] [WARN] warned")
	assert.Contains(t, content, "[tui] [ERROR] failed: boom")

	logger.SetLevel(LevelDebug)
	logger.Debugf("now visible")
	assert.Contains(t, readLog(t, logger), "[tui] [DEBUG] now visible")
}

func TestLogger_SharedSession(t *testing.T) {
	useTempLogDir(t)

	a, err := NewLogger("a")
	require.NoError(t, err)
	defer a.Close()
	b, err := NewLogger("b")
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, a.SessionID(), b.SessionID())
	assert.Equal(t, a.LogPath(), b.LogPath())

	a.Infof("from a")
	b.Infof("from b")
	content := readLog(t, a)
	assert.Contains(t, content, "[a] [INFO] from a")
	assert.Contains(t, content, "[b] [INFO] from b")
}

func TestLogger_CloseTwice(t *testing.T) {
	useTempLogDir(t)

	logger, err := NewLogger("x")
	require.NoError(t, err)
	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Errorf("nothing happens")
	assert.Empty(t, l.LogPath())
	assert.NoError(t, l.Close())
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"debug": LevelDebug, "INFO": LevelInfo, "": LevelInfo, "warning": LevelWarn, "error": LevelError} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestGetLogDirectory(t *testing.T) {
	dir := useTempLogDir(t)

	got, err := GetLogDirectory()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.DirExists(t, got)
}
