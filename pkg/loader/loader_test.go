package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/qbanktags/qbank-tags/pkg/qbank"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatText, DetectFormat("ids.txt"))
	assert.Equal(t, FormatText, DetectFormat("ids"))
	assert.Equal(t, FormatCSV, DetectFormat("IDS.CSV"))
	assert.Equal(t, FormatCSV, DetectFormat("ids.tsv"))
	assert.Equal(t, FormatXLSX, DetectFormat("block.xlsx"))
}

func TestLoadFile_Text(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ids.txt", "\xEF\xBB\xBF21656, 19263\n4466")

	text, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"21656", "19263", "4466"}, qbank.Extract(text, qbank.UWorld))
}

func TestLoadFile_FullWidthDigits(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ids.txt", "１２３，４５６")

	text, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "123,456", text)
	assert.Equal(t, []string{"123", "456"}, qbank.Extract(text, qbank.UWorld))
}

func TestLoadFile_CSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ids.csv", "id,note\n\"-aaDMQ\",hard\n0jae_4,\n")

	text, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id\nnote\n-aaDMQ\nhard\n0jae_4", text)
}

func TestLoadFile_TSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ids.tsv", "1\t2\n3\t\n")

	text, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3", text)
}

func TestLoadFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "block.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Question ID"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 21656))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "19263"))
	_, err := f.NewSheet("Block2")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Block2", "B1", 4466))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	text, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"21656", "19263", "4466"}, qbank.Extract(text, qbank.UWorld))
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "2")
	writeFile(t, dir, "a.txt", "1")
	writeFile(t, dir, "c.md", "3")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d.txt"), 0750))

	text, files, err := LoadGlob("*.txt", dir)
	require.NoError(t, err)
	assert.Equal(t, "1\n2", text)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")}, files)
}

func TestLoadGlob_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := LoadGlob("*.txt", dir)
	assert.ErrorIs(t, err, ErrNoMatches)

	_, _, err = LoadGlob("*", filepath.Join(dir, "nope"))
	assert.Error(t, err)
}
