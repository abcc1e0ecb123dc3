package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntries(t *testing.T, path string) []Entry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestWriter_RecordsBothPasses(t *testing.T) {
	w := NewWriter(t.TempDir())
	defer w.Close()

	refined := "Downloads/Documents/Invoices"
	w.Record("/scan/invoice.pdf", "Type=Doc; Name=invoice.pdf", "Downloads/Documents", nil, "AI suggested")
	w.Record("/scan/invoice.pdf", "Type=Doc; Name=invoice.pdf", "Downloads/Documents", &refined, "AI suggested → Refined")
	require.NoError(t, w.Close())

	entries := readEntries(t, w.Path())
	require.Len(t, entries, 2)

	assert.Equal(t, "/scan/invoice.pdf", entries[0].Source)
	assert.Equal(t, "Downloads/Documents", entries[0].FirstPath)
	assert.Nil(t, entries[0].RefinedPath)
	assert.Equal(t, "AI suggested", entries[0].Status)
	assert.NotZero(t, entries[0].TS)

	require.NotNil(t, entries[1].RefinedPath)
	assert.Equal(t, refined, *entries[1].RefinedPath)
	assert.Equal(t, "AI suggested → Refined", entries[1].Status)
}

func TestWriter_PathNamesTheRun(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	assert.True(t, strings.HasPrefix(w.Path(), dir))
	assert.Contains(t, w.Path(), "sortd_scan_")
	assert.True(t, strings.HasSuffix(w.Path(), ".jsonl"))

	// Distinct runs never collide on the same file.
	assert.NotEqual(t, w.Path(), NewWriter(dir).Path())
}

func TestWriter_NothingOnDiskUntilFirstRecord(t *testing.T) {
	w := NewWriter(t.TempDir())

	_, err := os.Stat(w.Path())
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, w.Close())
}

func TestWriter_ConcurrentAppendsStayLineAtomic(t *testing.T) {
	w := NewWriter(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				w.Record("/scan/file.txt", "hint", "Downloads/Stuff", nil, "AI suggested")
			}
		}()
	}
	wg.Wait()
	require.NoError(t, w.Close())

	entries := readEntries(t, w.Path())
	assert.Len(t, entries, 40)
}

func TestWriter_SwallowsUnwritableDestination(t *testing.T) {
	w := NewWriter("/nonexistent/journal/dir")

	// Must not panic or error; the journal is best-effort.
	w.Record("/scan/file.txt", "hint", "Downloads/Stuff", nil, "AI suggested")
	assert.NoError(t, w.Close())
}
