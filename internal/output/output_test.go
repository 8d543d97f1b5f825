package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/element-filter/internal/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docs(n int) []index.Document {
	out := make([]index.Document, n)
	for i := range out {
		id := fmt.Sprintf("http://x/%d", i)
		out[i] = index.Document{ID: id, URL: id}
	}
	return out
}

func TestSplit(t *testing.T) {
	s := NewSplitter(2)

	single := s.Split(docs(2), "index")
	assert.Len(t, single, 1)
	assert.Len(t, single["index"], 2)

	parts := s.Split(docs(5), "index")
	assert.Len(t, parts, 3)
	assert.Len(t, parts["index-part1"], 2)
	assert.Len(t, parts["index-part3"], 1)
	assert.Equal(t, "http://x/4", parts["index-part3"][0].ID)
}

func TestNewSplitterDefault(t *testing.T) {
	assert.Equal(t, MaxDocumentsPerFile, NewSplitter(0).maxDocs)
}

func TestDeduplicate(t *testing.T) {
	in := append(docs(3), index.Document{ID: "http://x/1", Title: "dup"})
	out := Deduplicate(in)
	require.Len(t, out, 3)
	assert.Empty(t, out[1].Title)
}

func TestWriteDocuments(t *testing.T) {
	dir := t.TempDir()

	names, err := WriteDocuments(dir, "index", docs(3), NewSplitter(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"index-part1.json", "index-part2.json"}, names)

	raw, err := os.ReadFile(filepath.Join(dir, "index-part1.json"))
	require.NoError(t, err)

	var got []index.Document
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, docs(2), got)
}

func TestNewManifest(t *testing.T) {
	now := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	m := NewManifest(now)
	assert.Equal(t, "2024.03.09", m.Version)
	assert.Equal(t, "2024-03-09T10:00:00Z", m.GeneratedAt)
}
