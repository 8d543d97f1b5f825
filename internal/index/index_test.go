package index

import (
	"testing"

	"github.com/bnema/element-filter/internal/filter"
	"github.com/stretchr/testify/assert"
)

func TestStorePrimaryField(t *testing.T) {
	p := ParseData{URL: "http://x/", Text: "nav Hello"}
	p.Store(filter.Result{Mode: filter.ModeBlacklist, Text: "Hello", Field: filter.FieldContent})

	assert.Equal(t, "Hello", p.Text)
	assert.Empty(t, p.Meta)
}

func TestStoreSideChannel(t *testing.T) {
	p := ParseData{URL: "http://x/", Text: "nav Hello"}
	p.Store(filter.Result{Mode: filter.ModeWhitelist, Text: "Hello", Field: "stripped"})

	assert.Equal(t, "nav Hello", p.Text)
	assert.Equal(t, "Hello", p.Meta["stripped"])
}

func TestStoreIgnoresUnfiltered(t *testing.T) {
	p := ParseData{Text: "orig"}
	p.Store(filter.Result{Mode: filter.ModeProtected, Text: "other", Field: filter.FieldContent})
	assert.Equal(t, "orig", p.Text)
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name         string
		storageField string
		data         ParseData
		fields       map[string]string
	}{
		{
			name: "no storage field",
			data: ParseData{URL: "http://x/", Title: "T", Text: "body", Meta: map[string]string{"stripped": "s"}},
		},
		{
			name:         "storage field present",
			storageField: "stripped",
			data:         ParseData{URL: "http://x/", Text: "body", Meta: map[string]string{"stripped": "s"}},
			fields:       map[string]string{"stripped": "s"},
		},
		{
			name:         "storage field absent",
			storageField: "stripped",
			data:         ParseData{URL: "http://x/", Text: "body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := New(tt.storageField).Build(tt.data)
			assert.Equal(t, tt.data.URL, doc.ID)
			assert.Equal(t, tt.data.Title, doc.Title)
			assert.Equal(t, "body", doc.Content)
			assert.Equal(t, Hash("body"), doc.ContentHash)
			assert.Equal(t, tt.fields, doc.Fields)
		})
	}
}

func TestHashIsStable(t *testing.T) {
	assert.Equal(t, Hash("a"), Hash("a"))
	assert.NotEqual(t, Hash("a"), Hash("b"))
	assert.Equal(t, "ef46db3751d8e999", Hash(""))
}
