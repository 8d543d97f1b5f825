package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "joins fragments with single spaces",
			html:     `<div><p>Hello</p><p>world</p></div>`,
			expected: "Hello world",
		},
		{
			name:     "collapses interior whitespace",
			html:     "<p>  a\n\tb  </p>",
			expected: "a b",
		},
		{
			name:     "skips script and style",
			html:     `<div><script>ignored()</script><STYLE>p{}</STYLE><p>kept</p></div>`,
			expected: "kept",
		},
		{
			name:     "skips comments",
			html:     `<p>a<!-- hidden -->b</p>`,
			expected: "a b",
		},
		{
			name:     "ignores whitespace-only nodes",
			html:     "<ul>\n  <li>x</li>\n  <li>y</li>\n</ul>",
			expected: "x y",
		},
		{
			name:     "includes title",
			html:     `<html><head><title>T</title></head><body>b</body></html>`,
			expected: "T b",
		},
		{
			name:     "empty document",
			html:     ``,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := html.Parse(strings.NewReader(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, Text(doc))
		})
	}
}

func TestTextScriptInBuiltTree(t *testing.T) {
	script := &html.Node{Type: html.ElementNode, Data: "Script"}
	script.AppendChild(&html.Node{Type: html.TextNode, Data: "x()"})
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(script)
	root.AppendChild(&html.Node{Type: html.TextNode, Data: " tail "})

	assert.Equal(t, "tail", Text(root))
}

func TestTextNil(t *testing.T) {
	assert.Equal(t, "", Text(nil))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b", Normalize("  a\n\tb  "))
	assert.Equal(t, "", Normalize(" \r\n "))
}
