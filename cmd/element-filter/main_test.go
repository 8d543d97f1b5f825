package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/element-filter/internal/index"
	"github.com/bnema/element-filter/internal/models"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var c models.Config
	require.NoError(t, v.Unmarshal(&c))

	assert.Equal(t, 30*time.Second, c.HTTP.Timeout)
	assert.Equal(t, 3, c.HTTP.Retries)
	assert.Equal(t, 4, c.Pipeline.Workers)
	assert.Equal(t, 1000, c.Output.MaxDocumentsPerFile)
	assert.True(t, c.Output.GenerateManifest)
	assert.Empty(t, c.Selector.Blacklist)
	assert.Equal(t, "info", c.Log.Level)
}

func TestConfigFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "element_filter.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[selector]
whitelist = "article,.content"
storage_field = "stripped"
protected_urls = "http://a/,http://b/"

[http]
timeout = "5s"
`), 0644))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var c models.Config
	require.NoError(t, v.Unmarshal(&c))

	assert.Equal(t, "article,.content", c.Selector.Whitelist)
	assert.Equal(t, "stripped", c.Selector.StorageField)
	assert.Equal(t, "http://a/,http://b/", c.Selector.ProtectedURLs)
	assert.Equal(t, 5*time.Second, c.HTTP.Timeout)
	assert.Equal(t, 3, c.HTTP.Retries)
}

func TestDocumentText(t *testing.T) {
	d := index.Document{Content: "primary", Fields: map[string]string{"stripped": "side"}}
	assert.Equal(t, "side", documentText(d, "stripped"))
	assert.Equal(t, "primary", documentText(d, ""))
	assert.Equal(t, "primary", documentText(index.Document{Content: "primary"}, "stripped"))
}
