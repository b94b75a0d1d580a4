package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
categories:
  astronomy:
    feeds:
      - https://www.sciencedaily.com/rss/space_time.xml
    default_query: "astronomy news"
`

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
embedding:
  model: text-embedding-3-small
  dimensions: 256
fetch:
  max_attempts: 3
  fragile_hosts:
    - nao.ac.jp
dedup:
  enabled: true
  threshold: 0.9
categories:
  astronomy:
    feeds:
      - https://www.sciencedaily.com/rss/space_time.xml
      - https://phys.org/rss-feed/space-news/
    default_query: "astronomy and space news"
  finance:
    feeds:
      - https://feeds.content.dowjones.io/public/rss/mw_topstories
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)

	assert.Equal(t, 256, cfg.Embedding.Dimensions)
	assert.Equal(t, 3, cfg.Fetch.MaxAttempts)
	assert.Equal(t, []string{"nao.ac.jp"}, cfg.Fetch.FragileHosts)
	assert.True(t, cfg.DedupEnabled())
	assert.InDelta(t, 0.9, cfg.Dedup.Threshold, 1e-9)

	cat, ok := cfg.GetCategory("astronomy")
	require.True(t, ok)
	assert.Len(t, cat.Feeds, 2)
	assert.Equal(t, "astronomy and space news", cat.DefaultQuery)

	_, ok = cfg.GetCategory("sports")
	assert.False(t, ok)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":8080", listen)
	assert.Equal(t, 30*time.Second, timeout)

	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, 512, cfg.Embedding.Dimensions)
	assert.Equal(t, 30*24*time.Hour, cfg.Cache.TTL)

	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 15*time.Second, cfg.Fetch.FragileTimeout)
	assert.Equal(t, 2, cfg.Fetch.MaxAttempts)
	assert.Equal(t, "PostmanRuntime/7.42.0", cfg.Fetch.UserAgent)
	assert.Contains(t, cfg.Fetch.FragileHosts, "nao.ac.jp")
	assert.Contains(t, cfg.Fetch.FragileHosts, "sciam.com")
	assert.False(t, cfg.Fetch.NoSchemeUpgrade)
	assert.Equal(t, 30*time.Minute, cfg.Fetch.RefreshInterval)

	assert.Equal(t, 32*24*time.Hour, cfg.MaxAge())
	assert.Equal(t, 4*24*time.Hour, cfg.VisibilityWindow())
	assert.False(t, cfg.DedupEnabled())
	assert.InDelta(t, 0.85, cfg.Dedup.Threshold, 1e-9)
}

func TestLoadEnvExpansion(t *testing.T) {
	t.Setenv("TEST_EMBED_KEY", "sk-from-env")
	cfg, err := Load(writeConfig(t, `
embedding:
  api_key: ${TEST_EMBED_KEY}
`+minimalConfig))
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.Embedding.APIKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "categories: [not: valid: yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errLike string
	}{
		{"no categories", "server:\n  listen: ':8080'\n", "at least one category"},
		{"category without feeds", "categories:\n  empty:\n    default_query: q\n", "has no feeds"},
		{"bad threshold", "dedup:\n  threshold: 1.5\n" + minimalConfig, "dedup.threshold"},
		{"visibility exceeds retention", "retention:\n  max_age_days: 4\n  visibility_days: 7\n" + minimalConfig, "visibility_days"},
		{"tiny server timeout", "server:\n  timeout: 100ms\n" + minimalConfig, "server timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errLike)
		})
	}
}

func TestDefaultCategory(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	assert.Equal(t, "astronomy", cfg.DefaultCategory())

	cfg, err = Load(writeConfig(t, `
categories:
  zebra:
    feeds: [https://example.com/z]
  alpha:
    feeds: [https://example.com/a]
`))
	require.NoError(t, err)
	assert.Equal(t, "alpha", cfg.DefaultCategory(), "lexically first without astronomy")
}

func TestLoadExampleConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := Load("../../config.yml")
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Categories)
	_, ok := cfg.GetCategory("astronomy")
	assert.True(t, ok, "shipped example config has the astronomy category")
}
