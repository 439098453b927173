package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SourceMedusa, cfg.CatalogSource)
	assert.Equal(t, SourceCMS, cfg.MediaSource)
	assert.Equal(t, ResolverCDN, cfg.ImageResolver)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, 3, cfg.EndReachedThreshold)
	assert.Equal(t, 3, cfg.MedusaMaxRetries)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "Mongo")
	t.Setenv("FEED_PAGE_SIZE", "12")
	t.Setenv("SESSION_TTL", "90s")
	t.Setenv("END_REACHED_THRESHOLD", "not-a-number")

	cfg := FromEnv()
	assert.Equal(t, SourceMongo, cfg.CatalogSource)
	assert.Equal(t, 12, cfg.PageSize)
	assert.Equal(t, 90*time.Second, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.EndReachedThreshold, "invalid values fall back to the default")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			CatalogSource:   SourceMedusa,
			MedusaURL:       "http://localhost:9000",
			MediaSource:     SourceCMS,
			CMSGraphQLURL:   "http://cms.local/graphql",
			ImageResolver:   ResolverCDN,
			SanityProjectID: "proj",
			PageSize:        20,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown catalog source", func(c *Config) { c.CatalogSource = "shopify" }, "unknown CATALOG_SOURCE"},
		{"mongo catalog without uri", func(c *Config) { c.CatalogSource = SourceMongo }, "MONGO_URI"},
		{"fixture media without path", func(c *Config) { c.MediaSource = SourceFixture }, "FIXTURE_PATH"},
		{"cms without url", func(c *Config) { c.CMSGraphQLURL = "" }, "CMS_GRAPHQL_URL"},
		{"s3 without bucket", func(c *Config) { c.ImageResolver = ResolverS3 }, "AWS_BUCKET"},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, "FEED_PAGE_SIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNeedsMongo(t *testing.T) {
	assert.False(t, (&Config{CatalogSource: SourceMedusa, MediaSource: SourceCMS}).NeedsMongo())
	assert.True(t, (&Config{CatalogSource: SourceMedusa, MediaSource: SourceMongo}).NeedsMongo())
}
