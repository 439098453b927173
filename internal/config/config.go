package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceMedusa  = "medusa"
	SourceCMS     = "cms"
	SourceMongo   = "mongo"
	SourceFixture = "fixture"

	ResolverCDN = "cdn"
	ResolverS3  = "s3"
)

type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	CatalogSource        string
	MedusaURL            string
	MedusaPublishableKey string
	MedusaMaxRetries     int

	MediaSource     string
	CMSGraphQLURL   string
	CMSToken        string
	SanityProjectID string
	SanityDataset   string

	ImageResolver string
	AWSRegion     string
	AWSBucket     string

	FixturePath         string
	PageSize            int
	EndReachedThreshold int
	SessionTTL          time.Duration
}

func LoadConfig() *Config {
	// Solo cargar .env en desarrollo local
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("[config] error loading .env file:", err)
		} else {
			log.Println("[config] .env file loaded")
		}
	}

	return FromEnv()
}

// FromEnv construye la configuración solo desde variables de entorno
func FromEnv() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		MongoURI: getEnv("MONGO_URI", ""),
		MongoDB:  getEnv("MONGO_DB", "productFeed"),

		CatalogSource:        strings.ToLower(getEnv("CATALOG_SOURCE", SourceMedusa)),
		MedusaURL:            getEnv("MEDUSA_BACKEND_URL", "http://localhost:9000"),
		MedusaPublishableKey: getEnv("MEDUSA_PUBLISHABLE_KEY", ""),
		MedusaMaxRetries:     getEnvInt("MEDUSA_MAX_RETRIES", 3),

		MediaSource:     strings.ToLower(getEnv("MEDIA_SOURCE", SourceCMS)),
		CMSGraphQLURL:   getEnv("CMS_GRAPHQL_URL", ""),
		CMSToken:        getEnv("CMS_TOKEN", ""),
		SanityProjectID: getEnv("SANITY_PROJECT_ID", ""),
		SanityDataset:   getEnv("SANITY_DATASET", "production"),

		ImageResolver: strings.ToLower(getEnv("IMAGE_RESOLVER", ResolverCDN)),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		AWSBucket:     getEnv("AWS_BUCKET", ""),

		FixturePath:         getEnv("FIXTURE_PATH", ""),
		PageSize:            getEnvInt("FEED_PAGE_SIZE", 20),
		EndReachedThreshold: getEnvInt("END_REACHED_THRESHOLD", 3),
		SessionTTL:          getEnvDuration("SESSION_TTL", 30*time.Minute),
	}
}

// Validate revisa los requisitos de cada fuente configurada
func (c *Config) Validate() error {
	switch c.CatalogSource {
	case SourceMedusa:
		if c.MedusaURL == "" {
			return fmt.Errorf("MEDUSA_BACKEND_URL is required for catalog source %q", c.CatalogSource)
		}
	case SourceMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for catalog source %q", c.CatalogSource)
		}
	case SourceFixture:
		if c.FixturePath == "" {
			return fmt.Errorf("FIXTURE_PATH is required for catalog source %q", c.CatalogSource)
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}

	switch c.MediaSource {
	case SourceCMS:
		if c.CMSGraphQLURL == "" {
			return fmt.Errorf("CMS_GRAPHQL_URL is required for media source %q", c.MediaSource)
		}
	case SourceMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for media source %q", c.MediaSource)
		}
	case SourceFixture:
		if c.FixturePath == "" {
			return fmt.Errorf("FIXTURE_PATH is required for media source %q", c.MediaSource)
		}
	default:
		return fmt.Errorf("unknown MEDIA_SOURCE %q", c.MediaSource)
	}

	switch c.ImageResolver {
	case ResolverCDN:
		if c.SanityProjectID == "" {
			log.Println("[config] SANITY_PROJECT_ID is missing, CDN image URLs will be incomplete")
		}
	case ResolverS3:
		if c.AWSBucket == "" {
			return fmt.Errorf("AWS_BUCKET is required for image resolver %q", c.ImageResolver)
		}
	default:
		return fmt.Errorf("unknown IMAGE_RESOLVER %q", c.ImageResolver)
	}

	if c.PageSize <= 0 {
		return fmt.Errorf("FEED_PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.EndReachedThreshold < 0 {
		return fmt.Errorf("END_REACHED_THRESHOLD cannot be negative, got %d", c.EndReachedThreshold)
	}
	return nil
}

// NeedsMongo indica si alguna fuente usa MongoDB
func (c *Config) NeedsMongo() bool {
	return c.CatalogSource == SourceMongo || c.MediaSource == SourceMongo
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("[config] invalid integer for %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		log.Printf("[config] invalid duration for %s=%q, using %s", key, value, fallback)
		return fallback
	}
	return d
}
