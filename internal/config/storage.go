package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

const (
	// EnvStorageBackend overrides the storage backend selection.
	EnvStorageBackend = "STORAGE_BACKEND"

	// EnvStorageBasePath overrides the filesystem storage base path.
	EnvStorageBasePath = "STORAGE_BASE_PATH"

	// EnvStorageMaxUploadSize overrides the maximum accepted upload size.
	EnvStorageMaxUploadSize = "STORAGE_MAX_UPLOAD_SIZE"

	// EnvStorageS3Endpoint overrides the S3 base endpoint.
	EnvStorageS3Endpoint = "STORAGE_S3_ENDPOINT"

	// EnvStorageS3Region overrides the S3 region.
	EnvStorageS3Region = "STORAGE_S3_REGION"

	// EnvStorageS3Bucket overrides the S3 bucket name.
	EnvStorageS3Bucket = "STORAGE_S3_BUCKET"

	// EnvStorageS3AccessKey overrides the S3 access key.
	EnvStorageS3AccessKey = "STORAGE_S3_ACCESS_KEY"

	// EnvStorageS3SecretKey overrides the S3 secret key.
	EnvStorageS3SecretKey = "STORAGE_S3_SECRET_KEY"
)

// Storage backend selectors.
const (
	StorageBackendFilesystem = "filesystem"
	StorageBackendS3         = "s3"
)

// StorageConfig contains blob storage configuration.
type StorageConfig struct {
	// Backend selects the storage implementation: "filesystem" or "s3".
	Backend string `toml:"backend"`

	// BasePath is the root directory for filesystem storage.
	// Default: "uploads"
	BasePath string `toml:"base_path"`

	MaxUploadSize    string `toml:"max_upload_size"`
	maxUploadSizeVal int64

	S3Endpoint  string `toml:"s3_endpoint"`
	S3Region    string `toml:"s3_region"`
	S3Bucket    string `toml:"s3_bucket"`
	S3AccessKey string `toml:"s3_access_key"`
	S3SecretKey string `toml:"s3_secret_key"`
}

// MaxUploadSizeBytes returns the parsed maximum upload size.
func (c *StorageConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *StorageConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *StorageConfig) Merge(overlay *StorageConfig) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if size, err := units.FromHumanSize(overlay.MaxUploadSize); err == nil {
		c.MaxUploadSize = overlay.MaxUploadSize
		c.maxUploadSizeVal = size
	}
	if overlay.S3Endpoint != "" {
		c.S3Endpoint = overlay.S3Endpoint
	}
	if overlay.S3Region != "" {
		c.S3Region = overlay.S3Region
	}
	if overlay.S3Bucket != "" {
		c.S3Bucket = overlay.S3Bucket
	}
	if overlay.S3AccessKey != "" {
		c.S3AccessKey = overlay.S3AccessKey
	}
	if overlay.S3SecretKey != "" {
		c.S3SecretKey = overlay.S3SecretKey
	}
}

func (c *StorageConfig) loadDefaults() {
	if c.Backend == "" {
		c.Backend = StorageBackendFilesystem
	}
	if c.BasePath == "" {
		c.BasePath = "uploads"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "100MB"
	}
	if c.S3Region == "" {
		c.S3Region = "us-east-1"
	}
}

func (c *StorageConfig) loadEnv() {
	if v := os.Getenv(EnvStorageBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvStorageBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvStorageMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv(EnvStorageS3Endpoint); v != "" {
		c.S3Endpoint = v
	}
	if v := os.Getenv(EnvStorageS3Region); v != "" {
		c.S3Region = v
	}
	if v := os.Getenv(EnvStorageS3Bucket); v != "" {
		c.S3Bucket = v
	}
	if v := os.Getenv(EnvStorageS3AccessKey); v != "" {
		c.S3AccessKey = v
	}
	if v := os.Getenv(EnvStorageS3SecretKey); v != "" {
		c.S3SecretKey = v
	}
}

func (c *StorageConfig) validate() error {
	switch c.Backend {
	case StorageBackendFilesystem:
		if c.BasePath == "" {
			return fmt.Errorf("base_path required")
		}
	case StorageBackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3_bucket required")
		}
	default:
		return fmt.Errorf("invalid backend: %q", c.Backend)
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	return nil
}
