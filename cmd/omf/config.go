package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the omf configuration file (~/.config/omf/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	MaxCells  *int64 `yaml:"max_cells"`

	// Conversion defaults
	Format      string `yaml:"format"`
	Compression string `yaml:"compression"`
	Encoding    string `yaml:"encoding"`
	BigEndian   *bool  `yaml:"big_endian"`

	// Batch
	Workers *int64   `yaml:"workers"`
	Rate    *float64 `yaml:"rate"`
	MinIO   MinIO    `yaml:"minio"`

	// Server
	ServerAddress string `yaml:"server_address"`
	MaxBodySize   *int64 `yaml:"max_body_size"`
}

// MinIO holds the object storage sink used by "omf batch --bucket".
type MinIO struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
	Secure    *bool  `yaml:"secure"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "omf", "config.yaml")
}

// LoadConfig reads the config file at path. A missing file yields a zero Config unless
// required is set.
func LoadConfig(path string, required bool) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Config{}, nil
		}

		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// applyConvertConfig applies config file defaults to the conversion flags of c
// when the corresponding flag was not explicitly set.
func applyConvertConfig(c *cli.Command, cfg Config, f *convertFlags) {
	if cfg.Format != "" && !c.IsSet("format") {
		f.format = cfg.Format
	}
	if cfg.Compression != "" && !c.IsSet("compression") {
		f.compression = cfg.Compression
	}
	if cfg.Encoding != "" && !c.IsSet("encoding") {
		f.encoding = cfg.Encoding
	}
	if cfg.BigEndian != nil && !c.IsSet("big-endian") {
		f.bigEndian = *cfg.BigEndian
	}
}

// applyBatchConfig applies config file defaults to batch command variables.
func applyBatchConfig(c *cli.Command, cfg Config, f *batchFlags) {
	applyConvertConfig(c, cfg, &f.convertFlags)
	if cfg.Workers != nil && !c.IsSet("workers") {
		f.workers = *cfg.Workers
	}
	if cfg.Rate != nil && !c.IsSet("rate") {
		f.rate = *cfg.Rate
	}
	if cfg.MinIO.Endpoint != "" && !c.IsSet("minio-endpoint") {
		f.minio.Endpoint = cfg.MinIO.Endpoint
	}
	if cfg.MinIO.AccessKey != "" && !c.IsSet("minio-access-key") {
		f.minio.AccessKey = cfg.MinIO.AccessKey
	}
	if cfg.MinIO.SecretKey != "" && !c.IsSet("minio-secret-key") {
		f.minio.SecretKey = cfg.MinIO.SecretKey
	}
	if cfg.MinIO.Region != "" && !c.IsSet("minio-region") {
		f.minio.Region = cfg.MinIO.Region
	}
	if cfg.MinIO.Secure != nil && !c.IsSet("minio-secure") {
		f.minio.Secure = *cfg.MinIO.Secure
	}
	if cfg.MinIO.Bucket != "" && !c.IsSet("bucket") {
		f.bucket = cfg.MinIO.Bucket
	}
	if cfg.MinIO.Prefix != "" && !c.IsSet("prefix") {
		f.prefix = cfg.MinIO.Prefix
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string, maxBody *int64) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.MaxBodySize != nil && !c.IsSet("max-body") {
		*maxBody = *cfg.MaxBodySize
	}
}
