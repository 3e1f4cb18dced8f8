package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dezh-tech/immortal/pkg/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"medihub/internal/application/usecase"
	"medihub/internal/infrastructure/broker"
	"medihub/internal/infrastructure/controlplane"
	"medihub/internal/infrastructure/database"
	"medihub/internal/infrastructure/minio"
	"medihub/internal/infrastructure/transfer"
)

const (
	EnvMinIOUser     = "MINIO_ROOT_USER"
	EnvMinIOPassword = "MINIO_ROOT_PASSWORD"
	EnvDatabaseURI   = "DATABASE_URI"
	EnvBrokerURI     = "BROKER_URI"
	EnvAPIBaseURL    = "MEDIHUB_API_BASE_URL"
)

// Config represents the configs used by services on system.
type Config struct {
	Environment     string                 `yaml:"environment"`
	ControlPlane    controlplane.Config    `yaml:"control_plane"`
	Transfer        transfer.Config        `yaml:"transfer"`
	Uploader        usecase.UploaderConfig `yaml:"uploader"`
	Server          ServerConfig           `yaml:"server"`
	MinIOClient     minio.ClientConfig     `yaml:"minio_client"`
	MinIOPresigner  minio.PresignerConfig  `yaml:"minio_presigner"`
	DBConfig        database.Config        `yaml:"db_config"`
	BrokerConfig    broker.Config          `yaml:"redis_broker_config"`
	PublisherConfig broker.PublisherConfig `yaml:"publisher_config"`
	Logger          logger.Config          `yaml:"logger"`
}

type ServerConfig struct {
	Address   string `yaml:"address"`
	BodyLimit string `yaml:"body_limit"`
	RateLimit int    `yaml:"rate_limit"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}
	defer file.Close()

	config := &Config{}

	decoder := yaml.NewDecoder(file)

	if err := decoder.Decode(config); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	if config.Environment != "prod" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, Error{
				reason: err.Error(),
			}
		}
	}

	config.MinIOClient.AccessKey = os.Getenv(EnvMinIOUser)
	config.MinIOClient.SecretKey = os.Getenv(EnvMinIOPassword)
	config.DBConfig.URI = os.Getenv(EnvDatabaseURI)
	config.BrokerConfig.URI = os.Getenv(EnvBrokerURI)
	if baseURL := os.Getenv(EnvAPIBaseURL); baseURL != "" {
		config.ControlPlane.BaseURL = baseURL
	}

	if err = config.basicCheck(); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	return config, nil
}

// basicCheck validates the basic stuff in config.
func (c *Config) basicCheck() error {
	if c.Uploader.MaxUploadBytes < 0 {
		return errors.New("uploader.max_upload_bytes must not be negative")
	}
	if c.Transfer.Timeout < 0 || c.ControlPlane.Timeout < 0 {
		return errors.New("timeouts must not be negative")
	}

	return nil
}

// CheckClient validates what the upload and ask commands need.
func (c *Config) CheckClient() error {
	if c.ControlPlane.BaseURL == "" {
		return Error{reason: fmt.Sprintf("control_plane.base_url is empty, set it or %s", EnvAPIBaseURL)}
	}

	return nil
}

// CheckServer validates what the serve command needs.
func (c *Config) CheckServer() error {
	switch {
	case c.Server.Address == "":
		return Error{reason: "server.address is empty"}
	case c.MinIOClient.Endpoint == "":
		return Error{reason: "minio_client.endpoint is empty"}
	case c.MinIOPresigner.Bucket == "":
		return Error{reason: "minio_presigner.bucket is empty"}
	case c.DBConfig.URI == "":
		return Error{reason: EnvDatabaseURI + " is not set"}
	case c.DBConfig.DBName == "":
		return Error{reason: "db_config.db_name is empty"}
	case c.BrokerConfig.URI == "":
		return Error{reason: EnvBrokerURI + " is not set"}
	case c.BrokerConfig.StreamName == "":
		return Error{reason: "redis_broker_config.stream_name is empty"}
	}

	return nil
}
