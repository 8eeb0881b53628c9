package util

import (
	"log"
	"os"

	"github.com/go-yaml/yaml"
)

// Config is the archive daemon configuration
type Config struct {
	Server Server `yaml:"server"`
	Auth   Auth   `yaml:"auth"`
	Assist Assist `yaml:"assist"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	Dsn           string `yaml:"dsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
	StoragePath   string `yaml:"storagePath"`
	PublicURL     string `yaml:"publicURL"`
}

type Auth struct {
	JWTSecret                string `yaml:"jwtSecret"`
	SessionTTLHours          int    `yaml:"sessionTTLHours"`
	RequireEmailConfirmation bool   `yaml:"requireEmailConfirmation"`
}

// Assist configures the OpenAI-compatible endpoint; an empty APIKey disables it
type Assist struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseURL"`
	Model   string `yaml:"model"`
}

// Load loads archive config from given path
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal("failed to open configuration file:", err)
		return err
	}
	defer f.Close()

	err = yaml.NewDecoder(f).Decode(&c)
	if err != nil {
		log.Fatal("failed to load configuration file:", err)
		return err
	}

	c.applyDefaults()

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8000"
	}
	if c.Server.StoragePath == "" {
		c.Server.StoragePath = "/var/lib/archive/storage"
	}
	if c.Server.PublicURL == "" {
		c.Server.PublicURL = "http://localhost" + c.Server.Listen
	}
	if c.Auth.SessionTTLHours <= 0 {
		c.Auth.SessionTTLHours = 24 * 7
	}
	if c.Assist.Model == "" {
		c.Assist.Model = "gpt-4o-mini"
	}
}
