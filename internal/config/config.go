package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Persona              string   `yaml:"persona"`
	VoiceEnabled         bool     `yaml:"voiceEnabled"`
	PenaltyPerLevel      int      `yaml:"penaltyPerLevel"`
	MaxComplexity        int      `yaml:"maxComplexity"`
	SpeakThreshold       int      `yaml:"speakThreshold"`
	APIKey               string   `yaml:"apiKey"`
	Model                string   `yaml:"model"`
	RemoteTimeoutSeconds int      `yaml:"remoteTimeoutSeconds"`
	SupportedExtensions  []string `yaml:"supportedExtensions"`
	DebounceMS           int      `yaml:"debounceMs"`
	SettleMS             int      `yaml:"settleMs"`

	Server struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"` // sqlite | mysql | postgres
		Path     string `yaml:"path"`   // sqlite only
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Archive struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"archive"`
}

// Default adalah konfigurasi lengkap tanpa file config sama sekali.
func Default() *Config {
	cfg := &Config{
		Persona:              "PROFESSIONAL",
		VoiceEnabled:         false,
		PenaltyPerLevel:      20,
		MaxComplexity:        3,
		SpeakThreshold:       80,
		RemoteTimeoutSeconds: 10,
		SupportedExtensions:  []string{".py", ".java", ".js", ".cpp", ".ts", ".go", ".rs"},
		DebounceMS:           1000,
		SettleMS:             200,
	}
	cfg.Server.Port = 7777
	cfg.Database.Driver = "sqlite"
	return cfg
}

// DefaultPath is ~/.config/ratemycode/config.yaml (or the OS equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ratemycode", "config.yaml")
}

// Load baca file config yaml di atas defaults. File yang tidak ada bukan
// error: tool harus jalan out of the box.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	// env override untuk API key
	if v := os.Getenv("RATEMYCODE_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.APIKey == "" {
		cfg.APIKey = v
	}

	return cfg, nil
}

// SQLitePath resolves the embedded DB location, defaulting next to the
// config file.
func (c *Config) SQLitePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "ratemycode_history.db"
	}
	return filepath.Join(dir, "ratemycode", "history.db")
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
