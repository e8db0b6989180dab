package config

import (
	"os"
	"path"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DBConfig Database config
type DBConfig struct {
	Type         string `yaml:"type" split_words:"true"` // postgres or sqlite
	Host         string `yaml:"host" split_words:"true"`
	Port         int    `yaml:"port" split_words:"true"`
	Name         string `yaml:"name" split_words:"true"`
	User         string `yaml:"user" split_words:"true"`
	Passwd       string `yaml:"passwd" split_words:"true"`
	SSLMode      string `yaml:"sslmode" split_words:"true"`
	MaxOpenConns int    `yaml:"max_open_conns" split_words:"true"`
	IdleConns    int    `yaml:"idle_conns" split_words:"true"`
	Debug        bool   `yaml:"debug" split_words:"true"`
}

// SysConfig System config
type SysConfig struct {
	Appid    string `yaml:"appid" split_words:"true"`
	Location string `yaml:"location" split_words:"true"`
	Workdir  string `yaml:"workdir" split_words:"true"`
	Debug    bool   `yaml:"debug" split_words:"true"`
}

// WebConfig storefront listener config
type WebConfig struct {
	Host string `yaml:"host" split_words:"true"`
	Port int    `yaml:"port" split_words:"true"`
}

// CatalogConfig location of the product catalog document
type CatalogConfig struct {
	Path string `yaml:"path" split_words:"true"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" split_words:"true"`
	FileEnable bool   `yaml:"file_enable" split_words:"true"`
	Filename   string `yaml:"filename" split_words:"true"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system" envconfig:"SYSTEM"`
	Web      WebConfig     `yaml:"web" envconfig:"WEB"`
	Database DBConfig      `yaml:"database" envconfig:"DB"`
	Catalog  CatalogConfig `yaml:"catalog" envconfig:"CATALOG"`
	Logger   LogConfig     `yaml:"logger" envconfig:"LOGGER"`
}

// EnvPrefix prefixes every environment override, e.g. TIRESHOP_DB_HOST.
const EnvPrefix = "TIRESHOP"

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) GetMetricsDir() string {
	return path.Join(c.System.Workdir, "data", "metrics")
}

func (c *AppConfig) InitDirs() error {
	for _, dir := range []string{c.GetLogDir(), c.GetDataDir(), c.GetMetricsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	return nil
}

// DefaultAppConfig mirrors the settings the shop was originally deployed with.
var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "tireshop",
		Location: "Europe/Kyiv",
		Workdir:  "./var/tireshop",
	},
	Web: WebConfig{
		Host: "127.0.0.1",
		Port: 5000,
	},
	Database: DBConfig{
		Type:         "postgres",
		Host:         "127.0.0.1",
		Port:         5432,
		Name:         "shop_db",
		User:         "postgres",
		Passwd:       "",
		SSLMode:      "disable",
		MaxOpenConns: 10,
		IdleConns:    2,
	},
	Catalog: CatalogConfig{
		Path: "./products.json",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "./var/tireshop/logs/tireshop.log",
	},
}

// LoadConfig reads cfile (when it exists) on top of the defaults, then
// applies .env and TIRESHOP_* environment overrides.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig

	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", cfile)
			}
		case os.IsNotExist(err):
			// defaults only
		default:
			return nil, errors.Wrapf(err, "read config %s", cfile)
		}
	}

	// a missing .env is normal outside local development
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}

	cfg.Database.Type = strings.ToLower(strings.TrimSpace(cfg.Database.Type))
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	return &cfg, nil
}
