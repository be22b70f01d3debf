package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
	BackendMemory   = "memory"

	ImagesSupabase = "supabase"
	ImagesLocal    = "local"
	ImagesInline   = "inline"
)

type Config struct {
	Env          string             `yaml:"env" env:"ENV" env-default:"local"`
	Store        StoreConfig        `yaml:"store"`
	HTTP         HTTPConfig         `yaml:"http"`
	ImageStorage ImageStorageConfig `yaml:"image_storage"`
	Probe        ProbeConfig        `yaml:"probe"`
}

// StoreConfig не требует координат: их отсутствие обрабатывается probe
type StoreConfig struct {
	Backend string `yaml:"backend" env:"STORE_BACKEND" env-default:"supabase"`
	DSN     string `yaml:"dsn" env:"STORE_DSN"`
	URL     string `yaml:"url" env:"SUPABASE_URL"`
	Key     string `yaml:"key" env:"SUPABASE_KEY"`
	Migrate bool   `yaml:"migrate" env:"STORE_MIGRATE" env-default:"false"`
}

type HTTPConfig struct {
	Host         string        `yaml:"host" env:"HTTP_HOST"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"30s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type ImageStorageConfig struct {
	Backend string `yaml:"backend" env:"IMAGE_STORAGE" env-default:"inline"`
	Bucket  string `yaml:"bucket" env-default:"paintings"`
	BaseDir string `yaml:"base_dir" env-default:"./uploads"`
	BaseURL string `yaml:"base_url"`
	MaxSize int64  `yaml:"max_size" env-default:"10485760"`
}

type ProbeConfig struct {
	TTL time.Duration `yaml:"ttl" env-default:"30s"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		return MustLoadEnv()
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

// MustLoadEnv reads the configuration from the environment only.
func MustLoadEnv() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from env: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
