package main

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

type Config struct {
	Address   string        `yaml:"address" env:"KEYFORMS_ADDRESS" env-default:":8080"`
	Timeout   time.Duration `yaml:"timeout" env:"KEYFORMS_TIMEOUT" env-default:"10s"`
	LogLevel  string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	LogFormat string        `yaml:"log_format" env:"LOG_FORMAT" env-default:"text"`

	// empty means the data embedded in the binary
	DataDir string `yaml:"data_dir" env:"KEYFORMS_DATA_DIR"`

	Workers           int   `yaml:"workers" env:"KEYFORMS_WORKERS" env-default:"0"`
	MinOccurrences    int   `yaml:"min_occurrences" env:"KEYFORMS_MIN_OCCURRENCES" env-default:"2"`
	MaxProminentWords int   `yaml:"max_prominent_words" env:"KEYFORMS_MAX_PROMINENT_WORDS" env-default:"100"`
	MaxBodyBytes      int64 `yaml:"max_body_bytes" env:"KEYFORMS_MAX_BODY_BYTES" env-default:"1048576"`

	CORS CORSConfig `yaml:"cors"`
}

func MustLoad(configPath string) Config {
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config %q: %s", configPath, err)
	}
	return cfg
}
