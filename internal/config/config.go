package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type API struct {
	BaseURL  string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:5000/api"`
	Timeout  time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"15s"`
	PageSize int           `yaml:"page_size" env:"API_PAGE_SIZE" env-default:"8"`
}

type StubServer struct {
	Addr      string `yaml:"address" env:"STUB_ADDR" env-default:"localhost:5000"`
	JWTKey    string `yaml:"jwt_key" env:"STUB_JWT_KEY" env-default:"dev-only-secret"`
	UploadURL string `yaml:"upload_url" env:"STUB_UPLOAD_URL" env-default:"/uploads"`
}

type Telemetry struct {
	ServiceName      string  `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"ecofinds-client"`
	ExporterEndpoint string  `yaml:"exporter_endpoint" env:"OTEL_EXPORTER_ENDPOINT" env-default:"http://localhost:4318/v1/traces"`
	SamplerRatio     float64 `yaml:"sampler_ratio" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	API        API        `yaml:"api"`
	StubServer StubServer `yaml:"stub_server"`
	Telemetry  Telemetry  `yaml:"otel"`
}

// LoadConfigFromPath reads one yaml file, letting environment variables
// override its values.
func LoadConfigFromPath(path string) (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad reads the yaml config named by CONFIG_PATH or the -config flag,
// falling back to environment variables and defaults when neither is set.
func MustLoad() *Config {

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flagPath := flag.String("config", "", "path to the yaml config file")
		flag.Parse()
		configPath = *flagPath
	}

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("can not read config from environment: %s", err.Error())
		}

		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}
