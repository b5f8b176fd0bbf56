package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// EngineConfig controls how sensitivity sweeps are evaluated
type EngineConfig struct {
	ExecutionMode     string `yaml:"execution_mode"`     // auto, serial, parallel
	Workers           int    `yaml:"workers"`            // max concurrent rows in parallel mode (0 = unbounded)
	ParallelThreshold int    `yaml:"parallel_threshold"` // cell count at which auto mode goes parallel
}

// DefaultsConfig seeds the web form and fills omitted request fields
type DefaultsConfig struct {
	Spot       float64 `yaml:"spot"`
	Strike     float64 `yaml:"strike"`
	Maturity   float64 `yaml:"maturity"` // years
	Rate       float64 `yaml:"rate"`
	Volatility float64 `yaml:"volatility"`

	GridSteps int     `yaml:"grid_steps"` // per axis
	SpotSpan  float64 `yaml:"spot_span"`  // spot axis = spot * [1-span, 1+span]
	VolSpan   float64 `yaml:"vol_span"`   // vol axis = vol * [1-span, 1+span]
}

// JournalConfig represents scenario journal configuration
type JournalConfig struct {
	Enabled        bool   `yaml:"enabled"`
	FilenameFormat string `yaml:"filename_format"` // {date} is substituted
}

type Config struct {
	// Server settings
	Port string

	Logging  LoggingConfig  `yaml:"logging"`
	Engine   EngineConfig   `yaml:"engine"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Journal  JournalConfig  `yaml:"journal"`
}

type YAMLConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Engine   EngineConfig   `yaml:"engine"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Journal  JournalConfig  `yaml:"journal"`
}

// Load builds the runtime configuration from environment variables, then
// overlays anything set in config.yaml. A missing or unparseable YAML file is
// not an error; the environment/default values stand.
func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Logging: LoggingConfig{
			LogLevel: getEnv("LOG_LEVEL", "info"),
			LogFile:  getEnv("LOG_FILE", "volgrid.log"),
		},
		Engine: EngineConfig{
			ExecutionMode:     getEnv("ENGINE_EXECUTION_MODE", "auto"),
			Workers:           getEnvInt("ENGINE_WORKERS", 8),
			ParallelThreshold: getEnvInt("ENGINE_PARALLEL_THRESHOLD", 4096),
		},
		Defaults: DefaultsConfig{
			Spot:       getEnvFloat("DEFAULT_SPOT", 100.0),
			Strike:     getEnvFloat("DEFAULT_STRIKE", 100.0),
			Maturity:   getEnvFloat("DEFAULT_MATURITY", 1.0),
			Rate:       getEnvFloat("DEFAULT_RATE", 0.05),
			Volatility: getEnvFloat("DEFAULT_VOLATILITY", 0.20),
			GridSteps:  getEnvInt("DEFAULT_GRID_STEPS", 10),
			SpotSpan:   getEnvFloat("DEFAULT_SPOT_SPAN", 0.2),
			VolSpan:    getEnvFloat("DEFAULT_VOL_SPAN", 0.5),
		},
		Journal: JournalConfig{
			Enabled:        getEnvBool("JOURNAL_ENABLED", false),
			FilenameFormat: getEnv("JOURNAL_FILENAME_FORMAT", "scenarios_{date}.jsonl"),
		},
	}

	if yamlCfg := loadYAMLConfig(); yamlCfg != nil {
		if yamlCfg.Server.Port != "" {
			cfg.Port = yamlCfg.Server.Port
		}
		if yamlCfg.Logging.LogLevel != "" {
			cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
		}
		if yamlCfg.Logging.LogFile != "" {
			cfg.Logging.LogFile = yamlCfg.Logging.LogFile
		}
		if yamlCfg.Engine.ExecutionMode != "" {
			cfg.Engine = yamlCfg.Engine
		}
		if yamlCfg.Defaults.Spot > 0 {
			cfg.Defaults = yamlCfg.Defaults
		}
		cfg.Journal = yamlCfg.Journal
		if cfg.Journal.FilenameFormat == "" {
			cfg.Journal.FilenameFormat = "scenarios_{date}.jsonl"
		}
	}

	// Backstop values a sparse YAML section may have zeroed out.
	if cfg.Engine.ParallelThreshold <= 0 {
		cfg.Engine.ParallelThreshold = 4096
	}
	if cfg.Defaults.GridSteps < 2 {
		cfg.Defaults.GridSteps = 10
	}
	if cfg.Defaults.SpotSpan <= 0 || cfg.Defaults.SpotSpan >= 1 {
		cfg.Defaults.SpotSpan = 0.2
	}
	if cfg.Defaults.VolSpan <= 0 || cfg.Defaults.VolSpan >= 1 {
		cfg.Defaults.VolSpan = 0.5
	}

	return cfg
}

func loadYAMLConfig() *YAMLConfig {
	data, err := os.ReadFile("config.yaml")
	if err != nil {
		// No config.yaml alongside the binary - run on env/defaults.
		return nil
	}

	var yamlCfg YAMLConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil
	}

	return &yamlCfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
