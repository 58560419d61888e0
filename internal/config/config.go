package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Значения по умолчанию
const (
	DefaultSeed        uint64 = 1234
	DefaultRulesPath          = ""
	DefaultMetricsAddr        = ":2112"
	DefaultServiceName        = "worldgen"
	DefaultSampleRatio        = 1.0
	DefaultLogLevel           = "info"
)

// Config корневая структура конфигурации процесса
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type WorldConfig struct {
	Seed      *uint64 `yaml:"seed"`       // nil: WORLDGEN_SEED или DefaultSeed
	RulesPath string  `yaml:"rules_path"` // пусто: встроенный реестр
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type TelemetryConfig struct {
	Enabled     bool     `yaml:"enabled"`
	ServiceName string   `yaml:"service_name"`
	SampleRatio *float64 `yaml:"sample_ratio"` // nil: трассировать все генерации
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"` // пусто: только консоль
}

// GetSeed возвращает сид с приоритетом: config -> env -> default
func (w *WorldConfig) GetSeed() uint64 {
	if w.Seed != nil {
		return *w.Seed
	}
	if envVal := os.Getenv("WORLDGEN_SEED"); envVal != "" {
		if seed, err := strconv.ParseUint(envVal, 10, 64); err == nil {
			return seed
		}
	}
	return DefaultSeed
}

// GetAddr возвращает адрес метрик с приоритетом: config -> env -> default
func (m *MetricsConfig) GetAddr() string {
	return getStringWithEnvFallback(m.Addr, "WORLDGEN_METRICS_ADDR", DefaultMetricsAddr)
}

// GetServiceName возвращает имя сервиса для трейсов
func (t *TelemetryConfig) GetServiceName() string {
	if t.ServiceName != "" {
		return t.ServiceName
	}
	return DefaultServiceName
}

// GetSampleRatio возвращает долю трассируемых генераций, приведённую к [0, 1]
func (t *TelemetryConfig) GetSampleRatio() float64 {
	if t.SampleRatio == nil {
		return DefaultSampleRatio
	}
	return math.Min(math.Max(*t.SampleRatio, 0), 1)
}

// GetLevel возвращает уровень логирования
func (l *LoggingConfig) GetLevel() string {
	if l.Level != "" {
		return l.Level
	}
	return DefaultLogLevel
}

func getStringWithEnvFallback(value, envVar, def string) string {
	if value != "" {
		return value
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return def
}

// Default возвращает пустую конфигурацию: все значения берутся из env и дефолтов
func Default() *Config {
	return &Config{}
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать путь из ENV WORLDGEN_CONFIG,
// а без него возвращает Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("WORLDGEN_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, nil
}
