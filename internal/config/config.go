package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/jmehdipour/custgen/internal/generator"
	"github.com/jmehdipour/custgen/internal/identity"
	"github.com/jmehdipour/custgen/internal/model"
	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaults []byte

var ErrInvalidConfig = errors.New("invalid config")

// ---- Root ----

type Config struct {
	Generator  GeneratorConfig `mapstructure:"generator"`
	Output     OutputConfig    `mapstructure:"output"`
	Log        LogConfig       `mapstructure:"log"`
	Sink       SinkConfig      `mapstructure:"sink"`
	Postgres   DatabaseConfig  `mapstructure:"postgres"`
	MySQL      DatabaseConfig  `mapstructure:"mysql"`
	ClickHouse DatabaseConfig  `mapstructure:"clickhouse"`
	Redis      RedisConfig     `mapstructure:"redis"`
	Kafka      KafkaConfig     `mapstructure:"kafka"`
	HTTP       HTTPConfig      `mapstructure:"http"`
	Metrics    MetricsConfig   `mapstructure:"metrics"`
}

// ---- Leaf structs ----

type GeneratorConfig struct {
	BankPrefix     int                `mapstructure:"bank_prefix"`
	SequenceStart  int64              `mapstructure:"sequence_start"`
	SequenceDigits int                `mapstructure:"sequence_digits"`
	RecordCount    int64              `mapstructure:"record_count"`
	Seed           int64              `mapstructure:"seed"`
	ReferenceDate  string             `mapstructure:"reference_date"` // YYYY-MM-DD, empty = today
	Provider       string             `mapstructure:"provider"`
	MiddleNameRate float64            `mapstructure:"middle_name_rate"`
	MinAge         int                `mapstructure:"min_age"`
	MaxAge         int                `mapstructure:"max_age"`
	StatusWeights  map[string]float64 `mapstructure:"status_weights"`
}

type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"` // csv|xlsx
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json|console
}

type SinkConfig struct {
	BatchSize int    `mapstructure:"batch_size"`
	Table     string `mapstructure:"table"`
}

type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idletime"`
	PingTimeout     time.Duration `mapstructure:"ping_timeout"`
}

type RedisConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
	KeepRuns    int64         `mapstructure:"keep_runs"`
}

type KafkaConfig struct {
	Brokers      []string `mapstructure:"brokers"`
	Topic        string   `mapstructure:"topic"`
	BatchSize    int      `mapstructure:"batch_size"`
	BatchTimeout int      `mapstructure:"batch_timeout_ms"`
	RequiredAcks int      `mapstructure:"required_acks"`
}

type HTTPConfig struct {
	Addr         string `mapstructure:"addr"`
	MaxPreview   int64  `mapstructure:"max_preview"`
	RateLimitRPS int    `mapstructure:"rate_limit_rps"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// Load reads embedded defaults, merges user YAML (if provided), and applies env overrides (CUSTGEN_*).
func Load(path string) (Config, error) {
	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("read %s: %w", path, err)
			}
		}
	}

	// env override (CUSTGEN_GENERATOR_SEED=7, ...)
	v.SetEnvPrefix("CUSTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the whole generator section, ID range included; sinks are
// checked when they are opened.
func (c Config) Validate() error {
	if err := c.ValidateBase(); err != nil {
		return err
	}
	opts, _ := c.Generator.Options()
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ValidateBase checks the parts that command-line overrides cannot change:
// reference_date, status_weights and output.file.
func (c Config) ValidateBase() error {
	if _, err := c.Generator.Options(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Output.File) == "" {
		return fmt.Errorf("%w: empty output.file", ErrInvalidConfig)
	}
	return nil
}

// Options maps the generator section onto generator.Options.
func (g GeneratorConfig) Options() (generator.Options, error) {
	ref := identity.Today(time.Now())
	if s := strings.TrimSpace(g.ReferenceDate); s != "" {
		t, err := time.Parse(model.DateLayout, s)
		if err != nil {
			return generator.Options{}, fmt.Errorf("%w: reference_date %q: %w", ErrInvalidConfig, s, err)
		}
		ref = t
	}

	weights := generator.DefaultStatusWeights
	if len(g.StatusWeights) > 0 {
		weights = make([]float64, len(model.Statuses))
		for k, w := range g.StatusWeights {
			st, ok := model.ParseStatus(k)
			if !ok {
				return generator.Options{}, fmt.Errorf("%w: unknown status %q in status_weights", ErrInvalidConfig, k)
			}
			for i, s := range model.Statuses {
				if s == st {
					weights[i] = w
				}
			}
		}
	}

	return generator.Options{
		BankPrefix:     g.BankPrefix,
		SequenceStart:  g.SequenceStart,
		SequenceDigits: g.SequenceDigits,
		Count:          g.RecordCount,
		Seed:           g.Seed,
		ReferenceDate:  ref,
		Provider:       g.Provider,
		MiddleNameRate: g.MiddleNameRate,
		MinAge:         g.MinAge,
		MaxAge:         g.MaxAge,
		StatusWeights:  weights,
	}, nil
}
