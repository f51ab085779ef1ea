package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/artpar/ttdeploy/internal/core/domain"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all tool configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Docker   DockerConfig   `mapstructure:"docker"`

	// Deployment inputs that may come from the environment instead of flags,
	// e.g. TTDEPLOY_DB_PASSWORD.
	Subscription    string `mapstructure:"subscription"`
	ResourceGroup   string `mapstructure:"resource_group"`
	DBPassword      string `mapstructure:"db_password"`
	TrackerPassword string `mapstructure:"tracker_password"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// DefaultsConfig holds the values used for flags that are not given.
type DefaultsConfig struct {
	Location       string       `mapstructure:"location"`
	AppName        string       `mapstructure:"app_name"`
	DBEngine       string       `mapstructure:"db_engine"`
	DBName         string       `mapstructure:"db_name"`
	ImageTag       string       `mapstructure:"image_tag"`
	AuthMode       string       `mapstructure:"auth_mode"`
	Backend        string       `mapstructure:"backend"`
	OutputManifest string       `mapstructure:"output_manifest"`
	Sizing         SizingConfig `mapstructure:"sizing"`
}

// SizingConfig holds the default CPU cores and memory GiB per service.
type SizingConfig struct {
	AppCPU      float64 `mapstructure:"app_cpu"`
	AppMemory   float64 `mapstructure:"app_memory"`
	DBCPU       float64 `mapstructure:"db_cpu"`
	DBMemory    float64 `mapstructure:"db_memory"`
	CacheCPU    float64 `mapstructure:"cache_cpu"`
	CacheMemory float64 `mapstructure:"cache_memory"`
}

// DockerConfig holds Docker client configuration.
type DockerConfig struct {
	Host string `mapstructure:"host"`
}

// DomainDefaults converts the configured defaults into domain defaults.
func (c DefaultsConfig) DomainDefaults() (domain.Defaults, error) {
	mode, err := domain.ParseAuthMode(c.AuthMode)
	if err != nil {
		return domain.Defaults{}, fmt.Errorf("defaults.auth_mode: %w", err)
	}
	return domain.Defaults{
		Location: c.Location,
		AppName:  c.AppName,
		DBEngine: domain.NormalizeEngine(c.DBEngine),
		DBName:   c.DBName,
		ImageTag: c.ImageTag,
		AuthMode: mode,
		Sizing: domain.Sizing{
			App:   domain.ResourceSpec{CPUCores: c.Sizing.AppCPU, MemoryGiB: c.Sizing.AppMemory},
			DB:    domain.ResourceSpec{CPUCores: c.Sizing.DBCPU, MemoryGiB: c.Sizing.DBMemory},
			Cache: domain.ResourceSpec{CPUCores: c.Sizing.CacheCPU, MemoryGiB: c.Sizing.CacheMemory},
		},
		OutputManifestPath: c.OutputManifest,
	}, nil
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	d := domain.StandardDefaults()

	// Set defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("defaults.location", d.Location)
	v.SetDefault("defaults.app_name", d.AppName)
	v.SetDefault("defaults.db_engine", string(d.DBEngine))
	v.SetDefault("defaults.db_name", d.DBName)
	v.SetDefault("defaults.image_tag", d.ImageTag)
	v.SetDefault("defaults.auth_mode", string(d.AuthMode))
	v.SetDefault("defaults.backend", "azure")
	v.SetDefault("defaults.output_manifest", d.OutputManifestPath)
	v.SetDefault("defaults.sizing.app_cpu", d.Sizing.App.CPUCores)
	v.SetDefault("defaults.sizing.app_memory", d.Sizing.App.MemoryGiB)
	v.SetDefault("defaults.sizing.db_cpu", d.Sizing.DB.CPUCores)
	v.SetDefault("defaults.sizing.db_memory", d.Sizing.DB.MemoryGiB)
	v.SetDefault("defaults.sizing.cache_cpu", d.Sizing.Cache.CPUCores)
	v.SetDefault("defaults.sizing.cache_memory", d.Sizing.Cache.MemoryGiB)
	v.SetDefault("docker.host", "")

	// Known so that environment overrides are picked up by Unmarshal
	v.SetDefault("subscription", "")
	v.SetDefault("resource_group", "")
	v.SetDefault("db_password", "")
	v.SetDefault("tracker_password", "")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("TTDEPLOY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger writing to w with the configured level and
// format. verbose forces the debug level.
func SetupLogger(cfg LogConfig, verbose bool, w io.Writer) *zap.Logger {
	var level zapcore.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn", "warning":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var encoder zapcore.Encoder
	if strings.ToLower(cfg.Format) == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core)
}

// RouteLibraryLogs sends what compose-go logs through logrus while loading
// the generated manifest to logger at debug level, and stops logrus from
// writing to stderr itself.
func RouteLibraryLogs(logger *zap.Logger) {
	std := logrus.StandardLogger()
	std.SetOutput(io.Discard)
	std.ReplaceHooks(make(logrus.LevelHooks))
	std.AddHook(&logrusHook{logger: logger.Named("compose")})
}

type logrusHook struct {
	logger *zap.Logger
}

func (h *logrusHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *logrusHook) Fire(e *logrus.Entry) error {
	fields := make([]zap.Field, 0, len(e.Data)+1)
	fields = append(fields, zap.String("library_level", e.Level.String()))
	for k, v := range e.Data {
		fields = append(fields, zap.Any(k, v))
	}
	h.logger.Debug(e.Message, fields...)
	return nil
}
