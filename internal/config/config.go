// Package config loads settings from flag defaults, an optional YAML file,
// SQLGROUPS_ environment variables and explicitly set flags, in that order.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/conorfennell/sqlgroups/internal/quiz"
)

// EnvPrefix is stripped from environment variables; "__" separates nested keys.
const EnvPrefix = "SQLGROUPS_"

type Config struct {
	HTTP HTTP `koanf:"http"`
	Quiz Quiz `koanf:"quiz"`
	Log  Log  `koanf:"log"`
}

type HTTP struct {
	Addr            string        `koanf:"addr" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

type Quiz struct {
	CorrectDelay   time.Duration `koanf:"correct_delay" validate:"gt=0"`
	IncorrectDelay time.Duration `koanf:"incorrect_delay" validate:"gt=0"`
}

// Pacing converts the delays for the quiz session.
func (q Quiz) Pacing() quiz.Pacing {
	return quiz.Pacing{Correct: q.CorrectDelay, Incorrect: q.IncorrectDelay}
}

type Log struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	File   string `koanf:"file"` // empty means stderr, or discard for the terminal UI
}

// RegisterFlags adds every setting to fs with its default value.
func RegisterFlags(fs *pflag.FlagSet) {
	pacing := quiz.DefaultPacing()
	fs.String("config", "", "Path to a YAML config file")
	fs.String("http.addr", "127.0.0.1:8080", "Address the web server listens on")
	fs.Duration("http.shutdown_timeout", 5*time.Second, "Grace period for in-flight requests on shutdown")
	fs.Duration("quiz.correct_delay", pacing.Correct, "Pause after a correct answer before the next question")
	fs.Duration("quiz.incorrect_delay", pacing.Incorrect, "Pause after a wrong answer before the next question")
	fs.String("log.level", "info", "Log level: debug, info, warn or error")
	fs.String("log.format", "console", "Log encoding: json or console")
	fs.String("log.file", "", "Write logs to this file instead of stderr")
}

// Load reads the configuration. fs must have been set up by RegisterFlags and parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// Flag defaults first so that file and environment override them.
	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flag defaults: %w", err)
	}

	if path := k.String("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Flags set on the command line win over everything else.
	changed := pflag.NewFlagSet("changed", pflag.ContinueOnError)
	fs.Visit(func(f *pflag.Flag) { changed.AddFlag(f) })
	if err := k.Load(posflag.Provider(changed, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg and reports every invalid field.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// envKey maps SQLGROUPS_QUIZ__CORRECT_DELAY to quiz.correct_delay.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
