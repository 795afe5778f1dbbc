package guard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Mode decides whether a scan blocks the request or only reports.
type Mode string

const (
	ModeWarn    Mode = "warn"
	ModeEnforce Mode = "enforce"
)

func (m Mode) valid() bool {
	return m == ModeWarn || m == ModeEnforce
}

// Config is the request policy. Field tags map it to GUARD_* variables.
type Config struct {
	MaxBodySize          int64    `env:"GUARD_MAX_BODY_SIZE" envDefault:"1048576"`
	AllowedContentTypes  []string `env:"GUARD_ALLOWED_CONTENT_TYPES" envSeparator:"," envDefault:"application/json,text/plain"`
	CheckPromptInjection bool     `env:"GUARD_CHECK_PROMPT_INJECTION" envDefault:"true"`
	CheckScripts         bool     `env:"GUARD_CHECK_SCRIPTS" envDefault:"true"`
	// Strict makes warn-level signatures block and forces both scans to enforce.
	Strict              bool   `env:"GUARD_STRICT" envDefault:"false"`
	PromptInjectionMode Mode   `env:"GUARD_PROMPT_INJECTION_MODE" envDefault:"warn"`
	ScriptMode          Mode   `env:"GUARD_SCRIPT_MODE" envDefault:"enforce"`
	PatternsFile        string `env:"GUARD_PATTERNS_FILE"`
}

// DefaultConfig returns the same values as an empty environment.
func DefaultConfig() Config {
	return Config{
		MaxBodySize:          1 << 20,
		AllowedContentTypes:  []string{"application/json", "text/plain"},
		CheckPromptInjection: true,
		CheckScripts:         true,
		PromptInjectionMode:  ModeWarn,
		ScriptMode:           ModeEnforce,
	}
}

// Validate reports every problem with c, joined with ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	if c.MaxBodySize <= 0 {
		errs = append(errs, fmt.Errorf("max body size must be positive, got %d", c.MaxBodySize))
	}
	if len(c.AllowedContentTypes) == 0 {
		errs = append(errs, errors.New("at least one content type must be allowed"))
	}
	for _, ct := range c.AllowedContentTypes {
		if strings.TrimSpace(ct) == "" {
			errs = append(errs, errors.New("allowed content types contain an empty entry"))
			break
		}
	}
	if !c.PromptInjectionMode.valid() {
		errs = append(errs, fmt.Errorf("prompt injection mode %q: must be %q or %q", c.PromptInjectionMode, ModeWarn, ModeEnforce))
	}
	if !c.ScriptMode.valid() {
		errs = append(errs, fmt.Errorf("script mode %q: must be %q or %q", c.ScriptMode, ModeWarn, ModeEnforce))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

func (c Config) enforceScripts() bool {
	return c.Strict || c.ScriptMode == ModeEnforce
}

func (c Config) enforcePrompt() bool {
	return c.Strict || c.PromptInjectionMode == ModeEnforce
}

// LoadConfig loads the given .env files (or ./.env when none are named and
// it exists) and parses the environment into a validated Config.
func LoadConfig(files ...string) (Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Config{}, errors.Join(ErrInvalidConfig, err)
		}
	} else {
		// The default .env is optional.
		_ = godotenv.Load()
	}
	return ParseConfig(nil)
}

// ParseConfig parses environment into a Config. A nil map reads the process
// environment.
func ParseConfig(environment map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
