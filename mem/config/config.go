// Package config loads engine settings from YAML and applies them to the
// process-wide allocator, corruption handler, default buffer Env and logger.
//
// Example file:
//
//	guard: strict          # strict | permissive (default: build default)
//	allocator: pages       # heap | pages | none (default: heap)
//	handler: panic         # exit | panic | log (default: exit)
//	policy:
//	  min_allocation: 16
//	  shrink_threshold_percent: 25
//	log:
//	  level: info          # debug | info | warn | error
//	  format: json         # text | json
//	  dir: /var/log/myapp  # daily files; stderr when empty
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/safemem/internal/logger"
	"github.com/joshuapare/safemem/mem/alloc"
	"github.com/joshuapare/safemem/mem/buffer"
	"github.com/joshuapare/safemem/mem/guard"
)

var (
	// ErrUnknownGuard indicates an unrecognized guard mode.
	ErrUnknownGuard = errors.New("config: unknown guard mode")

	// ErrUnknownAllocator indicates an unrecognized allocator name.
	ErrUnknownAllocator = errors.New("config: unknown allocator")

	// ErrUnknownHandler indicates an unrecognized corruption handler name.
	ErrUnknownHandler = errors.New("config: unknown handler")

	// ErrInvalidPolicy indicates allocation policy values out of range.
	ErrInvalidPolicy = errors.New("config: invalid allocation policy")

	// ErrUnknownLogLevel indicates an unrecognized log level.
	ErrUnknownLogLevel = errors.New("config: unknown log level")

	// ErrUnknownLogFormat indicates an unrecognized log format.
	ErrUnknownLogFormat = errors.New("config: unknown log format")
)

// Config holds the engine settings. Empty fields select defaults.
type Config struct {
	Guard     string `yaml:"guard"`
	Allocator string `yaml:"allocator"`
	Handler   string `yaml:"handler"`
	Policy    Policy `yaml:"policy"`
	Log       Log    `yaml:"log"`
}

// Policy mirrors alloc.Policy.
type Policy struct {
	MinAllocation          int `yaml:"min_allocation"`
	ShrinkThresholdPercent int `yaml:"shrink_threshold_percent"`
}

// Log configures the engine logger.
type Log struct {
	Disabled bool   `yaml:"disabled"`
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Dir      string `yaml:"dir"`
}

// Load decodes and validates a YAML document. Unknown keys are rejected. An
// empty document yields the defaults.
func Load(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads and decodes the YAML file at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := c.validator(); err != nil {
		return err
	}
	if _, err := c.allocator(); err != nil {
		return err
	}
	if _, err := c.handler(); err != nil {
		return err
	}
	if !c.policy().Valid() {
		return fmt.Errorf("%w: min_allocation=%d shrink_threshold_percent=%d",
			ErrInvalidPolicy, c.Policy.MinAllocation, c.Policy.ShrinkThresholdPercent)
	}
	if _, err := c.logOptions(); err != nil {
		return err
	}
	return nil
}

// Env returns a buffer Env carrying the configured validator, allocator and
// policy.
func (c *Config) Env() (*buffer.Env, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	v, _ := c.validator()
	a, _ := c.allocator()
	return &buffer.Env{Allocator: a, Validator: v, Policy: c.policy()}, nil
}

// Apply installs the configuration process-wide: the allocator, the
// corruption handler, the default buffer Env and the logger. The returned
// function restores the previous allocator, handler and Env and resets the
// logger.
//
// Growable buffers holding storage from the previous allocator must be
// released before Apply.
func (c *Config) Apply() (restore func(), err error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts, _ := c.logOptions()
	if err := logger.Init(opts); err != nil {
		return nil, fmt.Errorf("config: logger: %w", err)
	}

	v, _ := c.validator()
	a, _ := c.allocator()
	h, _ := c.handler()

	prevAlloc := alloc.Install(a)
	prevHandler := guard.SetHandler(h)
	prevEnv := buffer.SetDefaultEnv(&buffer.Env{Validator: v, Policy: c.policy()})

	logger.Info("safemem configured",
		"guard", v.Guarded(),
		"allocator", fmt.Sprintf("%T", a),
		"handler", c.Handler,
	)
	logger.Debug("allocation policy",
		"min_allocation", c.policy().MinAllocation,
		"shrink_threshold_percent", c.policy().ShrinkThresholdPercent,
	)

	return func() {
		alloc.Install(prevAlloc)
		guard.SetHandler(prevHandler)
		buffer.SetDefaultEnv(prevEnv)
		logger.Reset()
	}, nil
}

func (c *Config) validator() (buffer.Validator, error) {
	switch c.Guard {
	case "":
		return buffer.DefaultValidator(), nil
	case "strict":
		return buffer.Strict, nil
	case "permissive":
		return buffer.Permissive, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGuard, c.Guard)
	}
}

func (c *Config) allocator() (alloc.Allocator, error) {
	switch c.Allocator {
	case "", "heap":
		return alloc.Heap{}, nil
	case "pages":
		return alloc.Pages{}, nil
	case "none":
		return alloc.None{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAllocator, c.Allocator)
	}
}

func (c *Config) handler() (guard.Handler, error) {
	switch c.Handler {
	case "", "exit":
		return guard.DefaultHandler, nil
	case "panic":
		return guard.PanicHandler, nil
	case "log":
		return guard.LogHandler, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHandler, c.Handler)
	}
}

func (c *Config) policy() alloc.Policy {
	return alloc.Policy{
		MinAllocation:          c.Policy.MinAllocation,
		ShrinkThresholdPercent: c.Policy.ShrinkThresholdPercent,
	}
}

func (c *Config) logOptions() (logger.Options, error) {
	level, ok := logger.ParseLevel(c.Log.Level)
	if !ok {
		return logger.Options{}, fmt.Errorf("%w: %q", ErrUnknownLogLevel, c.Log.Level)
	}
	opts := logger.Options{
		Enabled: !c.Log.Disabled,
		LogDir:  c.Log.Dir,
		Level:   level,
	}
	switch c.Log.Format {
	case "", "text":
	case "json":
		opts.JSON = true
	default:
		return logger.Options{}, fmt.Errorf("%w: %q", ErrUnknownLogFormat, c.Log.Format)
	}
	return opts, nil
}
