package config

import (
	"fmt"
	"time"

	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/resilience"
	"github.com/kbukum/lazykit/validation"
)

// RuntimeConfig is the configuration of a lazykit program.
//
// Example config.yml:
//
//	name: lazykit
//	environment: development
//	logging:
//	  level: debug
//	  format: console
//	retry:
//	  max_attempts: 3
//	  initial_backoff: 10ms
//	cache:
//	  enabled: true
type RuntimeConfig struct {
	Name        string          `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string          `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Logging     logger.Config   `yaml:"logging" mapstructure:"logging"`
	Retry       RetrySettings   `yaml:"retry" mapstructure:"retry"`
	Cache       CacheSettings   `yaml:"cache" mapstructure:"cache"`
	Telemetry   TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// RetrySettings configures the retry combinator.
type RetrySettings struct {
	MaxAttempts    int           `yaml:"max_attempts" mapstructure:"max_attempts" validate:"gte=1"`
	InitialBackoff time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff" validate:"gte=0"`
	MaxBackoff     time.Duration `yaml:"max_backoff" mapstructure:"max_backoff" validate:"gte=0"`
	BackoffFactor  float64       `yaml:"backoff_factor" mapstructure:"backoff_factor" validate:"gte=1"`
	Jitter         float64       `yaml:"jitter" mapstructure:"jitter" validate:"gte=0,lte=1"`
}

// CacheSettings configures memoization.
type CacheSettings struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// TelemetryConfig configures metrics and tracing.
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled" mapstructure:"enabled"`
	ServiceName string  `yaml:"service_name" mapstructure:"service_name"`
	SampleRate  float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ApplyDefaults fills unset fields.
func (c *RuntimeConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Logging.ApplyDefaults()

	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.MaxBackoff == 0 {
		c.Retry.MaxBackoff = 10 * time.Second
	}
	if c.Retry.BackoffFactor == 0 {
		c.Retry.BackoffFactor = 2.0
	}

	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.Name
	}
	if c.Telemetry.SampleRate == 0 {
		c.Telemetry.SampleRate = 1.0
	}
}

// Validate checks the configuration. Call ApplyDefaults first.
func (c *RuntimeConfig) Validate() error {
	if err := validation.Validate("config", c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// ToRetryConfig converts the settings into a resilience.RetryConfig.
func (s RetrySettings) ToRetryConfig() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:    s.MaxAttempts,
		InitialBackoff: s.InitialBackoff,
		MaxBackoff:     s.MaxBackoff,
		BackoffFactor:  s.BackoffFactor,
		Jitter:         s.Jitter,
		RetryIf:        resilience.DefaultRetryIf,
	}
}
