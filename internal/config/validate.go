package config

import (
	"fmt"
	"strings"
	"time"
)

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

const (
	minRefreshInterval = 500 * time.Millisecond
	maxRefreshInterval = time.Hour
	minCommandTimeout  = time.Second
	maxCommandTimeout  = 5 * time.Minute
	maxCPURetryDelay   = 10 * time.Second
	maxKillConcurrency = 64
)

// Validate checks the config and returns every problem found.
// Values that would break the monitor are clamped to safe bounds.
func (c *Config) Validate() []error {
	var errs []error

	if c.RefreshInterval < minRefreshInterval {
		errs = append(errs, fmt.Errorf("refresh_interval %s is below minimum %s, clamping", c.RefreshInterval, minRefreshInterval))
		c.RefreshInterval = minRefreshInterval
	} else if c.RefreshInterval > maxRefreshInterval {
		errs = append(errs, fmt.Errorf("refresh_interval %s exceeds maximum %s, clamping", c.RefreshInterval, maxRefreshInterval))
		c.RefreshInterval = maxRefreshInterval
	}

	// A sample interval under a second never yields a percentage.
	if c.SampleInterval < time.Second {
		errs = append(errs, fmt.Errorf("sample_interval %s is below minimum 1s, clamping", c.SampleInterval))
		c.SampleInterval = time.Second
	} else if c.SampleInterval > maxRefreshInterval {
		errs = append(errs, fmt.Errorf("sample_interval %s exceeds maximum %s, clamping", c.SampleInterval, maxRefreshInterval))
		c.SampleInterval = maxRefreshInterval
	}

	if c.CommandTimeout < minCommandTimeout {
		errs = append(errs, fmt.Errorf("command_timeout %s is below minimum %s, clamping", c.CommandTimeout, minCommandTimeout))
		c.CommandTimeout = minCommandTimeout
	} else if c.CommandTimeout > maxCommandTimeout {
		errs = append(errs, fmt.Errorf("command_timeout %s exceeds maximum %s, clamping", c.CommandTimeout, maxCommandTimeout))
		c.CommandTimeout = maxCommandTimeout
	}

	if c.CPURetryDelay < 0 {
		errs = append(errs, fmt.Errorf("cpu_retry_delay %s is negative, clamping", c.CPURetryDelay))
		c.CPURetryDelay = 0
	} else if c.CPURetryDelay > maxCPURetryDelay {
		errs = append(errs, fmt.Errorf("cpu_retry_delay %s exceeds maximum %s, clamping", c.CPURetryDelay, maxCPURetryDelay))
		c.CPURetryDelay = maxCPURetryDelay
	}

	if c.KillConcurrency < 1 {
		errs = append(errs, fmt.Errorf("kill_concurrency %d is below minimum 1, clamping", c.KillConcurrency))
		c.KillConcurrency = 1
	} else if c.KillConcurrency > maxKillConcurrency {
		errs = append(errs, fmt.Errorf("kill_concurrency %d exceeds maximum %d, clamping", c.KillConcurrency, maxKillConcurrency))
		c.KillConcurrency = maxKillConcurrency
	}

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("log_level %q is not one of debug, info, warn, error; using info", c.LogLevel))
		c.LogLevel = "info"
	}

	if !validLogFormats[strings.ToLower(c.LogFormat)] {
		errs = append(errs, fmt.Errorf("log_format %q is not console or json; using console", c.LogFormat))
		c.LogFormat = "console"
	}

	return errs
}
