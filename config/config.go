// Package config loads matcher settings from defaults, an optional YAML file
// and FACESIM_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/patrikhermansson/facesim/core"
	"github.com/patrikhermansson/facesim/match"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	MetricEnv          = "FACESIM_METRIC"
	L2ThresholdEnv     = "FACESIM_L2_THRESHOLD"
	CosineThresholdEnv = "FACESIM_COSINE_THRESHOLD"
	WorkersEnv         = "FACESIM_WORKERS"
	PolicyEnv          = "FACESIM_POLICY"
)

// Config holds the settings shared by the command-line tools.
type Config struct {
	Metric          string  `yaml:"metric"`
	L2Threshold     float64 `yaml:"l2_threshold"`
	CosineThreshold float64 `yaml:"cosine_threshold"`
	Workers         int     `yaml:"workers"`
	Threads         int     `yaml:"threads"`
	Policy          string  `yaml:"policy"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Metric:          string(core.MetricL2),
		L2Threshold:     match.DefaultL2Threshold,
		CosineThreshold: match.DefaultCosineThreshold,
		Workers:         1,
		Threads:         1,
		Policy:          core.PolicyStrict.String(),
	}
}

// Load builds a Config from the defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		log.Info().Msgf("Loading config file: %s", path)
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides fields from FACESIM_* variables. Values that fail to
// parse are logged and ignored.
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(MetricEnv)); v != "" {
		c.Metric = v
	}
	if v := strings.TrimSpace(os.Getenv(PolicyEnv)); v != "" {
		c.Policy = v
	}
	envFloat(L2ThresholdEnv, &c.L2Threshold)
	envFloat(CosineThresholdEnv, &c.CosineThreshold)
	if v := os.Getenv(WorkersEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		} else {
			log.Warn().Msgf("Failed to parse %s value: %s", WorkersEnv, v)
		}
	}
}

func envFloat(name string, dst *float64) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		log.Warn().Msgf("Failed to parse %s value: %s", name, v)
		return
	}
	*dst = f
}

// Validate checks that the metric and policy names are known.
func (c Config) Validate() error {
	if _, err := core.ParseMetric(c.Metric); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := core.ParsePolicy(c.Policy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Matcher builds a match.Matcher from the configuration.
func (c Config) Matcher() (*match.Matcher, error) {
	metric, err := core.ParseMetric(c.Metric)
	if err != nil {
		return nil, err
	}
	policy, err := core.ParsePolicy(c.Policy)
	if err != nil {
		return nil, err
	}
	m := match.NewMatcher(metric)
	m.Kernel = core.Kernel{Policy: policy}
	m.Workers = c.Workers
	if metric == core.MetricCosine {
		m.Threshold = c.CosineThreshold
	} else {
		m.Threshold = c.L2Threshold
	}
	return m, nil
}
