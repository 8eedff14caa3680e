package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ReportingConfig tunes the dashboard aggregates without a redeploy.
type ReportingConfig struct {
	LowStockThreshold float64 `mapstructure:"lowStockThreshold"`
	OutOfStockLevel   float64 `mapstructure:"outOfStockLevel"`
}

func DefaultReportingConfig() ReportingConfig {
	return ReportingConfig{
		LowStockThreshold: 10,
		OutOfStockLevel:   0,
	}
}

// ReportingConfigHolder serves the current reporting config and hot-reloads
// it when the backing file changes.
type ReportingConfigHolder struct {
	current atomic.Value // holds ReportingConfig
}

func NewReportingConfigHolder() (*ReportingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("reporting")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/backoffice")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultReportingConfig()
		v.SetDefault("reporting.lowStockThreshold", defaults.LowStockThreshold)
		v.SetDefault("reporting.outOfStockLevel", defaults.OutOfStockLevel)
	}

	var cfg ReportingConfig
	if err := v.UnmarshalKey("reporting", &cfg); err != nil {
		return nil, err
	}
	if err := validateReportingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ReportingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ReportingConfig
		if err := v.UnmarshalKey("reporting", &updated); err != nil {
			log.Printf("[reporting-config] reload failed: %v", err)
			return
		}
		if err := validateReportingConfig(updated); err != nil {
			log.Printf("[reporting-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[reporting-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// StaticReportingConfigHolder wraps a fixed config, mainly for tests.
func StaticReportingConfigHolder(cfg ReportingConfig) *ReportingConfigHolder {
	holder := &ReportingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *ReportingConfigHolder) Get() ReportingConfig {
	return h.current.Load().(ReportingConfig)
}

func validateReportingConfig(cfg ReportingConfig) error {
	if cfg.LowStockThreshold < cfg.OutOfStockLevel {
		return errors.New("reporting.lowStockThreshold must not be below reporting.outOfStockLevel")
	}
	return nil
}
