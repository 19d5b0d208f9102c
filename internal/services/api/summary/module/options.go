package module

import (
	"dltally/internal/platform/config"
	"dltally/internal/services/api/summary/service"
)

// Options holds configuration settings for the summary module
type Options struct {
	MaxWindowDays int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("DLT_API_")
	return Options{
		MaxWindowDays: c.MayInt("MAX_WINDOW_DAYS", service.DefaultMaxWindowDays),
	}
}
