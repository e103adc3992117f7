package config

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment variable the tool reads.
const EnvPrefix = "MM"

// DefaultDownloadsMinAgeDays is how old an installer in Downloads must be
// before it is offered for deletion.
const DefaultDownloadsMinAgeDays = 30

// Settings are runtime knobs read from the environment. There is no
// configuration file.
type Settings struct {
	// Debug enables debug logging (MM_DEBUG).
	Debug bool

	// LogLevel is the logger level name (MM_LOG_LEVEL).
	LogLevel string

	// DownloadsMinAgeDays is the age threshold for old installers
	// (MM_DOWNLOADS_MIN_AGE_DAYS).
	DownloadsMinAgeDays int

	// NoColor disables styled output (MM_NO_COLOR or NO_COLOR).
	NoColor bool
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("downloads_min_age_days", DefaultDownloadsMinAgeDays)
	if err := v.BindEnv("no_color", EnvPrefix+"_NO_COLOR", "NO_COLOR"); err != nil {
		return Settings{}, errors.Wrap(err, "bind NO_COLOR")
	}

	s := Settings{
		Debug:               v.GetBool("debug"),
		LogLevel:            strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		DownloadsMinAgeDays: v.GetInt("downloads_min_age_days"),
		NoColor:             truthy(v.GetString("no_color")),
	}

	if s.DownloadsMinAgeDays < 0 {
		return Settings{}, errors.Newf("%s_DOWNLOADS_MIN_AGE_DAYS must not be negative, got %d",
			EnvPrefix, s.DownloadsMinAgeDays)
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return Settings{}, errors.Wrapf(err, "%s_LOG_LEVEL", EnvPrefix)
	}

	return s, nil
}

// Level returns the logger level implied by the settings. Debug wins over
// LogLevel.
func (s Settings) Level() log.Level {
	if s.Debug {
		return log.DebugLevel
	}
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// truthy follows the NO_COLOR convention: any non-empty value counts,
// except explicit negatives.
func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no":
		return false
	}
	return true
}
