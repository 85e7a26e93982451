package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/calpage/pkg/clock"
	"tableflip.dev/calpage/pkg/engine"
)

const defaultPath = "~/.calpage.db"

// Config is the user configuration shared by every command.
type Config interface {
	BasePath() string
	MinDate() string
	MaxDate() string
	FirstDayOfWeek() string
	Locale() string
	Timezone() string
}

// LoadConfig reads .calpage.yaml from $CALPAGE_CONFIG_PATH, the working
// directory or the home directory. CALPAGE_* environment variables override
// file values.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("min_date", "")
	v.SetDefault("max_date", "")
	v.SetDefault("first_day_of_week", "")
	v.SetDefault("locale", "")
	v.SetDefault("timezone", "")
	v.SetConfigName(".calpage") // .yaml is implicit
	v.SetEnvPrefix("CALPAGE")
	v.AutomaticEnv()

	if override := os.Getenv("CALPAGE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	return &fileConfig{
		Path:      path,
		Min:       v.GetString("min_date"),
		Max:       v.GetString("max_date"),
		FirstDay:  v.GetString("first_day_of_week"),
		LocaleTag: v.GetString("locale"),
		TZ:        v.GetString("timezone"),
	}, nil
}

type fileConfig struct {
	Path      string `json:"path"`
	Min       string `json:"min_date"`
	Max       string `json:"max_date"`
	FirstDay  string `json:"first_day_of_week"`
	LocaleTag string `json:"locale"`
	TZ        string `json:"timezone"`
}

func (f *fileConfig) BasePath() string       { return f.Path }
func (f *fileConfig) MinDate() string        { return f.Min }
func (f *fileConfig) MaxDate() string        { return f.Max }
func (f *fileConfig) FirstDayOfWeek() string { return f.FirstDay }
func (f *fileConfig) Locale() string         { return f.LocaleTag }
func (f *fileConfig) Timezone() string       { return f.TZ }

// EngineConfig resolves cfg into an engine configuration. An explicit first
// day of week wins over the one implied by the locale.
func EngineConfig(cfg Config) (engine.Config, error) {
	out := engine.Config{Location: time.UTC}
	if tz := strings.TrimSpace(cfg.Timezone()); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return out, fmt.Errorf("store: timezone %q: %w", tz, err)
		}
		out.Location = loc
	}

	firstDay, err := clock.FirstDayForLocale(cfg.Locale())
	if err != nil {
		return out, fmt.Errorf("store: %w", err)
	}
	if wd := strings.TrimSpace(cfg.FirstDayOfWeek()); wd != "" {
		if firstDay, err = clock.ParseWeekday(wd); err != nil {
			return out, fmt.Errorf("store: %w", err)
		}
	}
	out.FirstDayOfWeek = firstDay

	c := clock.New(out.Location, firstDay)
	if val := strings.TrimSpace(cfg.MinDate()); val != "" {
		d, err := c.Parse(val)
		if err != nil {
			return out, fmt.Errorf("store: min_date: %w", err)
		}
		out.MinDate = d.Time()
	}
	if val := strings.TrimSpace(cfg.MaxDate()); val != "" {
		d, err := c.Parse(val)
		if err != nil {
			return out, fmt.Errorf("store: max_date: %w", err)
		}
		out.MaxDate = d.Time()
	}
	return out, nil
}
