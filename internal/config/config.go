// Package config loads ~/.attendance/config.toml and ATT_* environment
// overrides into typed settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".attendance"
	envPrefix  = "ATT"

	DefaultTimezone        = "America/Argentina/Buenos_Aires"
	DefaultRecorderRef     = "attendance/recorder_webhook"
	DefaultNotifyRef       = "attendance/notify_webhook"
	DefaultListenAddr      = "127.0.0.1:8080"
	defaultRecorderTimeout = 10 * time.Second
	defaultBreakTTL        = 16 * time.Hour
)

type Settings struct {
	Dir          string
	SchedulePath string
	Timezone     string
	Policy       domain.Policy
	NetRate      float64
	Recorder     RecorderSettings
	Notify       NotifySettings
	Server       ServerSettings
	Breaks       BreakSettings
	Log          LogSettings
}

type RecorderSettings struct {
	URL       string
	SecretRef string
	Timeout   time.Duration
	Attempts  uint
	Backoff   time.Duration
}

type NotifySettings struct {
	URL       string
	SecretRef string
}

type ServerSettings struct {
	Listen      string
	CORSOrigins []string
}

type BreakSettings struct {
	TTL time.Duration
}

type LogSettings struct {
	Level  string
	Format string
}

// Location resolves Timezone; Load has already checked it.
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// New returns a viper instance bound to the config directory under home,
// with defaults and ATT_ environment overrides. A missing file is fine.
func New(home string) (*viper.Viper, error) {
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
	}
	dir := filepath.Join(home, configDir)

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return v, nil
}

func setDefaults(v *viper.Viper, dir string) {
	policy := domain.DefaultPolicy()

	v.SetDefault("config.dir", dir)
	v.SetDefault("schedule.path", filepath.Join(dir, "schedule.toml"))
	v.SetDefault("timezone", DefaultTimezone)
	v.SetDefault("policy.login_tolerance", policy.LoginTolerance)
	v.SetDefault("policy.logout_tolerance", policy.LogoutTolerance)
	v.SetDefault("policy.early_window", policy.EarlyWindow)
	v.SetDefault("policy.break_allowance", policy.BreakAllowance)
	v.SetDefault("policy.break_tolerance", policy.BreakTolerance)
	v.SetDefault("sale.net_rate", domain.DefaultNetRate)
	v.SetDefault("recorder.url", "")
	v.SetDefault("recorder.secret_ref", DefaultRecorderRef)
	v.SetDefault("recorder.timeout", defaultRecorderTimeout)
	v.SetDefault("recorder.attempts", 2)
	v.SetDefault("recorder.backoff", time.Second)
	v.SetDefault("notify.url", "")
	v.SetDefault("notify.secret_ref", DefaultNotifyRef)
	v.SetDefault("server.listen", DefaultListenAddr)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("breaks.ttl", defaultBreakTTL)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads typed settings and rejects values the engine cannot run with.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		Dir:          v.GetString("config.dir"),
		SchedulePath: v.GetString("schedule.path"),
		Timezone:     strings.TrimSpace(v.GetString("timezone")),
		Policy: domain.Policy{
			LoginTolerance:  v.GetInt("policy.login_tolerance"),
			LogoutTolerance: v.GetInt("policy.logout_tolerance"),
			EarlyWindow:     v.GetInt("policy.early_window"),
			BreakAllowance:  v.GetInt("policy.break_allowance"),
			BreakTolerance:  v.GetInt("policy.break_tolerance"),
		},
		NetRate: v.GetFloat64("sale.net_rate"),
		Recorder: RecorderSettings{
			URL:       strings.TrimSpace(v.GetString("recorder.url")),
			SecretRef: strings.TrimSpace(v.GetString("recorder.secret_ref")),
			Timeout:   v.GetDuration("recorder.timeout"),
			Attempts:  v.GetUint("recorder.attempts"),
			Backoff:   v.GetDuration("recorder.backoff"),
		},
		Notify: NotifySettings{
			URL:       strings.TrimSpace(v.GetString("notify.url")),
			SecretRef: strings.TrimSpace(v.GetString("notify.secret_ref")),
		},
		Server: ServerSettings{
			Listen:      v.GetString("server.listen"),
			CORSOrigins: v.GetStringSlice("server.cors_origins"),
		},
		Breaks: BreakSettings{TTL: v.GetDuration("breaks.ttl")},
		Log: LogSettings{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	var errs []error

	if s.SchedulePath == "" {
		errs = append(errs, errors.New("schedule.path is empty"))
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil || s.Timezone == "" {
		errs = append(errs, fmt.Errorf("timezone %q is not a known IANA zone", s.Timezone))
	}
	if err := s.Policy.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("policy: %w", err))
	}
	if s.NetRate <= 0 || s.NetRate > 1 {
		errs = append(errs, fmt.Errorf("sale.net_rate must be in (0, 1], got %v", s.NetRate))
	}
	if s.Recorder.Timeout <= 0 {
		errs = append(errs, errors.New("recorder.timeout must be positive"))
	}
	if s.Recorder.Attempts == 0 {
		errs = append(errs, errors.New("recorder.attempts must be at least 1"))
	}
	if s.Recorder.Backoff < 0 {
		errs = append(errs, errors.New("recorder.backoff must not be negative"))
	}
	if s.Breaks.TTL <= 0 {
		errs = append(errs, errors.New("breaks.ttl must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
