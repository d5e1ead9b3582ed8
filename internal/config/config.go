package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration tukee "10m" muotoiset kestot yaml-tiedostossa
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std palauttaa keston time.Duration muodossa
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// Config sisältää monitorin asetukset
type Config struct {
	WebhookURL    string   `yaml:"webhook_url"`
	PollInterval  Duration `yaml:"poll_interval"`
	Timezone      string   `yaml:"timezone"`
	DataDir       string   `yaml:"data_dir"`
	Project       string   `yaml:"project"` // seurattavan compose-projektin nimi
	NotifyOnStart bool     `yaml:"notify_on_start"`
	DebugSince    string   `yaml:"debug_since"` // "2006-01-02", vain debug-käyttöön

	Sources SourceFlags `yaml:"sources"`

	location *time.Location
}

// SourceFlags kytkee yksittäiset lähteet päälle/pois
type SourceFlags struct {
	WeixinPay    *bool `yaml:"weixin_pay"`
	TencentCloud *bool `yaml:"tencent_cloud"`
	Yeepay       *bool `yaml:"yeepay"`
}

// Enabled tulkitsee puuttuvan lipun päällä olevaksi
func enabled(f *bool) bool { return f == nil || *f }

func (s SourceFlags) WeixinPayEnabled() bool    { return enabled(s.WeixinPay) }
func (s SourceFlags) TencentCloudEnabled() bool { return enabled(s.TencentCloud) }
func (s SourceFlags) YeepayEnabled() bool       { return enabled(s.Yeepay) }

// Default palauttaa oletusasetukset
func Default() Config {
	return Config{
		PollInterval: Duration(10 * time.Minute),
		Timezone:     "Asia/Shanghai",
	}
}

// Load lukee asetukset: oletukset -> yaml-tiedosto (jos on) -> ympäristömuuttujat.
// path saa olla tyhjä.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv ylikirjoittaa asetukset ympäristömuuttujilla
func (c *Config) applyEnv() {
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		c.WebhookURL = v
	}
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		// Sekunteja, kuten alkuperäisessä palvelussa
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.PollInterval = Duration(time.Duration(secs) * time.Second)
		}
	}
	if v := os.Getenv("TZ"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("ANNMON_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("ANNMON_PROJECT"); v != "" {
		c.Project = v
	}
	if v := os.Getenv("ANNMON_DEBUG_SINCE"); v != "" {
		c.DebugSince = v
	}
}

// Validate tarkistaa asetukset ja resolvoi aikavyöhykkeen
func (c *Config) Validate() error {
	if c.WebhookURL == "" {
		return fmt.Errorf("WEBHOOK_URL is required (set it in the environment or config file)")
	}
	if c.PollInterval.Std() < time.Minute {
		return fmt.Errorf("poll_interval %s is below the 1 minute minimum", c.PollInterval)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	c.location = loc

	if c.DebugSince != "" {
		if _, err := time.ParseInLocation("2006-01-02", c.DebugSince, loc); err != nil {
			return fmt.Errorf("invalid debug_since %q: %w", c.DebugSince, err)
		}
	}
	return nil
}

// ResolvedDataDir palauttaa datahakemiston, oletuksena ~/.annmon
func (c *Config) ResolvedDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".annmon"), nil
}

// Location palauttaa resolvatun aikavyöhykkeen. Validate pitää olla ajettu.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// DebugTime palauttaa debug-rajapäivän tai nollan jos ei asetettu
func (c *Config) DebugTime() time.Time {
	if c.DebugSince == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation("2006-01-02", c.DebugSince, c.Location())
	if err != nil {
		return time.Time{}
	}
	return t
}
