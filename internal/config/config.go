package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"lenovo-report/lib/configutil"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseUrl   = "https://pcsupport.lenovo.com/us/en"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) lenovo-report/2.0"
	DefaultOutputDir = "Reports"
	DefaultTimeout   = 15 * time.Second
)

const envPrefix = "LENOVO_REPORT_"

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

func (c SmtpConfig) Configured() bool {
	return c.Server != "" && c.EmailAddress != ""
}

type Config struct {
	BaseUrl          string     `json:"base_url"`
	UserAgent        string     `json:"user_agent"`
	Country          string     `json:"country"`
	Language         string     `json:"language"`
	TimeoutSeconds   float64    `json:"timeout_seconds"`
	OutputDir        string     `json:"output_dir"`
	CloudflareBypass bool       `json:"cloudflare_bypass"`
	Smtp             SmtpConfig `json:"smtp"`
}

func Defaults() Config {
	return Config{
		BaseUrl:        DefaultBaseUrl,
		UserAgent:      DefaultUserAgent,
		Country:        "us",
		Language:       "en",
		TimeoutSeconds: DefaultTimeout.Seconds(),
		OutputDir:      DefaultOutputDir,
		Smtp: SmtpConfig{
			Port: 587,
		},
	}
}

func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// Load layers, from lowest to highest priority: defaults, `path` and its
// .local variant, then LENOVO_REPORT_* variables (a .env file in the working
// directory is loaded first). Missing files are fine.
func Load(path string) (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := configutil.Load(path, Defaults())
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	err = applyEnv(&cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	strs := []struct {
		name   string
		target *string
	}{
		{name: "BASE_URL", target: &cfg.BaseUrl},
		{name: "USER_AGENT", target: &cfg.UserAgent},
		{name: "OUTPUT_DIR", target: &cfg.OutputDir},
		{name: "SMTP_SERVER", target: &cfg.Smtp.Server},
		{name: "SMTP_EMAIL_ADDRESS", target: &cfg.Smtp.EmailAddress},
		{name: "SMTP_PASSWORD", target: &cfg.Smtp.Password},
	}
	for _, s := range strs {
		if v := os.Getenv(envPrefix + s.name); v != "" {
			*s.target = v
		}
	}

	if v := os.Getenv(envPrefix + "TIMEOUT_SECONDS"); v != "" {
		seconds, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT_SECONDS: %w", envPrefix, err)
		}
		cfg.TimeoutSeconds = seconds
	}
	if v := os.Getenv(envPrefix + "SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sSMTP_PORT: %w", envPrefix, err)
		}
		cfg.Smtp.Port = port
	}
	if v := os.Getenv(envPrefix + "CLOUDFLARE_BYPASS"); v != "" {
		bypass, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sCLOUDFLARE_BYPASS: %w", envPrefix, err)
		}
		cfg.CloudflareBypass = bypass
	}
	return nil
}
