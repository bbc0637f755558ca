package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/tailscale/hujson"
)

// EnvPrefix namespaces the environment overrides, e.g. RECRUIT_APP_ADDR.
const EnvPrefix = "RECRUIT"

// Duration accepts "15s" style values from both the config file and the environment.
type Duration time.Duration

func (d *Duration) Decode(value string) error {
	v, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"15s\": %w", err)
	}
	return d.Decode(s)
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Env struct {
	AppAddr string `json:"appAddr" envconfig:"APP_ADDR"`
	GinMode string `json:"ginMode" envconfig:"GIN_MODE"`

	// APIURL is the backend REST root; AuthURL falls back to it.
	APIURL         string   `json:"apiUrl" envconfig:"API_URL"`
	AuthURL        string   `json:"authUrl" envconfig:"AUTH_URL"`
	RequestTimeout Duration `json:"requestTimeout" envconfig:"REQUEST_TIMEOUT"`
	ViewTimeout    Duration `json:"viewTimeout" envconfig:"VIEW_TIMEOUT"`

	// SessionDriver is one of memory, file, sqlite, mysql, postgres.
	SessionDriver string   `json:"sessionDriver" envconfig:"SESSION_DRIVER"`
	SessionDSN    string   `json:"sessionDsn" envconfig:"SESSION_DSN"`
	SessionFile   string   `json:"sessionFile" envconfig:"SESSION_FILE"`
	SessionIdle   Duration `json:"sessionIdle" envconfig:"SESSION_IDLE"`
	SweepInterval Duration `json:"sweepInterval" envconfig:"SWEEP_INTERVAL"`
	// SealKey turns on encryption of stored tokens.
	SealKey string `json:"sealKey" envconfig:"SEAL_KEY"`

	CookieName   string `json:"cookieName" envconfig:"COOKIE_NAME"`
	CookieSecure bool   `json:"cookieSecure" envconfig:"COOKIE_SECURE"`
	CookieMaxAge int    `json:"cookieMaxAge" envconfig:"COOKIE_MAX_AGE"`

	CORSOrigins []string `json:"corsOrigins" envconfig:"CORS_ORIGINS"`

	LogLevel  string `json:"logLevel" envconfig:"LOG_LEVEL"`
	LogPretty bool   `json:"logPretty" envconfig:"LOG_PRETTY"`
}

func Defaults() Env {
	return Env{
		AppAddr:        ":8080",
		APIURL:         "http://localhost:8081/api/v1",
		RequestTimeout: Duration(15 * time.Second),
		ViewTimeout:    Duration(30 * time.Second),
		SessionDriver:  "memory",
		SessionFile:    "sessions.json",
		SessionIdle:    Duration(30 * time.Minute),
		SweepInterval:  Duration(time.Minute),
		CookieName:     "recruit_sid",
		CookieMaxAge:   7 * 24 * 3600,
		LogLevel:       "info",
	}
}

// LoadEnv layers defaults, the optional JSONC file at path and RECRUIT_* variables.
// A missing file is not an error.
func LoadEnv(path string) (Env, error) {
	env := Defaults()
	if path = strings.TrimSpace(path); path != "" {
		if err := readFile(path, &env); err != nil {
			return Env{}, err
		}
	}
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Env{}, fmt.Errorf("read environment: %w", err)
	}
	env.SessionDriver = strings.ToLower(strings.TrimSpace(env.SessionDriver))
	if env.AuthURL == "" {
		env.AuthURL = env.APIURL
	}
	if env.APIURL == "" {
		return Env{}, errors.New("config: apiUrl is required")
	}
	return env, nil
}

func readFile(path string, env *Env) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	std, err := hujson.Standardize(raw)
	if err != nil {
		return fmt.Errorf("invalid JSONC in %s: %w", path, err)
	}
	if err := json.Unmarshal(std, env); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}
