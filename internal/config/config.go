// Package config handles loading and validation of service configuration.
// Supports both development (env vars) and production (Secret Manager
// backed APL) modes.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"offer-storefront/internal/model"
)

// APL backend kinds.
const (
	APLStatic        = "static"
	APLFile          = "file"
	APLSecretManager = "secretmanager"
)

// Config holds all service configuration.
type Config struct {
	// Server settings
	Port        string
	Environment string // "development" or "production"
	LogLevel    string // "debug", "info", "warn", "error"

	// Commerce backend settings
	APIURL  string // GraphQL endpoint
	Channel string // sales channel for checkouts

	// BackendTimeout bounds each backend round-trip. The upstream
	// transport default is otherwise unbounded, so this is explicit.
	BackendTimeout time.Duration

	// APL (credential store) settings
	APLKind    string // static, file, or secretmanager
	APLToken   string // static APL only
	APLFile    string // file APL only
	GCPProject string // secretmanager APL only

	// Buyer is the fixed identity checkouts are created under.
	Buyer model.Buyer
}

// DefaultBuyer returns the placeholder identity used when no buyer
// fields are configured.
// TODO: replace with buyer-supplied identity once the storefront
// captures email and shipping address at purchase time.
func DefaultBuyer() model.Buyer {
	address := model.Address{
		FirstName:      "John",
		LastName:       "Doe",
		StreetAddress1: "813 Howard Street",
		City:           "Oswego",
		CountryArea:    "NY",
		PostalCode:     "13126",
		Country:        "US",
	}
	return model.Buyer{
		Email:           "demo@saleor.io",
		BillingAddress:  address,
		ShippingAddress: address,
	}
}

// Load reads configuration from a file or the environment.
// Priority: CONFIG_FILE (if set) → ENV vars.
// Validates all required fields and returns an error if any are missing.
func Load() (*Config, error) {
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		return loadFromFile(configPath)
	}

	cfg := &Config{
		Port:           envOrDefault("PORT", "8080"),
		Environment:    envOrDefault("ENVIRONMENT", "development"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		APIURL:         os.Getenv("SALEOR_API_URL"),
		Channel:        envOrDefault("SALEOR_CHANNEL", "default-channel"),
		BackendTimeout: 30 * time.Second,
		APLKind:        envOrDefault("APL", APLStatic),
		APLToken:       os.Getenv("SALEOR_APP_TOKEN"),
		APLFile:        os.Getenv("APL_FILE"),
		GCPProject:     os.Getenv("GCP_PROJECT"),
		Buyer:          DefaultBuyer(),
	}

	if raw := os.Getenv("BACKEND_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid BACKEND_TIMEOUT_SECONDS: %q", raw)
		}
		cfg.BackendTimeout = time.Duration(seconds) * time.Second
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile reads all configuration from a JSON file.
// Used for local development to avoid multiple ENV vars.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fileConfig struct {
		Port                  string       `json:"port"`
		Environment           string       `json:"environment"`
		LogLevel              string       `json:"log_level"`
		APIURL                string       `json:"api_url"`
		Channel               string       `json:"channel"`
		BackendTimeoutSeconds int          `json:"backend_timeout_seconds"`
		APLKind               string       `json:"apl"`
		APLToken              string       `json:"apl_token"`
		APLFile               string       `json:"apl_file"`
		GCPProject            string       `json:"gcp_project"`
		Buyer                 *model.Buyer `json:"buyer"`
	}

	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg := &Config{
		Port:           withDefault(fileConfig.Port, "8080"),
		Environment:    withDefault(fileConfig.Environment, "development"),
		LogLevel:       withDefault(fileConfig.LogLevel, "info"),
		APIURL:         fileConfig.APIURL,
		Channel:        withDefault(fileConfig.Channel, "default-channel"),
		BackendTimeout: 30 * time.Second,
		APLKind:        withDefault(fileConfig.APLKind, APLStatic),
		APLToken:       fileConfig.APLToken,
		APLFile:        fileConfig.APLFile,
		GCPProject:     fileConfig.GCPProject,
		Buyer:          DefaultBuyer(),
	}
	if fileConfig.BackendTimeoutSeconds > 0 {
		cfg.BackendTimeout = time.Duration(fileConfig.BackendTimeoutSeconds) * time.Second
	}
	if fileConfig.Buyer != nil {
		cfg.Buyer = *fileConfig.Buyer
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that all required configuration fields are present.
func (c *Config) validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required (SALEOR_API_URL)")
	}
	if _, err := url.Parse(c.APIURL); err != nil {
		return fmt.Errorf("invalid api_url: %w", err)
	}
	if c.Channel == "" {
		return fmt.Errorf("channel is required")
	}

	switch c.APLKind {
	case APLStatic:
		if c.APLToken == "" {
			return fmt.Errorf("apl_token is required for static APL (SALEOR_APP_TOKEN)")
		}
	case APLFile:
		if c.APLFile == "" {
			return fmt.Errorf("apl_file is required for file APL")
		}
	case APLSecretManager:
		if c.GCPProject == "" {
			return fmt.Errorf("gcp_project is required for secretmanager APL")
		}
	default:
		return fmt.Errorf("unsupported APL kind: %s", c.APLKind)
	}

	if c.Buyer.Email == "" {
		return fmt.Errorf("buyer email is required")
	}
	return nil
}

// withDefault returns val if non-empty, otherwise defaultVal.
func withDefault(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}

// envOrDefault returns the environment variable value or the default if not set.
func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
