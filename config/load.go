package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "ACCOUNTS_"

// Load builds a Config from defaults, the YAML file named by -config or
// ACCOUNTS_CONFIG, the environment and finally args.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	fs, set, err := parseFlags(cfg, args)
	if err != nil {
		return nil, err
	}

	if err := loadDotEnv(set.envFile); err != nil {
		return nil, err
	}

	path := set.configFile
	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.LoadEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	// flags win over everything else, only the ones given explicitly
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := set.values[f.Name]; ok {
			apply(cfg)
		}
	})

	return cfg, nil
}

// LoadFile overlays the YAML document at path
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	return c.LoadYAML(f)
}

// LoadYAML overlays a YAML document, absent keys keep their current value
func (c *Config) LoadYAML(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config file: %w", err)
	}
	return nil
}

// LoadEnv overlays ACCOUNTS_* variables using lookup
func (c *Config) LoadEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	str("ADDRESS", &c.Address)
	str("DATABASE_DRIVER", &c.Database.Driver)
	str("DATABASE_DSN", &c.Database.DSN)
	str("SIGNING_KEY", &c.Auth.SigningKey)
	str("SIGNING_METHOD", &c.Auth.SigningMethod)
	str("ISSUER", &c.Auth.Issuer)
	str("JWKS_URL", &c.Auth.JWKSURL)
	str("CONTEXT_KEY", &c.Auth.ContextKey)
	str("TOKEN_LOOKUP", &c.Auth.TokenLookup)
	str("AUTH_SCHEME", &c.Auth.AuthScheme)

	if v, ok := lookup(EnvPrefix + "AUDIENCE"); ok {
		c.Auth.Audience = splitList(v)
	}

	if v, ok := lookup(EnvPrefix + "DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDEBUG: %w", EnvPrefix, err)
		}
		c.Debug = b
	}

	if v, ok := lookup(EnvPrefix + "MAX_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_LIMIT: %w", EnvPrefix, err)
		}
		c.Pagination.MaxLimit = n
	}

	if v, ok := lookup(EnvPrefix + "SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sSHUTDOWN_TIMEOUT: %w", EnvPrefix, err)
		}
		c.ShutdownTimeout = d
	}

	return nil
}

func loadDotEnv(path string) error {
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
