package config

import (
	"flag"
	"io"
)

type flagSet struct {
	configFile string
	envFile    string
	values     map[string]func(*Config)
}

// parseFlags parses args into a detached set of values. They are applied
// by Load once the file and environment layers are in place.
//
//	-config string   YAML config file
//	-env string      dotenv file
//	-a string        listen address
//	-driver string   database driver, sqlite or postgres
//	-d string        database DSN
//	-s string        JWT HMAC signing key
//	-jwks string     JWK Set URL
//	-debug           verbose logging
func parseFlags(cfg *Config, args []string) (*flag.FlagSet, *flagSet, error) {
	fs := flag.NewFlagSet("accounts", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	set := &flagSet{values: map[string]func(*Config){}}

	fs.StringVar(&set.configFile, "config", "", "YAML config file")
	fs.StringVar(&set.envFile, "env", "", "dotenv file")

	address := fs.String("a", cfg.Address, "address and port to run server")
	driver := fs.String("driver", cfg.Database.Driver, "database driver")
	dsn := fs.String("d", cfg.Database.DSN, "database DSN")
	key := fs.String("s", cfg.Auth.SigningKey, "JWT signing key")
	jwks := fs.String("jwks", cfg.Auth.JWKSURL, "JWK Set URL")
	debug := fs.Bool("debug", cfg.Debug, "debug logging")
	maxLimit := fs.Int("max-limit", cfg.Pagination.MaxLimit, "largest page size")

	set.values["a"] = func(c *Config) { c.Address = *address }
	set.values["driver"] = func(c *Config) { c.Database.Driver = *driver }
	set.values["d"] = func(c *Config) { c.Database.DSN = *dsn }
	set.values["s"] = func(c *Config) { c.Auth.SigningKey = *key }
	set.values["jwks"] = func(c *Config) { c.Auth.JWKSURL = *jwks }
	set.values["debug"] = func(c *Config) { c.Debug = *debug }
	set.values["max-limit"] = func(c *Config) { c.Pagination.MaxLimit = *maxLimit }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return fs, set, nil
}
