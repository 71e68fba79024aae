package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	AdminKeySalt string
	SlugSalt     string

	// Web push transport credentials. Optional: when the keypair is absent
	// push delivery degrades to a no-op rather than failing startup.
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubscriber string
}

// PushConfigured reports whether the web push keypair is present.
func (c Config) PushConfigured() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("chasing-cats", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.SlugSalt, "slug-salt", "", "Challenge slug salt (prefer env)")

	// Push transport (optional, env only would be fine but CLI helps dev)
	fs.StringVar(&cfg.VAPIDPublicKey, "vapid-public", "", "VAPID public key (prefer env)")
	fs.StringVar(&cfg.VAPIDPrivateKey, "vapid-private", "", "VAPID private key (prefer env)")
	fs.StringVar(&cfg.VAPIDSubscriber, "vapid-subscriber", "", "VAPID subscriber contact (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.SlugSalt == "" {
		cfg.SlugSalt = os.Getenv("SLUG_SALT")
	}
	if cfg.SlugSalt == "" {
		return Config{}, errors.New("SLUG_SALT required")
	}

	// Push credentials - optional, absence means degraded (no-op) delivery
	if cfg.VAPIDPublicKey == "" {
		cfg.VAPIDPublicKey = os.Getenv("VAPID_PUBLIC_KEY")
	}
	if cfg.VAPIDPrivateKey == "" {
		cfg.VAPIDPrivateKey = os.Getenv("VAPID_PRIVATE_KEY")
	}
	if cfg.VAPIDSubscriber == "" {
		cfg.VAPIDSubscriber = os.Getenv("VAPID_SUBSCRIBER")
	}

	return cfg, nil
}
