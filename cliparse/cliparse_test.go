// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("ADMIN_KEY_SALT", "test-salt")
	os.Setenv("SLUG_SALT", "test-slug")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "postgres://test", "-admin-salt", "s1", "-slug-salt", "s2"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_DefaultPort(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("ADMIN_KEY_SALT", "s1")
	os.Setenv("SLUG_SALT", "s2")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
}

func TestParseFlags_MissingSecrets(t *testing.T) {
	os.Clearenv()

	tests := []struct {
		name string
		args []string
	}{
		{"no database url", []string{}},
		{"no admin salt", []string{"-d", "postgres://test"}},
		{"no slug salt", []string{"-d", "postgres://test", "-admin-salt", "s1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error for missing required config")
			}
		})
	}
}

func TestParseFlags_PushOptional(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("ADMIN_KEY_SALT", "s1")
	os.Setenv("SLUG_SALT", "s2")
	defer os.Clearenv()

	// Without VAPID keys: valid config, push unconfigured
	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PushConfigured() {
		t.Error("expected push to be unconfigured without VAPID keys")
	}

	// With both keys: configured
	os.Setenv("VAPID_PUBLIC_KEY", "pub")
	os.Setenv("VAPID_PRIVATE_KEY", "priv")
	cfg, err = ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.PushConfigured() {
		t.Error("expected push to be configured with both VAPID keys")
	}

	// With only the public key: still unconfigured
	os.Unsetenv("VAPID_PRIVATE_KEY")
	cfg, err = ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PushConfigured() {
		t.Error("expected push to be unconfigured with only a public key")
	}
}
