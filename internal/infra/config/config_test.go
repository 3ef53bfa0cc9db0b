package config

import (
	"strings"
	"testing"
)

func TestValidateSecrets(t *testing.T) {
	cases := []struct {
		name    string
		env     string
		session string
		token   string
		wantErr string
	}{
		{"distinct secrets pass", "production", "session-key", "token-key", ""},
		{"empty secrets allowed in development", "development", "", "", ""},
		{"empty session secret rejected in production", "production", "", "token-key", "session.secret is required"},
		{"empty token secret rejected in production", "production", "session-key", "", "token.secret is required"},
		{"shared secret rejected", "development", "shared-key", "shared-key", "must differ"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &AppConfig{}
			cfg.App.Env = tc.env
			cfg.Session.Secret = tc.session
			cfg.Token.Secret = tc.token

			err := validateSecrets(cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("REVIEWS_APP_ENV", "production")
	t.Setenv("REVIEWS_SESSION_SECRET", "")
	t.Setenv("REVIEWS_TOKEN_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected Load to reject production config with empty secrets")
	}

	t.Setenv("REVIEWS_SESSION_SECRET", "session-key")
	t.Setenv("REVIEWS_TOKEN_SECRET", "token-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Session.Secret != "session-key" || cfg.Token.Secret != "token-key" {
		t.Fatalf("unexpected secrets: %q %q", cfg.Session.Secret, cfg.Token.Secret)
	}
}
