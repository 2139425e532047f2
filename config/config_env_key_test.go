package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"microsoft": map[string]any{
			"clientSecret": "",
			"redirectUri":  "",
		},
		"session": map[string]any{
			"cookieName": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "MICROSOFT_CLIENTSECRET", want: "microsoft.clientSecret"},
		{envKey: "MICROSOFT_REDIRECTURI", want: "microsoft.redirectUri"},
		{envKey: "SESSION_COOKIENAME", want: "session.cookieName"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestScopeList(t *testing.T) {
	m := MicrosoftConfig{Scopes: "openid profile  email"}
	scopes := m.ScopeList()
	if len(scopes) != 3 {
		t.Fatalf("ScopeList() = %v, want 3 scopes", scopes)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Session.CookieName != defaultCookieName {
		t.Fatalf("cookie name default = %q", cfg.Session.CookieName)
	}
	if cfg.Session.TTL != defaultSessionTTL {
		t.Fatalf("session ttl default = %v", cfg.Session.TTL)
	}
	if cfg.Microsoft.Scopes != defaultScopes {
		t.Fatalf("scopes default = %q", cfg.Microsoft.Scopes)
	}
	if cfg.Static.AdminFile != defaultAdminFile {
		t.Fatalf("admin file default = %q", cfg.Static.AdminFile)
	}
}
