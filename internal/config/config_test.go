package config

import (
	"testing"
	"time"
)

func TestBackendURL(t *testing.T) {
	tests := []struct {
		name     string
		public   string
		internal string
		want     string
	}{
		{"prefere interna", "https://api.exemplo/", "http://api:3000/", "http://api:3000/"},
		{"usa publica", "https://api.exemplo", "", "https://api.exemplo/"},
		{"vazia", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{APIURL: tt.public, InternalAPIURL: tt.internal}
			if got := c.BackendURL(); got != tt.want {
				t.Errorf("BackendURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPath(t *testing.T) {
	c := &Config{BasePath: normalizeBasePath("agendamento/")}

	if c.BasePath != "/agendamento" {
		t.Fatalf("BasePath = %q", c.BasePath)
	}
	if got := c.Path("/"); got != "/agendamento/" {
		t.Errorf("Path(/) = %q", got)
	}
	if got := c.Path("login"); got != "/agendamento/login" {
		t.Errorf("Path(login) = %q", got)
	}

	root := &Config{BasePath: normalizeBasePath("/")}
	if got := root.Path("/"); got != "/" {
		t.Errorf("root Path(/) = %q", got)
	}
	if got := root.Path("/dashboard"); got != "/dashboard" {
		t.Errorf("root Path(/dashboard) = %q", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("API_TIMEOUT", "30")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.gov.br, ,https://b.gov.br")
	t.Setenv("APP_ENV", "development")
	t.Setenv("SESSION_SECRET", "")

	c := Load()

	if c.Addr() != ":9090" {
		t.Errorf("Addr() = %q", c.Addr())
	}
	if c.APITimeout != 30*time.Second {
		t.Errorf("APITimeout = %s", c.APITimeout)
	}
	if c.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %s", c.CacheTTL)
	}
	if len(c.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v", c.AllowedOrigins)
	}
	if c.SessionSecret == "" {
		t.Error("dev deve ter SESSION_SECRET padrão")
	}
}
