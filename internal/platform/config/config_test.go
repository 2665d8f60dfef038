package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Environment != "local" {
		t.Errorf("expected default environment local, got %s", cfg.Environment)
	}
	if cfg.Site.BaseURL != defaultSiteBaseURL {
		t.Errorf("expected default base url, got %s", cfg.Site.BaseURL)
	}
	if cfg.RateLimits.AdminWritesPerMinute != defaultAdminWritesPerMin {
		t.Errorf("unexpected default admin write limit: %d", cfg.RateLimits.AdminWritesPerMinute)
	}
	if cfg.Bake.IndexPath != defaultBakeIndexPath {
		t.Errorf("unexpected default bake index path: %s", cfg.Bake.IndexPath)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"SITE_API_ENVIRONMENT":             "Staging",
		"SITE_API_PORT":                    "9090",
		"SITE_API_READ_TIMEOUT":            "20s",
		"SITE_API_WRITE_TIMEOUT":           "25s",
		"SITE_API_IDLE_TIMEOUT":            "2m",
		"SITE_API_FIRESTORE_PROJECT_ID":    "gt-prod",
		"SITE_API_FIRESTORE_EMULATOR_HOST": "localhost:8085",
		"SITE_API_RATELIMIT_ADMIN_PER_MIN": "30",
		"SITE_BASE_URL":                    "https://www.grouptherapyeg.com/",
		"SITE_BAKE_INDEX_PATH":             "build/index.html",
		"SITE_BAKE_SETTINGS_CACHE":         "/tmp/seo-settings.json",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("expected lowercased environment, got %s", cfg.Environment)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("unexpected port: %s", cfg.Server.Port)
	}
	if cfg.Server.WriteTimeout != 25*time.Second {
		t.Errorf("unexpected write timeout: %s", cfg.Server.WriteTimeout)
	}
	if cfg.Firestore.ProjectID != "gt-prod" {
		t.Errorf("unexpected firestore project: %s", cfg.Firestore.ProjectID)
	}
	if cfg.Firestore.EmulatorHost != "localhost:8085" {
		t.Errorf("unexpected emulator host: %s", cfg.Firestore.EmulatorHost)
	}
	if cfg.RateLimits.AdminWritesPerMinute != 30 {
		t.Errorf("unexpected admin write limit: %d", cfg.RateLimits.AdminWritesPerMinute)
	}
	if cfg.Site.BaseURL != "https://www.grouptherapyeg.com" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Site.BaseURL)
	}
	if cfg.Bake.IndexPath != "build/index.html" {
		t.Errorf("unexpected bake index path: %s", cfg.Bake.IndexPath)
	}
}

func TestBaseURLPrecedence(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "SITE_BASE_URL wins",
			env: map[string]string{
				"SITE_BASE_URL":   "https://one.example.com",
				"PUBLIC_SITE_URL": "https://two.example.com",
				"URL":             "https://three.example.com",
			},
			want: "https://one.example.com",
		},
		{
			name: "PUBLIC_SITE_URL next",
			env: map[string]string{
				"PUBLIC_SITE_URL": "https://two.example.com",
				"URL":             "https://three.example.com",
			},
			want: "https://two.example.com",
		},
		{
			name: "URL last",
			env: map[string]string{
				"URL": "https://three.example.com/",
			},
			want: "https://three.example.com",
		},
		{
			name: "blank values skipped",
			env: map[string]string{
				"SITE_BASE_URL": "   ",
				"URL":           "https://three.example.com",
			},
			want: "https://three.example.com",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(WithEnvMap(tc.env), WithoutSystemEnv(), WithEnvFile(""))
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if cfg.Site.BaseURL != tc.want {
				t.Errorf("expected base url %s, got %s", tc.want, cfg.Site.BaseURL)
			}
		})
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	contents := "# local overrides\nexport SITE_API_PORT=7070\nSITE_BASE_URL=\"http://localhost:3000\"\n"
	if err := os.WriteFile(envFile, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed writing env file: %v", err)
	}

	cfg, err := Load(WithoutSystemEnv(), WithEnvFile(envFile))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("expected dotenv port 7070, got %s", cfg.Server.Port)
	}
	if cfg.Site.BaseURL != "http://localhost:3000" {
		t.Errorf("expected dotenv base url, got %s", cfg.Site.BaseURL)
	}
}

func TestEnvMapBeatsDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("SITE_API_PORT=7070\n"), 0o600); err != nil {
		t.Fatalf("failed writing env file: %v", err)
	}

	cfg, err := Load(
		WithEnvMap(map[string]string{"SITE_API_PORT": "6060"}),
		WithoutSystemEnv(),
		WithEnvFile(envFile),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "6060" {
		t.Errorf("expected explicit map to win, got %s", cfg.Server.Port)
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"SITE_BASE_URL":                    "www.grouptherapyeg.com",
		"SITE_API_RATELIMIT_ADMIN_PER_MIN": "0",
	}

	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	fields := validationErr.Fields()
	if len(fields) != 2 {
		t.Fatalf("expected two failing fields, got %v", fields)
	}
}
