package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func chdir(t testing.TB, dir string) {
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	err = os.Chdir(dir)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Chdir(prev)
	})
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("lenovo-report.json5")
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
	require.Equal(t, 15*time.Second, cfg.Timeout())
}

func TestLoadMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, filepath.Join(dir, "lenovo-report.json5"), `{
		// comments are allowed
		output_dir: "out",
		timeout_seconds: 30,
		smtp: { server: "smtp.example.com", email_address: "it@example.com" },
	}`)
	writeFile(t, filepath.Join(dir, "lenovo-report.local.json5"), `{
		output_dir: "local-out",
		smtp: { password: "hunter2" },
	}`)

	cfg, err := Load(filepath.Join(dir, "lenovo-report.json5"))
	require.NoError(t, err)

	require.Equal(t, "local-out", cfg.OutputDir)
	require.Equal(t, 30*time.Second, cfg.Timeout())
	require.Equal(t, DefaultBaseUrl, cfg.BaseUrl)
	require.Equal(t, "smtp.example.com", cfg.Smtp.Server)
	require.Equal(t, "hunter2", cfg.Smtp.Password)
	require.Equal(t, 587, cfg.Smtp.Port)
	require.True(t, cfg.Smtp.Configured())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, filepath.Join(dir, ".env"), "LENOVO_REPORT_SMTP_PORT=2525\n")
	// godotenv sets the variable on the process
	t.Cleanup(func() {
		os.Unsetenv("LENOVO_REPORT_SMTP_PORT")
	})
	t.Setenv("LENOVO_REPORT_BASE_URL", "http://127.0.0.1:9999/us/en")
	t.Setenv("LENOVO_REPORT_TIMEOUT_SECONDS", "2.5")
	t.Setenv("LENOVO_REPORT_CLOUDFLARE_BYPASS", "true")

	cfg, err := Load("lenovo-report.json5")
	require.NoError(t, err)

	require.Equal(t, "http://127.0.0.1:9999/us/en", cfg.BaseUrl)
	require.Equal(t, 2500*time.Millisecond, cfg.Timeout())
	require.Equal(t, 2525, cfg.Smtp.Port)
	require.True(t, cfg.CloudflareBypass)
}

func TestLoadRejectsBadEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LENOVO_REPORT_TIMEOUT_SECONDS", "soon")

	_, err := Load("lenovo-report.json5")
	require.Error(t, err)
}
