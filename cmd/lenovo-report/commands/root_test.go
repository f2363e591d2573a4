package commands

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"lenovo-report/internal/components/chrono"
	"lenovo-report/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

const ibaseResponse = `{
	"Data": {
		"warrantyStatus": "In Warranty",
		"machineInfo": {
			"productName": "ThinkPad T14 Gen 2 Laptop - Type 20W0",
			"serial": "PF2V08GA",
			"type": "20W0",
			"product": "20W0005AUS",
			"model": "005AUS",
			"subSeries": "ThinkPad-T14-Gen2",
			"specification": "<tr><td>Processor</td><td>Intel Core i7</td></tr>"
		},
		"currentWarranty": {"name": "Depot", "startDate": "2021-06-01", "endDate": "2099-06-01"}
	}
}`

type testEnv struct {
	srv    *httptest.Server
	hits   *atomic.Int64
	dir    string
	config string
}

func newTestEnv(t *testing.T, handler http.HandlerFunc) testEnv {
	t.Helper()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "lenovo-report.json5")
	contents := fmt.Sprintf(`{
		// test server
		base_url: %q,
		output_dir: %q,
	}`, srv.URL+"/us/en", filepath.Join(dir, "Reports"))
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0644))

	return testEnv{srv: srv, hits: &hits, dir: dir, config: configPath}
}

func respondWith(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (e testEnv) run(t *testing.T, stdin string, args ...string) (string, int) {
	t.Helper()

	cmd := newRootCmd(environment{
		clock: chrono.FixedTime{At: time.Date(2026, time.October, 19, 14, 30, 5, 0, time.UTC)},
		tel:   &telemetry.Recorder{},
	})
	var out bytes.Buffer
	cmd.SetArgs(append([]string{"--config", e.config, "--no-color"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	code := execute(context.Background(), cmd)
	return out.String(), code
}

func (e testEnv) reports(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

const savedName = "PF2V08GA_ThinkPad_T14_Gen_2-20261019-143005.txt"

func TestAutosave(t *testing.T) {
	env := newTestEnv(t, respondWith(http.StatusOK, ibaseResponse))

	out, code := env.run(t, "", "-s", "pf2v-08ga", "--autosave")
	require.Equal(t, exitOk, code, out)
	require.Contains(t, out, "Report: PF2V08GA [19-OCT-26]")
	require.Contains(t, out, "Saved: ")
	require.NotContains(t, out, "Report Action:")

	reportsDir := filepath.Join(env.dir, "Reports")
	require.Equal(t, []string{savedName}, env.reports(t, reportsDir))

	saved, err := os.ReadFile(filepath.Join(reportsDir, savedName))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(saved), "=== Report: PF2V08GA - 19-OCT-26 - ===\nThinkPad T14 Gen 2\n"))
	require.Contains(t, string(saved), "Processor         : Intel Core i7")
}

func TestOutDirFlag(t *testing.T) {
	env := newTestEnv(t, respondWith(http.StatusOK, ibaseResponse))
	outDir := filepath.Join(env.dir, "elsewhere")

	out, code := env.run(t, "", "-s", "PF2V08GA", "--autosave", "--out-dir", outDir)
	require.Equal(t, exitOk, code, out)
	require.Equal(t, []string{savedName}, env.reports(t, outDir))
	require.Empty(t, env.reports(t, filepath.Join(env.dir, "Reports")))
}

func TestMenu(t *testing.T) {
	t.Run("prompted serial then quit", func(t *testing.T) {
		env := newTestEnv(t, respondWith(http.StatusOK, ibaseResponse))

		out, code := env.run(t, "pf2v08ga\n2\n")
		require.Equal(t, exitOk, code, out)
		require.Contains(t, out, "Input the Serial:")
		require.Contains(t, out, "Report Action:")
		require.Contains(t, out, "No action taken. Exiting.")
		require.Empty(t, env.reports(t, filepath.Join(env.dir, "Reports")))
	})

	t.Run("save is the default", func(t *testing.T) {
		env := newTestEnv(t, respondWith(http.StatusOK, ibaseResponse))

		out, code := env.run(t, "\n", "-s", "PF2V08GA")
		require.Equal(t, exitOk, code, out)
		require.Contains(t, out, "Saved: ")
		require.Equal(t, []string{savedName}, env.reports(t, filepath.Join(env.dir, "Reports")))
	})
}

func TestNoSerial(t *testing.T) {
	env := newTestEnv(t, respondWith(http.StatusOK, ibaseResponse))

	out, code := env.run(t, "\n")
	require.Equal(t, exitNoSerial, code)
	require.Contains(t, out, "serial is required")

	out, code = env.run(t, "", "-s", " -- ")
	require.Equal(t, exitNoSerial, code)
	require.Contains(t, out, "serial is required")

	require.Zero(t, env.hits.Load())
}

func TestLookupFailures(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		env := newTestEnv(t, respondWith(http.StatusBadGateway, `{}`))

		out, code := env.run(t, "", "-s", "PF2V08GA", "--autosave")
		require.Equal(t, exitFailure, code)
		require.Contains(t, out, "HTTP ERROR:")
		require.Contains(t, out, "502")
		require.Empty(t, env.reports(t, filepath.Join(env.dir, "Reports")))
	})

	t.Run("timeout", func(t *testing.T) {
		env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})

		out, code := env.run(t, "", "-s", "PF2V08GA", "--autosave", "--timeout", "0.05")
		require.Equal(t, exitFailure, code)
		require.Contains(t, out, "HTTP ERROR:")
	})

	t.Run("malformed", func(t *testing.T) {
		env := newTestEnv(t, respondWith(http.StatusOK, `[1]`))

		out, code := env.run(t, "", "-s", "PF2V08GA", "--autosave")
		require.Equal(t, exitFailure, code)
		require.Contains(t, out, "ERROR: malformed lenovo api response")
	})
}

func TestMailToNeedsSmtp(t *testing.T) {
	env := newTestEnv(t, respondWith(http.StatusOK, ibaseResponse))

	out, code := env.run(t, "", "-s", "PF2V08GA", "--autosave", "--mail-to", "it@example.com")
	require.Equal(t, exitFailure, code)
	require.Contains(t, out, "smtp")
	require.Zero(t, env.hits.Load())
}

func TestUnreadableConfig(t *testing.T) {
	env := newTestEnv(t, respondWith(http.StatusOK, ibaseResponse))
	require.NoError(t, os.WriteFile(env.config, []byte("{ base_url: "), 0644))

	_, code := env.run(t, "", "-s", "PF2V08GA", "--autosave")
	require.Equal(t, exitFailure, code)
	require.Zero(t, env.hits.Load())
}
