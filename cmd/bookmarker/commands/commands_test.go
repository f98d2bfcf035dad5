package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matttelliott/bookmarker-ai/internal/config"
	"github.com/matttelliott/bookmarker-ai/internal/events"
	"github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
	"github.com/matttelliott/bookmarker-ai/internal/statuslog"
)

// run parses args and runs the selected command with captured output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BOOKMARKER_CONFIG", "")

	var out bytes.Buffer
	cli := &CLI{}
	g := NewGlobal()
	g.Stdin = strings.NewReader(stdin)
	g.Stdout = &out
	g.Stderr = io.Discard

	parser, err := kong.New(cli,
		kong.Name("bookmarker"),
		kong.Vars{"version": "test"},
		kong.Bind(g),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	if err != nil {
		return out.String(), err
	}
	err = ctx.Run(g, cli)
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestValidate_ValidDocumentFromStdin(t *testing.T) {
	out, err := run(t, `{"name":"Golang"}`, "validate", "tag", "--variant", "create")
	require.NoError(t, err)
	assert.Contains(t, out, "tag create is valid")
	assert.Contains(t, out, `"name": "Golang"`)
}

func TestValidate_InvalidDocument(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "user.json")
	require.NoError(t, os.WriteFile(doc, []byte(`{"email":"nope","username":"ab"}`), 0o600))

	_, err := run(t, "", "validate", "user", doc, "--variant", "create")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "username")
}

func TestValidate_UnknownKind(t *testing.T) {
	_, err := run(t, "{}", "validate", "widget")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := run(t, "", "validate", "tag", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestValidate_RejectsUnknownVariant(t *testing.T) {
	_, err := run(t, "{}", "validate", "tag", "--variant", "replace")
	require.Error(t, err)
}

func TestInit_WritesConfigAndRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "", "init", "--output", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")
	assert.FileExists(t, filepath.Join(dir, DefaultConfigFile))

	_, err = run(t, "", "init", "--output", dir)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryAlreadyExists))

	_, err = run(t, "", "init", "--output", dir, "--force")
	require.NoError(t, err)
}

func TestHistory_RequiresStatusLogPath(t *testing.T) {
	_, err := run(t, "", "history")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestHistory_PrintsRecentTransitions(t *testing.T) {
	db := filepath.Join(t.TempDir(), "status.db")
	cfgPath := writeConfig(t, "version: \"1.0\"\nstatuslog:\n  path: "+db+"\n")

	store, err := statuslog.Open(db)
	require.NoError(t, err)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append(context.Background(), events.NewTransition(true, "bookmarker-api", "", base)))
	require.NoError(t, store.Append(context.Background(), events.NewTransition(false, "", "connection refused", base.Add(time.Minute))))
	require.NoError(t, store.Close())

	out, err := run(t, "", "--config", cfgPath, "history", "--json")
	require.NoError(t, err)

	var got []events.Transition
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.False(t, got[0].Connected)
	assert.Equal(t, "connection refused", got[0].Detail)
	assert.True(t, got[1].Connected)

	out, err = run(t, "", "--config", cfgPath, "history", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "disconnected")
	assert.NotContains(t, out, "bookmarker-api")
}

func TestWatchOnce_Connected(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"ok","timestamp":"2025-03-01T12:00:00.000Z","service":"bookmarker-api"}`)
	}))
	defer api.Close()

	out, err := run(t, "", "watch", "--once", "--url", api.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "API Connected")
	assert.Contains(t, out, "bookmarker-api")
}

func TestWatchOnce_Disconnected(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer api.Close()

	out, err := run(t, "", "watch", "--once", "--url", api.URL)
	require.Error(t, err)
	assert.Contains(t, out, "API Disconnected")
	assert.True(t, errors.HasCategory(err, errors.CategoryUpstream))
}

func TestWatch_ServesPollMetrics(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"status":"ok","timestamp":"2025-03-01T12:00:00.000Z","service":"bookmarker-api"}`)
	}))
	defer api.Close()

	cfg := config.Default()
	cfg.Monitoring.Metrics.Enabled = true
	g := NewGlobal()
	g.Stdout = io.Discard
	w := &WatchCmd{URL: api.URL, Interval: time.Hour, MetricsAddr: "127.0.0.1:0"}

	session, err := w.start(context.Background(), g, cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, session.stop(context.Background())) }()
	require.NotNil(t, session.metrics)

	scrape := func() string {
		resp, err := http.Get("http://" + session.metrics.Addr() + cfg.Monitoring.Metrics.Path)
		if err != nil {
			return ""
		}
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(resp.Body)
		return string(body)
	}
	require.Eventually(t, func() bool {
		return strings.Contains(scrape(), `bookmarker_api_connection_transitions_total{state="connected"} 1`)
	}, 5*time.Second, 20*time.Millisecond)

	body := scrape()
	assert.Contains(t, body, `bookmarker_health_poll_results_total{result="connected"} 1`)
	assert.Contains(t, body, "bookmarker_api_connected 1")
	assert.Contains(t, body, "bookmarker_health_poll_duration_seconds_count 1")
}

func TestWatch_NoMetricsListenerWhenDisabled(t *testing.T) {
	cfg := config.Default()
	g := NewGlobal()
	g.Stdout = io.Discard
	w := &WatchCmd{URL: "http://127.0.0.1:1", Interval: time.Hour, MetricsAddr: "127.0.0.1:0"}

	session, err := w.start(context.Background(), g, cfg)
	require.NoError(t, err)
	assert.Nil(t, session.metrics)
	assert.NoError(t, session.stop(context.Background()))
}

func TestServe_InvalidConfig(t *testing.T) {
	cfgPath := writeConfig(t, "version: \"0.9\"\n")
	_, err := run(t, "", "--config", cfgPath, "serve")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}
