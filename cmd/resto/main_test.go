package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/resto/internal/cli"
	"github.com/studiowebux/resto/internal/types"
)

// run executes the root command with args in an isolated home directory.
func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	sendFlags = cli.SendOptions{}
	curlFlags = cli.CurlOptions{Format: "http"}
	historyFlags = cli.HistoryOptions{Limit: 50}
	historyPick = false
	showOutput = ""
	versionCheck = false
	keybindsInit = false
	flagConfig = ""
	flagDebug = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(bytes.NewReader(nil))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandTree(t *testing.T) {
	for _, name := range []string{"send", "curl", "history", "version", "keybinds"} {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
	for _, name := range []string{"show", "delete", "clear"} {
		c, _, err := rootCmd.Find([]string{"history", name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("debug"))
	for _, flag := range []string{"method", "header", "data", "param", "output", "query"} {
		assert.NotNil(t, sendCmd.Flags().Lookup(flag), flag)
	}
	assert.Equal(t, "q", sendCmd.Flags().Lookup("param").Shorthand)
}

func TestSendAndHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"` + r.Header.Get("X-Token") + `","page":"` + r.URL.Query().Get("page") + `"}`))
	}))
	defer srv.Close()
	home := t.TempDir()

	out, err := run(t, home, "send", srv.URL, "-H", "X-Token: abc", "-q", "page=3", "-o", "body")
	require.NoError(t, err)
	assert.Equal(t, "{\"token\":\"abc\",\"page\":\"3\"}\n", out)

	_, err = os.Stat(filepath.Join(home, ".resto", "config.yaml"))
	assert.NoError(t, err, "default config is written on first run")

	out, err = run(t, home, "history", "-o", "json")
	require.NoError(t, err)
	var entries []types.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, srv.URL, entries[0].Request.URL)

	out, err = run(t, home, "history", "clear")
	require.NoError(t, err)
	assert.Equal(t, "History cleared\n", out)

	out, err = run(t, home, "history")
	require.NoError(t, err)
	assert.Equal(t, "No history\n", out)
}

func TestSendFailureExitsWithRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := run(t, t.TempDir(), "send", srv.URL, "-o", "text")
	assert.ErrorIs(t, err, cli.ErrRequestFailed)

	_, err = run(t, t.TempDir(), "send", "not-a-url")
	require.Error(t, err)
	assert.NotErrorIs(t, err, cli.ErrRequestFailed)
}

func TestCurlCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "curl", "curl -X PUT https://api.test/items/1 -d '{}'", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "method: PUT")
	assert.Contains(t, out, "url: https://api.test/items/1")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "resto ")
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestKeybindsCommand(t *testing.T) {
	home := t.TempDir()

	out, err := run(t, home, "keybinds")
	require.NoError(t, err)
	assert.Contains(t, out, "[normal]")
	assert.Contains(t, out, "Send request")
	assert.NotContains(t, out, "Warnings:")

	out, err = run(t, home, "keybinds", "--init")
	require.NoError(t, err)
	assert.Contains(t, out, "keybinds.json")
	_, err = os.Stat(filepath.Join(home, ".resto", "keybinds.json"))
	require.NoError(t, err)

	_, err = run(t, home, "keybinds", "--init")
	assert.ErrorContains(t, err, "already exists")
}

func TestCancelOnSIGTERM(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := cancelOnSignal(ctx, cancel)
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not cancelled after SIGTERM")
	}
}
