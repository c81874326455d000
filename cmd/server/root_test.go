package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setTestEnv(t *testing.T, apiBase string) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_API_BASE", apiBase)
	t.Setenv("TELEGRAM_WEBHOOK_URL", "")
	t.Setenv("TELEGRAM_WEBHOOK_SECRET", "s3cret")
	t.Setenv("MEDIA_BACKEND", "s3")
	t.Setenv("S3_BUCKET", "docs")
	t.Setenv("JOB_STORE", "sqlite")
	t.Setenv("HTTP_PROXY_URL", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, "Translatix 1.0.0\n", out)
}

func TestSetWebhookCommand(t *testing.T) {
	got := map[string]string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bot123:abc/setWebhook", r.URL.Path)
		got["url"] = r.FormValue("url")
		got["secret_token"] = r.FormValue("secret_token")
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	}))
	defer server.Close()
	setTestEnv(t, server.URL)

	out, err := execute(t, "set-webhook", "https://bot.example.com/telegram/webhook")
	require.NoError(t, err)
	require.Contains(t, out, "webhook set to https://bot.example.com/telegram/webhook")
	require.Equal(t, "https://bot.example.com/telegram/webhook", got["url"])
	require.Equal(t, "s3cret", got["secret_token"])
}

func TestSetWebhookCommand_RequiresURL(t *testing.T) {
	setTestEnv(t, "http://127.0.0.1:1")

	_, err := execute(t, "set-webhook")
	require.ErrorContains(t, err, "webhook url is required")
}

func TestDeleteWebhookCommand(t *testing.T) {
	var dropPending string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bot123:abc/deleteWebhook", r.URL.Path)
		dropPending = r.FormValue("drop_pending_updates")
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	}))
	defer server.Close()
	setTestEnv(t, server.URL)

	out, err := execute(t, "delete-webhook", "--drop-pending")
	require.NoError(t, err)
	require.Contains(t, out, "webhook deleted")
	require.Equal(t, "true", dropPending)
}

func TestPollCommand_MissingConfig(t *testing.T) {
	setTestEnv(t, "http://127.0.0.1:1")
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := execute(t, "poll")
	require.ErrorContains(t, err, "TELEGRAM_TOKEN")
}
