package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testToken = "123:abc"

type fakeCall struct {
	Method string
	Form   map[string]string
}

// fakeAPI is an in-process Bot API that records calls and replies with canned results.
// Results are plain JSON values so the client decodes them as it would Telegram's.
type fakeAPI struct {
	t        *testing.T
	mu       sync.Mutex
	calls    []fakeCall
	results  map[string]any
	failures map[string]string
	updates  []string
	files    map[string]string
	server   *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{
		t:        t,
		results:  map[string]any{},
		failures: map[string]string{},
		files:    map[string]string{},
	}
	api.server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.server.Close)
	return api
}

func (a *fakeAPI) client() *Client {
	c, err := NewClient(a.server.Client(), a.server.URL, testToken, time.Second, 0)
	require.NoError(a.t, err)
	return c
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	if rest, ok := strings.CutPrefix(r.URL.Path, "/file/bot"+testToken+"/"); ok {
		a.mu.Lock()
		content, found := a.files[rest]
		a.mu.Unlock()
		if !found {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(content))
		return
	}

	method := strings.TrimPrefix(r.URL.Path, "/bot"+testToken+"/")
	form := map[string]string{}
	if err := r.ParseMultipartForm(1 << 20); err == nil {
		for key, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				form[key] = values[0]
			}
		}
	}

	a.mu.Lock()
	a.calls = append(a.calls, fakeCall{Method: method, Form: form})
	failure, failed := a.failures[method]
	result := a.results[method]
	if method == "getUpdates" {
		batch := "[]"
		if len(a.updates) > 0 {
			batch = a.updates[0]
			a.updates = a.updates[1:]
		}
		result = json.RawMessage(batch)
	}
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if failed {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error_code": 400, "description": failure})
		return
	}
	if method == "getUpdates" {
		time.Sleep(5 * time.Millisecond)
	}
	if result == nil {
		result = true
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
}

func (a *fakeAPI) callsTo(method string) []fakeCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []fakeCall
	for _, c := range a.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// sentMessage is the JSON shape Telegram returns for a delivered message.
func sentMessage(id int, chatID int64) map[string]any {
	return map[string]any{
		"message_id": id,
		"date":       1700000000,
		"chat":       map[string]any{"id": chatID, "type": "private"},
	}
}

// inlineKeyboard decodes the reply_markup form field of a recorded call.
func inlineKeyboard(t *testing.T, form map[string]string) [][]map[string]any {
	t.Helper()
	var markup struct {
		InlineKeyboard [][]map[string]any `json:"inline_keyboard"`
	}
	require.NoError(t, json.Unmarshal([]byte(form["reply_markup"]), &markup))
	return markup.InlineKeyboard
}
