package bridge_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ExtensionBridge/bridge"
)

// fakeHost is a minimal host fixture: it serves a canned session payload and
// records every command posted back.
type fakeHost struct {
	srv *httptest.Server

	mu         sync.Mutex
	payload    string
	dataStatus int
	postStatus int
	posts      []map[string]interface{}
}

func newFakeHost(t *testing.T, payload string) *fakeHost {
	t.Helper()

	h := &fakeHost{payload: payload}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/extension/data/{uuid}", func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		status, body := h.dataStatus, h.payload
		h.mu.Unlock()
		if status != 0 {
			http.Error(w, "host error", status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
	mux.HandleFunc("POST /api/extension/response/{uuid}", func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.mu.Lock()
		status := h.postStatus
		h.posts = append(h.posts, doc)
		h.mu.Unlock()
		if status != 0 {
			http.Error(w, "host error", status)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	h.srv = httptest.NewServer(mux)
	t.Cleanup(h.srv.Close)

	u, err := url.Parse(h.srv.URL)
	require.NoError(t, err)
	t.Setenv("EXTENSION_UUID", "ext-test")
	t.Setenv("HOST", u.Hostname())
	t.Setenv("PORT", u.Port())

	return h
}

func (h *fakeHost) setPayload(payload string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.payload = payload
}

func (h *fakeHost) commands() []map[string]interface{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]map[string]interface{}, len(h.posts))
	copy(out, h.posts)
	return out
}

// minimalPayload matches the smallest document a host sends: a repository
// with one unopened file and nothing else going on.
const minimalPayload = `{"data":{"request_id":"r1","repo_path":"/proj","repo":["x.py"],"opened_files":[],"current_file":null,"context_files":{},"cursor":null}}`

func loadSession(t *testing.T, payload string) (*bridge.Session, *fakeHost) {
	t.Helper()
	host := newFakeHost(t, payload)

	b, err := bridge.New()
	require.NoError(t, err)

	sess, err := b.Load(context.Background())
	require.NoError(t, err)
	t.Cleanup(sess.Close)

	return sess, host
}

func TestLoadMinimalPayload(t *testing.T) {
	sess, _ := loadSession(t, minimalPayload)

	assert.Equal(t, "r1", sess.RequestID())
	assert.Equal(t, "/proj", sess.RepoPath())

	files := sess.RepoFiles()
	require.Len(t, files, 1)
	assert.Equal(t, "x.py", files[0].Path)
	assert.Equal(t, "/proj", files[0].RepoPath)
	assert.False(t, files[0].Open)

	assert.Nil(t, sess.CurrentFile())
	assert.Nil(t, sess.Cursor())
}

func TestLoadOmittedFieldsDefault(t *testing.T) {
	sess, _ := loadSession(t, minimalPayload)

	assert.Nil(t, sess.Selection())
	assert.Nil(t, sess.Clipboard())
	assert.Nil(t, sess.Prompt())
	assert.Empty(t, sess.ChatHistory())
	assert.Nil(t, sess.CurrentTerminal())
	assert.Empty(t, sess.Terminals())
	assert.Empty(t, sess.APIKeys())
	assert.Nil(t, sess.APIKey("openrouter"))
	assert.Nil(t, sess.Setting("model"))
	assert.Nil(t, sess.UIAction())
	assert.Nil(t, sess.CodeApplyChange())
	assert.Empty(t, sess.ContextFiles())
}

func TestLoadFullPayload(t *testing.T) {
	payload := `{"data":{
		"request_id": "r2",
		"repo_path": "/proj",
		"repo": ["a.py", "b.py", "c.py"],
		"opened_files": ["b.py"],
		"current_file": "b.py",
		"current_file_content": "print(1)\n",
		"context_files": {"docs": ["a.py", "c.py"]},
		"cursor": {"row": 3, "column": 7},
		"selection": "print(1)",
		"clip_board": "copied",
		"prompt": "explain this",
		"chat_history": [{"role": "user", "content": "hi"}, {"role": "assistant", "content": "hello"}],
		"current_terminal": "shell-1",
		"terminals": ["shell-1", "shell-2"],
		"api_keys": {"openrouter": {"provider": "openrouter", "key": "sk-1"}},
		"settings": {"model": "demo", "temperature": 0.2},
		"ui_action": {"action": "apply", "target": "editor"},
		"code_apply_change": {"target_file_path": "b.py", "patch_text": "@@ -1 +1 @@"}
	}}`
	sess, _ := loadSession(t, payload)

	t.Run("repo files mark opened tabs", func(t *testing.T) {
		files := sess.RepoFiles()
		require.Len(t, files, 3)
		byPath := map[string]bool{}
		for _, f := range files {
			byPath[f.Path] = f.Open
		}
		assert.False(t, byPath["a.py"])
		assert.True(t, byPath["b.py"])
		assert.False(t, byPath["c.py"])
	})

	t.Run("current file carries content", func(t *testing.T) {
		current := sess.CurrentFile()
		require.NotNil(t, current)
		assert.Equal(t, "b.py", current.Path)
		assert.True(t, current.Open)
		require.NotNil(t, current.Content)
		assert.Equal(t, "print(1)\n", *current.Content)
		assert.Equal(t, "/proj/b.py", current.AbsPath())
	})

	t.Run("context files", func(t *testing.T) {
		groups := sess.ContextFiles()
		require.Len(t, groups, 1)
		require.Len(t, groups["docs"], 2)
		assert.Equal(t, "a.py", groups["docs"][0].Path)
		assert.Equal(t, "/proj", groups["docs"][0].RepoPath)
		assert.False(t, groups["docs"][0].Open)
	})

	t.Run("cursor and text state", func(t *testing.T) {
		cursor := sess.Cursor()
		require.NotNil(t, cursor)
		assert.Equal(t, 3, cursor.Row)
		assert.Equal(t, 7, cursor.Column)

		require.NotNil(t, sess.Selection())
		assert.Equal(t, "print(1)", *sess.Selection())
		require.NotNil(t, sess.Clipboard())
		assert.Equal(t, "copied", *sess.Clipboard())
		require.NotNil(t, sess.Prompt())
		assert.Equal(t, "explain this", *sess.Prompt())
	})

	t.Run("chat history in order", func(t *testing.T) {
		history := sess.ChatHistory()
		require.Len(t, history, 2)
		assert.Equal(t, "user", history[0].Role)
		assert.Equal(t, "hi", history[0].Content)
		assert.Equal(t, "assistant", history[1].Role)
	})

	t.Run("terminals flag focus", func(t *testing.T) {
		current := sess.CurrentTerminal()
		require.NotNil(t, current)
		assert.Equal(t, "shell-1", current.Name)
		assert.True(t, current.Current)

		terminals := sess.Terminals()
		require.Len(t, terminals, 2)
		assert.True(t, terminals[0].Current)
		assert.False(t, terminals[1].Current)
	})

	t.Run("api keys", func(t *testing.T) {
		key := sess.APIKey("openrouter")
		require.NotNil(t, key)
		assert.Equal(t, "openrouter", key.Provider)
		assert.Equal(t, "sk-1", key.Key)

		assert.Nil(t, sess.APIKey("deepinfra"))
		assert.Len(t, sess.APIKeys(), 1)
	})

	t.Run("settings", func(t *testing.T) {
		assert.Equal(t, "demo", sess.Setting("model"))
		assert.Equal(t, 0.2, sess.Setting("temperature"))
		assert.Nil(t, sess.Setting("unknown"))
	})

	t.Run("ui action", func(t *testing.T) {
		action := sess.UIAction()
		require.NotNil(t, action)
		assert.Equal(t, "apply", action["action"])
	})

	t.Run("code apply change joins repo root", func(t *testing.T) {
		change := sess.CodeApplyChange()
		require.NotNil(t, change)
		assert.Equal(t, "b.py", change.TargetFilePath)
		assert.Equal(t, "/proj", change.RepoPath)
		assert.Equal(t, "@@ -1 +1 @@", change.PatchText)
		assert.Equal(t, "/proj/b.py", change.AbsTargetPath())
	})
}

func TestReloadDoesNotLeak(t *testing.T) {
	withSelection := `{"data":{"request_id":"r1","repo_path":"/proj","repo":[],"opened_files":[],"current_file":null,"context_files":{},"cursor":null,"selection":"picked"}}`
	host := newFakeHost(t, withSelection)

	b, err := bridge.New()
	require.NoError(t, err)

	first, err := b.Load(context.Background())
	require.NoError(t, err)
	defer first.Close()
	require.NotNil(t, first.Selection())

	host.setPayload(`{"data":{"request_id":"r2","repo_path":"/other","repo":[],"opened_files":[],"current_file":null,"context_files":{},"cursor":null}}`)

	second, err := b.Load(context.Background())
	require.NoError(t, err)
	defer second.Close()

	assert.Nil(t, second.Selection())
	assert.Equal(t, "r2", second.RequestID())
	assert.Equal(t, "/other", second.RepoPath())

	// The first session is an independent snapshot
	assert.Equal(t, "picked", *first.Selection())
	assert.Equal(t, "r1", first.RequestID())
}

func TestLoadTransportError(t *testing.T) {
	host := newFakeHost(t, minimalPayload)
	host.dataStatus = http.StatusInternalServerError

	b, err := bridge.New()
	require.NoError(t, err)

	_, err = b.Load(context.Background())
	require.Error(t, err)

	var terr *bridge.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "load", terr.Op)
	assert.Equal(t, http.StatusInternalServerError, terr.StatusCode)
}

func TestLoadDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "missing data field", payload: `{}`},
		{name: "null data field", payload: `{"data": null}`},
		{name: "invalid JSON", payload: `{broken`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newFakeHost(t, tt.payload)

			b, err := bridge.New()
			require.NoError(t, err)

			_, err = b.Load(context.Background())
			require.Error(t, err)

			var derr *bridge.DecodeError
			assert.True(t, errors.As(err, &derr))
		})
	}
}

func TestNewConfigErrors(t *testing.T) {
	t.Run("unset extension uuid", func(t *testing.T) {
		t.Setenv("EXTENSION_UUID", "ext-test")
		t.Setenv("HOST", "127.0.0.1")
		t.Setenv("PORT", "9100")
		require.NoError(t, os.Unsetenv("EXTENSION_UUID"))

		_, err := bridge.New()
		assert.Error(t, err)
	})

	t.Run("empty extension uuid", func(t *testing.T) {
		t.Setenv("EXTENSION_UUID", "")
		t.Setenv("HOST", "127.0.0.1")
		t.Setenv("PORT", "9100")

		_, err := bridge.New()
		assert.Error(t, err)
	})

	t.Run("non-numeric port", func(t *testing.T) {
		t.Setenv("EXTENSION_UUID", "ext-test")
		t.Setenv("HOST", "127.0.0.1")
		t.Setenv("PORT", "ninety")

		_, err := bridge.New()
		assert.Error(t, err)
	})
}
