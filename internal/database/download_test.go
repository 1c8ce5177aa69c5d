package database

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonasrenault/luniix/internal/config"
)

func TestDownloadOfficialDB(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/guest/create":
			json.NewEncoder(w).Encode(map[string]any{
				"response": map[string]any{
					"token": map[string]any{"server": "test-token"},
				},
			})
		case "/v2/packs":
			gotToken = r.Header.Get("X-AUTH-TOKEN")
			json.NewEncoder(w).Encode(map[string]any{
				"response": map[string]any{
					"pack-1": map[string]any{"uuid": "aaaa", "title": "First"},
					"pack-2": map[string]any{"uuid": "bbbb", "title": "Second"},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	settings := config.Settings{
		ConfigDir:        t.TempDir(),
		OfficialTokenURL: server.URL + "/guest/create",
		OfficialDBURL:    server.URL + "/v2/packs",
	}

	require.NoError(t, downloadOfficial(settings, settings.OfficialDBPath()))
	assert.Equal(t, "test-token", gotToken)

	// The cached file is re-keyed by story UUID.
	data, err := os.ReadFile(settings.OfficialDBPath())
	require.NoError(t, err)
	var db map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &db))
	assert.Len(t, db, 2)
	assert.Equal(t, "First", db["aaaa"]["title"])
	assert.Equal(t, "Second", db["bbbb"]["title"])
}

func TestDownloadThirdPartyDB(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"cccc": map[string]any{"title": "Community"},
		})
	}))
	defer server.Close()

	settings := config.Settings{
		ConfigDir:       t.TempDir(),
		ThirdPartyDBURL: server.URL,
	}

	require.NoError(t, downloadThirdParty(settings, settings.ThirdPartyDBPath()))

	store := Open(settings)
	entry, ok := store.Get("cccc")
	require.True(t, ok)
	assert.Equal(t, "Community", entry.Title())
	assert.False(t, entry.Official())
}

func TestDownloadSkippedWhenCached(t *testing.T) {
	settings := config.Settings{
		ConfigDir: t.TempDir(),
		// Unreachable on purpose: the cached file must short-circuit.
		OfficialTokenURL: "http://127.0.0.1:0/unreachable",
		OfficialDBURL:    "http://127.0.0.1:0/unreachable",
	}
	writeDB(t, settings.OfficialDBPath(), map[string]map[string]any{"aaaa": {"title": "Cached"}})

	DownloadOfficialDB(settings, false)

	data, err := os.ReadFile(settings.OfficialDBPath())
	require.NoError(t, err)
	var db map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &db))
	assert.Equal(t, "Cached", db["aaaa"]["title"])
}

func TestFetchGuestTokenErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"response": map[string]any{}})
	}))
	defer server.Close()

	_, err := fetchGuestToken(server.URL)
	assert.Error(t, err)
}
