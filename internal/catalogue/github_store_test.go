package catalogue

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomward0606/StockSystem/internal/config"
	"github.com/tomward0606/StockSystem/internal/models"
)

func testStore(apiBase, rawBase, token string) *GitHubStore {
	cfg := &config.Config{}
	cfg.Catalogue.Owner = "servitech"
	cfg.Catalogue.Repo = "parts-data"
	cfg.Catalogue.Branch = "main"
	cfg.Catalogue.Path = "catalogue.csv"
	cfg.Catalogue.Token = token
	cfg.Catalogue.APIBase = apiBase
	cfg.Catalogue.RawBase = rawBase
	return NewGitHubStore(cfg)
}

func TestFetchReturnsContentAndVersionToken(t *testing.T) {
	csvBody := "Product Code,Description,Category,Make,Manufacturer,image\nAB100,Bearing,,,,\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/servitech/parts-data/contents/catalogue.csv", r.URL.Path)
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]string{
			"content":  base64.StdEncoding.EncodeToString([]byte(csvBody)),
			"encoding": "base64",
			"sha":      "abc123",
		})
	}))
	defer server.Close()

	store := testStore(server.URL, server.URL, "tok123")

	snap, err := store.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, csvBody, string(snap.Content))
	assert.Equal(t, "abc123", snap.SHA)
}

func TestFetchWithoutTokenIsNotConfigured(t *testing.T) {
	store := testStore("http://unused", "http://unused", "")

	_, err := store.Fetch(context.Background())
	assert.ErrorIs(t, err, models.ErrNotConfigured)
}

func TestFetchPublicReturnsRawContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/servitech/parts-data/main/catalogue.csv", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte("raw,bytes\n"))
	}))
	defer server.Close()

	// Public path works with no token at all.
	store := testStore(server.URL, server.URL, "")

	content, err := store.FetchPublic(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "raw,bytes\n", string(content))
}

func TestPutSendsExpectedTokenAndReturnsNewOne(t *testing.T) {
	var got struct {
		Message string `json:"message"`
		Content string `json:"content"`
		SHA     string `json:"sha"`
		Branch  string `json:"branch"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": map[string]string{"sha": "def456"},
		})
	}))
	defer server.Close()

	store := testStore(server.URL, server.URL, "tok123")

	newSHA, err := store.Put(context.Background(), []byte("new,blob\n"), "Update AB100", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "def456", newSHA)
	assert.Equal(t, "abc123", got.SHA)
	assert.Equal(t, "Update AB100", got.Message)
	assert.Equal(t, "main", got.Branch)

	decoded, err := base64.StdEncoding.DecodeString(got.Content)
	require.NoError(t, err)
	assert.Equal(t, "new,blob\n", string(decoded))
}

func TestPutStaleTokenIsConcurrencyConflict(t *testing.T) {
	for _, status := range []int{http.StatusConflict, http.StatusUnprocessableEntity} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"message":"is at def456 but expected abc123"}`))
		}))

		store := testStore(server.URL, server.URL, "tok123")

		_, err := store.Put(context.Background(), []byte("x"), "msg", "abc123")
		assert.ErrorIs(t, err, models.ErrConcurrencyConflict)
		server.Close()
	}
}

func TestPutWithoutTokenIsNotConfigured(t *testing.T) {
	store := testStore("http://unused", "http://unused", "")

	_, err := store.Put(context.Background(), []byte("x"), "msg", "abc123")
	assert.ErrorIs(t, err, models.ErrNotConfigured)
}

func TestRemoteFailuresAreRemoteUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	store := testStore(server.URL, server.URL, "tok123")

	_, err := store.Fetch(context.Background())
	assert.ErrorIs(t, err, models.ErrRemoteUnavailable)

	_, err = store.Put(context.Background(), []byte("x"), "msg", "abc123")
	assert.ErrorIs(t, err, models.ErrRemoteUnavailable)

	// Connection refused behaves the same way.
	dead := testStore("http://127.0.0.1:1", "http://127.0.0.1:1", "tok123")
	_, err = dead.Fetch(context.Background())
	assert.ErrorIs(t, err, models.ErrRemoteUnavailable)
}

func TestFetchDecodesWrappedBase64(t *testing.T) {
	// The contents API wraps base64 payloads at 60 columns.
	encoded := base64.StdEncoding.EncodeToString([]byte("Product Code,Description\nAB100,Bearing with a long description field\n"))
	wrapped := encoded[:40] + "\n" + encoded[40:]

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"content": wrapped, "sha": "abc"})
	}))
	defer server.Close()

	store := testStore(server.URL, server.URL, "tok123")

	snap, err := store.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(snap.Content), "AB100")
}
