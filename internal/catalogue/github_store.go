package catalogue

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tomward0606/StockSystem/internal/config"
	"github.com/tomward0606/StockSystem/internal/models"
)

// GitHubStore keeps the catalogue CSV as a file in a GitHub repository and
// uses the contents API blob SHA as the version token. Writes go through the
// contents API conditional PUT; reads without a token fall back to the raw
// URL, which carries no usable token.
type GitHubStore struct {
	owner   string
	repo    string
	branch  string
	path    string
	token   string
	apiBase string
	rawBase string
	client  *http.Client
}

func NewGitHubStore(cfg *config.Config) *GitHubStore {
	return &GitHubStore{
		owner:   cfg.Catalogue.Owner,
		repo:    cfg.Catalogue.Repo,
		branch:  cfg.Catalogue.Branch,
		path:    cfg.Catalogue.Path,
		token:   cfg.Catalogue.Token,
		apiBase: cfg.Catalogue.APIBase,
		rawBase: cfg.Catalogue.RawBase,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *GitHubStore) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s", s.apiBase, s.owner, s.repo, s.path, s.branch)
}

// Fetch retrieves the current blob and version token via the authenticated
// contents API. Without a configured token this path cannot produce a
// version token, so it reports ErrNotConfigured instead of degrading
// silently.
func (s *GitHubStore) Fetch(ctx context.Context) (*Snapshot, error) {
	if s.token == "" {
		return nil, models.ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.contentsURL(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalogue fetch failed: %w: %v", models.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalogue fetch failed: %w: %v", models.ErrRemoteUnavailable, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through
	case http.StatusNotFound:
		return nil, fmt.Errorf("catalogue file %s: %w", s.path, models.ErrNotFound)
	default:
		return nil, fmt.Errorf("catalogue fetch returned status %d: %w", resp.StatusCode, models.ErrRemoteUnavailable)
	}

	var payload struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
		SHA      string `json:"sha"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("catalogue fetch returned malformed response: %w", err)
	}

	content, err := base64.StdEncoding.DecodeString(stripNewlines(payload.Content))
	if err != nil {
		return nil, fmt.Errorf("catalogue content decode failed: %w", err)
	}

	return &Snapshot{Content: content, SHA: payload.SHA}, nil
}

// FetchPublic retrieves the current blob anonymously via the raw URL.
// Content only; no version token, so this path can never feed a write.
func (s *GitHubStore) FetchPublic(ctx context.Context) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s/%s/%s", s.rawBase, s.owner, s.repo, s.branch, s.path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalogue fetch failed: %w: %v", models.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("catalogue file %s: %w", s.path, models.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalogue fetch returned status %d: %w", resp.StatusCode, models.ErrRemoteUnavailable)
	}

	return io.ReadAll(resp.Body)
}

// Put submits the new blob guarded by the version token captured at fetch
// time. The remote store rejects the write when the live token has moved on;
// that surfaces as ErrConcurrencyConflict and the caller must restart the
// whole fetch-mutate-write cycle. Put never retries.
func (s *GitHubStore) Put(ctx context.Context, content []byte, message, expectedSHA string) (string, error) {
	if s.token == "" {
		return "", models.ErrNotConfigured
	}

	payload := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"sha":     expectedSHA,
		"branch":  s.branch,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.contentsURL(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("catalogue write failed: %w: %v", models.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("catalogue write failed: %w: %v", models.ErrRemoteUnavailable, err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// fall through
	case http.StatusConflict, http.StatusUnprocessableEntity:
		// Someone else wrote between our fetch and this put.
		return "", fmt.Errorf("catalogue version token stale: %w", models.ErrConcurrencyConflict)
	default:
		return "", fmt.Errorf("catalogue write returned status %d: %w", resp.StatusCode, models.ErrRemoteUnavailable)
	}

	var result struct {
		Content struct {
			SHA string `json:"sha"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("catalogue write returned malformed response: %w", err)
	}

	return result.Content.SHA, nil
}

// The contents API wraps base64 content at 60 columns.
func stripNewlines(s string) string {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			continue
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}
