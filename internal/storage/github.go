// internal/storage/github.go
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"uniautomarket/internal/common/config"
	"uniautomarket/internal/common/httpclient"
	"uniautomarket/internal/common/logger"
	"uniautomarket/internal/models"
)

// GitHub persists the catalog document as a file in a repository via the
// contents API. Every persist is a commit; there is no push channel, so
// cross-device convergence relies on manual sync.
type GitHub struct {
	client  *httpclient.Client
	baseURL string
	owner   string
	repo    string
	path    string
	branch  string
	token   string
	log     logger.Logger
}

func NewGitHub(cfg config.GitHubConfig, log logger.Logger) *GitHub {
	return &GitHub{
		client:  httpclient.NewClient(config.GetDuration(cfg.Timeout)),
		baseURL: "https://api.github.com",
		owner:   cfg.Owner,
		repo:    cfg.Repo,
		path:    cfg.Path,
		branch:  cfg.Branch,
		token:   cfg.Token,
		log:     log.WithFields(map[string]interface{}{"adapter": "github"}),
	}
}

// SetBaseURL overrides the API endpoint; used by tests against httptest.
func (g *GitHub) SetBaseURL(url string) {
	g.baseURL = url
}

type githubFile struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

func (g *GitHub) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.baseURL, g.owner, g.repo, g.path)
}

func (g *GitHub) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if g.token != "" {
		req.Header.Set("Authorization", "token "+g.token)
	}
	return req, nil
}

// getFile returns the current file, or nil when the path does not exist.
func (g *GitHub) getFile(ctx context.Context) (*githubFile, error) {
	req, err := g.newRequest(ctx, http.MethodGet, g.contentsURL()+"?ref="+g.branch, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github contents GET: unexpected status %d", resp.StatusCode)
	}

	var file githubFile
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode github response: %w", err)
	}
	return &file, nil
}

func (g *GitHub) FetchAll(ctx context.Context) (models.Tree, error) {
	file, err := g.getFile(ctx)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(stripNewlines(file.Content))
	if err != nil {
		return nil, fmt.Errorf("decode github file content: %w", err)
	}
	return DecodeTree(raw)
}

func (g *GitHub) Persist(ctx context.Context, tree models.Tree) error {
	raw, err := EncodeTreeIndented(tree)
	if err != nil {
		return err
	}

	// The contents API requires the current blob SHA when updating.
	var sha string
	if file, err := g.getFile(ctx); err != nil {
		return err
	} else if file != nil {
		sha = file.SHA
	}

	payload := map[string]string{
		"message": "Update catalog data",
		"content": base64.StdEncoding.EncodeToString(raw),
		"branch":  g.branch,
	}
	if sha != "" {
		payload["sha"] = sha
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := g.newRequest(ctx, http.MethodPut, g.contentsURL(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("github contents PUT: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (g *GitHub) Subscribe(onChange func(models.Tree)) func() {
	return func() {}
}

func (g *GitHub) Close() error { return nil }

// The contents API wraps base64 at 60 columns.
func stripNewlines(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\n' && s[i] != '\r' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
