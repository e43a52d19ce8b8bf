package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"contentops/internal/config"
	"contentops/internal/domain"
)

// CMS publishes completed artifacts to an external CMS over its REST
// contract. Errors returned here are soft at the cycle level: the executor
// logs them and leaves the artifact completed.
type CMS struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewCMS(cfg config.CMSConfig, logger *slog.Logger) *CMS {
	return &CMS{
		baseURL:    cfg.BaseURL,
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "cms"),
	}
}

type postPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

type postResponse struct {
	ID int64 `json:"id"`
}

// Publish creates the post, or updates it when a post with the same title
// already exists (find-then-update). It returns the external post reference.
func (c *CMS) Publish(ctx context.Context, artifact *domain.ContentArtifact) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("cms is not configured")
	}

	if artifact.ExternalRef != nil && *artifact.ExternalRef != "" {
		return c.update(ctx, *artifact.ExternalRef, artifact)
	}

	if existing, err := c.findByTitle(ctx, artifact.Title); err == nil && existing != "" {
		return c.update(ctx, existing, artifact)
	}

	return c.create(ctx, artifact)
}

func (c *CMS) create(ctx context.Context, artifact *domain.ContentArtifact) (string, error) {
	var created postResponse
	err := c.post(ctx, c.baseURL+"/posts", artifact, &created)
	if err != nil {
		return "", err
	}

	c.logger.Info("published post", "post_id", created.ID, "artifact_id", artifact.ID)
	return strconv.FormatInt(created.ID, 10), nil
}

func (c *CMS) update(ctx context.Context, ref string, artifact *domain.ContentArtifact) (string, error) {
	var updated postResponse
	err := c.post(ctx, c.baseURL+"/posts/"+ref, artifact, &updated)
	if err != nil {
		return "", err
	}

	c.logger.Info("updated post", "post_id", ref, "artifact_id", artifact.ID)
	return ref, nil
}

func (c *CMS) findByTitle(ctx context.Context, title string) (string, error) {
	endpoint := fmt.Sprintf("%s/posts?search=%s&per_page=1", c.baseURL, url.QueryEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search posts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search posts returned %s", resp.Status)
	}

	var posts []postResponse
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}
	if len(posts) == 0 {
		return "", nil
	}

	return strconv.FormatInt(posts[0].ID, 10), nil
}

func (c *CMS) post(ctx context.Context, endpoint string, artifact *domain.ContentArtifact, v any) error {
	body, err := json.Marshal(postPayload{
		Title:   artifact.Title,
		Content: artifact.Body,
		Status:  "publish",
	})
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("publish post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("cms returned %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode publish response: %w", err)
	}

	return nil
}
