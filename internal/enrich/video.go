package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"contentops/internal/config"
)

// VideoFinder looks up one illustrative video for a topic via an external
// search API.
type VideoFinder struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewVideoFinder(cfg config.EnrichConfig) *VideoFinder {
	return &VideoFinder{
		baseURL:    cfg.VideoSearchURL,
		apiKey:     cfg.VideoAPIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type videoSearchResponse struct {
	Items []struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	} `json:"items"`
}

// Find returns the embed URL of the best-matching video for the topic.
func (v *VideoFinder) Find(ctx context.Context, topic string) (string, error) {
	if v.baseURL == "" {
		return "", fmt.Errorf("video search is not configured")
	}

	endpoint := fmt.Sprintf("%s?q=%s&max_results=1", v.baseURL, url.QueryEscape(topic))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	if v.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+v.apiKey)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("video search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("video search returned %s", resp.Status)
	}

	var parsed videoSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode video response: %w", err)
	}
	if len(parsed.Items) == 0 {
		return "", fmt.Errorf("no video found for %q", topic)
	}

	return parsed.Items[0].URL, nil
}
