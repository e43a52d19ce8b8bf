package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"contentops/internal/config"
)

// ImageGenerator requests one illustrative image from an external image API.
type ImageGenerator struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewImageGenerator(cfg config.EnrichConfig) *ImageGenerator {
	return &ImageGenerator{
		baseURL:    cfg.ImageGenURL,
		apiKey:     cfg.ImageAPIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type imageGenResponse struct {
	URL string `json:"url"`
}

// Generate returns the URL of a generated illustration for the topic.
func (g *ImageGenerator) Generate(ctx context.Context, topic string) (string, error) {
	if g.baseURL == "" {
		return "", fmt.Errorf("image generation is not configured")
	}

	body, err := json.Marshal(map[string]string{
		"prompt": fmt.Sprintf("Editorial illustration for an article about %s", topic),
		"size":   "1024x576",
	})
	if err != nil {
		return "", fmt.Errorf("marshal image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image generation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image generation returned %s", resp.Status)
	}

	var parsed imageGenResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode image response: %w", err)
	}
	if parsed.URL == "" {
		return "", fmt.Errorf("image response missing url")
	}

	return parsed.URL, nil
}
