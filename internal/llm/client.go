package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"contentops/internal/config"
	"contentops/internal/domain"
)

// Client talks to an OpenAI-compatible chat-completions API.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(cfg config.LLMConfig, logger *slog.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With("component", "llm"),
	}
}

// ArticleRequest describes one full article completion.
type ArticleRequest struct {
	Topic       string
	Source      string // prior artifact body or research payload, may be empty
	TargetWords int
	Language    string
	Brief       string // extra instruction, e.g. a linking-focused brief
}

// Article is the strict output schema the model must produce.
type Article struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

const articleSystemPrompt = `You are a content writer. Respond with a single JSON object of the form {"title": string, "body": string}. The body is Markdown. Do not wrap the JSON in code fences or add commentary.`

// GenerateArticle runs one completion and parses the response against the
// expected schema. Output that fails to validate is a GenerationError; there
// is no best-effort recovery from free-form text.
func (c *Client) GenerateArticle(ctx context.Context, req ArticleRequest) (*Article, error) {
	user := fmt.Sprintf("Write an article about %q in language %q, around %d words.", req.Topic, req.Language, req.TargetWords)
	if req.Brief != "" {
		user += " " + req.Brief
	}
	if req.Source != "" {
		user += "\n\nExisting material to build on:\n" + req.Source
	}

	raw, err := c.complete(ctx, articleSystemPrompt, user)
	if err != nil {
		return nil, err
	}

	var article Article
	if err := json.Unmarshal([]byte(stripFences(raw)), &article); err != nil {
		return nil, &domain.GenerationError{Stage: "parse", Err: fmt.Errorf("output does not match schema: %w", err)}
	}
	if article.Title == "" || article.Body == "" {
		return nil, &domain.GenerationError{Stage: "validate", Err: fmt.Errorf("empty title or body")}
	}

	return &article, nil
}

const titleSystemPrompt = `You are an SEO editor. Respond with a single replacement title, plain text, at most 70 characters. No quotes, no commentary.`

// GenerateTitle issues the narrower title-only completion used by meta
// optimization. The result is length-bounded.
func (c *Client) GenerateTitle(ctx context.Context, currentTitle, query string) (string, error) {
	user := fmt.Sprintf("Current title: %q. Target search query: %q. Produce a better title.", currentTitle, query)

	raw, err := c.complete(ctx, titleSystemPrompt, user)
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"`))
	if title == "" {
		return "", &domain.GenerationError{Stage: "validate", Err: fmt.Errorf("empty title")}
	}
	if len(title) > 120 {
		title = strings.TrimSpace(title[:120])
	}
	return title, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.GenerationError{Stage: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &domain.GenerationError{
			Stage: "request",
			Err:   fmt.Errorf("completion API %s: %s", resp.Status, strings.TrimSpace(string(payload))),
		}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &domain.GenerationError{Stage: "decode", Err: err}
	}
	if len(parsed.Choices) == 0 {
		return "", &domain.GenerationError{Stage: "decode", Err: fmt.Errorf("no choices in response")}
	}

	return parsed.Choices[0].Message.Content, nil
}

// stripFences removes a surrounding Markdown code fence the model may add
// despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
