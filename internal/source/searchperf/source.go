package searchperf

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"contentops/internal/config"
	"contentops/internal/domain"
)

// Source fetches a trailing window of search-performance rows for a project.
type Source struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	windowDays     int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func New(cfg config.TelemetryConfig, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		windowDays:     cfg.WindowDays,
		maxAttempts:    cfg.Retry.MaxAttempts,
		initialBackoff: cfg.Retry.InitialBackoff,
		maxBackoff:     cfg.Retry.MaxBackoff,
		logger:         logger.With("component", "searchperf"),
	}
}

// FetchWindow returns the project's trailing telemetry window. A project with
// no telemetry yields an empty slice, not an error, so the cycle can fall
// through to fallback strategy selection.
func (s *Source) FetchWindow(ctx context.Context, projectID int64) ([]domain.TelemetryRow, error) {
	if s.baseURL == "" {
		return nil, nil
	}

	until := time.Now().UTC()
	since := until.AddDate(0, 0, -s.windowDays)
	url := fmt.Sprintf("%s/projects/%d/queries?since=%s&until=%s",
		s.baseURL, projectID, since.Format("2006-01-02"), until.Format("2006-01-02"))

	var resp *apiResponse
	var err error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		resp, err = s.doRequest(ctx, url)
		if err == nil {
			return transform(resp), nil
		}

		if attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("telemetry request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", s.maxAttempts, err)
}

func (s *Source) doRequest(ctx context.Context, url string) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	// A project without telemetry is an empty window, not a failure.
	if resp.StatusCode == http.StatusNotFound {
		return &apiResponse{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &apiResp, nil
}

func (s *Source) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}

func transform(resp *apiResponse) []domain.TelemetryRow {
	if resp == nil || len(resp.Rows) == 0 {
		return nil
	}

	rows := make([]domain.TelemetryRow, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		ctr := r.CTR
		if ctr == 0 && r.Impressions > 0 {
			ctr = float64(r.Clicks) / float64(r.Impressions) * 100
		}
		rows = append(rows, domain.TelemetryRow{
			Query:       r.Query,
			Impressions: r.Impressions,
			Position:    r.Position,
			CTR:         ctr,
		})
	}

	return rows
}
