package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Live is the HTTP implementation of Backend. Every call is bounded by the
// client timeout; network failures surface as errors the caller converts
// into a local-mode continuation.
type Live struct {
	baseURL string
	http    *http.Client
}

func NewLive(baseURL string, timeout time.Duration) *Live {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Live{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Live) HealthCheck(ctx context.Context) (HealthStatus, error) {
	var out HealthStatus
	err := c.get(ctx, "/", &out)
	return out, err
}

func (c *Live) GenerateHash(ctx context.Context, gaitData string) (HashResult, error) {
	body, err := json.Marshal(map[string]string{"gaitData": gaitData})
	if err != nil {
		return HashResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hash", bytes.NewReader(body))
	if err != nil {
		return HashResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out HashResult
	if err := c.do(req, &out); err != nil {
		return HashResult{}, err
	}
	return out, nil
}

func (c *Live) History(ctx context.Context) (HistoryResult, error) {
	var out HistoryResult
	err := c.get(ctx, "/history", &out)
	return out, err
}

func (c *Live) Stats(ctx context.Context) (StatsResult, error) {
	var out StatsResult
	err := c.get(ctx, "/stats", &out)
	return out, err
}

func (c *Live) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Live) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unavailable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read backend response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var fail struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &fail) == nil && fail.Error != "" {
			return fmt.Errorf("backend error (%d): %s", resp.StatusCode, fail.Error)
		}
		return fmt.Errorf("backend error (%d)", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}
