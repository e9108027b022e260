package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"milanfood-backend/internal/domain"
)

// Client forwards orders to another storefront's POST /order endpoint.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func (c *Client) Submit(ctx context.Context, o *domain.Order) error {
	return c.postJSON(ctx, "/order", o, nil)
}

// Append forwards a storefront payload as received.
func (c *Client) Append(ctx context.Context, _ string, payload json.RawMessage) error {
	return c.postJSON(ctx, "/order", payload, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		return errors.New("remote: base url not configured")
	}
	u := strings.TrimRight(base, "/") + path
	hc := c.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("remote: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}
