// Package feed talks to the bank transaction-history endpoint.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/vndev/paywatch/internal/model"
)

// Timeout budget for one fetch: the overall deadline, the connection
// establishment deadline within it, and the response-read deadline.
const (
	DefaultTimeout     = 15 * time.Second
	DefaultDialTimeout = 5 * time.Second
	DefaultReadTimeout = 10 * time.Second
)

const (
	previewLimit = 300
	maxBodyBytes = 4 << 20
)

// historyEnvelope is the application-level wrapper the tracker returns.
// A transport-level success with a false status flag is still a failure.
type historyEnvelope struct {
	Status bool                `json:"status"`
	Data   []model.Transaction `json:"data"`
}

// Client fetches the history endpoint. It is safe for sequential reuse
// across poll cycles; the underlying http.Client keeps connections warm.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a feed client with the default timeout budget.
func NewClient(url string) *Client {
	return NewClientWithHTTP(url, &http.Client{
		Timeout: DefaultTimeout,
		Transport: &http.Transport{
			DialContext:           (&net.Dialer{Timeout: DefaultDialTimeout}).DialContext,
			ResponseHeaderTimeout: DefaultReadTimeout,
		},
	})
}

// NewClientWithHTTP creates a feed client around a caller-supplied
// http.Client. Tests use this to shrink the timeout budget.
func NewClientWithHTTP(url string, httpClient *http.Client) *Client {
	return &Client{url: url, httpClient: httpClient}
}

// FetchHistory performs a single bounded GET against the endpoint and
// returns the transaction batch. Every failure comes back as an *Error so
// the caller can classify it without string matching. An empty batch with
// a truthy status flag is a success.
func (c *Client) FetchHistory(ctx context.Context) ([]model.Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	slog.Debug("feed responded", "status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindBadStatus, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyTransport(err)
	}

	var envelope historyEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &Error{Kind: KindDecode, Err: err, Preview: preview(body)}
	}

	if !envelope.Status {
		return nil, &Error{Kind: KindInvalidPayload}
	}

	return envelope.Data, nil
}

// classifyTransport separates timeouts from other transport faults.
func classifyTransport(err error) *Error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindTransport, Err: err}
}

func preview(body []byte) string {
	if len(body) > previewLimit {
		body = body[:previewLimit]
	}
	return string(body)
}
