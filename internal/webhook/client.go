// internal/webhook/client.go
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gandikediye-afk/gandi-command-center/internal/common/config"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/errors"
	httpclient "github.com/gandikediye-afk/gandi-command-center/internal/common/http"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/logger"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/metrics"
)

// pendingPlaceholder marks a Make.com webhook slot that has no URL yet.
const pendingPlaceholder = "pending"

// Client talks to the n8n workflow engine and the Make.com webhook set.
type Client struct {
	http    *httpclient.Client
	log     logger.Logger
	baseURL string
	make    map[string]string
}

func NewClient(cfg config.WebhookConfig, log logger.Logger) *Client {
	timeout := time.Duration(cfg.N8N.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:    httpclient.NewClient(timeout),
		log:     log,
		baseURL: strings.TrimRight(cfg.N8N.BaseURL, "/"),
		make:    cfg.Make,
	}
}

// Dispatch calls an n8n webhook endpoint. A payload turns the call into a
// JSON POST; without one a plain GET is sent. The decoded JSON reply is
// returned when the workflow answers with a body.
func (c *Client) Dispatch(ctx context.Context, endpoint string, payload map[string]interface{}) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/webhook/%s", c.baseURL, endpoint)

	var req *http.Request
	var err error
	if payload != nil {
		body, marshalErr := json.Marshal(payload)
		if marshalErr != nil {
			return nil, errors.NewWebhookSendFailedError(endpoint, marshalErr)
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}
	if err != nil {
		return nil, errors.NewWebhookSendFailedError(endpoint, err)
	}

	c.log.Debug("dispatching webhook", map[string]interface{}{
		"endpoint": endpoint,
		"method":   req.Method,
	})

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.WebhookRequests.WithLabelValues(endpoint, "error").Inc()
		if isTimeout(err) {
			return nil, errors.NewWebhookTimeoutError(endpoint)
		}
		return nil, errors.NewWebhookSendFailedError(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.WebhookRequests.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil, errors.NewWebhookSendFailedError(endpoint, fmt.Errorf("status %d", resp.StatusCode))
	}

	metrics.WebhookRequests.WithLabelValues(endpoint, "ok").Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil || len(raw) == 0 {
		return nil, nil
	}

	var reply map[string]interface{}
	if err := json.Unmarshal(raw, &reply); err != nil {
		// Workflows sometimes answer with plain text acknowledgements.
		return map[string]interface{}{"message": strings.TrimSpace(string(raw))}, nil
	}
	return reply, nil
}

// DispatchMake calls a named Make.com webhook. Slots still carrying the
// "pending" placeholder have not been provisioned and are rejected up front.
func (c *Client) DispatchMake(ctx context.Context, name string, payload map[string]interface{}) (map[string]interface{}, error) {
	url, ok := c.make[name]
	if !ok {
		return nil, errors.NewUnknownCommandError(name)
	}
	if url == "" || url == pendingPlaceholder {
		return nil, errors.NewWebhookPendingError(name)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewWebhookSendFailedError(name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewWebhookSendFailedError(name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.WebhookRequests.WithLabelValues(name, "error").Inc()
		if isTimeout(err) {
			return nil, errors.NewWebhookTimeoutError(name)
		}
		return nil, errors.NewWebhookSendFailedError(name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.WebhookRequests.WithLabelValues(name, fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil, errors.NewWebhookSendFailedError(name, fmt.Errorf("status %d", resp.StatusCode))
	}

	metrics.WebhookRequests.WithLabelValues(name, "ok").Inc()

	raw, _ := io.ReadAll(resp.Body)
	if len(raw) == 0 {
		return nil, nil
	}
	var reply map[string]interface{}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return map[string]interface{}{"message": strings.TrimSpace(string(raw))}, nil
	}
	return reply, nil
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	for err != nil {
		if t, ok := err.(timeout); ok && t.Timeout() {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return false
}
