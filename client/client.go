//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=mock/client.go

// Package client talks to a running archive daemon
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/x/controller"
)

const (
	defaultTimeout = 10 * time.Second
)

var tracer = otel.Tracer("client")

type Client interface {
	State(ctx context.Context) (controller.Snapshot, error)
	Stats(ctx context.Context) (core.Stats, error)
	AllLogs(ctx context.Context, query string, sort controller.LogSort) (controller.AllLogsResult, error)
	Characters(ctx context.Context, query string) ([]core.Character, error)
	Navigate(ctx context.Context, view core.View, payload map[string]any) (controller.Snapshot, error)
	Back(ctx context.Context) (controller.Snapshot, error)
	ToggleFavorite(ctx context.Context, logID string) (core.ArchiveLog, error)
	SignIn(ctx context.Context, email, password string) (controller.Snapshot, error)
	SignOut(ctx context.Context) (controller.Snapshot, error)
	Resume(ctx context.Context, token string) (controller.Snapshot, error)
}

type client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client for the daemon listening at endpoint (e.g. http://localhost:8000)
func NewClient(endpoint string) Client {
	return &client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// RemoteError is a non-ok envelope returned by the daemon
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e RemoteError) Error() string {
	return fmt.Sprintf("daemon returned %d: %s", e.StatusCode, e.Message)
}

func request[T any](ctx context.Context, c *client, method, path string, body any) (T, error) {
	var zero T

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return zero, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+"/api/v1"+path, reader)
	if err != nil {
		return zero, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, err
	}

	var envelope core.ResponseBase[T]
	err = json.Unmarshal(raw, &envelope)
	if err != nil {
		return zero, fmt.Errorf("malformed response (%d): %w", resp.StatusCode, err)
	}

	if envelope.Status != "ok" {
		message := envelope.Message
		if message == "" {
			message = envelope.Error
		}
		return zero, RemoteError{StatusCode: resp.StatusCode, Message: message}
	}

	return envelope.Content, nil
}

func (c *client) State(ctx context.Context) (controller.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Client.State")
	defer span.End()

	snapshot, err := request[controller.Snapshot](ctx, c, http.MethodGet, "/state", nil)
	if err != nil {
		span.RecordError(err)
	}
	return snapshot, err
}

func (c *client) Stats(ctx context.Context) (core.Stats, error) {
	ctx, span := tracer.Start(ctx, "Client.Stats")
	defer span.End()

	stats, err := request[core.Stats](ctx, c, http.MethodGet, "/stats", nil)
	if err != nil {
		span.RecordError(err)
	}
	return stats, err
}

func (c *client) AllLogs(ctx context.Context, query string, sort controller.LogSort) (controller.AllLogsResult, error) {
	ctx, span := tracer.Start(ctx, "Client.AllLogs")
	defer span.End()

	values := url.Values{}
	values.Set("q", query)
	values.Set("sort", string(sort))

	result, err := request[controller.AllLogsResult](ctx, c, http.MethodGet, "/logs?"+values.Encode(), nil)
	if err != nil {
		span.RecordError(err)
	}
	return result, err
}

func (c *client) Characters(ctx context.Context, query string) ([]core.Character, error) {
	ctx, span := tracer.Start(ctx, "Client.Characters")
	defer span.End()

	values := url.Values{}
	values.Set("q", query)

	characters, err := request[[]core.Character](ctx, c, http.MethodGet, "/characters?"+values.Encode(), nil)
	if err != nil {
		span.RecordError(err)
	}
	return characters, err
}

// Navigate moves the daemon to view; payload may carry "character", "log" and "from" keys
func (c *client) Navigate(ctx context.Context, view core.View, payload map[string]any) (controller.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Client.Navigate")
	defer span.End()

	body := map[string]any{"view": view}
	for key, value := range payload {
		body[key] = value
	}

	snapshot, err := request[controller.Snapshot](ctx, c, http.MethodPost, "/navigate", body)
	if err != nil {
		span.RecordError(err)
	}
	return snapshot, err
}

func (c *client) Back(ctx context.Context) (controller.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Client.Back")
	defer span.End()

	snapshot, err := request[controller.Snapshot](ctx, c, http.MethodPost, "/back", nil)
	if err != nil {
		span.RecordError(err)
	}
	return snapshot, err
}

func (c *client) ToggleFavorite(ctx context.Context, logID string) (core.ArchiveLog, error) {
	ctx, span := tracer.Start(ctx, "Client.ToggleFavorite")
	defer span.End()

	log, err := request[core.ArchiveLog](ctx, c, http.MethodPost, "/logs/"+url.PathEscape(logID)+"/favorite", nil)
	if err != nil {
		span.RecordError(err)
	}
	return log, err
}

func (c *client) SignIn(ctx context.Context, email, password string) (controller.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Client.SignIn")
	defer span.End()

	snapshot, err := request[controller.Snapshot](ctx, c, http.MethodPost, "/auth/signin", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		span.RecordError(err)
	}
	return snapshot, err
}

func (c *client) SignOut(ctx context.Context) (controller.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Client.SignOut")
	defer span.End()

	snapshot, err := request[controller.Snapshot](ctx, c, http.MethodPost, "/auth/signout", nil)
	if err != nil {
		span.RecordError(err)
	}
	return snapshot, err
}

func (c *client) Resume(ctx context.Context, token string) (controller.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Client.Resume")
	defer span.End()

	snapshot, err := request[controller.Snapshot](ctx, c, http.MethodPost, "/auth/resume", map[string]string{
		"token": token,
	})
	if err != nil {
		span.RecordError(err)
	}
	return snapshot, err
}
