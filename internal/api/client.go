// Package api is the REST client for the EcoFinds backend. It owns wire
// concerns only: URLs, encoding, auth headers, and error mapping. State
// lives in the stores.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/ecofinds/marketplace-client/internal/errors"
	"github.com/ecofinds/marketplace-client/internal/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenSource supplies the bearer token for authenticated endpoints. An
// empty token means no Authorization header is sent.
type TokenSource interface {
	AccessToken() string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport; tests point it at an
// httptest server.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens: tokens,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// errorBody is the shape the backend uses for error statuses.
type errorBody struct {
	Msg   string `json:"msg"`
	Error string `json:"error"`
}

func (e errorBody) message() string {
	if e.Msg != "" {
		return e.Msg
	}

	return e.Error
}

// doJSON issues the request and decodes a 2xx response into dest. Non-2xx
// statuses are mapped onto AppError with the server-provided message.
func (c *Client) doJSON(ctx context.Context, operation, method, path string, body any, dest any) error {
	start := time.Now()

	var reqBody io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.InternalError("Failed to encode request body").WithError(err)
		}

		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperrors.InternalError("Failed to build request").WithError(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	err = c.send(req, operation, dest)
	metrics.ObserveAPICall(operation, start, err)

	return err
}

// doMultipart issues a multipart/form-data request built by Submission.
func (c *Client) doMultipart(ctx context.Context, operation, method, path string, sub *Submission, dest any) error {
	start := time.Now()

	encoded, contentType, err := sub.Encode()
	if err != nil {
		return apperrors.InternalError("Failed to encode form submission").WithError(err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return apperrors.InternalError("Failed to build request").WithError(err)
	}

	req.Header.Set("Content-Type", contentType)

	err = c.send(req, operation, dest)
	metrics.ObserveAPICall(operation, start, err)

	return err
}

// statusError maps a backend error status onto the matching error class;
// statuses without one keep the generic API error code.
func statusError(message string, statusCode int) error {
	switch statusCode {
	case http.StatusBadRequest:
		return apperrors.BadRequestError(message)
	case http.StatusUnauthorized:
		return apperrors.UnauthorizedError(message)
	case http.StatusForbidden:
		return apperrors.ForbiddenError(message)
	case http.StatusNotFound:
		return apperrors.NotFoundError(message)
	case http.StatusConflict:
		return apperrors.ConflictError(message)
	}

	return apperrors.APIError(message, statusCode)
}

func (c *Client) send(req *http.Request, operation string, dest any) error {
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.TransportError(fmt.Sprintf("Request failed: %s", operation)).WithError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.TransportError("Failed to read response body").WithError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if err := json.Unmarshal(raw, &eb); err == nil && eb.message() != "" {
			return statusError(eb.message(), resp.StatusCode)
		}

		return statusError(fmt.Sprintf("Unexpected status %d", resp.StatusCode), resp.StatusCode)
	}

	if dest == nil {
		return nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return apperrors.TransportError("Malformed response body").WithError(err)
	}

	return nil
}
