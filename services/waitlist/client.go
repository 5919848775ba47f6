package waitlist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"turn2law_web/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	// SignupPath is appended to the configured base URL
	SignupPath = "/api/signup/"

	// DefaultTimeout bounds a single signup request
	DefaultTimeout = 10 * time.Second

	maxErrorBodyBytes = 1 << 20
)

// Submitter sends a validated submission to the signup backend
type Submitter interface {
	Submit(ctx context.Context, s models.WaitlistSubmission) error
}

// Client posts waitlist submissions to the external signup API. It never
// retries; every call issues exactly one request.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	tracer     trace.Tracer
}

var _ Submitter = (*Client)(nil)

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request deadline. Zero disables it.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a signup client for the API rooted at baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid signup API base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid signup API base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid signup API base URL %q: missing host", baseURL)
	}

	c := &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + SignupPath,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		tracer:     otel.Tracer("turn2law_web/services/waitlist"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the full signup URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit issues one POST with s encoded as JSON. A nil error means the
// backend answered 2xx; any failure is a *SubmitError.
func (c *Client) Submit(ctx context.Context, s models.WaitlistSubmission) error {
	ctx, span := c.tracer.Start(ctx, "waitlist.signup",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodPost),
			attribute.String("url.full", c.endpoint),
			attribute.String("waitlist.role", s.Role),
		),
	)
	defer span.End()

	err := c.do(ctx, s, span)
	if err != nil {
		var se *SubmitError
		if errors.As(err, &se) {
			span.SetAttributes(attribute.String("waitlist.outcome", se.Kind.String()))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.String("waitlist.outcome", "success"))
	return nil
}

func (c *Client) do(ctx context.Context, s models.WaitlistSubmission, span trace.Span) error {
	parent := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(s)
	if err != nil {
		return &SubmitError{Kind: KindUnexpected, Err: fmt.Errorf("encode submission: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &SubmitError{Kind: KindUnexpected, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(parent, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		// The body is not needed; drain a bounded amount so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		if kind := transportKind(parent, err); kind != KindNetwork {
			return &SubmitError{Kind: kind, StatusCode: resp.StatusCode, Err: err}
		}
		return &SubmitError{Kind: KindUnexpected, StatusCode: resp.StatusCode, Err: fmt.Errorf("read error body: %w", err)}
	}

	if fields := decodeFieldErrors(raw); len(fields) > 0 {
		return &SubmitError{Kind: KindRemoteValidation, StatusCode: resp.StatusCode, Fields: fields}
	}
	return &SubmitError{Kind: KindUnexpected, StatusCode: resp.StatusCode}
}

// classifyTransportError maps an error from http.Client.Do, where no
// response was received
func classifyTransportError(parent context.Context, err error) *SubmitError {
	return &SubmitError{Kind: transportKind(parent, err), Err: err}
}

func transportKind(parent context.Context, err error) Kind {
	if parent.Err() != nil && errors.Is(parent.Err(), context.Canceled) {
		return KindCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}

// decodeFieldErrors parses a {"field": ["msg", ...]} body. Plain string
// values are accepted as single-message lists; other shapes are skipped.
func decodeFieldErrors(raw []byte) FieldErrors {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}

	fields := FieldErrors{}
	for field, value := range body {
		var list []string
		if err := json.Unmarshal(value, &list); err == nil {
			for _, msg := range list {
				if msg = strings.TrimSpace(msg); msg != "" {
					fields.Add(field, msg)
				}
			}
			continue
		}
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			if single = strings.TrimSpace(single); single != "" {
				fields.Add(field, single)
			}
		}
	}
	return fields
}
