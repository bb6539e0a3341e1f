// Package apiclient talks to the forum REST backend.
//
// Every method maps to exactly one HTTP call. Failures come back as *Error
// (or ErrNotAuthenticated) and never panic; callers decide what to show.
package apiclient

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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 4 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logrus.FieldLogger
	metrics    *Metrics
}

// New creates a client for baseURL (for example http://host/api).
// metrics may be nil.
func New(baseURL string, timeout time.Duration, logger logrus.FieldLogger, metrics *Metrics) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    metrics,
	}
}

// request describes one call. Token is sent verbatim in Authorization when
// set; Auth makes an empty token an error.
type request struct {
	Op     string
	Method string
	Path   string
	Token  string
	Auth   bool
	Body   any
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	if r.Auth && r.Token == "" {
		return fmt.Errorf("%s: %w", r.Op, ErrNotAuthenticated)
	}

	start := time.Now()
	requestID := uuid.NewString()
	log := c.logger.WithFields(logrus.Fields{
		"op":         r.Op,
		"method":     r.Method,
		"path":       r.Path,
		"request_id": requestID,
	})

	err := c.send(ctx, r, requestID, out)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
		log.WithError(err).WithField("duration", elapsed).Warn("backend call failed")
	} else {
		log.WithField("duration", elapsed).Debug("backend call")
	}
	c.metrics.observe(r.Op, outcome, elapsed)

	return err
}

func (c *Client) send(ctx context.Context, r request, requestID string, out any) error {
	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", r.Op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+r.Path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", r.Op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Token != "" {
		req.Header.Set("Authorization", r.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Op: r.Op, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Op: r.Op, Kind: KindNetwork, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &Error{
			Op:      r.Op,
			Kind:    statusKind(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: errorMessage(data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: r.Op, Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// IsNotAuthenticated reports whether err means the call needs a logged in
// viewer: either no token was supplied or the backend answered 401.
func IsNotAuthenticated(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) || StatusOf(err) == http.StatusUnauthorized
}
