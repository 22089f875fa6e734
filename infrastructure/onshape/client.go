// Package onshape implements the submission port over the Onshape REST
// API. One Client serves one part studio element; every call is scoped
// to the document, workspace and element it was configured with.
package onshape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"partforge/application/ports"
	"partforge/infrastructure/config"
	pkgerrors "partforge/pkg/errors"
)

// Client talks to the Onshape REST API. It implements
// ports.SubmissionAPI.
type Client struct {
	httpClient *http.Client
	baseURL    string

	documentID  string
	workspaceID string
	elementID   string

	creds   *config.Credentials
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewClient builds a client for the studio the config points at.
func NewClient(cfg *config.Config, creds *config.Credentials, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "onshape",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		httpClient:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		baseURL:     cfg.BaseURL,
		documentID:  cfg.DocumentID,
		workspaceID: cfg.WorkspaceID,
		elementID:   cfg.ElementID,
		creds:       creds,
		breaker:     breaker,
		logger:      logger,
	}
}

// studioPath builds an endpoint path scoped to the configured element.
func (c *Client) studioPath(prefix, suffix string) string {
	p := fmt.Sprintf("%s/%s/d/%s/w/%s/e/%s", c.baseURL, prefix, c.documentID, c.workspaceID, c.elementID)
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

type addFeatureRequest struct {
	Feature ports.FeatureDefinition `json:"feature"`
}

type addFeatureResponse struct {
	Feature ports.FeatureResult `json:"feature"`
}

// AddFeature submits one feature and returns the evaluation result.
func (c *Client) AddFeature(ctx context.Context, def ports.FeatureDefinition) (*ports.FeatureResult, error) {
	var resp addFeatureResponse
	err := c.do(ctx, http.MethodPost, c.studioPath("partstudios", "features"),
		addFeatureRequest{Feature: def}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Feature, nil
}

type evalRequest struct {
	Script string `json:"script"`
}

type evalResponse struct {
	Entities []ports.EntityRef `json:"entities"`
}

// EvalQuery evaluates a query script against the studio.
func (c *Client) EvalQuery(ctx context.Context, script string) ([]ports.EntityRef, error) {
	var resp evalResponse
	err := c.do(ctx, http.MethodPost, c.studioPath("partstudios", "featurescript"),
		evalRequest{Script: script}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Entities, nil
}

// ListParts returns the studio's solid bodies.
func (c *Client) ListParts(ctx context.Context) ([]ports.PartRef, error) {
	var parts []ports.PartRef
	err := c.do(ctx, http.MethodGet, c.studioPath("parts", ""), nil, &parts)
	if err != nil {
		return nil, err
	}
	return parts, nil
}

// do performs one JSON round trip through the circuit breaker. Remote
// error bodies are carried verbatim; they are the evaluator's message to
// the user, not ours to rewrite.
func (c *Client) do(ctx context.Context, method, url string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return pkgerrors.NewInternalError("encoding request").WithCause(err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return pkgerrors.NewInternalError("building request").WithCause(err)
	}
	req.SetBasicAuth(c.creds.AccessKey, c.creds.SecretKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("onshape request", zap.String("method", method), zap.String("url", url))

	// Only transport failures and server errors count against the
	// breaker; a 4xx is the evaluator rejecting this request, not an
	// unhealthy service.
	var callErr error
	raw, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, pkgerrors.NewNetworkError("request failed", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, pkgerrors.NewNetworkError("reading response", err)
		}
		switch {
		case resp.StatusCode >= 500:
			return nil, pkgerrors.NewRemoteError(resp.StatusCode, string(data))
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			callErr = pkgerrors.NewAuthError(fmt.Sprintf("request rejected with status %d", resp.StatusCode))
			return nil, nil
		case resp.StatusCode >= 400:
			callErr = pkgerrors.NewRemoteError(resp.StatusCode, string(data))
			return nil, nil
		}
		return data, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return pkgerrors.NewNetworkError("circuit breaker open", err)
		}
		return err
	}
	if callErr != nil {
		return callErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw.([]byte), out); err != nil {
		return pkgerrors.NewRemoteError(http.StatusOK, "malformed response: "+err.Error())
	}
	return nil
}
