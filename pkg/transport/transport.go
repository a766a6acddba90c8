// Package transport performs the raw HTTP calls against the two upstream
// services (market-data feed and trading backend) and maps responses into
// typed values or errors. Callers never touch resty or net/http directly.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/logger"
)

// Params holds query parameters for a request. nil and empty values are
// omitted; time.Time values are serialized according to the client profile.
type Params map[string]interface{}

// RequestError is returned for any non-2xx upstream response.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
}

// wallClockFields are the market-feed parameters that carry a time-of-day
// rather than an absolute timestamp. The feed identifies prices by wall-clock
// time within the trading day, so these must serialize as HH:MM:SS.
var wallClockFields = map[string]bool{
	"timeStamp":       true,
	"periodStartTime": true,
	"periodEndTime":   true,
	"WhatTime":        true,
}

// Client is a thin resty wrapper bound to one upstream base URL.
type Client struct {
	http      *resty.Client
	name      string
	wallClock map[string]bool
}

// defaultTimeout applies when the caller passes a non-positive timeout.
const defaultTimeout = 30 * time.Second

// NewMarketClient builds a client for the market-data feed. Known
// time-of-day parameters serialize as wall-clock time.
func NewMarketClient(baseURL string, timeout time.Duration) *Client {
	return newClient("market", baseURL, timeout, wallClockFields)
}

// NewTradingClient builds a client for the trading backend. All time
// parameters serialize as RFC 3339.
func NewTradingClient(baseURL string, timeout time.Duration) *Client {
	return newClient("trading", baseURL, timeout, nil)
}

func newClient(name, baseURL string, timeout time.Duration, wallClock map[string]bool) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:      client,
		name:      name,
		wallClock: wallClock,
	}
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, params Params, out interface{}) error {
	req := c.http.R().SetContext(ctx)
	for k, v := range params {
		if s, ok := c.encodeParam(k, v); ok {
			req.SetQueryParam(k, s)
		}
	}
	resp, err := req.Get(path)
	return c.finish(http.MethodGet, path, resp, err, out)
}

// Post performs a POST request with a JSON body and decodes the response.
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(path)
	return c.finish(http.MethodPost, path, resp, err, out)
}

// Put performs a PUT request carrying params in the query string, matching
// the trading backend's deposit/withdraw contract.
func (c *Client) Put(ctx context.Context, path string, params Params, out interface{}) error {
	req := c.http.R().SetContext(ctx)
	for k, v := range params {
		if s, ok := c.encodeParam(k, v); ok {
			req.SetQueryParam(k, s)
		}
	}
	resp, err := req.Put(path)
	return c.finish(http.MethodPut, path, resp, err, out)
}

// finish maps the raw response to a typed result or error. Failures are
// logged once here; callers must not log them again.
func (c *Client) finish(method, path string, resp *resty.Response, err error, out interface{}) error {
	if err != nil {
		logger.WithField("upstream", c.name).Errorf("%s %s: %v", method, path, err)
		return errors.Wrapf(err, "%s %s", method, path)
	}

	if resp.IsError() {
		reqErr := &RequestError{
			Status:  resp.StatusCode(),
			Message: errorMessage(resp.StatusCode(), resp.Body()),
		}
		logger.WithField("upstream", c.name).Errorf("%s %s: %v", method, path, reqErr)
		return reqErr
	}

	if resp.StatusCode() == http.StatusNoContent || out == nil || len(resp.Body()) == 0 {
		return nil
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		logger.WithField("upstream", c.name).Errorf("%s %s: decode: %v", method, path, err)
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}
	return nil
}

// errorMessage pulls the message field out of a JSON error body when the
// upstream provides one.
func errorMessage(status int, body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
		return parsed.Message
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

func (c *Client) encodeParam(key string, val interface{}) (string, bool) {
	switch v := val.(type) {
	case nil:
		return "", false
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		if c.wallClock[key] {
			return v.Format("15:04:05"), true
		}
		return v.Format(time.RFC3339), true
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	default:
		return fmt.Sprint(val), true
	}
}
