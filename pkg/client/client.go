package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"syscall"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/healthcalc/pkg/calc/validate"
	"github.com/charlie0129/healthcalc/pkg/types"
)

const unixPrefix = "unix://"

// Client talks to a healthcalc server.
type Client struct {
	baseURL    string
	socketPath string
	httpClient *http.Client
}

// NewClient creates a client for addr, either an http(s) URL, a host:port
// or unix:///path/to/socket.
func NewClient(addr string) *Client {
	if strings.HasPrefix(addr, unixPrefix) {
		return newUnixClient(strings.TrimPrefix(addr, unixPrefix))
	}

	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	dialer := &net.Dialer{Timeout: 5 * time.Second}
	return &Client{
		baseURL: strings.TrimRight(addr, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, network, address string) (net.Conn, error) {
					conn, err := dialer.DialContext(ctx, network, address)
					if err != nil && errors.Is(err, syscall.ECONNREFUSED) {
						return nil, ErrServerNotRunning
					}
					return conn, err
				},
			},
		},
	}
}

func newUnixClient(socketPath string) *Client {
	return &Client{
		baseURL:    "http://unix",
		socketPath: socketPath,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
					var d net.Dialer
					conn, err := d.DialContext(ctx, "unix", socketPath)
					if err != nil {
						if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ECONNREFUSED) {
							return nil, ErrServerNotRunning
						}
						if errors.Is(err, os.ErrPermission) {
							return nil, ErrPermissionDenied
						}
						logrus.Errorf("failed to connect to unix socket: %v", err)
						return nil, err
					}
					return conn, nil
				},
			},
		},
	}
}

// Send sends a request with an optional JSON body and returns the raw
// response body.
//
// Non-2xx responses become errors: a 422 is returned as a
// *validate.ValidationError, a 404 wraps ErrNotFound.
func (c *Client) Send(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to encode request")
		}
		payload = bytes.NewReader(b)
	}

	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"server": c.address(),
	}).Debug("sending request")

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Keep the sentinels visible through the *url.Error.
		switch {
		case errors.Is(err, ErrServerNotRunning):
			return nil, ErrServerNotRunning
		case errors.Is(err, ErrPermissionDenied):
			return nil, ErrPermissionDenied
		}
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.Errorf("failed to close response body: %v", err)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseError(resp.StatusCode, b)
	}

	return b, nil
}

func responseError(code int, body []byte) error {
	var er types.ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error == "" {
		er.Error = strings.TrimSpace(string(body))
	}

	switch {
	case code == http.StatusNotFound:
		return pkgerrors.Wrap(ErrNotFound, er.Error)
	case code == http.StatusUnprocessableEntity && len(er.Fields) > 0:
		return &validate.ValidationError{Fields: er.Fields}
	default:
		return fmt.Errorf("got %d: %s", code, er.Error)
	}
}

func (c *Client) address() string {
	if c.socketPath != "" {
		return unixPrefix + c.socketPath
	}
	return c.baseURL
}

// Get sends a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	b, err := c.Send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(b, out)
}

// Post sends in as JSON and decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	b, err := c.Send(ctx, http.MethodPost, path, in)
	if err != nil {
		return err
	}
	return decode(b, out)
}

func decode(b []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return pkgerrors.Wrap(err, "failed to decode response")
	}
	return nil
}
