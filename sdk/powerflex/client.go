// Copyright © 2024 The ansible-powerflex authors

// Package powerflex is a thin client for the PowerFlex gateway REST API.
// It covers the subset of the API needed to manage SDCs and NVMe hosts:
// authentication, instance queries, rename/modify actions and removal.
package powerflex

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Client talks to a single PowerFlex gateway.
//
// Authenticate must be called before any other request. The gateway hands
// out a session token on login; every subsequent request authenticates with
// basic auth using the username and that token as the password.
type Client struct {
	// endpoint is the gateway base URL, e.g. https://gateway.example.com
	endpoint string

	httpClient *http.Client

	username string
	token    string

	log *zap.Logger

	Sdc  *SdcService
	Host *HostService
}

// NewClient returns a client for the gateway at endpoint. When insecure is
// set, TLS certificate verification is disabled.
func NewClient(endpoint string, insecure bool) *Client {
	httpClient := &http.Client{Timeout: defaultTimeout}
	if insecure {
		zap.L().Debug("certificate verification disabled for gateway connection")
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: httpClient,
		log:        zap.L(),
	}
	c.Sdc = &SdcService{client: c}
	c.Host = &HostService{client: c}
	return c
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests to
// inject a fake transport.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// WithLogger replaces the client logger.
func (c *Client) WithLogger(log *zap.Logger) *Client {
	c.log = log
	return c
}

// Authenticate logs in to the gateway and stores the session token.
/*
[Example Request]
curl -k -u $USERNAME:$PASSWORD https://$GATEWAY/api/login

[Example Response]
Status: 200 OK
Body:
"YWRtaW46MTYzMDQ5..."
*/
func (c *Client) Authenticate(ctx context.Context, username, password string) error {
	loginEndpoint := c.endpoint + "/api/login"
	c.log.Debug("requesting a new gateway session token", zap.String("url", loginEndpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loginEndpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(username, password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, respBody)
	}

	// The token comes back as a bare JSON string.
	var token string
	if err := json.Unmarshal(respBody, &token); err != nil {
		token = strings.Trim(strings.TrimSpace(string(respBody)), `"`)
	}
	if token == "" {
		return fmt.Errorf("gateway login response did not contain a session token")
	}

	c.username = username
	c.token = token
	return nil
}

// Version returns the gateway API version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/version", nil)
	if err != nil {
		return "", err
	}
	var version string
	if err := json.Unmarshal(body, &version); err != nil {
		version = strings.Trim(strings.TrimSpace(string(body)), `"`)
	}
	return version, nil
}

// do performs an authenticated request and returns the raw response body.
// Gateway errors (status >= 400) are returned as *APIError.
func (c *Client) do(ctx context.Context, method, path string, reqBody any) ([]byte, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		encoded, err := json.Marshal(reqBody)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.Debug("gateway request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// doJSON performs an authenticated request and unmarshals the response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, reqBody, out any) error {
	respBody, err := c.do(ctx, method, path, reqBody)
	if err != nil {
		return err
	}
	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse gateway response: %w", err)
		}
	}
	return nil
}

// APIError is an error response from the gateway.
type APIError struct {
	Message        string `json:"message"`
	HTTPStatusCode int    `json:"httpStatusCode"`
	ErrorCode      int    `json:"errorCode"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway error (status %d): %s", e.HTTPStatusCode, e.Message)
	}
	return fmt.Sprintf("gateway error (status %d)", e.HTTPStatusCode)
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.HTTPStatusCode == 0 {
		apiErr.HTTPStatusCode = statusCode
	}
	return apiErr
}
