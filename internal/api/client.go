// ABOUTME: HTTP adapter for the campus API
// ABOUTME: Cookie-credentialed requests with uniform error shaping

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
)

// TokenCookie is the session cookie the backend sets at login.
const TokenCookie = "access_token"

// Error is a server-reported failure: the request reached the backend
// and it answered with a non-2xx status.
type Error struct {
	Status  int
	Message string
	Payload map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// NetworkError is a transport failure: the request never produced a
// response. Distinct from *Error so callers can tell "server said no"
// from "never reached server".
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network request failed: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ErrInvalidPayload reports a 2xx response whose body failed to decode
// or failed validation. Malformed data never enters the cache.
var ErrInvalidPayload = errors.New("invalid payload from server")

// Client talks to the campus API. Every request carries cookies
// automatically; no caller manages the session token except the
// email-verification callback, which passes it explicitly.
type Client struct {
	base *url.URL
	hc   *http.Client
}

// New creates a client for the given base URL. A previously persisted
// access token, when present, is seeded into the cookie jar so the
// session survives process restarts.
func New(baseURL, accessToken string) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if accessToken != "" {
		jar.SetCookies(base, []*http.Cookie{{Name: TokenCookie, Value: accessToken}})
	}

	return &Client{base: base, hc: &http.Client{Jar: jar}}, nil
}

// AccessToken returns the current session cookie value, or "" when the
// backend has not set one.
func (c *Client) AccessToken() string {
	for _, ck := range c.hc.Jar.Cookies(c.base) {
		if ck.Name == TokenCookie {
			return ck.Value
		}
	}
	return ""
}

// ClearSession drops all cookies for the backend origin.
func (c *Client) ClearSession() {
	jar, _ := cookiejar.New(nil)
	c.hc.Jar = jar
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.base.String()
}

type reqOptions struct {
	body        any       // JSON-encoded request body
	raw         io.Reader // raw body (multipart uploads)
	contentType string    // content type for raw bodies
	token       string    // explicit bearer token (callback bootstrap only)
}

func (c *Client) do(ctx context.Context, method, path string, opt reqOptions, out any) error {
	var body io.Reader
	contentType := ""
	switch {
	case opt.raw != nil:
		body = opt.raw
		contentType = opt.contentType
	case opt.body != nil:
		data, err := json.Marshal(opt.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if opt.token != "" {
		req.Header.Set("Authorization", "Bearer "+opt.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

// decodeError shapes a non-2xx response into *Error, preferring the
// backend's JSON error body and falling back to the status text.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return apiErr
	}
	apiErr.Payload = payload
	if detail, ok := payload["detail"].(string); ok && detail != "" {
		apiErr.Message = detail
	} else if msg, ok := payload["message"].(string); ok && msg != "" {
		apiErr.Message = msg
	}
	return apiErr
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, reqOptions{}, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, reqOptions{body: body}, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, reqOptions{body: body}, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, reqOptions{body: body}, out)
}

func (c *Client) del(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodDelete, path, reqOptions{body: body}, out)
}

// getBlob fetches a binary response (signed previews, generated PDFs).
func (c *Client) getBlob(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String()+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	return io.ReadAll(resp.Body)
}

// postFile uploads a single file as multipart form data.
func (c *Client) postFile(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.do(ctx, http.MethodPost, path, reqOptions{raw: &buf, contentType: w.FormDataContentType()}, out)
}
