package kampusapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/kampushq/kampus/core"
	"github.com/kampushq/kampus/core/user"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("not authenticated")
)

// APIError is a non-2xx response from the Kampus API with a decoded message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kampus api: %d %s", e.StatusCode, e.Message)
}

// Client talks to the Kampus REST API. It implements the core repository
// interfaces (report.Repository, student.Repository, nav.UnreadCounter) so
// domain services stay transport-agnostic.
type Client struct {
	baseURL string
	http    *http.Client
	session user.Session
	log     core.Logger
}

func NewClient(conf *core.Config, log core.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.API.BaseURL, "/"),
		http:    &http.Client{Timeout: conf.API.Timeout},
		log:     log,
	}
}

// UseSession attaches the session whose token authenticates subsequent requests.
func (c *Client) UseSession(s user.Session) {
	c.session = s
}

func (c *Client) Session() user.Session {
	return c.session
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request body")
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, buf)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	return req, nil
}

// do issues a JSON request and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.asError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding %s %s response", method, path)
	}
	return nil
}

// doRaw issues a request and returns the raw body plus headers, for blob endpoints.
func (c *Client) doRaw(ctx context.Context, method, path string) ([]byte, http.Header, error) {
	req, err := c.newRequest(ctx, method, path, nil, nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, nil, c.asError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s %s response", method, path)
	}
	return data, resp.Header, nil
}

func (c *Client) asError(resp *http.Response) error {
	var payload struct {
		Error interface{} `json:"error"`
	}
	msg := http.StatusText(resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != nil {
		msg = fmt.Sprintf("%v", payload.Error)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return errors.Wrap(ErrUnauthorized, msg)
	case http.StatusNotFound:
		return errors.Wrap(ErrNotFound, msg)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
