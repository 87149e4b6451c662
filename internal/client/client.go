// Package client talks to the HRMS REST API. It implements the employee,
// site and salary data services used by the list and salary form
// controllers, plus login for obtaining a bearer token.
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

	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/query"

	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// Error is a network or server failure. Status is zero when no response
// was received.
type Error struct {
	Op      string
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	default:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage is the text shown to an end user for this failure.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "Could not reach the server, please try again"
}

// Result is the outcome of a mutation.
type Result struct {
	Success bool
	Message string
}

type envelope struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message"`
	Data       json.RawMessage       `json:"data"`
	Pagination *query.PaginationMeta `json:"pagination"`
	Error      *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l.Named("client") }
}

// New returns a client for the API rooted at baseURL, e.g.
// http://localhost:3000/api/v1.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  zap.L().Named("client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Auth() *AuthService {
	return &AuthService{c: c}
}

func (c *Client) Employees() *EmployeeService {
	return &EmployeeService{c: c}
}

func (c *Client) Sites() *SiteService {
	return &SiteService{c: c}
}

func (c *Client) Salaries() *SalaryService {
	return &SalaryService{c: c}
}

// do sends one request and decodes the envelope. data, when non-nil,
// receives the envelope's data field.
func (c *Client) do(ctx context.Context, op, method, path string, params url.Values, body any, data any) (envelope, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return envelope{}, &Error{Op: op, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return envelope{}, &Error{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("op", op), zap.String("url", endpoint), zap.Error(err))
		return envelope{}, &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request done",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
		return envelope{}, &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		e := &Error{Op: op, Status: resp.StatusCode, Message: env.Message}
		if env.Error != nil {
			e.Code = env.Error.Code
			if env.Error.Message != "" {
				e.Message = env.Error.Message
			}
		}
		return env, e
	}

	if data != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, data); err != nil {
			return env, &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
		}
	}
	return env, nil
}
