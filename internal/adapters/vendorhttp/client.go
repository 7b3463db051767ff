// Package vendorhttp binds the vendorapi port to the platform's JSON API.
//
// Ordinary API failures (any response with a status code) are translated into
// vendorapi.Result values; a Go error only ever means the request produced no
// response at all.
package vendorhttp

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

	"github.com/harborline/sso-migrate/internal/domain"
	"github.com/harborline/sso-migrate/internal/ports/out/vendorapi"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client (e.g. for tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithTimeout replaces the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type listResponse struct {
	Members []domain.Member `json:"members"`
}

func (c *Client) ListMembers(ctx context.Context, team domain.TeamConfig) ([]domain.Member, vendorapi.Result, error) {
	q := url.Values{}
	q.Set("teamId", string(team.TeamID))
	q.Set("type", "member")
	q.Set("includeMetadata", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/members?"+q.Encode(), nil)
	if err != nil {
		return nil, vendorapi.Result{}, err
	}
	req.Header.Set("Authorization", team.APIKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, vendorapi.Result{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	res := toResult(resp)
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, res, nil
	}
	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, res, fmt.Errorf("decode members response: %w", err)
	}
	return lr.Members, res, nil
}

func (c *Client) InviteMember(ctx context.Context, req vendorapi.InviteRequest, apiKey string) (vendorapi.Result, error) {
	return c.send(ctx, http.MethodPost, req, apiKey)
}

func (c *Client) UpdateMember(ctx context.Context, req vendorapi.UpdateRequest, apiKey string) (vendorapi.Result, error) {
	return c.send(ctx, http.MethodPatch, req, apiKey)
}

func (c *Client) DeleteMember(ctx context.Context, req vendorapi.DeleteRequest, apiKey string) (vendorapi.Result, error) {
	return c.send(ctx, http.MethodDelete, req, apiKey)
}

func (c *Client) send(ctx context.Context, method string, body any, apiKey string) (vendorapi.Result, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return vendorapi.Result{}, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/members", bytes.NewReader(data))
	if err != nil {
		return vendorapi.Result{}, err
	}
	req.Header.Set("Authorization", apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return vendorapi.Result{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	// Success payloads are vendor-defined and unused; drain to reuse the
	// connection.
	_, _ = io.Copy(io.Discard, resp.Body)

	return toResult(resp), nil
}

var _ vendorapi.Client = (*Client)(nil)

func toResult(resp *http.Response) vendorapi.Result {
	return vendorapi.Result{Status: resp.StatusCode, StatusText: resp.Status}
}
