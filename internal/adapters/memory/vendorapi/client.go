package vendorapi

import (
	"context"
	"net/http"
	"sync"

	"github.com/harborline/sso-migrate/internal/domain"
	"github.com/harborline/sso-migrate/internal/ports/out/vendorapi"
)

// Client is a scripted in-memory implementation of vendorapi.Client for
// tests. Statuses default to 200; tests override behavior per operation and
// per member before use. It records every mutating request it receives.
type Client struct {
	mu sync.Mutex

	// Members is returned by ListMembers when ListStatus is 200.
	Members []domain.Member
	// ListStatus overrides the list response status; 0 means 200.
	ListStatus int
	// ListErr, when set, simulates a connectivity fault on fetch.
	ListErr error

	// Per-email (invite) and per-subject (update/delete) status overrides;
	// a missing entry means 200. The *Err maps simulate connectivity faults.
	InviteStatus map[string]int
	InviteErr    map[string]error
	UpdateStatus map[domain.SubjectID]int
	UpdateErr    map[domain.SubjectID]error
	DeleteStatus map[domain.SubjectID]int
	DeleteErr    map[domain.SubjectID]error

	Invites []vendorapi.InviteRequest
	Updates []vendorapi.UpdateRequest
	Deletes []vendorapi.DeleteRequest
}

func NewClient() *Client {
	return &Client{
		InviteStatus: make(map[string]int),
		InviteErr:    make(map[string]error),
		UpdateStatus: make(map[domain.SubjectID]int),
		UpdateErr:    make(map[domain.SubjectID]error),
		DeleteStatus: make(map[domain.SubjectID]int),
		DeleteErr:    make(map[domain.SubjectID]error),
	}
}

func (c *Client) ListMembers(ctx context.Context, team domain.TeamConfig) ([]domain.Member, vendorapi.Result, error) {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ListErr != nil {
		return nil, vendorapi.Result{}, c.ListErr
	}
	status := c.ListStatus
	if status == 0 {
		status = http.StatusOK
	}
	if status != http.StatusOK {
		return nil, result(status), nil
	}
	out := make([]domain.Member, len(c.Members))
	copy(out, c.Members)
	return out, result(status), nil
}

func (c *Client) InviteMember(ctx context.Context, req vendorapi.InviteRequest, apiKey string) (vendorapi.Result, error) {
	_, _ = ctx, apiKey
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.InviteErr[req.Email]; err != nil {
		return vendorapi.Result{}, err
	}
	c.Invites = append(c.Invites, req)
	return result(statusOr(c.InviteStatus, req.Email)), nil
}

func (c *Client) UpdateMember(ctx context.Context, req vendorapi.UpdateRequest, apiKey string) (vendorapi.Result, error) {
	_, _ = ctx, apiKey
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.UpdateErr[req.Subject]; err != nil {
		return vendorapi.Result{}, err
	}
	c.Updates = append(c.Updates, req)
	return result(statusOr(c.UpdateStatus, req.Subject)), nil
}

func (c *Client) DeleteMember(ctx context.Context, req vendorapi.DeleteRequest, apiKey string) (vendorapi.Result, error) {
	_, _ = ctx, apiKey
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.DeleteErr[req.Subject]; err != nil {
		return vendorapi.Result{}, err
	}
	c.Deletes = append(c.Deletes, req)
	return result(statusOr(c.DeleteStatus, req.Subject)), nil
}

// MutationCalls counts every mutating/inviting request received.
func (c *Client) MutationCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Invites) + len(c.Updates) + len(c.Deletes)
}

var _ vendorapi.Client = (*Client)(nil)

func statusOr[K comparable](m map[K]int, key K) int {
	if s, ok := m[key]; ok && s != 0 {
		return s
	}
	return http.StatusOK
}

func result(status int) vendorapi.Result {
	return vendorapi.Result{Status: status, StatusText: http.StatusText(status)}
}
