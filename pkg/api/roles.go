package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hirewatch/hirewatch/pkg/hiring"
	"github.com/hirewatch/hirewatch/pkg/whttp"
)

// ListRoles fetches roles. With activeOnly false the result includes
// soft-deleted roles, which views need to resolve historical references.
func (c *Client) ListRoles(ctx context.Context, activeOnly bool) ([]hiring.Role, error) {
	query := url.Values{"active_only": []string{strconv.FormatBool(activeOnly)}}
	var out []hiring.Role
	err := c.do(ctx, request{op: "roles.list", method: http.MethodGet, path: "/roles/", query: query}, &out)
	return out, err
}

// GetRole fetches one role by id.
func (c *Client) GetRole(ctx context.Context, id string) (*hiring.Role, error) {
	var out hiring.Role
	err := c.do(ctx, request{op: "roles.get", method: http.MethodGet, path: "/roles/" + id}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRole creates a role and returns the server's representation.
func (c *Client) CreateRole(ctx context.Context, in hiring.RoleInput) (*hiring.Role, error) {
	body, contentType, err := whttp.JSONBody(in)
	if err != nil {
		return nil, &Error{Kind: KindBadRequest, Op: "roles.create", Err: err}
	}
	var out hiring.Role
	if err := c.do(ctx, request{
		op:          "roles.create",
		method:      http.MethodPost,
		path:        "/roles/",
		body:        body,
		contentType: contentType,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRole applies a partial update and returns the server's representation.
func (c *Client) UpdateRole(ctx context.Context, id string, patch hiring.RolePatch) (*hiring.Role, error) {
	body, contentType, err := whttp.JSONBody(patch)
	if err != nil {
		return nil, &Error{Kind: KindBadRequest, Op: "roles.update", Err: err}
	}
	var out hiring.Role
	if err := c.do(ctx, request{
		op:          "roles.update",
		method:      http.MethodPut,
		path:        "/roles/" + id,
		body:        body,
		contentType: contentType,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRole soft-deletes a role: the backend flips is_active and keeps the
// record addressable.
func (c *Client) DeleteRole(ctx context.Context, id string) error {
	return c.do(ctx, request{
		op:         "roles.delete",
		method:     http.MethodDelete,
		path:       "/roles/" + id,
		wantStatus: http.StatusNoContent,
	}, nil)
}
