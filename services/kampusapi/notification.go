package kampusapi

import (
	"context"
	"net/http"

	"github.com/kampushq/kampus/core/nav"
)

var _ nav.UnreadCounter = (*Client)(nil)

// UnreadCount fetches the unread notifications count for the logged-in user.
// A fetch failure is an error, never a silent zero: callers must be able to
// tell "no notifications" from "could not ask".
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/notifications/unread-count", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
