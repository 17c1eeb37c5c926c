// AngelaMos | 2026
// endpoints.go

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/baytalsudani/console/internal/core"
)

// Login posts credentials to /auth/{role}/login. Admins sign in with a
// username and merchants with an email; the identifier goes in that field.
func (c *Client) Login(
	ctx context.Context,
	role, identifier, password string,
) (*LoginResult, error) {
	body := map[string]string{"password": password}
	if role == "merchant" {
		body["email"] = identifier
	} else {
		body["username"] = identifier
	}

	var resp struct {
		LoginResult
		User *LoginResult `json:"user"`
	}

	err := c.do(ctx, http.MethodPost, "/auth/"+role+"/login", nil, body, &resp)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			switch statusErr.Status {
			case http.StatusUnauthorized:
				return nil, fmt.Errorf("%w: %w", core.ErrInvalidCredentials, err)
			case http.StatusNotFound:
				return nil, err
			default:
				return nil, fmt.Errorf("login: %w: status %d", core.ErrServer, statusErr.Status)
			}
		}
		return nil, err
	}

	if resp.User != nil {
		return resp.User, nil
	}
	return &resp.LoginResult, nil
}

func (c *Client) ToggleUserStatus(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodPost, idPath("/users", userID, "toggle-status"), nil, nil, nil)
}

// MerchantStore fetches the store owned by a merchant.
func (c *Client) MerchantStore(ctx context.Context, merchantID int64, out any) error {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, idPath("/merchants", merchantID, "store"), nil, nil, &raw); err != nil {
		return err
	}

	var wrapped map[string]json.RawMessage
	if json.Unmarshal(raw, &wrapped) == nil {
		if inner, ok := wrapped["store"]; ok {
			raw = inner
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode merchant store: %w: %w", core.ErrServer, err)
	}
	return nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	return c.do(ctx, http.MethodPut, idPath("/orders", orderID, "status"), nil,
		map[string]string{"status": status}, nil)
}

// Stats returns the API's dashboard counters as loose JSON.
func (c *Client) Stats(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	if err := c.do(ctx, http.MethodGet, "/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Subscription(ctx context.Context, merchantID int64) (map[string]any, error) {
	out := map[string]any{}
	if err := c.do(ctx, http.MethodGet, idPath("/subscriptions", merchantID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubscriptionHistory(ctx context.Context, merchantID int64) ([]map[string]any, error) {
	var out struct {
		History []map[string]any `json:"history"`
	}
	if err := c.do(ctx, http.MethodGet, idPath("/subscriptions", merchantID, "history"), nil, nil, &out); err != nil {
		return nil, err
	}
	if out.History == nil {
		return []map[string]any{}, nil
	}
	return out.History, nil
}
