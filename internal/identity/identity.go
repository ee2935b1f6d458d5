// Package identity talks to the external identity widget. The widget owns
// signup, login UI, and tokens; this client only resolves a bearer token to
// a display name and relays login/logout transitions to subscribers.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// AnonymousUser is used when no identity endpoint is configured.
const AnonymousUser = "anonymous"

type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Client struct {
	baseURL string
	client  *http.Client

	mu        sync.Mutex
	loginFns  []func(User)
	logoutFns []func()
}

// NewClient builds an identity client. An empty baseURL disables identity;
// Resolve then maps every token to the anonymous user.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Resolve maps a bearer token to a user via the identity endpoint.
func (c *Client) Resolve(ctx context.Context, token string) (User, error) {
	if !c.Enabled() {
		return User{Name: AnonymousUser}, nil
	}
	if token == "" {
		return User{}, fmt.Errorf("missing bearer token")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("identity lookup returned status %d", resp.StatusCode)
	}

	var payload struct {
		Email        string `json:"email"`
		UserMetadata struct {
			FullName string `json:"full_name"`
		} `json:"user_metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return User{}, fmt.Errorf("failed to decode identity response: %w", err)
	}

	name := payload.UserMetadata.FullName
	if name == "" {
		name = payload.Email
	}
	if name == "" {
		return User{}, fmt.Errorf("identity response carried no user")
	}

	return User{Name: name, Email: payload.Email}, nil
}

// OnLogin registers a callback fired on every login transition.
func (c *Client) OnLogin(fn func(User)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loginFns = append(c.loginFns, fn)
}

// OnLogout registers a callback fired on every logout transition.
func (c *Client) OnLogout(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logoutFns = append(c.logoutFns, fn)
}

func (c *Client) NotifyLogin(user User) {
	c.mu.Lock()
	fns := append([]func(User){}, c.loginFns...)
	c.mu.Unlock()
	for _, fn := range fns {
		fn(user)
	}
}

func (c *Client) NotifyLogout() {
	c.mu.Lock()
	fns := append([]func(){}, c.logoutFns...)
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
