// Package client provides a minimal client for a SWAIG endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultSignatureTTL = 5 * time.Minute

// Client talks to one SWAIG endpoint.
type Client struct {
	URL      string
	Username string
	Password string
	HTTP     *http.Client

	cache        *Cache
	signatureTTL time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBasicAuth sets credentials sent with every request.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.Username = username
		c.Password = password
	}
}

// WithSignatureTTL controls how long fetched catalogs are reused. Zero disables caching.
func WithSignatureTTL(ttl time.Duration) Option {
	return func(c *Client) { c.signatureTTL = ttl }
}

// New returns a new client for endpoint, the full URL of the /swaig route. Credentials
// embedded in the URL are used for basic auth. If httpClient is nil, a default with 15s
// timeout is used.
func New(endpoint string, httpClient *http.Client, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme and host required", endpoint)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	c := &Client{HTTP: httpClient, cache: NewCache(), signatureTTL: defaultSignatureTTL}
	if u.User != nil {
		c.Username = u.User.Username()
		c.Password, _ = u.User.Password()
		u.User = nil
	}
	c.URL = u.String()
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Signature describes one tool as returned by a catalog request.
type Signature struct {
	Description string         `json:"description"`
	Function    string         `json:"function"`
	Parameters  map[string]any `json:"parameters"`
	WebHookURL  string         `json:"web_hook_url"`
}

// CallRequest is one tool invocation.
type CallRequest struct {
	Function      string
	Arguments     map[string]any
	MetaData      map[string]any
	MetaDataToken string
}

// CallResult is the decoded invocation response.
type CallResult struct {
	Response    any
	SetMetaData map[string]any
}

type callResponse struct {
	Response any `json:"response"`
	Action   []struct {
		SetMetaData map[string]any `json:"set_meta_data"`
	} `json:"action"`
}

// Signature fetches the catalog for names, or every tool when names is empty.
func (c *Client) Signature(ctx context.Context, names ...string) ([]Signature, error) {
	key := cacheKey(names)
	if c.signatureTTL > 0 {
		if v, ok := c.cache.Get(key); ok {
			return v.([]Signature), nil
		}
	}
	body := map[string]any{"action": "get_signature"}
	if len(names) > 0 {
		body["functions"] = names
	}
	var sigs []Signature
	if err := c.post(ctx, body, &sigs); err != nil {
		return nil, err
	}
	if c.signatureTTL > 0 {
		c.cache.Set(key, sigs, c.signatureTTL)
	}
	return sigs, nil
}

// Call invokes a tool. A missing MetaDataToken is replaced by a random one.
func (c *Client) Call(ctx context.Context, req CallRequest) (*CallResult, error) {
	if req.Function == "" {
		return nil, fmt.Errorf("function name required")
	}
	token := req.MetaDataToken
	if token == "" {
		token = uuid.NewString()
	}
	args := req.Arguments
	if args == nil {
		args = map[string]any{}
	}
	body := map[string]any{
		"function":        req.Function,
		"argument":        map[string]any{"parsed": []any{args}},
		"meta_data_token": token,
	}
	if req.MetaData != nil {
		body["meta_data"] = req.MetaData
	}
	var resp callResponse
	if err := c.post(ctx, body, &resp); err != nil {
		return nil, err
	}
	out := &CallResult{Response: resp.Response}
	for _, a := range resp.Action {
		if a.SetMetaData != nil {
			out.SetMetaData = a.SetMetaData
		}
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Username != "" {
		req.SetBasicAuth(c.Username, c.Password)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("swaig status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func cacheKey(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return "signature:" + strings.Join(sorted, ",")
}
