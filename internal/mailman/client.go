package mailman

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
)

// APIVersion is the REST API revision the client speaks
const APIVersion = "3.1"

// Config holds the connection parameters for the Mailman REST API
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8001/3.1
	BaseURL string

	// Username and Password are the REST admin credentials
	Username string
	Password string

	// Timeout bounds every request; zero means no timeout
	Timeout time.Duration

	// UserAgent is sent with every request when set
	UserAgent string
}

// basicAuthTransport injects the admin credentials into every request
type basicAuthTransport struct {
	username string
	password string
	agent    string
	next     http.RoundTripper
}

// RoundTrip sets BasicAuth on a clone of the request and forwards it
func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.SetBasicAuth(t.username, t.password)
	if t.agent != "" {
		r.Header.Set("User-Agent", t.agent)
	}
	return t.next.RoundTrip(r)
}

// Client talks to the Mailman 3 core REST API. Calls are synchronous and are
// never retried.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a new REST client with the given configuration
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("mailman client: base URL is required: %w", ErrInvalidInput)
	}
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("mailman client: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("mailman client: unsupported scheme %q: %w", u.Scheme, ErrInvalidInput)
	}

	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &basicAuthTransport{
				username: cfg.Username,
				password: cfg.Password,
				agent:    cfg.UserAgent,
				next:     http.DefaultTransport,
			},
		},
	}, nil
}

// SetLogger sets the logger used for request tracing
func (c *Client) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// BaseURL returns the API root the client is bound to
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// endpoint joins escaped path segments onto the base URL
func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Join(escaped, "/")
	return u.String()
}

// do performs a single request. Form data is sent url-encoded, and a JSON
// response body is decoded into out when out is not nil.
func (c *Client) do(ctx context.Context, method, endpoint string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logf("%s %s failed after %s: %v", method, req.URL.Path, time.Since(start), err)
		return fmt.Errorf("%s %s: %w: %v", method, req.URL.Path, ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	c.logf("%s %s -> %d (%s)", method, req.URL.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{
			Method:     method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Message:    errorDescription(data),
			kind:       statusKind(resp.StatusCode),
		}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response of %s %s: %w: %v", method, req.URL.Path, ErrInvalidFormat, err)
		}
	}
	return nil
}

// errorDescription extracts Mailman's {"title": ..., "description": ...} error body
func errorDescription(data []byte) string {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Description != "" {
			return body.Description
		}
		if body.Title != "" {
			return body.Title
		}
	}
	return string(data)
}

// System returns the system/versions resource used as the session handshake
func (c *Client) System(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.do(ctx, http.MethodGet, c.endpoint("system", "versions"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Handshake verifies the server speaks the REST API by checking for api_version
func (c *Client) Handshake(ctx context.Context) (string, error) {
	sys, err := c.System(ctx)
	if err != nil {
		return "", err
	}
	v, ok := sys["api_version"]
	if !ok {
		return "", fmt.Errorf("%s: missing api_version: %w", c.BaseURL(), ErrHandshake)
	}
	return fmt.Sprint(v), nil
}

// Lists returns all mailing lists in the order the server returns them
func (c *Client) Lists(ctx context.Context) ([]List, error) {
	var page entryPage[List]
	if err := c.do(ctx, http.MethodGet, c.endpoint("lists"), nil, &page); err != nil {
		return nil, err
	}
	return page.Entries, nil
}

// List fetches a single list by its fully-qualified name or list id
func (c *Client) List(ctx context.Context, fqdn string) (*List, error) {
	var l List
	if err := c.do(ctx, http.MethodGet, c.endpoint("lists", fqdn), nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// DeleteList removes a list and all of its data
func (c *Client) DeleteList(ctx context.Context, fqdn string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint("lists", fqdn), nil, nil)
}

// Members returns the member roster of a list
func (c *Client) Members(ctx context.Context, listID string) ([]Member, error) {
	var page entryPage[Member]
	if err := c.do(ctx, http.MethodGet, c.endpoint("lists", listID, "roster", "member"), nil, &page); err != nil {
		return nil, err
	}
	return page.Entries, nil
}

// Subscribe adds a member to a list
func (c *Client) Subscribe(ctx context.Context, req SubscribeRequest) (*Member, error) {
	if strings.TrimSpace(req.Subscriber) == "" {
		return nil, fmt.Errorf("subscribe: empty address: %w", ErrInvalidInput)
	}
	data, err := query.Values(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode subscription: %w", err)
	}
	// Mailman expects capitalised booleans for these flags
	for _, flag := range []string{"pre_verified", "pre_confirmed", "pre_approved"} {
		if b, err := strconv.ParseBool(data.Get(flag)); err == nil {
			data.Set(flag, pythonBool(b))
		}
	}

	var m Member
	if err := c.do(ctx, http.MethodPost, c.endpoint("members"), data, &m); err != nil {
		return nil, err
	}
	if m.Email == "" {
		m.Email = req.Subscriber
	}
	return &m, nil
}

// Unsubscribe removes the member with the given address from a list
func (c *Client) Unsubscribe(ctx context.Context, listID, email string) error {
	members, err := c.Members(ctx, listID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if strings.EqualFold(m.Email, email) {
			id := m.MemberID
			if id == "" {
				id = path.Base(m.SelfLink)
			}
			return c.do(ctx, http.MethodDelete, c.endpoint("members", id), nil, nil)
		}
	}
	return fmt.Errorf("%s is not a member of %s: %w", email, listID, ErrNotFound)
}

// Settings fetches the editable configuration of a list
func (c *Client) Settings(ctx context.Context, listID string) (*Settings, error) {
	var raw map[string]json.RawMessage
	if err := c.do(ctx, http.MethodGet, c.endpoint("lists", listID, "config"), nil, &raw); err != nil {
		return nil, err
	}
	values := make(map[string]SettingValue, len(raw))
	for k, v := range raw {
		if readOnlySettings[k] {
			continue
		}
		values[k] = settingFromJSON(v)
	}
	return NewSettings(listID, values, c), nil
}

// SaveSettings patches the changed settings of a list
func (c *Client) SaveSettings(ctx context.Context, listID string, changes map[string]SettingValue) error {
	form := url.Values{}
	for k, v := range changes {
		if v.Kind == KindBoolean {
			form.Set(k, pythonBool(v.Bool))
			continue
		}
		form.Set(k, v.String())
	}
	return c.do(ctx, http.MethodPatch, c.endpoint("lists", listID, "config"), form, nil)
}

// HeldCount returns the number of held messages using the held/count resource
func (c *Client) HeldCount(ctx context.Context, listID string) (int, error) {
	var out heldCount
	if err := c.do(ctx, http.MethodGet, c.endpoint("lists", listID, "held", "count"), nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// HeldMessages returns the moderation queue of a list
func (c *Client) HeldMessages(ctx context.Context, listID string) ([]HeldMessage, error) {
	var page entryPage[HeldMessage]
	if err := c.do(ctx, http.MethodGet, c.endpoint("lists", listID, "held"), nil, &page); err != nil {
		return nil, err
	}
	return page.Entries, nil
}

// HeldMessage fetches a single held message by its request id
func (c *Client) HeldMessage(ctx context.Context, listID string, requestID int) (*HeldMessage, error) {
	var m HeldMessage
	if err := c.do(ctx, http.MethodGet, c.endpoint("lists", listID, "held", strconv.Itoa(requestID)), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Configuration fetches every section of the global configuration
func (c *Client) Configuration(ctx context.Context) (Configuration, error) {
	var index configurationIndex
	if err := c.do(ctx, http.MethodGet, c.endpoint("system", "configuration"), nil, &index); err != nil {
		return nil, err
	}

	conf := make(Configuration, len(index.Sections))
	for _, link := range index.Sections {
		name := path.Base(strings.TrimRight(link, "/"))
		var raw map[string]json.RawMessage
		if err := c.do(ctx, http.MethodGet, c.endpoint("system", "configuration", name), nil, &raw); err != nil {
			return nil, fmt.Errorf("configuration section %s: %w", name, err)
		}
		section := make(map[string]string, len(raw))
		for k, v := range raw {
			if readOnlySettings[k] {
				continue
			}
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				s = string(v)
			}
			section[k] = s
		}
		conf[name] = section
	}
	return conf, nil
}

func pythonBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
