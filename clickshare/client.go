package clickshare

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Config defines the runtime configuration for one ClickShare device
// connection.
type Config struct {
	// BaseURL is the device API root, e.g. https://10.0.0.20:4003.
	BaseURL  string
	Login    string
	Password string
	// InsecureTLS skips certificate verification. ClickShare units ship
	// self-signed certificates.
	InsecureTLS bool
	Timeout     time.Duration
	// Cooldown overrides the post-control poll suppression window.
	Cooldown time.Duration
}

// CommandError is a device-side command failure: the request reached the
// device but came back non-2xx. The body is kept because v1 firmwares encode
// "resource does not exist" only in the failure text.
type CommandError struct {
	StatusCode int
	Body       string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("device returned %d: %s", e.StatusCode, e.Body)
}

// isResourceMissing reports whether a v1 failure means the resource is absent
// in this firmware rather than the device being unreachable.
func isResourceMissing(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr) && strings.Contains(cmdErr.Body, "Resource does not exist")
}

// client performs authenticated REST calls against one device. Writes are
// form-encoded key=value bodies; the device reports acceptance through a
// status field in the JSON response body, separate from the HTTP status.
type client struct {
	baseURL    string
	httpClient *http.Client
}

type basicAuthTransport struct {
	next  http.RoundTripper
	creds string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Basic "+t.creds)
	return t.next.RoundTrip(clone)
}

func newClient(cfg Config) (*client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var transport http.RoundTripper = http.DefaultTransport
	if cfg.InsecureTLS {
		transport = &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}}
	}

	creds := base64.StdEncoding.EncodeToString([]byte(cfg.Login + ":" + cfg.Password))
	return &client{
		baseURL: strings.TrimRight(base.String(), "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &basicAuthTransport{next: transport, creds: creds},
		},
	}, nil
}

func (c *client) get(ctx context.Context, path string, dest any) error {
	payload, err := c.do(ctx, http.MethodGet, path, "", "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

type writeResult struct {
	Status int `json:"status"`
}

// put sends a key=value configuration write (v1 generation). The returned
// bool is the device's acceptance of the write, not transport health.
func (c *client) put(ctx context.Context, path, key, value string) (bool, error) {
	return c.writeForm(ctx, http.MethodPut, path, key, value, http.StatusOK)
}

// patch sends a key=value configuration write (v2 generation).
func (c *client) patch(ctx context.Context, path, key, value string) (bool, error) {
	return c.writeForm(ctx, http.MethodPatch, path, key, value, http.StatusOK)
}

// post triggers a device action (v2 reboot/standby); accepted actions answer
// with body status 202.
func (c *client) post(ctx context.Context, path string) (bool, error) {
	payload, err := c.do(ctx, http.MethodPost, path, "", "")
	if err != nil {
		return false, err
	}
	return decodeWriteResult(path, payload, http.StatusAccepted)
}

func (c *client) writeForm(ctx context.Context, method, path, key, value string, accepted int) (bool, error) {
	form := url.Values{}
	form.Set(key, value)
	payload, err := c.do(ctx, method, path, form.Encode(), "application/x-www-form-urlencoded")
	if err != nil {
		return false, err
	}
	return decodeWriteResult(path, payload, accepted)
}

func decodeWriteResult(path string, payload []byte, accepted int) (bool, error) {
	var result writeResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return false, fmt.Errorf("decode %s response: %w", path, err)
	}
	return result.Status == accepted, nil
}

func (c *client) do(ctx context.Context, method, path, body, contentType string) ([]byte, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &CommandError{StatusCode: resp.StatusCode, Body: string(payload)}
	}
	return payload, nil
}
