package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAPITimeout  = 2 * time.Minute
	DefaultPartTimeout = 1 * time.Hour
)

type Options struct {
	// VerifyTLS disables certificate verification when false. Used for
	// dev instances with self-signed certificates.
	VerifyTLS   bool
	APITimeout  time.Duration
	PartTimeout time.Duration
}

// Client talks to an InvenioRDM instance. API calls carry the bearer
// token; presigned storage PUTs go through a separate http.Client with
// a longer timeout and no credentials.
type Client struct {
	baseURL string
	token   string
	api     *http.Client
	storage *http.Client
}

func New(baseURL, token string, opts Options) *Client {
	if opts.APITimeout <= 0 {
		opts.APITimeout = DefaultAPITimeout
	}
	if opts.PartTimeout <= 0 {
		opts.PartTimeout = DefaultPartTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !opts.VerifyTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		api:     &http.Client{Transport: transport, Timeout: opts.APITimeout},
		storage: &http.Client{Transport: transport, Timeout: opts.PartTimeout},
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, nil, out)
}

func (c *Client) Put(ctx context.Context, path string, body any, headers map[string]string, out any) error {
	return c.do(ctx, http.MethodPut, path, body, headers, out)
}

func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.api.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{Status: resp.StatusCode, Body: string(raw)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &HTTPError{Status: resp.StatusCode, URL: url, Body: string(raw)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ProtocolError{URL: url, Status: resp.StatusCode, Body: string(raw), Err: err}
	}
	return nil
}

// PutPresigned uploads one part body to a presigned storage URL. The
// status and raw response body are returned so the caller can decide
// what a failure means; only transport-level problems come back as an
// error.
func (c *Client) PutPresigned(ctx context.Context, url string, data []byte, checksum string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return 0, "", err
	}
	req.ContentLength = int64(len(data))
	req.Header.Set("Content-Length", strconv.Itoa(len(data)))
	req.Header.Set("Content-MD5", checksum)

	resp, err := c.storage.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(raw), nil
}
