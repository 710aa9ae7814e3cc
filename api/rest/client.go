package rest

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jenkins-release/jenkins-release/errs"
	"github.com/jenkins-release/jenkins-release/settings"
	"github.com/jenkins-release/jenkins-release/version"
)

type Client struct {
	baseURL *url.URL
	user    string
	token   string
	client  *http.Client
}

// Response is the raw outcome of a request that reached the server.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func New(host, user, token string, client *http.Client) (*Client, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, errs.Configf("invalid host %q: %v", host, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errs.Configf("invalid host %q: expected an absolute URL such as https://jenkins.example.com", host)
	}
	// Ensure the base path ends with a slash so relative paths are appended
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Client{
		baseURL: u,
		user:    user,
		token:   token,
		client:  client,
	}, nil
}

func NewFromConfig(cfg *settings.Config) (*Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return New(cfg.Host, cfg.User, cfg.Token, httpClient)
}

// BaseURL returns the server address requests are resolved against.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

func (c *Client) NewRequest(ctx context.Context, method string, u *url.URL) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(u).String(), nil)
	if err != nil {
		return nil, err
	}

	if c.user != "" || c.token != "" {
		req.SetBasicAuth(c.user, c.token)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	return req, nil
}

// DoRequest sends req and reads the whole response body. Any failure to get a
// complete response is reported as a transport fault; status codes are left
// to the caller.
func (c *Client) DoRequest(req *http.Request) (*Response, error) {
	httpResp, err := c.client.Do(req)
	if err != nil {
		return nil, errs.TransportFault(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errs.TransportFault(err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}
