package dealerclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/json-iterator/go"
	"github.com/pborman/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kuberlab/deploy/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	apiPath      = "/api/v0.2"
	requestIDKey = "X-Request-Id"
)

type Client struct {
	Client    *http.Client
	BaseURL   *url.URL
	UserAgent string

	auth *AuthOpts
}

type AuthOpts struct {
	Token           string
	Cookie          string
	Headers         http.Header
	Workspace       string
	WorkspaceSecret string
	Insecure        bool
}

func NewClient(baseURL string, auth *AuthOpts) (*Client, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.NewStatus(http.StatusBadRequest, fmt.Sprintf("Invalid dealer url %q", baseURL))
	}
	if auth == nil {
		auth = &AuthOpts{}
	}

	if auth.Headers != nil {
		hd := make(http.Header)
		for k, v := range auth.Headers {
			if k == "Authorization" || k == "Cookie" || k == "X-Workspace-Name" || k == "X-Workspace-Secret" {
				hd[k] = v
			}
		}
		auth.Headers = hd
	}
	// Clone default transport
	var transport = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if base.Scheme == "https" && auth.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: auth.Insecure}
	}

	base.Path = apiPath
	baseClient := &http.Client{Timeout: time.Minute, Transport: transport}
	return &Client{
		BaseURL:   base,
		Client:    baseClient,
		UserAgent: "go-dealerclient/2",
		auth:      auth,
	}, nil
}

func (c *Client) sanitizeURL(urlStr string) string {
	secret := c.auth.Headers.Get("X-Workspace-Secret")
	if secret == "" {
		secret = c.auth.WorkspaceSecret
		if secret == "" {
			return urlStr
		}
	}

	return strings.Replace(
		urlStr,
		fmt.Sprintf("secret/%v", secret),
		"secret/[sanitized]",
		-1,
	)
}

func (c *Client) NewRequest(ctx context.Context, method, urlStr string, body interface{}) (*http.Request, error) {
	u := strings.TrimSuffix(c.BaseURL.String(), "/") + urlStr

	var reqBody io.Reader
	if body != nil {
		rd, ok := body.(io.Reader)
		if ok {
			// plain io.Reader
			reqBody = rd
		} else {
			// As JSON
			buf := new(bytes.Buffer)
			err := json.NewEncoder(buf).Encode(body)
			if err != nil {
				return nil, err
			}
			reqBody = buf
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	if c.auth.Headers != nil {
		req.Header = c.auth.Headers.Clone()
	}
	if c.auth.Cookie != "" {
		req.Header.Set("Cookie", c.auth.Cookie)
	}
	if c.auth.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", c.auth.Token))
	}
	if c.auth.Workspace != "" && c.auth.WorkspaceSecret != "" {
		req.Header.Set("X-Workspace-Name", c.auth.Workspace)
		req.Header.Set("X-Workspace-Secret", c.auth.WorkspaceSecret)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set(requestIDKey, uuid.New())
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	return req, nil
}

// Do sends an API request and returns the API response. The API response is
// JSON decoded and stored in the value pointed to by v, or returned as an
// error if an API error has occurred. If v implements the io.Writer
// interface, the raw response body will be written to v, without attempting to
// first decode it.
func (c *Client) Do(req *http.Request, v interface{}) (*http.Response, error) {
	logrus.Debugf(
		"[go-dealerclient] %v %v [%v]",
		req.Method, c.sanitizeURL(req.URL.String()), req.Header.Get(requestIDKey),
	)
	resp, err := c.Client.Do(req)
	if err != nil {
		if e, ok := err.(*url.Error); ok {
			return nil, errors.New(c.sanitizeURL(e.Error()))
		}
		return nil, errors.New(c.sanitizeURL(err.Error()))
	}

	defer func() {
		// Drain up to 512 bytes and close the body to let the Transport reuse the connection
		_, _ = io.CopyN(ioutil.Discard, resp.Body, 512)
		_ = resp.Body.Close()
	}()

	if resp, err = checkResponse(resp); err != nil {
		return resp, err
	}
	if v != nil {
		if w, ok := v.(io.Writer); ok {
			_, _ = io.Copy(w, resp.Body)
		} else {
			err = json.NewDecoder(resp.Body).Decode(v)
			if err == io.EOF {
				err = nil // ignore EOF errors caused by empty response body
			}
		}
	}

	return resp, err
}

type DealerError struct {
	Status     string
	Error      string
	Reason     string
	StatusCode int
}

func checkResponse(resp *http.Response) (*http.Response, error) {
	if resp.StatusCode < 400 {
		return resp, nil
	}
	messageBytes, _ := ioutil.ReadAll(resp.Body)
	// Try use dealerError
	e := &DealerError{}
	if err := json.Unmarshal(messageBytes, e); err != nil || e.Error == "" {
		message := strconv.Itoa(resp.StatusCode) + ": " + string(messageBytes)
		return resp, errors.NewStatus(resp.StatusCode, message)
	}
	status := e.StatusCode
	if status == 0 {
		status = resp.StatusCode
	}
	return resp, errors.NewStatusReason(status, e.Error, e.Reason)
}
