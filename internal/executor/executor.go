package executor

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studiowebux/resto/internal/log"
	"github.com/studiowebux/resto/internal/types"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "resto HTTP Client/1.0"
)

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Insecure  bool
	CAFile    string
	CertFile  string
	KeyFile   string
}

// Client sends requests and keeps cookies between them.
type Client struct {
	http      *http.Client
	jar       *cookiejar.Jar
	userAgent string

	mu   sync.Mutex
	seen map[string]*url.URL // origins the jar may hold cookies for
}

// New creates a Client.
func New(opts Options) (*Client, error) {
	transport, err := buildTransport(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			Jar:       jar,
		},
		jar:       jar,
		userAgent: ua,
		seen:      map[string]*url.URL{},
	}, nil
}

// Execute performs an HTTP request and returns the result. Transport
// failures are reported in the result's Error field; the returned error is
// only set when the request cannot be built.
func (c *Client) Execute(ctx context.Context, req *types.HttpRequest) (*types.RequestResult, error) {
	fullURL, err := req.FullURL()
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	requestSize := 0
	if req.HasBody() && req.Body != "" {
		bodyReader = bytes.NewBufferString(req.Body)
		requestSize = len(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	c.remember(httpReq.URL)

	result := &types.RequestResult{
		ID:          uuid.NewString(),
		RequestID:   req.ID,
		RequestSize: requestSize,
		CreatedAt:   time.Now(),
	}

	startTime := time.Now()
	resp, err := c.http.Do(httpReq)
	result.Duration = time.Since(startTime).Milliseconds()

	if err != nil {
		log.ErrorErr(log.CatHTTP, "request failed", err, "method", req.Method, "url", fullURL)
		result.Error = err.Error()
		return result, nil
	}
	defer resp.Body.Close()

	result.Status = resp.StatusCode
	result.StatusText = statusText(resp.StatusCode)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read response body: %v", err)
		return result, nil
	}

	headers := make(map[string]string, len(resp.Header))
	for key, values := range resp.Header {
		headers[key] = strings.Join(values, ", ")
	}
	result.Headers = headers
	result.Body = string(bodyBytes)
	result.ResponseSize = len(bodyBytes)
	for _, ck := range resp.Cookies() {
		result.Cookies = append(result.Cookies, ck.Name+"="+ck.Value)
	}

	log.Info(log.CatHTTP, "request executed",
		"method", req.Method, "url", fullURL, "status", resp.StatusCode, "ms", result.Duration)
	return result, nil
}

// AddCookies stores cookies in Set-Cookie syntax as if rawURL had sent
// them. Malformed cookies are skipped.
func (c *Client) AddCookies(cookies []string, rawURL string) error {
	if len(cookies) == 0 {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid cookie URL: %q", rawURL)
	}

	parsed := make([]*http.Cookie, 0, len(cookies))
	for _, raw := range cookies {
		ck, err := http.ParseSetCookie(raw)
		if err != nil {
			log.Debug(log.CatHTTP, "skipping malformed cookie", "cookie", raw, "error", err)
			continue
		}
		parsed = append(parsed, ck)
	}
	c.jar.SetCookies(u, parsed)
	c.remember(u)
	return nil
}

// Cookies lists every cookie in the jar as name=value, sorted.
func (c *Client) Cookies() []string {
	c.mu.Lock()
	urls := make([]*url.URL, 0, len(c.seen))
	for _, u := range c.seen {
		urls = append(urls, u)
	}
	c.mu.Unlock()

	set := map[string]struct{}{}
	for _, u := range urls {
		for _, ck := range c.jar.Cookies(u) {
			set[ck.Name+"="+ck.Value] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (c *Client) remember(u *url.URL) {
	origin := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
	c.mu.Lock()
	c.seen[origin.String()] = origin
	c.mu.Unlock()
}

func statusText(code int) string {
	if s := http.StatusText(code); s != "" {
		return s
	}
	return "Unknown"
}

// buildTransport creates a transport with optional TLS/mTLS configuration
func buildTransport(opts Options) (*http.Transport, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if !opts.Insecure && opts.CAFile == "" && opts.CertFile == "" {
		return transport, nil
	}

	tlsCfg := &tls.Config{
		InsecureSkipVerify: opts.Insecure, //nolint:gosec // opt-in via http.insecure
	}

	// Load client certificate if provided (for mTLS)
	if opts.CertFile != "" && opts.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(opts.CertFile, opts.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	// Load CA certificate if provided (for server verification)
	if opts.CAFile != "" {
		caCert, err := os.ReadFile(opts.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate")
		}
		tlsCfg.RootCAs = caCertPool
	}

	transport.TLSClientConfig = tlsCfg
	return transport, nil
}

// FormatDuration formats duration in milliseconds to human-readable string
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}

// FormatSize formats byte size to human-readable string
func FormatSize(bytes int) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024.0)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024.0*1024.0))
}
