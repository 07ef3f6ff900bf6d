// Package notion reads database rows from the Notion API and decodes their
// properties into engine rows.
package notion

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.notion.com"
	DefaultVersion = "2022-06-28"
	maxPageSize    = 100
	maxPages       = 10_000
)

// Client queries Notion databases through the notionapi SDK.
type Client struct {
	api    *notionapi.Client
	logger *zap.Logger
	err    error
}

type settings struct {
	http    *http.Client
	baseURL string
	version string
	timeout time.Duration
	logger  *zap.Logger
}

type Option func(*settings)

// WithBaseURL points the client at another API host, such as a local mock.
func WithBaseURL(u string) Option { return func(s *settings) { s.baseURL = strings.TrimRight(u, "/") } }

func WithVersion(v string) Option { return func(s *settings) { s.version = v } }

func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithHTTPClient(h *http.Client) Option { return func(s *settings) { s.http = h } }

func WithLogger(l *zap.Logger) Option { return func(s *settings) { s.logger = l } }

func NewClient(secret string, opts ...Option) *Client {
	s := settings{
		baseURL: DefaultBaseURL,
		version: DefaultVersion,
		timeout: 30 * time.Second,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	hc := &http.Client{}
	if s.http != nil {
		copied := *s.http
		hc = &copied
	}
	hc.Timeout = s.timeout

	c := &Client{logger: s.logger}
	if s.baseURL != "" && s.baseURL != DefaultBaseURL {
		base, err := url.Parse(s.baseURL)
		if err != nil || base.Host == "" {
			c.err = fmt.Errorf("notion base url %q is invalid", s.baseURL)
		} else {
			hc.Transport = &rebaseTransport{base: base, next: hc.Transport}
		}
	}

	c.api = notionapi.NewClient(notionapi.Token(secret),
		notionapi.WithHTTPClient(hc),
		notionapi.WithVersion(s.version))
	return c
}

// rebaseTransport sends SDK requests, which always target api.notion.com, to base.
type rebaseTransport struct {
	base *url.URL
	next http.RoundTripper
}

func (t *rebaseTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = t.base.Scheme
	out.URL.Host = t.base.Host
	out.URL.Path = path.Join("/", t.base.Path, req.URL.Path)
	out.URL.RawPath = ""
	out.Host = t.base.Host

	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(out)
}

// QueryDatabase returns every page of a database, following pagination cursors.
// API failures surface as *notionapi.Error.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string) ([]notionapi.Page, error) {
	if c.err != nil {
		return nil, c.err
	}

	var (
		all    []notionapi.Page
		cursor notionapi.Cursor
	)
	for i := 0; i < maxPages; i++ {
		resp, err := c.api.Database.Query(ctx, notionapi.DatabaseID(databaseID), &notionapi.DatabaseQueryRequest{
			StartCursor: cursor,
			PageSize:    maxPageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("query database %s: %w", databaseID, err)
		}
		all = append(all, resp.Results...)
		c.logger.Debug("notion page fetched",
			zap.String("database", databaseID),
			zap.Int("results", len(resp.Results)),
			zap.Bool("has_more", resp.HasMore))
		if !resp.HasMore || resp.NextCursor == "" {
			return all, nil
		}
		cursor = resp.NextCursor
	}
	return nil, fmt.Errorf("query database %s: more than %d pages", databaseID, maxPages)
}
