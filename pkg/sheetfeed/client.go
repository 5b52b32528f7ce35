package sheetfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/models"
	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/parser"
	"golang.org/x/sync/errgroup"
)

// Tab names read by the site.
const (
	TabPosts = "Posts"
	TabSongs = "Songs"
)

// maxErrorBody bounds how much of a non-JSON error body is kept in errors.
const maxErrorBody = 256

// Client fetches tabs from the values endpoint. It holds no mutable state
// and is safe for concurrent use.
type Client struct {
	cfg  Config
	rng  parser.Range
	http *http.Client
	log  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout, _ := cfg.RequestTimeout()
	rng, _ := parser.ParseRange(cfg.Range)

	c := &Client{
		cfg:  cfg,
		rng:  rng,
		http: &http.Client{Timeout: timeout},
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL returns the request URL for tab.
func (c *Client) URL(tab string) string {
	return c.url(tab, c.cfg.APIKey)
}

func (c *Client) url(tab, key string) string {
	q := url.Values{}
	q.Set("key", key)
	return fmt.Sprintf("%s/%s/values/%s!%s?%s",
		strings.TrimRight(c.cfg.BaseURL, "/"),
		url.PathEscape(c.cfg.SheetID),
		url.PathEscape(tab),
		c.rng.String(),
		q.Encode(),
	)
}

// Fetch requests tab and returns its normalized records.
// A tab with no data rows yields an empty slice and a nil error.
func (c *Client) Fetch(ctx context.Context, tab string) ([]models.Record, error) {
	table, err := c.FetchTable(ctx, tab)
	if err != nil {
		return nil, err
	}
	return table.Records, nil
}

// FetchTable requests tab and returns its records with the column order.
func (c *Client) FetchTable(ctx context.Context, tab string) (models.Table, error) {
	grid, err := c.fetchGrid(ctx, tab)
	if err != nil {
		return models.Table{Name: tab}, err
	}
	table := parser.NormalizeTable(tab, grid)

	c.logger(ctx).Debug().
		Str("tab", tab).
		Int("records", len(table.Records)).
		Msg("Fetched sheet tab")
	return table, nil
}

// FetchOrEmpty is Fetch for callers that do not need to tell an empty tab
// from a failed fetch. Failures are logged once and yield an empty slice.
func (c *Client) FetchOrEmpty(ctx context.Context, tab string) []models.Record {
	records, err := c.Fetch(ctx, tab)
	if err != nil {
		evt := c.logger(ctx).Error().Err(err).Str("tab", tab)
		var fe *FetchError
		if errors.As(err, &fe) {
			evt = evt.Str("stage", fe.Stage)
		}
		evt.Msg("Failed to fetch sheet tab")
		return []models.Record{}
	}
	return records
}

// FetchPosts returns the Posts tab, or an empty slice on failure.
func (c *Client) FetchPosts(ctx context.Context) []models.Record {
	return c.FetchOrEmpty(ctx, TabPosts)
}

// FetchSongs returns the Songs tab, or an empty slice on failure.
func (c *Client) FetchSongs(ctx context.Context) []models.Record {
	return c.FetchOrEmpty(ctx, TabSongs)
}

// FetchAll fetches tabs concurrently. The first failure cancels the
// remaining requests and is returned.
func (c *Client) FetchAll(ctx context.Context, tabs ...string) (map[string]models.Table, error) {
	var mu sync.Mutex
	result := make(map[string]models.Table, len(tabs))

	eg, egCtx := errgroup.WithContext(ctx)
	for _, tab := range tabs {
		tab := tab
		eg.Go(func() error {
			table, err := c.FetchTable(egCtx, tab)
			if err != nil {
				return err
			}
			mu.Lock()
			result[tab] = table
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) fetchGrid(ctx context.Context, tab string) (models.Grid, error) {
	c.logger(ctx).Debug().
		Str("tab", tab).
		Str("url", c.url(tab, "REDACTED")).
		Msg("Requesting sheet tab")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(tab), nil)
	if err != nil {
		return nil, NewFetchError(tab, StageRequest, fmt.Errorf("%w: %w", ErrTransport, err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, NewFetchError(tab, StageRequest, fmt.Errorf("%w: %w", ErrTransport, redactKey(err, c.cfg.APIKey)))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewFetchError(tab, StageRequest, fmt.Errorf("%w: reading response body: %w", ErrTransport, err))
	}

	var body *models.ValuesResponse
	decodeErr := json.Unmarshal(data, &body)
	if decodeErr == nil && body == nil {
		decodeErr = errors.New("null response body")
	}

	// An error object wins over the status code; it carries the useful message.
	if decodeErr == nil && body.Error != nil {
		return nil, NewFetchError(tab, StageUpstream, fmt.Errorf("%w: %s", ErrUpstream, body.Error.Message))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewFetchError(tab, StageStatus, fmt.Errorf("%w: http %d: %s", ErrTransport, resp.StatusCode, truncate(data)))
	}
	if decodeErr != nil {
		return nil, NewFetchError(tab, StageDecode, fmt.Errorf("%w: %w", ErrDecode, decodeErr))
	}

	return body.Values, nil
}

func (c *Client) logger(ctx context.Context) *zerolog.Logger {
	if ctxLog := zerolog.Ctx(ctx); ctxLog != nil && ctxLog.GetLevel() != zerolog.Disabled {
		return ctxLog
	}
	return &c.log
}

// redactKey strips the API key from the URL echoed by transport errors.
func redactKey(err error, key string) error {
	var ue *url.Error
	if key != "" && errors.As(err, &ue) {
		ue.URL = strings.ReplaceAll(ue.URL, url.QueryEscape(key), "REDACTED")
	}
	return err
}

func truncate(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
