// Package visitclient asks the visit ledger for the current count once per
// page activation and remembers locally whether this browser profile was
// ever counted.
//
// The remembered flag does not gate the request: the server's identity
// deduplication decides what counts, and the flag is only set after the
// server reports a new visitor.
package visitclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RecordedKey is the flag name written once a visit from this profile was
// counted.
const RecordedKey = "portfolio-visit-recorded"

// Path is the ledger endpoint relative to the site URL.
const Path = "/api/visit"

// State is the display state of the counter.
type State int

const (
	// NotLoaded renders nothing. A failed load stays here for the rest of the
	// activation.
	NotLoaded State = iota
	// Loaded renders the count.
	Loaded
)

// Display is what the counter shows.
type Display struct {
	State State
	Count int64
}

// Render returns the counter label for locale, or "" when nothing should be
// shown.
func (d Display) Render(locale string) string {
	if d.State != Loaded {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(locale), "en") {
		return groupThousands(d.Count, ',') + " visits"
	}
	return groupThousands(d.Count, '.') + " visitas"
}

func groupThousands(n int64, sep byte) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(sep)
		}
		b.WriteByte(s[i])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Client records a visit against a site.
type Client struct {
	baseURL string
	http    *http.Client
	flags   FlagStore
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets where load failures are reported. Failures are never shown
// to the visitor.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New returns a Client for the site at baseURL, remembering the recorded flag
// in flags. A nil flags keeps the flag in memory for the life of the Client.
func New(baseURL string, flags FlagStore, opts ...Option) *Client {
	if flags == nil {
		flags = NewMemoryFlags()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		flags:   flags,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type visitResponse struct {
	Count        int64 `json:"count"`
	IsNewVisitor bool  `json:"isNewVisitor"`
}

// Activate performs the single ledger call for one page activation. It never
// returns an error: any failure leaves the display NotLoaded.
func (c *Client) Activate(ctx context.Context) Display {
	// Read for parity with the browser counter; the value does not skip the call.
	if _, _, err := c.flags.Get(RecordedKey); err != nil {
		c.logf("read visit flag: %v", err)
	}

	res, err := c.fetch(ctx)
	if err != nil {
		c.logf("record visit: %v", err)
		return Display{State: NotLoaded}
	}

	if res.IsNewVisitor {
		if err := c.flags.Set(RecordedKey, "true"); err != nil {
			c.logf("store visit flag: %v", err)
		}
	}
	return Display{State: Loaded, Count: res.Count}
}

func (c *Client) fetch(ctx context.Context) (*visitResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+Path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out visitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
