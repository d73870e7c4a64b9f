// Package github summarizes a user's public GitHub profile for the home page:
// profile counters, star and fork totals, and the most recently updated
// repositories. Results are cached so page views do not spend the
// unauthenticated API rate limit.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// RecentRepoLimit is how many repositories Activity lists.
const RecentRepoLimit = 6

const (
	defaultTTL        = 30 * time.Minute
	defaultFailureTTL = time.Minute
)

// ErrUnavailable is returned while a recent fetch failure is still cached.
var ErrUnavailable = errors.New("github activity unavailable")

// Stats are the profile counters.
type Stats struct {
	PublicRepos int `json:"publicRepos"`
	Followers   int `json:"followers"`
	Following   int `json:"following"`
	TotalStars  int `json:"totalStars"`
	TotalForks  int `json:"totalForks"`
}

// Repo is one entry of the recent repositories list.
type Repo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	UpdatedAt   time.Time `json:"updatedAt"`
	URL         string    `json:"url"`
}

// Activity is the summary for one user.
type Activity struct {
	Username   string `json:"username"`
	ProfileURL string `json:"profileUrl"`
	Stats      Stats  `json:"stats"`
	Repos      []Repo `json:"repos"`
}

type apiUser struct {
	Login       string `json:"login"`
	HTMLURL     string `json:"html_url"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

type apiRepo struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	Language        *string   `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	UpdatedAt       time.Time `json:"updated_at"`
	HTMLURL         string    `json:"html_url"`
}

// Client fetches and caches Activity for one user.
type Client struct {
	baseURL  string
	username string
	token    string
	http     *http.Client

	cache      *cache.Cache
	ttl        time.Duration
	failureTTL time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithToken sends an API token, which raises the rate limit.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTTL sets how long a successful result is served from cache.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// New returns a Client for username.
func New(username string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		username:   username,
		http:       &http.Client{Timeout: 10 * time.Second},
		ttl:        defaultTTL,
		failureTTL: defaultFailureTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = cache.New(c.ttl, 2*c.ttl)
	return c
}

// Username returns the GitHub user the client reports on.
func (c *Client) Username() string {
	return c.username
}

// Activity returns the cached summary, fetching it when the cache is cold.
// After a failed fetch, ErrUnavailable is returned until the failure expires.
func (c *Client) Activity(ctx context.Context) (*Activity, error) {
	if v, ok := c.cache.Get(c.activityKey()); ok {
		return v.(*Activity), nil
	}
	if _, failed := c.cache.Get(c.failureKey()); failed {
		return nil, ErrUnavailable
	}

	a, err := c.fetch(ctx)
	if err != nil {
		c.cache.Set(c.failureKey(), err, c.failureTTL)
		return nil, err
	}
	c.cache.Set(c.activityKey(), a, c.ttl)
	return a, nil
}

func (c *Client) activityKey() string { return "activity:" + c.username }
func (c *Client) failureKey() string  { return "failure:" + c.username }

func (c *Client) fetch(ctx context.Context) (*Activity, error) {
	user := url.PathEscape(c.username)

	var profile apiUser
	if err := c.get(ctx, "/users/"+user, &profile); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	var repos []apiRepo
	if err := c.get(ctx, "/users/"+user+"/repos?per_page=100&sort=updated", &repos); err != nil {
		return nil, fmt.Errorf("fetch repos: %w", err)
	}

	return summarize(c.username, profile, repos), nil
}

func summarize(username string, profile apiUser, repos []apiRepo) *Activity {
	a := &Activity{
		Username:   username,
		ProfileURL: profile.HTMLURL,
		Stats: Stats{
			PublicRepos: profile.PublicRepos,
			Followers:   profile.Followers,
			Following:   profile.Following,
		},
		Repos: []Repo{},
	}
	if a.ProfileURL == "" {
		a.ProfileURL = "https://github.com/" + username
	}

	for _, r := range repos {
		a.Stats.TotalStars += r.StargazersCount
		a.Stats.TotalForks += r.ForksCount
	}

	sorted := make([]apiRepo, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	if len(sorted) > RecentRepoLimit {
		sorted = sorted[:RecentRepoLimit]
	}

	for _, r := range sorted {
		repo := Repo{
			ID:        r.ID,
			Name:      r.Name,
			Stars:     r.StargazersCount,
			Forks:     r.ForksCount,
			UpdatedAt: r.UpdatedAt,
			URL:       r.HTMLURL,
		}
		if r.Description != nil {
			repo.Description = *r.Description
		}
		if r.Language != nil {
			repo.Language = *r.Language
		}
		a.Repos = append(a.Repos, repo)
	}
	return a
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "portfolio")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// RelativeDate describes how long before now t was, in locale ("en" or
// Portuguese otherwise): today, yesterday, days, weeks, then months.
func RelativeDate(t, now time.Time, locale string) string {
	d := now.Sub(t)
	if d < 0 {
		d = -d
	}
	days := int(d.Hours() / 24)
	en := strings.HasPrefix(strings.ToLower(locale), "en")

	switch {
	case days == 0:
		if en {
			return "today"
		}
		return "hoje"
	case days == 1:
		if en {
			return "yesterday"
		}
		return "ontem"
	case days < 7:
		if en {
			return fmt.Sprintf("%d days ago", days)
		}
		return fmt.Sprintf("%d dias atrás", days)
	case days < 30:
		if en {
			return fmt.Sprintf("%d weeks ago", days/7)
		}
		return fmt.Sprintf("%d semanas atrás", days/7)
	default:
		if en {
			return fmt.Sprintf("%d months ago", days/30)
		}
		return fmt.Sprintf("%d meses atrás", days/30)
	}
}
