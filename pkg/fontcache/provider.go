// Package fontcache resolves font family names to parsed regular and bold
// faces. The first request for a family fetches a stylesheet from a remote
// font-description service, downloads the binary font sources it declares,
// and memoizes the parsed pair; later requests are served from memory until
// the entry's time-to-live elapses.
package fontcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sync"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/hashicorp/go-retryablehttp"
	tdfont "github.com/tdewolff/font"
)

const (
	// DefaultEndpoint is the Google Fonts CSS2 API.
	DefaultEndpoint = "https://fonts.googleapis.com/css2"

	// DefaultTTL is how long a cached family stays valid.
	DefaultTTL = 7 * 24 * time.Hour

	maxStylesheetBytes = 1 << 20
	maxFontBytes       = 10 << 20
)

// legacyUserAgent coaxes the font service into declaring truetype/opentype
// source URLs instead of woff2 where possible.
const legacyUserAgent = "Mozilla/5.0 (Windows NT 6.1; rv:10.0) Gecko/20100101 Firefox/10.0"

// fontSrcRe extracts binary font-source declarations from the stylesheet:
// a URL followed by a bracketed outline format of opentype or truetype.
var fontSrcRe = regexp.MustCompile(`url\(\s*['"]?([^'")]+)['"]?\s*\)\s*format\(\s*['"]?(opentype|truetype)['"]?\s*\)`)

// ── Errors ──

// NotFoundError reports a family name the font service cannot resolve:
// its stylesheet declared no usable binary sources.
type NotFoundError struct {
	Family string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("font family %q not found", e.Family)
}

// FetchError reports a network or transport failure while obtaining the
// stylesheet or the font bytes, including unparsable payloads.
type FetchError struct {
	Family string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch font %q: %v", e.Family, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ── Assets ──

// Asset is one resolved family: exactly two parsed weight variants.
// Immutable once cached; renders borrow it read-only.
type Asset struct {
	Regular *truetype.Font // weight 400
	Bold    *truetype.Font // weight 700
}

type entry struct {
	asset     *Asset
	fetchedAt time.Time
}

// ── Provider ──

// Provider resolves and memoizes font families. Construct one at process
// start and inject it wherever fonts are needed; the zero value is not
// usable.
type Provider struct {
	endpoint string
	ttl      time.Duration
	client   *retryablehttp.Client
	now      func() time.Time

	mu    sync.Mutex
	cache map[string]entry
}

// Options configures a Provider. Zero fields get defaults.
type Options struct {
	Endpoint string                // font-description service base URL
	TTL      time.Duration         // cache lifetime; <0 disables expiry
	Client   *retryablehttp.Client // outbound HTTP client
	Now      func() time.Time      // clock, overridable in tests
}

// NewProvider creates a Provider with an empty cache.
func NewProvider(opts Options) *Provider {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.TTL == 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Client == nil {
		opts.Client = retryablehttp.NewClient()
		opts.Client.RetryMax = 2
		opts.Client.HTTPClient.Timeout = 15 * time.Second
		opts.Client.Logger = nil
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Provider{
		endpoint: opts.Endpoint,
		ttl:      opts.TTL,
		client:   opts.Client,
		now:      opts.Now,
		cache:    make(map[string]entry),
	}
}

// Resolve returns the regular+bold pair for family, fetching on a cold or
// expired cache entry and answering from memory otherwise. A failed fetch
// caches nothing. Concurrent misses for the same family may both fetch;
// the first insert wins and the loser adopts it.
func (p *Provider) Resolve(ctx context.Context, family string) (*Asset, error) {
	p.mu.Lock()
	if e, ok := p.cache[family]; ok && p.fresh(e) {
		p.mu.Unlock()
		return e.asset, nil
	}
	p.mu.Unlock()

	asset, err := p.fetch(ctx, family)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.cache[family]; ok && p.fresh(e) {
		return e.asset, nil
	}
	p.cache[family] = entry{asset: asset, fetchedAt: p.now()}
	return asset, nil
}

// fresh reports whether a cache entry is still within its TTL.
func (p *Provider) fresh(e entry) bool {
	return p.ttl < 0 || p.now().Sub(e.fetchedAt) < p.ttl
}

// fetch resolves family against the font service: stylesheet, then both
// binary weights in document order (first declaration regular, second
// bold). Any partial failure aborts the whole resolution.
func (p *Provider) fetch(ctx context.Context, family string) (*Asset, error) {
	cssURL := fmt.Sprintf("%s?family=%s:wght@400;700", p.endpoint, url.QueryEscape(family))

	stylesheet, err := p.get(ctx, cssURL, maxStylesheetBytes)
	if err != nil {
		return nil, &FetchError{Family: family, Err: err}
	}

	matches := fontSrcRe.FindAllStringSubmatch(string(stylesheet), -1)
	if len(matches) < 2 {
		return nil, &NotFoundError{Family: family}
	}

	regular, err := p.fetchWeight(ctx, matches[0][1])
	if err != nil {
		return nil, &FetchError{Family: family, Err: err}
	}
	bold, err := p.fetchWeight(ctx, matches[1][1])
	if err != nil {
		return nil, &FetchError{Family: family, Err: err}
	}

	return &Asset{Regular: regular, Bold: bold}, nil
}

// fetchWeight downloads and parses one binary font payload. WOFF2 payloads
// are converted to SFNT before parsing.
func (p *Provider) fetchWeight(ctx context.Context, srcURL string) (*truetype.Font, error) {
	data, err := p.get(ctx, srcURL, maxFontBytes)
	if err != nil {
		return nil, err
	}

	if isWOFF2(data) {
		sfnt, err := tdfont.ToSFNT(data)
		if err != nil {
			return nil, fmt.Errorf("convert woff2: %w", err)
		}
		data = sfnt
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
}

// get performs a bounded GET and returns the body for 2xx responses.
func (p *Provider) get(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", legacyUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status %d", rawURL, resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// isWOFF2 checks the payload's magic bytes.
func isWOFF2(data []byte) bool {
	return len(data) >= 4 && data[0] == 'w' && data[1] == 'O' && data[2] == 'F' && data[3] == '2'
}
