package dsv

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/sgwessen/kalender/internal/domain/candidate"
	"github.com/sgwessen/kalender/internal/domain/competition"
	"github.com/sgwessen/kalender/internal/domain/names"
	"github.com/sgwessen/kalender/internal/platform/cache"
	"github.com/sgwessen/kalender/internal/platform/logging"
	"github.com/sgwessen/kalender/internal/platform/resilience"
	"github.com/sgwessen/kalender/internal/usecase"
)

const (
	defaultBaseURL  = "https://dsvdaten.dsv.de/Modules/WB"
	defaultClubName = "SG Wasserball Essen"
	leaguePage      = "League.aspx"
	detailCacheTTL  = 15 * time.Minute
	maxBodyBytes    = 4 << 20

	// The portal serves an error page to clients without a browser UA.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var errDSVTransient = crerr.New("dsv transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	ClubName       string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client scrapes the DSV water polo portal. One league page lists every
// scheduled game of a competition; per-game detail pages carry referees,
// the confirmed result and the venue address.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	clubName       string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	details        *cache.Store
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	// Row matching happens on normalized names, so the configured club name
	// must be canonical too or variant spellings in config would match nothing.
	clubName := names.Normalize(cfg.ClubName)
	if clubName == "" {
		clubName = defaultClubName
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		clubName:       clubName,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		details:        cache.NewStore(detailCacheTTL),
	}
}

// Fetch loads the league page for one competition descriptor and returns the
// club's rows as fixture candidates. A page without a schedule table or
// without club rows is a soft miss and yields an empty batch.
func (c *Client) Fetch(ctx context.Context, comp competition.Competition) ([]candidate.Record, error) {
	pageURL, err := c.leagueURL(comp)
	if err != nil {
		return nil, fmt.Errorf("%w: competition %q: %v", usecase.ErrInvalidInput, comp.ID, err)
	}

	doc, err := c.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch league page competition=%s: %w", comp.ID, err)
	}

	records := parseLeaguePage(doc, comp, c.clubName, c.resolveHref(pageURL))
	c.logger.DebugContext(ctx, "dsv league page parsed",
		"competition", comp.ID,
		"candidates", len(records),
	)
	return records, nil
}

// FetchDetail loads one per-game detail page. Results are cached per client
// so repeated reconcile passes inside one process hit the portal once per
// game. An empty Detail is a valid outcome; errors degrade at the caller.
func (c *Client) FetchDetail(ctx context.Context, detailURL string) (candidate.Detail, error) {
	detailURL = strings.TrimSpace(detailURL)
	if detailURL == "" {
		return candidate.Detail{}, fmt.Errorf("%w: detail url is required", usecase.ErrInvalidInput)
	}

	out, err := c.details.GetOrLoad(ctx, detailURL, func(ctx context.Context) (any, error) {
		doc, fetchErr := c.fetchDocument(ctx, detailURL)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return parseDetailPage(doc), nil
	})
	if err != nil {
		return candidate.Detail{}, fmt.Errorf("fetch detail page: %w", err)
	}

	detail, ok := out.(candidate.Detail)
	if !ok {
		return candidate.Detail{}, fmt.Errorf("unexpected detail payload type %T", out)
	}
	return detail, nil
}

func (c *Client) leagueURL(comp competition.Competition) (string, error) {
	if strings.TrimSpace(comp.Season) == "" {
		return "", fmt.Errorf("season is required")
	}
	if strings.TrimSpace(comp.LeagueID) == "" {
		return "", fmt.Errorf("league id is required")
	}

	values := url.Values{}
	values.Set("Season", strings.TrimSpace(comp.Season))
	values.Set("LeagueID", strings.TrimSpace(comp.LeagueID))
	values.Set("Group", strings.TrimSpace(comp.Group))
	values.Set("LeagueKind", strings.TrimSpace(comp.Kind))

	return c.baseURL + "/" + leaguePage + "?" + values.Encode(), nil
}

// resolveHref turns the relative hrefs the portal emits (Game.aspx?...) into
// absolute URLs against the page they were found on.
func (c *Client) resolveHref(pageURL string) func(string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	return func(href string) string {
		href = strings.TrimSpace(href)
		if href == "" || base == nil {
			return href
		}
		ref, err := url.Parse(href)
		if err != nil {
			return ""
		}
		return base.ResolveReference(ref).String()
	}
}

func (c *Client) fetchDocument(ctx context.Context, fullURL string) (*goquery.Document, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "dsv circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: schedule portal is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isDSVCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse portal html: %w", err)
	}
	return doc, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "text/html")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errDSVTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errDSVTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				if isRetryableStatus(resp.StatusCode) {
					lastErr = fmt.Errorf("%w: portal status=%d body=%s", errDSVTransient, resp.StatusCode, abbreviateBody(raw))
				} else {
					return nil, fmt.Errorf("portal status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
				}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("portal request failed")
	}
	c.logger.WarnContext(ctx, "dsv request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isDSVCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errDSVTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
