package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/prayer-bot/internal/metrics"
)

const (
	// DefaultBaseURL is the public AlAdhan API.
	DefaultBaseURL = "https://api.aladhan.com/v1"
	// DefaultCountry is used by TimingsByCity when no country is given.
	DefaultCountry = "Poland"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second

	// DateLayout is the DD-MM-YYYY form the timings endpoints expect.
	DateLayout = "02-01-2006"

	defaultMethod = 3
	maxBodyBytes  = 4 << 20
)

// Endpoint labels used in logs and metrics.
const (
	EndpointTimings       = "timings"
	EndpointTimingsByCity = "timings_by_city"
	EndpointCalendar      = "calendar"
)

// Client communicates with the Al Adhan prayer times API.
// A Client holds no per-request state and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Defaults to the Al Adhan API.
	// Exported for testing with httptest.
	BaseURL string

	method  int
	country string
	timeout time.Duration
	now     func() time.Time
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Empty values are ignored.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.BaseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithMethod sets the calculation method sent with every request.
func WithMethod(method int) Option {
	return func(c *Client) { c.method = method }
}

// WithDefaultCountry sets the country used when TimingsByCity gets none.
func WithDefaultCountry(country string) Option {
	return func(c *Client) {
		if country != "" {
			c.country = country
		}
	}
}

// WithTimeout bounds each request. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithClock injects the time source used for default dates.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger used for failed requests.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new API client with sensible defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		BaseURL: DefaultBaseURL,
		method:  defaultMethod,
		country: DefaultCountry,
		timeout: DefaultTimeout,
		now:     time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: c.timeout,
		}
	}
	return c
}

// Method returns the calculation method the client sends.
func (c *Client) Method() int {
	return c.method
}

// TimingsByCoordinates fetches prayer times for the given coordinates.
// date is DD-MM-YYYY; empty means today per the client clock.
func (c *Client) TimingsByCoordinates(ctx context.Context, lat, lon float64, date string) (Timings, error) {
	if date == "" {
		date = c.now().Format(DateLayout)
	}

	params := c.coordinateParams(lat, lon)
	return c.fetchTimings(ctx, EndpointTimings, "/timings/"+url.PathEscape(date), params)
}

// TimingsByCity fetches prayer times for the given city and country.
// An empty country falls back to the client's default country.
func (c *Client) TimingsByCity(ctx context.Context, city, country, date string) (Timings, error) {
	if date == "" {
		date = c.now().Format(DateLayout)
	}
	if country == "" {
		country = c.country
	}

	params := url.Values{}
	params.Set("city", city)
	params.Set("country", country)
	params.Set("method", strconv.Itoa(c.method))

	return c.fetchTimings(ctx, EndpointTimingsByCity, "/timingsByCity/"+url.PathEscape(date), params)
}

// MonthlyCalendar fetches one entry per day of the given month.
// Zero month or year means the current one per the client clock.
func (c *Client) MonthlyCalendar(ctx context.Context, lat, lon float64, month, year int) ([]Data, error) {
	now := c.now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	path := fmt.Sprintf("/calendar/%d/%d", year, month)

	var days []Data
	err := c.get(ctx, EndpointCalendar, path, c.coordinateParams(lat, lon), func(raw json.RawMessage) error {
		if err := json.Unmarshal(raw, &days); err != nil {
			return fmt.Errorf("failed to decode calendar: %w", err)
		}
		for i, d := range days {
			if missing := d.Timings.Missing(); len(missing) > 0 {
				return fmt.Errorf("calendar day %d missing timings: %s", i+1, strings.Join(missing, ", "))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return days, nil
}

func (c *Client) coordinateParams(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("method", strconv.Itoa(c.method))
	return params
}

func (c *Client) fetchTimings(ctx context.Context, endpoint, path string, params url.Values) (Timings, error) {
	var day Data
	err := c.get(ctx, endpoint, path, params, func(raw json.RawMessage) error {
		if err := json.Unmarshal(raw, &day); err != nil {
			return fmt.Errorf("failed to decode timings: %w", err)
		}
		if missing := day.Timings.Missing(); len(missing) > 0 {
			return fmt.Errorf("timings missing: %s", strings.Join(missing, ", "))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return day.Timings, nil
}

// get performs one request, decodes the data field with decode and records
// the outcome. Every returned error is a *ProviderError.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, decode func(json.RawMessage) error) error {
	start := time.Now()

	raw, err := c.doRequest(ctx, endpoint, path, params)
	if err == nil {
		if derr := decode(raw); derr != nil {
			err = malformedError(endpoint, derr)
		}
	}

	elapsed := time.Since(start)
	outcome := "ok"
	var pe *ProviderError
	if errors.As(err, &pe) {
		outcome = pe.Kind.String()
		c.logFailure(pe, elapsed)
	}
	metrics.ObserveProviderRequest(endpoint, outcome, elapsed)

	return err
}

func (c *Client) doRequest(ctx context.Context, endpoint, path string, params url.Values) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := fmt.Sprintf("%s%s?%s", c.BaseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, networkError(endpoint, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, networkError(endpoint, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(endpoint, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, malformedError(endpoint, fmt.Errorf("failed to decode API response: %w", err))
	}

	if env.Code != http.StatusOK {
		return nil, providerError(endpoint, env.Code, env.Status)
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, malformedError(endpoint, errors.New("response has no data"))
	}

	return env.Data, nil
}

func (c *Client) logFailure(pe *ProviderError, elapsed time.Duration) {
	ev := c.logger.Warn()
	if pe.Kind == KindNetwork || pe.Kind == KindMalformed {
		ev = c.logger.Error()
	}
	ev.Err(pe.Err).
		Str("endpoint", pe.Endpoint).
		Str("kind", pe.Kind.String()).
		Int("status_code", pe.StatusCode).
		Dur("elapsed", elapsed).
		Msg("aladhan request failed")
}
