// Package withings implements the measurement source: it fetches
// timestamped measurement groups from the Withings measure API.
//
// The client expects an already-established access token; acquiring and
// refreshing tokens is outside its scope. The token is injected into
// requests through the oauth2 transport.
package withings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	fitsync "github.com/openhealth/fitsync"
	"github.com/openhealth/fitsync/errs"
)

const (
	defaultBaseURL = "https://wbsapi.withings.net"
	measurePath    = "/measure"

	// categoryReal selects real measurements, excluding user objectives.
	categoryReal = 1
)

// Config configures a Client.
type Config struct {
	// AccessToken is the pre-established API token. Required unless
	// HTTPClient already carries authentication.
	AccessToken string

	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string

	// HTTPClient overrides the transport. When nil, an oauth2 client with
	// a static token source is used.
	HTTPClient *http.Client
}

// Client fetches measurements from the Withings API.
//
// Requests are rate-limited to stay inside the API quota of 120 requests
// per minute.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

var _ fitsync.Source = (*Client)(nil)

// NewClient creates a measurement source client.
func NewClient(cfg Config) (*Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		if cfg.AccessToken == "" {
			return nil, fmt.Errorf("%w: withings access token", errs.ErrMissingToken)
		}

		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
		httpClient = oauth2.NewClient(context.Background(), src)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Every(500*time.Millisecond), 10),
	}, nil
}

// Measurements fetches all real measurement groups in [from, to] and maps
// them onto the sync measurement model. Groups without any mapped reading
// are dropped.
func (c *Client) Measurements(ctx context.Context, from, to time.Time) ([]fitsync.Measurement, error) {
	params := url.Values{
		"action":    {"getmeas"},
		"category":  {strconv.Itoa(categoryReal)},
		"startdate": {strconv.FormatInt(from.Unix(), 10)},
		"enddate":   {strconv.FormatInt(to.Unix(), 10)},
	}

	resp, err := c.call(ctx, params)
	if err != nil {
		return nil, err
	}

	measurements := make([]fitsync.Measurement, 0, len(resp.Body.MeasureGroups))
	for _, group := range resp.Body.MeasureGroups {
		m := fitsync.Measurement{Timestamp: time.Unix(group.Date, 0)}

		mapped := false
		for _, raw := range group.Measures {
			v := raw.realValue()

			switch raw.Type {
			case TypeWeight:
				m.Weight = &v
			case TypeFatRatio:
				m.FatRatio = &v
			case TypeMuscleMass:
				m.MuscleMass = &v
			case TypeBoneMass:
				m.BoneMass = &v
			case TypeHydration:
				m.Hydration = &v
			case TypeSystolicBP:
				iv := int(v)
				m.SystolicBP = &iv
			case TypeDiastolicBP:
				iv := int(v)
				m.DiastolicBP = &iv
			case TypeHeartRate:
				iv := int(v)
				m.HeartRate = &iv
			default:
				continue
			}
			mapped = true
		}

		if mapped {
			measurements = append(measurements, m)
		}
	}

	return measurements, nil
}

// Height returns the user's most recent height measurement in meters, or
// nil when none is recorded. Height feeds BMI computation at the sink.
func (c *Client) Height(ctx context.Context) (*float64, error) {
	params := url.Values{
		"action":   {"getmeas"},
		"category": {strconv.Itoa(categoryReal)},
		"meastype": {strconv.Itoa(int(TypeHeight))},
	}

	resp, err := c.call(ctx, params)
	if err != nil {
		return nil, err
	}

	var latest *float64
	var latestDate int64
	for _, group := range resp.Body.MeasureGroups {
		for _, raw := range group.Measures {
			if raw.Type != TypeHeight {
				continue
			}

			if latest == nil || group.Date > latestDate {
				v := raw.realValue()
				latest = &v
				latestDate = group.Date
			}
		}
	}

	return latest, nil
}

func (c *Client) call(ctx context.Context, params url.Values) (*apiResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + measurePath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build measure request: %w", err)
	}
	req.URL.RawQuery = params.Encode()

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("measure request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read measure response: %w", err)
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse measure response: %w", err)
	}

	if resp.Status != 0 {
		return nil, fmt.Errorf("%w: status %d %s", errs.ErrAPIStatus, resp.Status, resp.Error)
	}

	return &resp, nil
}
