package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "http://localhost:8080"

	PrayerTimesPath = "/api/prayer-times"
	MethodsPath     = "/api/methods"
)

// Error is a failure reported by a prayer-engine server.
type Error struct {
	Status  int
	Kind    string
	Message string
}

func (e *Error) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Client talks to a prayer-engine server.
type Client struct {
	httpClient *http.Client
	// BaseURL is the server root, e.g. "http://localhost:8080".
	// Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a new API client for the server at baseURL. An empty
// baseURL means a server on localhost:8080.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Calculate asks the server for the prayer times described by req.
func (c *Client) Calculate(ctx context.Context, req Request) (*Data, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+PrayerTimesPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var resp Response
	if err := c.do(httpReq, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("server response has no data")
	}
	return resp.Data, nil
}

// Methods lists the calculation methods the server knows.
func (c *Client) Methods(ctx context.Context) ([]MethodInfo, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+MethodsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	var resp MethodsResponse
	if err := c.do(httpReq, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var env Response
		if json.Unmarshal(body, &env) == nil && env.Error != "" {
			return &Error{Status: resp.StatusCode, Kind: env.Error, Message: env.Message}
		}
		return &Error{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}
	return nil
}

// Values encodes r as a query string for GET requests. Adjustments are
// written as adjustments[name]=minutes.
func (r Request) Values() url.Values {
	v := url.Values{}
	setFloat := func(key string, f *float64) {
		if f != nil {
			v.Set(key, strconv.FormatFloat(*f, 'f', -1, 64))
		}
	}
	setString := func(key, s string) {
		if s != "" {
			v.Set(key, s)
		}
	}

	setFloat("lat", r.Latitude)
	setFloat("lng", r.Longitude)
	setFloat("elevation", r.Elevation)
	setString("method", r.Method)
	setString("asr_method", r.AsrMethod)
	setString("high_lat", r.HighLat)
	setFloat("fajr_angle", r.FajrAngle)
	setFloat("isha_angle", r.IshaAngle)
	if r.IshaInterval != nil {
		v.Set("isha_interval", strconv.Itoa(*r.IshaInterval))
	}
	setString("date", r.Date)
	setFloat("timezone", r.Timezone)
	setString("time_format", r.TimeFormat)
	setString("now", r.Now)

	names := make([]string, 0, len(r.Adjustments))
	for name := range r.Adjustments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v.Set("adjustments["+name+"]", strconv.Itoa(r.Adjustments[name]))
	}
	return v
}
