// pkg/weather/client.go
// OpenWeather current-weather client

package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"weather-xml/internal/model"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org"
	DefaultTimeout = 8 * time.Second

	currentPath = "/data/2.5/weather"
)

const (
	ReasonUnreachable     = "upstream unreachable"
	ReasonTimeout         = "upstream timeout"
	ReasonInvalidResponse = "invalid response"
)

// UpstreamError is any failed lookup. StatusCode is 0 when no response
// arrived (transport error, timeout) or the body could not be decoded;
// Reason then names which. Error never includes the request URL, which
// carries the API key.
type UpstreamError struct {
	StatusCode int
	Reason     string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("OpenWeather error: %d", e.StatusCode)
	}
	reason := e.Reason
	if reason == "" {
		reason = ReasonUnreachable
	}
	return "OpenWeather error: " + reason
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client performs one GET per lookup: no retries, no caching.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a client whose calls are bounded by timeout
// (DefaultTimeout when zero).
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewClientWithHTTP(baseURL, apiKey, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a client with a custom HTTP client.
func NewClientWithHTTP(baseURL, apiKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		timeout:    httpClient.Timeout,
	}
}

// currentResponse keeps every field optional so absence can be told from zero.
type currentResponse struct {
	Name *string `json:"name"`
	Main *struct {
		Temp      *json.Number `json:"temp"`
		FeelsLike *json.Number `json:"feels_like"`
		Humidity  *json.Number `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed *json.Number `json:"speed"`
	} `json:"wind"`
}

// Fetch looks up the current weather for city in metric units.
func (c *Client) Fetch(ctx context.Context, city string) (model.WeatherReading, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// API: https://api.openweathermap.org/data/2.5/weather?q=London&appid=KEY&units=metric
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+currentPath+"?"+q.Encode(), nil)
	if err != nil {
		return model.WeatherReading{}, transportError(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.WeatherReading{}, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return model.WeatherReading{}, &UpstreamError{StatusCode: resp.StatusCode}
	}

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.WeatherReading{}, &UpstreamError{Reason: ReasonInvalidResponse, Err: fmt.Errorf("decode response: %w", err)}
	}
	return payload.reading(city), nil
}

// transportError drops the *url.Error wrapper so the query string,
// appid included, never reaches logs or clients.
func transportError(err error) *UpstreamError {
	ue := &UpstreamError{Reason: ReasonUnreachable, Err: err}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		ue.Err = urlErr.Err
		if urlErr.Timeout() {
			ue.Reason = ReasonTimeout
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		ue.Reason = ReasonTimeout
	}
	return ue
}

func (p currentResponse) reading(requested string) model.WeatherReading {
	r := model.WeatherReading{City: requested}
	if p.Name != nil {
		r.City = *p.Name
	}
	if p.Main != nil {
		r.Temperature = numberOrEmpty(p.Main.Temp)
		r.FeelsLike = numberOrEmpty(p.Main.FeelsLike)
		r.Humidity = numberOrEmpty(p.Main.Humidity)
	}
	if len(p.Weather) > 0 && p.Weather[0].Description != nil {
		r.Description = *p.Weather[0].Description
	}
	if p.Wind != nil {
		r.WindSpeed = numberOrEmpty(p.Wind.Speed)
	}
	return r
}

func numberOrEmpty(n *json.Number) string {
	if n == nil {
		return ""
	}
	return n.String()
}
