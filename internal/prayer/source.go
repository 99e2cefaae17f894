package prayer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Location identifies the place prayer times are calculated for, plus the
// Aladhan calculation method (13 approximates the Diyanet calculations).
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Method  int    `json:"method"`
}

const aladhanBaseURL = "https://api.aladhan.com/v1"

// Some prayer time APIs reject requests without a browser User-Agent.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Source fetches a day's prayer times from the Aladhan API.
type Source struct {
	Location Location

	// BaseURL overrides the Aladhan API endpoint (for tests).
	BaseURL string

	// Client overrides http.DefaultClient (for tests). The default
	// client uses a 10 second timeout.
	Client *http.Client
}

var defaultClient = &http.Client{Timeout: 10 * time.Second}

// The API capitalizes prayer names in its timings block.
var apiKeys = map[Name]string{
	Fajr:    "Fajr",
	Dhuhr:   "Dhuhr",
	Asr:     "Asr",
	Maghrib: "Maghrib",
	Isha:    "Isha",
}

// Fetch returns the prayer schedule for the given date, or an error if the
// API is unreachable or its response cannot be parsed into five well-formed
// times.
func (s *Source) Fetch(ctx context.Context, date time.Time) (*Schedule, error) {
	base := s.BaseURL
	if base == "" {
		base = aladhanBaseURL
	}
	vals := url.Values{
		"city":    []string{s.Location.City},
		"country": []string{s.Location.Country},
		"method":  []string{strconv.Itoa(s.Location.Method)},
		"date":    []string{date.Format("02-01-2006")},
	}
	req, err := http.NewRequestWithContext(ctx, "GET", base+"/timingsByCity?"+vals.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	client := s.Client
	if client == nil {
		client = defaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if got, want := resp.StatusCode, http.StatusOK; got != want {
		return nil, fmt.Errorf("unexpected HTTP status code: got %d, want %d", got, want)
	}

	var reply struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
		Data   struct {
			Timings map[string]string `json:"timings"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decoding API response: %v", err)
	}
	if reply.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code %d, status %q", reply.Code, reply.Status)
	}

	times := make(map[Name]string, len(Names))
	for name, key := range apiKeys {
		times[name] = reply.Data.Timings[key]
	}
	sched, err := NewSchedule(date, times)
	if err != nil {
		return nil, fmt.Errorf("malformed timings for %s: %v", date.Format("2006-01-02"), err)
	}
	return sched, nil
}
