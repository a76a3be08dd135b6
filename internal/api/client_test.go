package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func float(v float64) *float64 { return &v }

// sampleData returns a valid server reply for testing.
func sampleData() Data {
	return Data{
		Fajr:    "04:37",
		Sunrise: "05:52",
		Duhr:    "12:01",
		Asr:     "15:12",
		Maghrib: "18:06",
		Isha:    "19:17",
		Current: "Duhr",
		Next:    "Asr",
		Date:    "2024-03-10",
		Method:  "kemenag",
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient("")
	if c == nil {
		t.Fatal("NewClient returned nil")
	}
	if c.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", c.BaseURL, defaultBaseURL)
	}

	if got := NewClient("http://example.test/").BaseURL; got != "http://example.test" {
		t.Errorf("trailing slash not trimmed: %q", got)
	}
}

func TestCalculate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != PrayerTimesPath {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Latitude == nil || *req.Latitude != -6.2088 {
			t.Errorf("lat = %v", req.Latitude)
		}
		if req.Method != "kemenag" || req.Adjustments["fajr"] != 2 {
			t.Errorf("request = %+v", req)
		}

		data := sampleData()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Response{Success: true, Data: &data})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	got, err := c.Calculate(context.Background(), Request{
		Latitude:    float(-6.2088),
		Longitude:   float(106.8456),
		Method:      "kemenag",
		Adjustments: map[string]int{"fajr": 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Fajr != "04:37" || got.Next != "Asr" {
		t.Errorf("data = %+v", got)
	}
}

func TestCalculate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(Response{
			Error:   "invalid_coordinates",
			Message: "invalid coordinates: latitude 95 must be between -90 and 90",
		})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Calculate(context.Background(), Request{Latitude: float(95)})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Kind != "invalid_coordinates" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if !strings.HasPrefix(err.Error(), "invalid_coordinates: ") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCalculate_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Calculate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error for HTTP 503, got nil")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error should mention 503, got: %v", err)
	}
}

func TestCalculate_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Calculate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("error should mention decode, got: %v", err)
	}
}

func TestCalculate_MissingData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{Success: true})
	}))
	defer server.Close()

	if _, err := NewClient(server.URL).Calculate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error for a reply without data")
	}
}

func TestCalculate_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(server.URL).Calculate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestCalculate_ConnectionRefused(t *testing.T) {
	c := NewClient("http://127.0.0.1:1") // nothing listening

	if _, err := c.Calculate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error for connection refused, got nil")
	}
}

func TestMethods(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != MethodsPath {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(MethodsResponse{
			Success: true,
			Data: []MethodInfo{
				{Name: "kemenag", FajrAngle: 20, IshaAngle: 18},
				{Name: "makkah", FajrAngle: 18.5, IshaInterval: 90},
			},
		})
	}))
	defer server.Close()

	got, err := NewClient(server.URL).Methods(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].IshaInterval != 90 {
		t.Errorf("methods = %+v", got)
	}
}

// ---------------------------------------------------------------------------
// Request encoding
// ---------------------------------------------------------------------------

func TestRequest_Values(t *testing.T) {
	interval := 90
	r := Request{
		Latitude:     float(21.4225),
		Longitude:    float(39.8262),
		Method:       "makkah",
		IshaInterval: &interval,
		Adjustments:  map[string]int{"isha": -3, "fajr": 2},
		Date:         "2024-03-10",
		Timezone:     float(5.5),
	}

	v := r.Values()
	want := map[string]string{
		"lat":               "21.4225",
		"lng":               "39.8262",
		"method":            "makkah",
		"isha_interval":     "90",
		"adjustments[fajr]": "2",
		"adjustments[isha]": "-3",
		"date":              "2024-03-10",
		"timezone":          "5.5",
	}
	for key, val := range want {
		if got := v.Get(key); got != val {
			t.Errorf("%s = %q, want %q", key, got, val)
		}
	}
	for _, absent := range []string{"elevation", "asr_method", "high_lat", "time_format", "now"} {
		if v.Has(absent) {
			t.Errorf("%s should be omitted", absent)
		}
	}
}

func TestRequest_JSONOmitsUnset(t *testing.T) {
	data, err := json.Marshal(Request{Latitude: float(0)})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"lat":0}` {
		t.Errorf("json = %s, want {\"lat\":0}", got)
	}
}
