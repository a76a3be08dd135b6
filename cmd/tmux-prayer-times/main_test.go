package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/smokyabdulrahman/prayer-engine/internal/geo"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

var jakarta = prayer.Zone(7 * time.Hour)

var jakartaArgs = []string{"--latitude", "-6.2088", "--longitude", "106.8456", "--timezone", "7"}

func runArgs(t *testing.T, now time.Time, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, &out, now)
	return out.String(), err
}

func reference(t *testing.T, d prayer.Date) *prayer.Times {
	t.Helper()
	coords, _ := prayer.NewCoordinates(-6.2088, 106.8456, 0)
	times, err := prayer.Calculate(prayer.Params{
		Coordinates:  coords,
		Date:         d,
		MethodName:   prayer.DefaultMethod,
		HighLatitude: prayer.TwilightAngle,
		UTCOffset:    7 * time.Hour,
	})
	if err != nil {
		t.Fatal(err)
	}
	return times
}

func TestVersionFlag(t *testing.T) {
	orig := version
	version = "v1.2.3-test"
	defer func() { version = orig }()

	out, err := runArgs(t, time.Now(), "--version")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != "tmux-prayer-times v1.2.3-test" {
		t.Errorf("--version = %q", got)
	}
}

func TestListMethodsFlag(t *testing.T) {
	out, err := runArgs(t, time.Now(), "--list-methods")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"kemenag", "Umm Al-Qura", "90 min", "north_america"} {
		if !strings.Contains(out, want) {
			t.Errorf("--list-methods output missing %q", want)
		}
	}
}

func TestNextPrayer(t *testing.T) {
	now := time.Date(2026, 2, 28, 12, 30, 0, 0, jakarta)
	times := reference(t, prayer.Date{Year: 2026, Month: time.February, Day: 28})

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default format", nil, "Asr " + times.Asr.Format("15:04")},
		{"short", []string{"--format", "short-name-and-time"}, "A " + times.Asr.Format("15:04")},
		{"12h", []string{"--time-format", "12h", "--format", "next-prayer-time"}, times.Asr.Format("3:04 PM")},
		{"selected", []string{"--prayers", "maghrib,isha"}, "Maghrib " + times.Maghrib.Format("15:04")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runArgs(t, now, append(append([]string{}, jakartaArgs...), tt.args...)...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextPrayer_AfterIsha(t *testing.T) {
	now := time.Date(2026, 2, 28, 22, 0, 0, 0, jakarta)
	tomorrow := reference(t, prayer.Date{Year: 2026, Month: time.March, Day: 1})

	got, err := runArgs(t, now, jakartaArgs...)
	if err != nil {
		t.Fatal(err)
	}
	if want := "Fajr " + tomorrow.Fajr.Format("15:04"); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDetectedLocation(t *testing.T) {
	orig := detectLocation
	defer func() { detectLocation = orig }()
	detectLocation = func(context.Context) (*geo.Location, error) {
		return &geo.Location{Latitude: -6.2088, Longitude: 106.8456, UTCOffset: 7 * time.Hour}, nil
	}

	now := time.Date(2026, 2, 28, 5, 30, 0, 0, time.UTC)
	times := reference(t, prayer.Date{Year: 2026, Month: time.February, Day: 28})
	got, err := runArgs(t, now)
	if err != nil {
		t.Fatal(err)
	}
	if want := "Asr " + times.Asr.Format("15:04"); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDetectionFailure(t *testing.T) {
	orig := detectLocation
	defer func() { detectLocation = orig }()
	detectLocation = func(context.Context) (*geo.Location, error) {
		return nil, errors.New("offline")
	}

	if _, err := runArgs(t, time.Now()); err == nil || !strings.Contains(err.Error(), "auto-detection failed") {
		t.Errorf("err = %v", err)
	}
}

func TestInvalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"method", []string{"--method", "nope"}, prayer.ErrMethodNotSupported},
		{"asr", []string{"--asr-method", "maliki"}, prayer.ErrJurisprudenceNotSupported},
		{"high lat", []string{"--high-lat", "none"}, prayer.ErrHighLatitudeRuleNotSupported},
		{"adjustment", []string{"--adjustments", "fajr"}, prayer.ErrInvalidAdjustment},
		{"latitude", []string{"--latitude", "-91"}, prayer.ErrInvalidCoordinates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runArgs(t, time.Now(), append(append([]string{}, jakartaArgs...), tt.args...)...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
