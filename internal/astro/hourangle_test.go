package astro

import (
	"errors"
	"math"
	"testing"
)

func TestHourAngle(t *testing.T) {
	tests := []struct {
		name                string
		decl, lat, altitude float64
		want                float64
		wantErr             bool
	}{
		{"equinox at equator", 0, 0, 0, 6, false},
		{"equinox at mid latitude", 0, 45, 0, 6, false},
		{"summer evening is longer", 20, 45, 0, 7.423, false},
		{"winter evening is shorter", -20, 45, 0, 4.577, false},
		{"twilight below arctic summer horizon", 23.44, 65, -18, 0, true},
		{"polar night sunrise", -23, 70, -0.833, 0, true},
		{"north pole", 10, 90, -0.833, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HourAngle(tt.decl, tt.lat, tt.altitude)
			if tt.wantErr {
				if !errors.Is(err, ErrNoSolution) {
					t.Fatalf("HourAngle() error = %v, want ErrNoSolution", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("HourAngle() unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("HourAngle() = %.4f h, want %.4f h", got, tt.want)
			}
		})
	}
}

func TestHourAngle_DeeperDepressionIsFurtherFromNoon(t *testing.T) {
	sunset, err := HourAngle(10, 30, -0.833)
	if err != nil {
		t.Fatal(err)
	}
	dusk, err := HourAngle(10, 30, -18)
	if err != nil {
		t.Fatal(err)
	}
	if dusk <= sunset {
		t.Errorf("18° dusk hour angle %.3f should exceed sunset %.3f", dusk, sunset)
	}
}

func TestAsrAltitude(t *testing.T) {
	if got := AsrAltitude(1, 10, 10); math.Abs(got-45) > 1e-9 {
		t.Errorf("standard Asr altitude with sun overhead = %f, want 45", got)
	}
	if got := AsrAltitude(2, 10, 10); math.Abs(got-26.565051177) > 1e-6 {
		t.Errorf("hanafi Asr altitude with sun overhead = %f, want 26.565", got)
	}
	if AsrAltitude(2, 51.5, -10) >= AsrAltitude(1, 51.5, -10) {
		t.Error("hanafi Asr altitude should be lower than standard")
	}
}
