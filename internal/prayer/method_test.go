package prayer

import (
	"errors"
	"sort"
	"testing"
)

func TestLookupMethod(t *testing.T) {
	tests := []struct {
		name string
		fajr float64
		isha IshaRule
	}{
		{"kemenag", 20, IshaAngle(18)},
		{"world", 18, IshaAngle(17)},
		{"karachi", 18, IshaAngle(18)},
		{"north_america", 15, IshaAngle(15)},
		{"egypt", 19.5, IshaAngle(17.5)},
		{"makkah", 18.5, IshaInterval(90)},
		{"dubai", 18.2, IshaAngle(18.2)},
		{"moon_sighting", 18, IshaAngle(18)},
		{"kuwait", 18, IshaAngle(17.5)},
		{"qatar", 18, IshaInterval(90)},
		{"singapore", 20, IshaAngle(18)},
		{"turkey", 18, IshaAngle(17)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := LookupMethod(tt.name)
			if err != nil {
				t.Fatalf("LookupMethod: %v", err)
			}
			if p.FajrAngle != tt.fajr || p.Isha != tt.isha {
				t.Errorf("got fajr %v isha %v, want %v %v", p.FajrAngle, p.Isha, tt.fajr, tt.isha)
			}
			if err := p.Validate(); err != nil {
				t.Errorf("built-in profile invalid: %v", err)
			}
		})
	}

	if n := len(Methods()); n != len(tests) {
		t.Errorf("Methods() has %d entries, want %d", n, len(tests))
	}
}

func TestLookupMethod_Unknown(t *testing.T) {
	for _, name := range []string{"", "atlantis", "Kemenag"} {
		if _, err := LookupMethod(name); !errors.Is(err, ErrMethodNotSupported) {
			t.Errorf("LookupMethod(%q) err = %v, want ErrMethodNotSupported", name, err)
		}
	}
}

func TestMethods_Sorted(t *testing.T) {
	ms := Methods()
	if !sort.SliceIsSorted(ms, func(i, j int) bool { return ms[i].Name < ms[j].Name }) {
		t.Errorf("Methods() not sorted by name")
	}
	for _, m := range ms {
		if m.Description == "" {
			t.Errorf("%s has no description", m.Name)
		}
	}
}

func TestNewProfile(t *testing.T) {
	tests := []struct {
		name       string
		fajr, isha float64
		interval   int
		want       IshaRule
		wantErr    bool
	}{
		{"angles", 18, 17, 0, IshaAngle(17), false},
		{"interval", 18.5, 0, 90, IshaInterval(90), false},
		{"both isha rules", 18, 17, 90, nil, true},
		{"no isha rule", 18, 0, 0, nil, true},
		{"fajr zero", 0, 17, 0, nil, true},
		{"fajr too deep", 90, 17, 0, nil, true},
		{"negative isha", 18, -5, 0, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProfile("custom", tt.fajr, tt.isha, tt.interval)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidProfile) {
					t.Fatalf("err = %v, want ErrInvalidProfile", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Isha != tt.want || p.FajrAngle != tt.fajr {
				t.Errorf("got %+v", p)
			}
		})
	}
}

func TestIshaRule_String(t *testing.T) {
	if got := IshaAngle(17.5).String(); got != "17.5°" {
		t.Errorf("IshaAngle = %q", got)
	}
	if got := IshaInterval(90).String(); got != "90 min" {
		t.Errorf("IshaInterval = %q", got)
	}
}

// ---------------------------------------------------------------------------
// Jurisprudence / HighLatitudeRule
// ---------------------------------------------------------------------------

func TestParseJurisprudence(t *testing.T) {
	tests := []struct {
		raw     string
		want    Jurisprudence
		wantErr bool
	}{
		{"standard", Standard, false},
		{"Shafi", Standard, false},
		{"HANAFI", Hanafi, false},
		{"maliki", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseJurisprudence(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrJurisprudenceNotSupported) {
				t.Errorf("ParseJurisprudence(%q) err = %v", tt.raw, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseJurisprudence(%q) = %v, %v; want %v", tt.raw, got, err, tt.want)
		}
	}

	if Standard.Shadow() != 1 || Hanafi.Shadow() != 2 {
		t.Errorf("Shadow() = %v/%v, want 1/2", Standard.Shadow(), Hanafi.Shadow())
	}
}

func TestParseHighLatitudeRule(t *testing.T) {
	for _, r := range []HighLatitudeRule{MiddleOfNight, SeventhOfNight, TwilightAngle} {
		got, err := ParseHighLatitudeRule(r.String())
		if err != nil || got != r {
			t.Errorf("ParseHighLatitudeRule(%q) = %v, %v", r.String(), got, err)
		}
	}
	if _, err := ParseHighLatitudeRule("angle_based"); !errors.Is(err, ErrHighLatitudeRuleNotSupported) {
		t.Errorf("err = %v, want ErrHighLatitudeRuleNotSupported", err)
	}
}

func TestHighLatitudeRule_Portion(t *testing.T) {
	tests := []struct {
		rule  HighLatitudeRule
		angle float64
		want  float64
	}{
		{MiddleOfNight, 18, 0.5},
		{SeventhOfNight, 18, 1.0 / 7},
		{TwilightAngle, 18, 0.3},
		{TwilightAngle, 15, 0.25},
	}
	for _, tt := range tests {
		if got := tt.rule.portion(tt.angle); got != tt.want {
			t.Errorf("%s.portion(%v) = %v, want %v", tt.rule, tt.angle, got, tt.want)
		}
	}
}
