package prayer

import (
	"fmt"
	"strings"
)

// Jurisprudence selects the shadow length convention for Asr.
type Jurisprudence int

const (
	Standard Jurisprudence = iota
	Hanafi
)

// Shadow returns the shadow-length multiplier: 1 for Standard, 2 for Hanafi.
func (j Jurisprudence) Shadow() float64 {
	if j == Hanafi {
		return 2
	}
	return 1
}

func (j Jurisprudence) String() string {
	if j == Hanafi {
		return "hanafi"
	}
	return "standard"
}

// ParseJurisprudence parses "standard" or "hanafi". "shafi" is accepted as
// an alias of standard.
func ParseJurisprudence(s string) (Jurisprudence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "shafi":
		return Standard, nil
	case "hanafi":
		return Hanafi, nil
	}
	return 0, fmt.Errorf("%w: %q (want standard or hanafi)", ErrJurisprudenceNotSupported, s)
}

// HighLatitudeRule decides where Fajr and Isha go when the sun never
// reaches the method's twilight angle.
type HighLatitudeRule int

const (
	MiddleOfNight HighLatitudeRule = iota
	SeventhOfNight
	TwilightAngle
)

var highLatitudeTokens = map[HighLatitudeRule]string{
	MiddleOfNight:  "middle_of_night",
	SeventhOfNight: "seventh_of_night",
	TwilightAngle:  "twilight_angle",
}

func (r HighLatitudeRule) String() string {
	return highLatitudeTokens[r]
}

// ParseHighLatitudeRule parses middle_of_night, seventh_of_night or
// twilight_angle.
func ParseHighLatitudeRule(s string) (HighLatitudeRule, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	for r, t := range highLatitudeTokens {
		if t == token {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want middle_of_night, seventh_of_night or twilight_angle)", ErrHighLatitudeRuleNotSupported, s)
}

// portion returns the fraction of the night between Maghrib and the next
// Sunrise that twilight at the given angle is taken to occupy.
func (r HighLatitudeRule) portion(angle float64) float64 {
	switch r {
	case MiddleOfNight:
		return 1.0 / 2
	case SeventhOfNight:
		return 1.0 / 7
	default:
		return angle / 60
	}
}
