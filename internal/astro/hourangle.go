package astro

import (
	"errors"
	"math"

	"github.com/soniakeys/unit"
)

// ErrNoSolution is returned when the sun never reaches the requested altitude
// on the given day at the given latitude.
var ErrNoSolution = errors.New("sun does not reach the requested altitude")

// HourAngle returns the time in hours between solar noon and the moment the
// sun crosses altitude (degrees above the horizon, negative below it).
//
// The result is never clamped: when the cosine of the hour angle falls
// outside [-1, 1] ErrNoSolution is returned and the caller decides how to
// substitute a value.
func HourAngle(declination, latitude, altitude float64) (float64, error) {
	d := unit.AngleFromDeg(declination)
	p := unit.AngleFromDeg(latitude)
	h := unit.AngleFromDeg(altitude)

	c := (h.Sin() - p.Sin()*d.Sin()) / (p.Cos() * d.Cos())
	if math.IsNaN(c) || math.IsInf(c, 0) || c < -1 || c > 1 {
		return 0, ErrNoSolution
	}
	return unit.HourAngle(math.Acos(c)).Hour(), nil
}

// AsrAltitude returns the sun altitude at which an object's shadow equals
// shadow times its height plus its shadow length at noon.
func AsrAltitude(shadow, latitude, declination float64) float64 {
	z := unit.AngleFromDeg(math.Abs(latitude - declination))
	return unit.Angle(math.Atan(1 / (shadow + z.Tan()))).Deg()
}
