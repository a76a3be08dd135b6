package prayer

import "errors"

var (
	// ErrInvalidCoordinates indicates a latitude or longitude out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrInvalidDate indicates a malformed or non-existent civil date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrMethodNotSupported indicates an unknown calculation method name.
	ErrMethodNotSupported = errors.New("method not supported")

	// ErrInvalidProfile indicates a custom method profile with unusable angles.
	ErrInvalidProfile = errors.New("invalid method profile")

	// ErrJurisprudenceNotSupported indicates an unknown Asr jurisprudence token.
	ErrJurisprudenceNotSupported = errors.New("asr jurisprudence not supported")

	// ErrHighLatitudeRuleNotSupported indicates an unknown high-latitude rule token.
	ErrHighLatitudeRuleNotSupported = errors.New("high latitude rule not supported")

	// ErrHighLatitudeUnsupported indicates polar day or night: the sun does
	// not rise or set, so no night length exists to apply a rule to.
	ErrHighLatitudeUnsupported = errors.New("no sunrise or sunset at this latitude and date")

	// ErrInvalidAdjustment indicates an adjustment for an unknown prayer.
	ErrInvalidAdjustment = errors.New("invalid adjustment")

	// ErrInvalidTimezone indicates a UTC offset beyond ±14 hours.
	ErrInvalidTimezone = errors.New("invalid timezone offset")
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrInvalidCoordinates, "invalid_coordinates"},
	{ErrInvalidDate, "invalid_date"},
	{ErrMethodNotSupported, "method_not_supported"},
	{ErrInvalidProfile, "invalid_method_profile"},
	{ErrJurisprudenceNotSupported, "jurisprudence_not_supported"},
	{ErrHighLatitudeRuleNotSupported, "high_latitude_rule_not_supported"},
	{ErrHighLatitudeUnsupported, "high_latitude_unsupported"},
	{ErrInvalidAdjustment, "invalid_adjustment"},
	{ErrInvalidTimezone, "invalid_timezone"},
}

// ErrorKind returns a stable token for the engine error wrapped in err, or
// "internal" for anything else.
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}
