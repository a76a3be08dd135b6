// Package api holds the prayer-engine wire types and an HTTP client for a
// remote prayer-engine server.
package api

// Request is a prayer-times calculation request. It is bound from the query
// string of a GET and from the JSON body of a POST; absent fields take the
// server's defaults.
type Request struct {
	Latitude  *float64 `json:"lat,omitempty" form:"lat"`
	Longitude *float64 `json:"lng,omitempty" form:"lng"`
	Elevation *float64 `json:"elevation,omitempty" form:"elevation"` // meters

	Method    string `json:"method,omitempty" form:"method"`
	AsrMethod string `json:"asr_method,omitempty" form:"asr_method"` // "standard" or "hanafi"
	HighLat   string `json:"high_lat,omitempty" form:"high_lat"`

	// A custom profile. When FajrAngle is set it replaces Method and needs
	// exactly one of IshaAngle and IshaInterval.
	FajrAngle    *float64 `json:"fajr_angle,omitempty" form:"fajr_angle"`
	IshaAngle    *float64 `json:"isha_angle,omitempty" form:"isha_angle"`
	IshaInterval *int     `json:"isha_interval,omitempty" form:"isha_interval"` // minutes after Maghrib

	// Adjustments maps prayer names to signed minute offsets. In a query
	// string it is written adjustments[fajr]=2.
	Adjustments map[string]int `json:"adjustments,omitempty" form:"-"`

	Date       string   `json:"date,omitempty" form:"date"`         // YYYY-MM-DD
	Timezone   *float64 `json:"timezone,omitempty" form:"timezone"` // hours east of UTC
	TimeFormat string   `json:"time_format,omitempty" form:"time_format"`

	// Now overrides the instant used for current/next (RFC 3339).
	Now string `json:"now,omitempty" form:"now"`
}

// Response is the envelope of every prayer-engine reply.
type Response struct {
	Success bool   `json:"success"`
	Data    *Data  `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`   // stable error kind, e.g. "invalid_coordinates"
	Message string `json:"message,omitempty"` // human-readable detail
}

// Data holds the formatted boundaries and the prayer state at "now".
// Current and Next are omitted when they do not apply.
type Data struct {
	Fajr    string `json:"fajr"`
	Sunrise string `json:"sunrise"`
	Duhr    string `json:"duhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`

	Current string `json:"current,omitempty"`
	Next    string `json:"next,omitempty"`

	Date      string   `json:"date,omitempty"`
	Method    string   `json:"method,omitempty"`
	Corrected []string `json:"corrected,omitempty"` // boundaries placed by the high-latitude rule
}

// MethodInfo describes one built-in calculation method.
type MethodInfo struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	FajrAngle    float64 `json:"fajr_angle"`
	IshaAngle    float64 `json:"isha_angle,omitempty"`
	IshaInterval int     `json:"isha_interval,omitempty"`
}

// MethodsResponse is the reply of the methods listing.
type MethodsResponse struct {
	Success bool         `json:"success"`
	Data    []MethodInfo `json:"data"`
}
