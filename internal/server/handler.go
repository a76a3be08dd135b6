package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/prayer-engine/internal/api"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

// apiError is a failed request: an HTTP status plus the wire error kind.
type apiError struct {
	Status  int
	Kind    string
	Message string
}

type handlerFunc func(ctx *gin.Context) (any, *apiError)

// resolveEndpoint wraps h in the success/failure envelope.
func resolveEndpoint(h handlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Status, api.Response{
				Success: false,
				Error:   apiErr.Kind,
				Message: apiErr.Message,
			})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}

// engineError maps an engine error to its status: 422 for a location and
// date with no sunrise or sunset, 400 for other input errors.
func engineError(err error) *apiError {
	kind := prayer.ErrorKind(err)
	status := http.StatusBadRequest
	switch kind {
	case "high_latitude_unsupported":
		status = http.StatusUnprocessableEntity
	case "internal":
		status = http.StatusInternalServerError
	}
	return &apiError{Status: status, Kind: kind, Message: err.Error()}
}

func badRequest(format string, args ...any) *apiError {
	return &apiError{Status: http.StatusBadRequest, Kind: "invalid_request", Message: fmt.Sprintf(format, args...)}
}

// bindRequest reads the query string of a GET and the JSON body of a POST
// into one api.Request.
func bindRequest(ctx *gin.Context) (api.Request, *apiError) {
	var req api.Request
	if ctx.Request.Method == http.MethodPost {
		if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			return req, badRequest("invalid JSON body: %v", err)
		}
		return req, nil
	}

	if err := ctx.ShouldBindQuery(&req); err != nil {
		return req, badRequest("invalid query: %v", err)
	}
	if raw := ctx.QueryMap("adjustments"); len(raw) > 0 {
		req.Adjustments = make(map[string]int, len(raw))
		for name, v := range raw {
			minutes, err := strconv.Atoi(v)
			if err != nil {
				return req, &apiError{
					Status:  http.StatusBadRequest,
					Kind:    "invalid_adjustment",
					Message: fmt.Sprintf("adjustments[%s]=%q: minutes must be an integer", name, v),
				}
			}
			req.Adjustments[name] = minutes
		}
	}
	return req, nil
}

// calculation is a request with the server defaults filled in.
type calculation struct {
	params     prayer.Params
	now        time.Time
	timeFormat string
}

// fill applies the server defaults to req and converts it to engine input.
func (s *Server) fill(req api.Request) (calculation, error) {
	cfg := s.cfg
	c := calculation{now: s.now(), timeFormat: cfg.DefaultTimeFormat}

	lat, lng, elevation := cfg.DefaultLatitude, cfg.DefaultLongitude, 0.0
	if req.Latitude != nil {
		lat = *req.Latitude
	}
	if req.Longitude != nil {
		lng = *req.Longitude
	}
	if req.Elevation != nil {
		elevation = *req.Elevation
	}
	coords, err := prayer.NewCoordinates(lat, lng, elevation)
	if err != nil {
		return c, err
	}

	tz := cfg.DefaultTimezone
	if req.Timezone != nil {
		tz = *req.Timezone
	}
	offset := prayer.OffsetHours(tz)

	if req.Now != "" {
		now, err := time.Parse(time.RFC3339, req.Now)
		if err != nil {
			return c, fmt.Errorf("%w: now %q must be RFC 3339", prayer.ErrInvalidDate, req.Now)
		}
		c.now = now
	}

	date := prayer.DateOf(c.now.In(prayer.Zone(offset)))
	if req.Date != "" {
		if date, err = prayer.ParseDate(req.Date); err != nil {
			return c, err
		}
	}

	methodName := orDefault(req.Method, cfg.DefaultMethod)
	var profile prayer.Profile
	switch {
	case req.FajrAngle != nil:
		var ishaAngle float64
		var ishaInterval int
		if req.IshaAngle != nil {
			ishaAngle = *req.IshaAngle
		}
		if req.IshaInterval != nil {
			ishaInterval = *req.IshaInterval
		}
		if profile, err = prayer.NewProfile("custom", *req.FajrAngle, ishaAngle, ishaInterval); err != nil {
			return c, err
		}
		methodName = profile.Name
	case req.IshaAngle != nil || req.IshaInterval != nil:
		return c, fmt.Errorf("%w: isha_angle and isha_interval need fajr_angle", prayer.ErrInvalidProfile)
	}

	jurisprudence, err := prayer.ParseJurisprudence(orDefault(req.AsrMethod, cfg.DefaultAsrMethod))
	if err != nil {
		return c, err
	}
	highLat, err := prayer.ParseHighLatitudeRule(orDefault(req.HighLat, cfg.DefaultHighLat))
	if err != nil {
		return c, err
	}
	adjustments, err := prayer.ParseAdjustments(req.Adjustments)
	if err != nil {
		return c, err
	}

	if req.TimeFormat != "" {
		c.timeFormat = req.TimeFormat
	}
	c.params = prayer.Params{
		Coordinates:   coords,
		Date:          date,
		Method:        profile,
		MethodName:    methodName,
		Jurisprudence: jurisprudence,
		HighLatitude:  highLat,
		Adjustments:   adjustments,
		UTCOffset:     offset,
	}
	return c, nil
}

func (s *Server) prayerTimes(ctx *gin.Context) (any, *apiError) {
	req, apiErr := bindRequest(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	calc, err := s.fill(req)
	if err != nil {
		return nil, engineError(err)
	}

	times, err := prayer.Calculate(calc.params)
	if err != nil {
		log.Warn().Err(err).
			Str("coordinates", calc.params.Coordinates.String()).
			Str("date", calc.params.Date.String()).
			Str("method", calc.params.MethodName).
			Msg("prayer time calculation failed")
		return nil, engineError(err)
	}
	if len(times.Corrected) > 0 {
		log.Debug().
			Str("coordinates", calc.params.Coordinates.String()).
			Str("rule", calc.params.HighLatitude.String()).
			Interface("corrected", times.Corrected).
			Msg("high latitude rule applied")
	}

	return api.Response{Success: true, Data: buildData(times, calc)}, nil
}

func buildData(times *prayer.Times, calc calculation) *api.Data {
	f := func(t time.Time) string { return prayer.FormatTime(t, calc.timeFormat) }
	data := &api.Data{
		Fajr:    f(times.Fajr),
		Sunrise: f(times.Sunrise),
		Duhr:    f(times.Duhr),
		Asr:     f(times.Asr),
		Maghrib: f(times.Maghrib),
		Isha:    f(times.Isha),
		Date:    times.Date.String(),
		Method:  calc.params.MethodName,
	}

	state := prayer.Resolve(times, calc.now)
	if state.Current != nil {
		data.Current = string(*state.Current)
	}
	data.Next = string(state.Next)

	for _, n := range times.Corrected {
		data.Corrected = append(data.Corrected, n.Key())
	}
	return data
}

func (s *Server) methods(ctx *gin.Context) {
	methods := prayer.Methods()
	out := make([]api.MethodInfo, 0, len(methods))
	for _, m := range methods {
		info := api.MethodInfo{
			Name:        m.Name,
			Description: m.Description,
			FajrAngle:   m.FajrAngle,
		}
		switch r := m.Isha.(type) {
		case prayer.IshaAngle:
			info.IshaAngle = float64(r)
		case prayer.IshaInterval:
			info.IshaInterval = int(r)
		}
		out = append(out, info)
	}
	ctx.JSON(http.StatusOK, api.MethodsResponse{Success: true, Data: out})
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
