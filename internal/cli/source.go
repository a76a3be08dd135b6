package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/smokyabdulrahman/prayer-engine/internal/api"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

// source produces the boundaries of one date.
type source interface {
	Times(ctx context.Context, date prayer.Date) (*prayer.Times, error)
}

type localSource struct {
	params prayer.Params
}

func (s localSource) Times(_ context.Context, date prayer.Date) (*prayer.Times, error) {
	return s.params.Day(date)
}

// remoteTimeFormat asks the server for RFC 3339 instants.
const remoteTimeFormat = `Y-m-d\TH:i:sP`

type remoteSource struct {
	client *api.Client
	req    api.Request
	zone   *time.Location
}

func (s remoteSource) Times(ctx context.Context, date prayer.Date) (*prayer.Times, error) {
	req := s.req
	req.Date = date.String()
	req.TimeFormat = remoteTimeFormat

	data, err := s.client.Calculate(ctx, req)
	if err != nil {
		return nil, err
	}

	times := &prayer.Times{Date: date}
	fields := []struct {
		dst   *time.Time
		value string
		name  prayer.Name
	}{
		{&times.Fajr, data.Fajr, prayer.Fajr},
		{&times.Sunrise, data.Sunrise, prayer.Sunrise},
		{&times.Duhr, data.Duhr, prayer.Duhr},
		{&times.Asr, data.Asr, prayer.Asr},
		{&times.Maghrib, data.Maghrib, prayer.Maghrib},
		{&times.Isha, data.Isha, prayer.Isha},
	}
	for _, f := range fields {
		t, err := time.Parse(time.RFC3339, f.value)
		if err != nil {
			return nil, fmt.Errorf("server returned invalid %s time %q: %w", f.name, f.value, err)
		}
		*f.dst = t.In(s.zone)
	}
	for _, key := range data.Corrected {
		n, err := prayer.ParseName(key)
		if err != nil {
			return nil, fmt.Errorf("server returned invalid corrected entry: %w", err)
		}
		times.Corrected = append(times.Corrected, n)
	}
	return times, nil
}

// dayFunc binds src to ctx for prayer.NextOccurrence.
func dayFunc(ctx context.Context, src source) prayer.DayFunc {
	return func(d prayer.Date) (*prayer.Times, error) {
		return src.Times(ctx, d)
	}
}
