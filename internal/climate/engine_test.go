package climate_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/chrissnell/climateapi/internal/climate"
	"github.com/chrissnell/climateapi/internal/dataset"
)

func measurement(station, date string, tobs float64) climate.Measurement {
	return climate.Measurement{Station: station, Date: date, Tobs: tobs}
}

func scenarioStore() *dataset.MemoryStore {
	return dataset.NewMemoryStore(
		[]climate.Station{
			{ID: 1, Station: "USC00519397", Name: "WAIKIKI 717.2, HI US"},
			{ID: 2, Station: "USC00513117", Name: "KANEOHE 838.1, HI US"},
		},
		[]climate.Measurement{
			measurement("USC00519397", "2016-08-23", 77),
			measurement("USC00519397", "2016-08-24", 80),
			measurement("USC00513117", "2017-08-23", 75),
		},
	)
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := climate.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func assertTriple(t *testing.T, s climate.Stats, min, avg, max float64) {
	t.Helper()
	if s.Empty() {
		t.Fatalf("expected (%v, %v, %v), got null triple", min, avg, max)
	}
	const epsilon = 1e-9
	if math.Abs(*s.TMin-min) > epsilon || math.Abs(*s.TAvg-avg) > epsilon || math.Abs(*s.TMax-max) > epsilon {
		t.Errorf("got (%v, %v, %v), want (%v, %v, %v)", *s.TMin, *s.TAvg, *s.TMax, min, avg, max)
	}
}

func TestRangeStats(t *testing.T) {
	engine := climate.NewEngine(scenarioStore(), nil)
	ctx := context.Background()

	tests := []struct {
		name       string
		start, end string
		wantNull   bool
		min        float64
		avg        float64
		max        float64
	}{
		{name: "two days", start: "2016-08-23", end: "2016-08-24", min: 77, avg: 78.5, max: 80},
		{name: "single day", start: "2016-08-24", end: "2016-08-24", min: 80, avg: 80, max: 80},
		{name: "whole dataset", start: "2010-01-01", end: "2017-12-31", min: 75, avg: 77.33333333333333, max: 80},
		{name: "reversed range", start: "2016-08-24", end: "2016-08-23", wantNull: true},
		{name: "no rows in range", start: "2012-01-01", end: "2012-12-31", wantNull: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := engine.RangeStats(ctx, date(t, tt.start), date(t, tt.end))
			if err != nil {
				t.Fatalf("RangeStats returned error: %v", err)
			}
			if tt.wantNull {
				if !s.Empty() {
					t.Errorf("expected null triple, got %+v", s)
				}
				return
			}
			assertTriple(t, s, tt.min, tt.avg, tt.max)
		})
	}
}

func TestRangeStatsIdempotent(t *testing.T) {
	engine := climate.NewEngine(scenarioStore(), nil)
	ctx := context.Background()

	first, err := engine.RangeStats(ctx, date(t, "2016-08-23"), date(t, "2017-08-23"))
	if err != nil {
		t.Fatalf("RangeStats returned error: %v", err)
	}
	second, err := engine.RangeStats(ctx, date(t, "2016-08-23"), date(t, "2017-08-23"))
	if err != nil {
		t.Fatalf("RangeStats returned error: %v", err)
	}
	if *first.TMin != *second.TMin || *first.TAvg != *second.TAvg || *first.TMax != *second.TMax {
		t.Errorf("repeated query changed result: %+v vs %+v", first, second)
	}
}

func TestStatsSince(t *testing.T) {
	engine := climate.NewEngine(scenarioStore(), nil)

	s, err := engine.StatsSince(context.Background(), date(t, "2016-08-24"))
	if err != nil {
		t.Fatalf("StatsSince returned error: %v", err)
	}
	assertTriple(t, s, 75, 77.5, 80)
}

func TestDailyNormals(t *testing.T) {
	engine := climate.NewEngine(scenarioStore(), nil)
	ctx := context.Background()

	s, err := engine.DailyNormals(ctx, climate.MonthDay{Month: time.August, Day: 23})
	if err != nil {
		t.Fatalf("DailyNormals returned error: %v", err)
	}
	assertTriple(t, s, 75, 76, 77)

	s, err = engine.DailyNormals(ctx, climate.MonthDay{Month: time.February, Day: 29})
	if err != nil {
		t.Fatalf("DailyNormals returned error: %v", err)
	}
	if !s.Empty() {
		t.Errorf("expected null triple for a key with no rows, got %+v", s)
	}
}

func TestDailyNormalsYearInvariance(t *testing.T) {
	key := climate.MonthDay{Month: time.August, Day: 23}
	ctx := context.Background()

	single := climate.NewEngine(dataset.NewMemoryStore(nil, []climate.Measurement{
		measurement("USC00519397", "2014-08-23", 73),
		measurement("USC00519397", "2014-08-24", 90),
	}), nil)
	s, err := single.DailyNormals(ctx, key)
	if err != nil {
		t.Fatalf("DailyNormals returned error: %v", err)
	}
	assertTriple(t, s, 73, 73, 73)

	extended := climate.NewEngine(dataset.NewMemoryStore(nil, []climate.Measurement{
		measurement("USC00519397", "2014-08-23", 73),
		measurement("USC00519397", "2014-08-24", 90),
		measurement("USC00519397", "2015-08-23", 79),
	}), nil)
	s, err = extended.DailyNormals(ctx, key)
	if err != nil {
		t.Fatalf("DailyNormals returned error: %v", err)
	}
	assertTriple(t, s, 73, 76, 79)
}

func TestListStations(t *testing.T) {
	engine := climate.NewEngine(scenarioStore(), nil)

	ids, err := engine.ListStations(context.Background())
	if err != nil {
		t.Fatalf("ListStations returned error: %v", err)
	}
	want := []string{"USC00519397", "USC00513117"}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestEmptyStore(t *testing.T) {
	engine := climate.NewEngine(dataset.NewMemoryStore(nil, nil), nil)
	ctx := context.Background()

	ids, err := engine.ListStations(ctx)
	if err != nil {
		t.Fatalf("ListStations returned error: %v", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", ids)
	}

	s, err := engine.RangeStats(ctx, date(t, "2016-01-01"), date(t, "2017-01-01"))
	if err != nil {
		t.Fatalf("RangeStats returned error: %v", err)
	}
	if !s.Empty() {
		t.Errorf("expected null triple, got %+v", s)
	}

	_, ok, err := engine.DefaultWindow(ctx)
	if err != nil {
		t.Fatalf("DefaultWindow returned error: %v", err)
	}
	if ok {
		t.Error("expected no default window for an empty store")
	}

	obs, err := engine.ObservationsInWindow(ctx, nil)
	if err != nil {
		t.Fatalf("ObservationsInWindow returned error: %v", err)
	}
	if obs == nil || len(obs) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", obs)
	}
}

func TestObservationsInWindow(t *testing.T) {
	store := dataset.NewMemoryStore(nil, []climate.Measurement{
		measurement("USC00519397", "2017-08-23", 81),
		measurement("USC00519397", "2016-08-22", 70),
		measurement("USC00513117", "2016-08-23", 77),
		measurement("USC00519397", "2017-01-15", 66),
		measurement("USC00519523", "2016-08-23", 79),
	})
	engine := climate.NewEngine(store, nil)
	ctx := context.Background()

	t.Run("default window is the trailing year", func(t *testing.T) {
		w, ok, err := engine.DefaultWindow(ctx)
		if err != nil || !ok {
			t.Fatalf("DefaultWindow = %v, %v", ok, err)
		}
		if climate.FormatDate(w.Start) != "2016-08-23" || climate.FormatDate(w.End) != "2017-08-23" {
			t.Errorf("window = %s..%s", climate.FormatDate(w.Start), climate.FormatDate(w.End))
		}

		obs, err := engine.ObservationsInWindow(ctx, nil)
		if err != nil {
			t.Fatalf("ObservationsInWindow returned error: %v", err)
		}
		wantDates := []string{"2016-08-23", "2016-08-23", "2017-01-15", "2017-08-23"}
		wantTobs := []float64{77, 79, 66, 81}
		if len(obs) != len(wantDates) {
			t.Fatalf("got %d observations, want %d: %+v", len(obs), len(wantDates), obs)
		}
		for i := range obs {
			if obs[i].Date != wantDates[i] || obs[i].Tobs != wantTobs[i] {
				t.Errorf("obs[%d] = %+v, want {%s %v}", i, obs[i], wantDates[i], wantTobs[i])
			}
		}
	})

	t.Run("explicit window", func(t *testing.T) {
		w := &climate.Window{Start: date(t, "2016-08-22"), End: date(t, "2016-08-22")}
		obs, err := engine.ObservationsInWindow(ctx, w)
		if err != nil {
			t.Fatalf("ObservationsInWindow returned error: %v", err)
		}
		if len(obs) != 1 || obs[0].Tobs != 70 {
			t.Errorf("got %+v", obs)
		}
	})
}

type failingStore struct {
	err    error
	latest string
}

func (f failingStore) StationIDs(context.Context) ([]string, error) { return nil, f.err }

func (f failingStore) TemperatureStats(context.Context, climate.Filter) (climate.Stats, error) {
	return climate.Stats{}, f.err
}

func (f failingStore) Observations(context.Context, climate.Filter) ([]climate.Observation, error) {
	return nil, f.err
}

func (f failingStore) LatestDate(context.Context) (string, error) {
	if f.latest != "" {
		return f.latest, nil
	}
	return "", f.err
}

func (f failingStore) Ping(context.Context) error { return f.err }

func TestEngineWrapsStoreErrors(t *testing.T) {
	errBoom := errors.New("connection reset")
	engine := climate.NewEngine(failingStore{err: errBoom}, nil)
	ctx := context.Background()

	calls := []struct {
		name string
		call func() error
	}{
		{"RangeStats", func() error {
			_, err := engine.RangeStats(ctx, date(t, "2016-01-01"), date(t, "2016-12-31"))
			return err
		}},
		{"StatsSince", func() error {
			_, err := engine.StatsSince(ctx, date(t, "2016-01-01"))
			return err
		}},
		{"DailyNormals", func() error {
			_, err := engine.DailyNormals(ctx, climate.MonthDay{Month: time.January, Day: 1})
			return err
		}},
		{"ListStations", func() error {
			_, err := engine.ListStations(ctx)
			return err
		}},
		{"ObservationsInWindow", func() error {
			_, err := engine.ObservationsInWindow(ctx, nil)
			return err
		}},
		{"Ping", func() error { return engine.Ping(ctx) }},
	}

	for _, c := range calls {
		t.Run(c.name, func(t *testing.T) {
			err := c.call()
			if !errors.Is(err, errBoom) {
				t.Errorf("%s error = %v, want wrapped %v", c.name, err, errBoom)
			}
		})
	}
}

func TestDefaultWindowMalformedLatestDate(t *testing.T) {
	engine := climate.NewEngine(failingStore{latest: "not-a-date"}, nil)

	if _, _, err := engine.DefaultWindow(context.Background()); err == nil {
		t.Error("expected error for malformed latest date")
	}
}
