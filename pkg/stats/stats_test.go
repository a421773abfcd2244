package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosciej/cabrillo-log/pkg/cabrillo"
	"github.com/kosciej/cabrillo-log/pkg/enricher"
)

func testQSOs() []cabrillo.QSO {
	return []cabrillo.QSO{
		{
			Freq:     "14000",
			Mode:     "CW",
			Time:     time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC),
			SentCall: "N1MM",
			SentExch: "599 001",
			RcvdCall: "W1AW",
			RcvdExch: "599 001",
		},
		{
			Freq:     "7000",
			Mode:     "PH",
			Time:     time.Date(2023, 10, 1, 12, 30, 0, 0, time.UTC),
			SentCall: "N1MM",
			SentExch: "59 001",
			RcvdCall: "SP5TLS",
			RcvdExch: "59 001",
		},
	}
}

func newTestStats(t *testing.T, qsos []cabrillo.QSO) *QSOStats {
	t.Helper()
	s, err := New(context.Background(), qsos, enricher.Default())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFrequencyToBand(t *testing.T) {
	tests := map[string]string{
		"1800":   "160m",
		"3500":   "80m",
		"7000":   "40m",
		"7300":   "40m",
		"10120":  "30m",
		"14000":  "20m",
		"14350":  "20m",
		"18100":  "17m",
		"21000":  "15m",
		"24900":  "12m",
		"28500":  "10m",
		"50100":  "6m",
		"70200":  "4m",
		"144300": "2m",
		"432100": "70cm",
		"14351":  UnknownBand,
		"abc":    UnknownBand,
		"":       UnknownBand,
	}
	for freq, want := range tests {
		t.Run(freq, func(t *testing.T) {
			assert.Equal(t, want, FrequencyToBand(freq))
		})
	}
}

func TestBands(t *testing.T) {
	bands := Bands()
	assert.Equal(t, "160m", bands[0])
	assert.Equal(t, "70cm", bands[len(bands)-1])
}

func TestTotalQSOCount(t *testing.T) {
	ctx := context.Background()
	s := newTestStats(t, testQSOs())

	total, err := s.TotalQSOCount(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	t.Run("raw band filter", func(t *testing.T) {
		total, err := s.TotalQSOCount(ctx, &Filter{Band: "14000"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("mode filter", func(t *testing.T) {
		total, err := s.TotalQSOCount(ctx, &Filter{Mode: "CW"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("band name and country", func(t *testing.T) {
		total, err := s.TotalQSOCount(ctx, &Filter{BandName: "40m", Country: "Poland"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("time range", func(t *testing.T) {
		start := time.Date(2023, 10, 1, 12, 15, 0, 0, time.UTC)
		total, err := s.TotalQSOCount(ctx, &Filter{Start: &start})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		end := time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)
		total, err = s.TotalQSOCount(ctx, &Filter{End: &end})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("values are bound not interpolated", func(t *testing.T) {
		total, err := s.TotalQSOCount(ctx, &Filter{Country: "x' OR '1'='1"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func TestTimeIntervalStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStats(t, testQSOs())

	intervals, err := s.TimeIntervalStats(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, intervals.Count)
	assert.Equal(t, 30.0, intervals.MinMinutes)
	assert.Equal(t, 30.0, intervals.MaxMinutes)
	assert.Equal(t, 30.0, intervals.AvgMinutes)

	_, err = s.TimeIntervalStats(ctx, &Filter{Mode: "CW"})
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestQSOPerBand(t *testing.T) {
	s := newTestStats(t, testQSOs())

	perBand, err := s.QSOPerBand(context.Background(), nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Count{{Name: "20m", Count: 1}, {Name: "40m", Count: 1}}, perBand)
}

func TestQSOPerCountry(t *testing.T) {
	s := newTestStats(t, testQSOs())

	perCountry, err := s.QSOPerCountry(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, perCountry, Count{Name: "United States", Count: 1})
	assert.Contains(t, perCountry, Count{Name: "Poland", Count: 1})
}

func TestGroupingOrderAndEmptyKeys(t *testing.T) {
	qsos := testQSOs()
	extra := qsos[0]
	extra.Time = extra.Time.Add(time.Hour)
	extra.RcvdCall = "K1ABC"
	unknown := qsos[1]
	unknown.RcvdCall = "Q9ZZZ"
	qsos = append(qsos, extra, unknown)

	s := newTestStats(t, qsos)
	ctx := context.Background()

	perCountry, err := s.QSOPerCountry(ctx, nil)
	require.NoError(t, err)
	require.Len(t, perCountry, 2)
	assert.Equal(t, Count{Name: "United States", Count: 2}, perCountry[0])

	perContinent, err := s.QSOPerContinent(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []Count{{Name: "NA", Count: 2}, {Name: "EU", Count: 1}}, perContinent)

	perMode, err := s.QSOPerMode(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []Count{{Name: "CW", Count: 2}, {Name: "PH", Count: 2}}, perMode)

	zones, err := s.QSOPerCQZone(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{5: 2, 15: 1}, zones)
}

func TestQSOPerCountryBand(t *testing.T) {
	s := newTestStats(t, testQSOs())

	rows, err := s.QSOPerCountryBand(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byItem := map[string]CountryBand{}
	for _, r := range rows {
		byItem[r.Item] = r
	}
	assert.Equal(t, CountryBand{Item: "United States", Count20m: 1, Total: 1}, byItem["United States"])
	assert.Equal(t, CountryBand{Item: "Poland", Count40m: 1, Total: 1}, byItem["Poland"])
}

func TestTimeSeriesQSOFrequency(t *testing.T) {
	s := newTestStats(t, testQSOs())

	series, err := s.TimeSeriesQSOFrequency(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, series, 2)

	total := 0
	for _, p := range series {
		total += p.Count
		assert.Equal(t, 12, p.Timestamp.Hour())
	}
	assert.Equal(t, 2, total)
	assert.True(t, series[0].Timestamp.Before(series[1].Timestamp))
}

func TestQSOPerHourBand(t *testing.T) {
	qsos := testQSOs()
	late := qsos[0]
	late.Time = time.Date(2023, 10, 1, 23, 59, 0, 0, time.UTC)
	qsos = append(qsos, late)

	s := newTestStats(t, qsos)

	hours, err := s.QSOPerHourBand(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, hours, 2)
	assert.Equal(t, HourBand{Hour: 12, Bands: map[string]int{"20m": 1, "40m": 1}, Total: 2}, hours[0])
	assert.Equal(t, HourBand{Hour: 23, Bands: map[string]int{"20m": 1}, Total: 1}, hours[1])
}

func TestSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("full", func(t *testing.T) {
		s := newTestStats(t, testQSOs())
		sum, err := s.Summary(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), sum.Total)
		require.NotNil(t, sum.Intervals)
		assert.Equal(t, 30.0, sum.Intervals.AvgMinutes)
		assert.Len(t, sum.PerBand, 2)
		assert.Len(t, sum.TimeSeries, 2)
	})

	t.Run("single qso has no intervals", func(t *testing.T) {
		s := newTestStats(t, testQSOs()[:1])
		sum, err := s.Summary(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), sum.Total)
		assert.Nil(t, sum.Intervals)
	})

	t.Run("empty log", func(t *testing.T) {
		s := newTestStats(t, nil)
		sum, err := s.Summary(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), sum.Total)
		assert.Empty(t, sum.PerBand)
	})
}

func TestEnrich(t *testing.T) {
	q := testQSOs()[1]
	e := Enrich(q, enricher.Default())

	assert.Equal(t, "Poland", e.Country)
	assert.Equal(t, "EU", e.Continent)
	assert.Equal(t, 15, e.CQZone)
	assert.Equal(t, 28, e.ITUZone)
	assert.Equal(t, 269, e.DXCC)
	assert.Equal(t, "40m", e.BandName)
}

func TestNew_IndependentDatabases(t *testing.T) {
	ctx := context.Background()
	a := newTestStats(t, testQSOs())
	b := newTestStats(t, testQSOs()[:1])

	ta, err := a.TotalQSOCount(ctx, nil)
	require.NoError(t, err)
	tb, err := b.TotalQSOCount(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ta)
	assert.Equal(t, int64(1), tb)
}
