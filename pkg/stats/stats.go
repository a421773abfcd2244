package stats

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kosciej/cabrillo-log/pkg/cabrillo"
	"github.com/kosciej/cabrillo-log/pkg/db"
	"github.com/kosciej/cabrillo-log/pkg/enricher"
)

// ErrNoData is returned when a statistic needs more QSOs than the filter selects.
var ErrNoData = errors.New("no data")

const createTableSQL = `CREATE TABLE qsos (
	id INTEGER PRIMARY KEY,
	timestamp TEXT NOT NULL,
	freq TEXT NOT NULL,
	band_name TEXT NOT NULL,
	mode TEXT NOT NULL,
	sent_call TEXT NOT NULL,
	rcvd_call TEXT NOT NULL,
	country TEXT NOT NULL DEFAULT '',
	cq_zone INTEGER NOT NULL DEFAULT 0,
	itu_zone INTEGER NOT NULL DEFAULT 0,
	continent TEXT NOT NULL DEFAULT '',
	dxcc INTEGER NOT NULL DEFAULT 0
)`

const insertBatchSize = 500

// QSOStats answers statistics queries over one set of QSOs.
type QSOStats struct {
	db *gorm.DB
}

// New enriches qsos with table and loads them into a fresh in-memory
// database. A nil table uses enricher.Default().
func New(ctx context.Context, qsos []cabrillo.QSO, table *enricher.Table) (*QSOStats, error) {
	if table == nil {
		table = enricher.Default()
	}

	gdb, err := db.OpenMemory(false)
	if err != nil {
		return nil, err
	}
	if err := gdb.WithContext(ctx).Exec(createTableSQL).Error; err != nil {
		_ = db.Close(gdb)
		return nil, fmt.Errorf("failed to create qsos table: %w", err)
	}

	if len(qsos) > 0 {
		rows := make([]qsoRow, len(qsos))
		for i, q := range qsos {
			rows[i] = newRow(int64(i+1), Enrich(q, table))
		}
		if err := gdb.WithContext(ctx).CreateInBatches(rows, insertBatchSize).Error; err != nil {
			_ = db.Close(gdb)
			return nil, fmt.Errorf("failed to insert qsos: %w", err)
		}
	}

	zap.L().Debug("stats database ready", zap.Int("qsos", len(qsos)))

	return &QSOStats{db: gdb}, nil
}

// Close releases the in-memory database.
func (s *QSOStats) Close() error {
	return db.Close(s.db)
}

// TotalQSOCount returns the number of QSOs matching filter.
func (s *QSOStats) TotalQSOCount(ctx context.Context, filter *Filter) (int64, error) {
	where, args := filter.where()

	var count int64
	if err := s.db.WithContext(ctx).Raw("SELECT COUNT(*) FROM qsos"+where, args...).Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count qsos: %w", err)
	}
	return count, nil
}

type stampRow struct {
	Stamp string `gorm:"column:stamp"`
}

// TimeIntervalStats returns min, max and average gaps between consecutive
// QSOs. Gaps are truncated to whole minutes.
func (s *QSOStats) TimeIntervalStats(ctx context.Context, filter *Filter) (*IntervalStats, error) {
	where, args := filter.where()

	var stamps []stampRow
	if err := s.db.WithContext(ctx).Raw("SELECT timestamp AS stamp FROM qsos"+where+" ORDER BY timestamp", args...).Scan(&stamps).Error; err != nil {
		return nil, fmt.Errorf("failed to query timestamps: %w", err)
	}

	if len(stamps) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 QSOs for interval statistics", ErrNoData)
	}

	result := &IntervalStats{
		MinMinutes: math.Inf(1),
		MaxMinutes: math.Inf(-1),
	}
	var sum float64

	prev, err := time.Parse(timestampLayout, stamps[0].Stamp)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", stamps[0].Stamp, err)
	}
	for _, st := range stamps[1:] {
		ts, err := time.Parse(timestampLayout, st.Stamp)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", st.Stamp, err)
		}
		minutes := math.Trunc(ts.Sub(prev).Minutes())
		result.MinMinutes = math.Min(result.MinMinutes, minutes)
		result.MaxMinutes = math.Max(result.MaxMinutes, minutes)
		sum += minutes
		result.Count++
		prev = ts
	}
	result.AvgMinutes = sum / float64(result.Count)

	return result, nil
}

// QSOPerBand counts QSOs per band name.
func (s *QSOStats) QSOPerBand(ctx context.Context, filter *Filter) ([]Count, error) {
	return s.groupBy(ctx, "band_name", filter)
}

// QSOPerCountry counts QSOs per country of the received callsign.
func (s *QSOStats) QSOPerCountry(ctx context.Context, filter *Filter) ([]Count, error) {
	return s.groupBy(ctx, "country", filter)
}

// QSOPerContinent counts QSOs per continent of the received callsign.
func (s *QSOStats) QSOPerContinent(ctx context.Context, filter *Filter) ([]Count, error) {
	return s.groupBy(ctx, "continent", filter)
}

// QSOPerMode counts QSOs per mode.
func (s *QSOStats) QSOPerMode(ctx context.Context, filter *Filter) ([]Count, error) {
	return s.groupBy(ctx, "mode", filter)
}

type groupRow struct {
	Name  string `gorm:"column:name"`
	Total int    `gorm:"column:total"`
}

// column is always one of the constants above, never user input
func (s *QSOStats) groupBy(ctx context.Context, column string, filter *Filter) ([]Count, error) {
	where, args := filter.where(column + " != ''")
	query := fmt.Sprintf(
		"SELECT %[1]s AS name, COUNT(*) AS total FROM qsos%[2]s GROUP BY %[1]s ORDER BY COUNT(*) DESC, %[1]s ASC",
		column, where,
	)

	var rows []groupRow
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to group qsos by %s: %w", column, err)
	}

	result := make([]Count, len(rows))
	for i, r := range rows {
		result[i] = Count{Name: r.Name, Count: r.Total}
	}
	return result, nil
}

type zoneRow struct {
	Zone  int `gorm:"column:zone"`
	Total int `gorm:"column:total"`
}

// QSOPerCQZone counts QSOs per CQ zone. Unknown zones are skipped.
func (s *QSOStats) QSOPerCQZone(ctx context.Context, filter *Filter) (map[int]int, error) {
	where, args := filter.where("cq_zone > 0")

	var rows []zoneRow
	if err := s.db.WithContext(ctx).Raw("SELECT cq_zone AS zone, COUNT(*) AS total FROM qsos"+where+" GROUP BY cq_zone", args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to group qsos by cq zone: %w", err)
	}

	result := make(map[int]int, len(rows))
	for _, r := range rows {
		result[r.Zone] = r.Total
	}
	return result, nil
}

type countryBandRow struct {
	Country string `gorm:"column:country"`
	B160m   int    `gorm:"column:b160m"`
	B80m    int    `gorm:"column:b80m"`
	B40m    int    `gorm:"column:b40m"`
	B20m    int    `gorm:"column:b20m"`
	B15m    int    `gorm:"column:b15m"`
	B10m    int    `gorm:"column:b10m"`
	B6m     int    `gorm:"column:b6m"`
	Total   int    `gorm:"column:total"`
}

const countryBandSQL = `SELECT country,
	SUM(CASE WHEN band_name = '160m' THEN 1 ELSE 0 END) AS b160m,
	SUM(CASE WHEN band_name = '80m' THEN 1 ELSE 0 END) AS b80m,
	SUM(CASE WHEN band_name = '40m' THEN 1 ELSE 0 END) AS b40m,
	SUM(CASE WHEN band_name = '20m' THEN 1 ELSE 0 END) AS b20m,
	SUM(CASE WHEN band_name = '15m' THEN 1 ELSE 0 END) AS b15m,
	SUM(CASE WHEN band_name = '10m' THEN 1 ELSE 0 END) AS b10m,
	SUM(CASE WHEN band_name = '6m' THEN 1 ELSE 0 END) AS b6m,
	COUNT(*) AS total
	FROM qsos%s GROUP BY country ORDER BY COUNT(*) DESC, country ASC`

// QSOPerCountryBand counts QSOs per country split by contest band.
func (s *QSOStats) QSOPerCountryBand(ctx context.Context, filter *Filter) ([]CountryBand, error) {
	where, args := filter.where("country != ''", "band_name != ''")

	var rows []countryBandRow
	if err := s.db.WithContext(ctx).Raw(fmt.Sprintf(countryBandSQL, where), args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to group qsos by country and band: %w", err)
	}

	result := make([]CountryBand, len(rows))
	for i, r := range rows {
		result[i] = CountryBand{
			Item:      r.Country,
			Count160m: r.B160m,
			Count80m:  r.B80m,
			Count40m:  r.B40m,
			Count20m:  r.B20m,
			Count15m:  r.B15m,
			Count10m:  r.B10m,
			Count6m:   r.B6m,
			Total:     r.Total,
		}
	}
	return result, nil
}

type seriesRow struct {
	Stamp string `gorm:"column:stamp"`
	Total int    `gorm:"column:total"`
}

// TimeSeriesQSOFrequency counts QSOs per distinct timestamp in time order.
func (s *QSOStats) TimeSeriesQSOFrequency(ctx context.Context, filter *Filter) ([]TimeSeriesPoint, error) {
	where, args := filter.where()

	var rows []seriesRow
	if err := s.db.WithContext(ctx).Raw("SELECT timestamp AS stamp, COUNT(*) AS total FROM qsos"+where+" GROUP BY timestamp ORDER BY timestamp", args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query time series: %w", err)
	}

	result := make([]TimeSeriesPoint, 0, len(rows))
	for _, r := range rows {
		ts, err := time.Parse(timestampLayout, r.Stamp)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", r.Stamp, err)
		}
		result = append(result, TimeSeriesPoint{Timestamp: ts, Count: r.Total})
	}
	return result, nil
}

type hourBandRow struct {
	Hour  int    `gorm:"column:hour"`
	Band  string `gorm:"column:band"`
	Total int    `gorm:"column:total"`
}

// QSOPerHourBand counts QSOs per UTC hour of day and band. Hours without
// QSOs are omitted.
func (s *QSOStats) QSOPerHourBand(ctx context.Context, filter *Filter) ([]HourBand, error) {
	where, args := filter.where()
	query := "SELECT CAST(substr(timestamp, 12, 2) AS INTEGER) AS hour, band_name AS band, COUNT(*) AS total FROM qsos" +
		where + " GROUP BY hour, band_name ORDER BY hour"

	var rows []hourBandRow
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to group qsos by hour: %w", err)
	}

	byHour := make(map[int]*HourBand)
	for _, r := range rows {
		hb, ok := byHour[r.Hour]
		if !ok {
			hb = &HourBand{Hour: r.Hour, Bands: make(map[string]int)}
			byHour[r.Hour] = hb
		}
		hb.Bands[r.Band] += r.Total
		hb.Total += r.Total
	}

	result := make([]HourBand, 0, len(byHour))
	for _, hb := range byHour {
		result = append(result, *hb)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Hour < result[j].Hour })
	return result, nil
}

// Summary runs every query with the same filter. Intervals is nil when
// fewer than two QSOs match.
func (s *QSOStats) Summary(ctx context.Context, filter *Filter) (*Summary, error) {
	var (
		sum Summary
		err error
	)

	if sum.Total, err = s.TotalQSOCount(ctx, filter); err != nil {
		return nil, err
	}
	sum.Intervals, err = s.TimeIntervalStats(ctx, filter)
	if err != nil && !errors.Is(err, ErrNoData) {
		return nil, err
	}
	if sum.PerBand, err = s.QSOPerBand(ctx, filter); err != nil {
		return nil, err
	}
	if sum.PerCountry, err = s.QSOPerCountry(ctx, filter); err != nil {
		return nil, err
	}
	if sum.PerContinent, err = s.QSOPerContinent(ctx, filter); err != nil {
		return nil, err
	}
	if sum.PerMode, err = s.QSOPerMode(ctx, filter); err != nil {
		return nil, err
	}
	if sum.PerCQZone, err = s.QSOPerCQZone(ctx, filter); err != nil {
		return nil, err
	}
	if sum.PerCountryBand, err = s.QSOPerCountryBand(ctx, filter); err != nil {
		return nil, err
	}
	if sum.TimeSeries, err = s.TimeSeriesQSOFrequency(ctx, filter); err != nil {
		return nil, err
	}
	if sum.PerHourBand, err = s.QSOPerHourBand(ctx, filter); err != nil {
		return nil, err
	}

	return &sum, nil
}
