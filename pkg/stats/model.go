package stats

import (
	"time"

	"github.com/kosciej/cabrillo-log/pkg/cabrillo"
	"github.com/kosciej/cabrillo-log/pkg/enricher"
)

// EnrichedQSO is a QSO with the entity data of the received callsign.
type EnrichedQSO struct {
	Timestamp time.Time `json:"timestamp"`
	Freq      string    `json:"freq"`
	BandName  string    `json:"band_name"`
	Mode      string    `json:"mode"`
	SentCall  string    `json:"sent_call"`
	RcvdCall  string    `json:"rcvd_call"`
	Country   string    `json:"country,omitempty"`
	CQZone    int       `json:"cq_zone,omitempty"`
	ITUZone   int       `json:"itu_zone,omitempty"`
	Continent string    `json:"continent,omitempty"`
	DXCC      int       `json:"dxcc,omitempty"`
}

// Enrich resolves the received callsign of q against table.
// Unknown callsigns leave the entity fields empty.
func Enrich(q cabrillo.QSO, table *enricher.Table) EnrichedQSO {
	e := EnrichedQSO{
		Timestamp: q.Time.UTC(),
		Freq:      q.Freq,
		BandName:  FrequencyToBand(q.Freq),
		Mode:      q.Mode,
		SentCall:  q.SentCall,
		RcvdCall:  q.RcvdCall,
	}
	if entity, ok := table.Lookup(q.RcvdCall); ok {
		e.Country = entity.Country
		e.CQZone = entity.CQZone
		e.ITUZone = entity.ITUZone
		e.Continent = entity.Continent
		e.DXCC = entity.DXCC
	}
	return e
}

// qsoRow is the persisted form of an EnrichedQSO
type qsoRow struct {
	ID        int64  `gorm:"column:id;primaryKey"`
	Timestamp string `gorm:"column:timestamp"`
	Freq      string `gorm:"column:freq"`
	BandName  string `gorm:"column:band_name"`
	Mode      string `gorm:"column:mode"`
	SentCall  string `gorm:"column:sent_call"`
	RcvdCall  string `gorm:"column:rcvd_call"`
	Country   string `gorm:"column:country"`
	CQZone    int    `gorm:"column:cq_zone"`
	ITUZone   int    `gorm:"column:itu_zone"`
	Continent string `gorm:"column:continent"`
	DXCC      int    `gorm:"column:dxcc"`
}

func (qsoRow) TableName() string {
	return "qsos"
}

// timestamps are stored as fixed-width UTC text so that ordering and range
// comparisons work lexically
const timestampLayout = "2006-01-02T15:04:05Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func newRow(id int64, e EnrichedQSO) qsoRow {
	return qsoRow{
		ID:        id,
		Timestamp: formatTimestamp(e.Timestamp),
		Freq:      e.Freq,
		BandName:  e.BandName,
		Mode:      e.Mode,
		SentCall:  e.SentCall,
		RcvdCall:  e.RcvdCall,
		Country:   e.Country,
		CQZone:    e.CQZone,
		ITUZone:   e.ITUZone,
		Continent: e.Continent,
		DXCC:      e.DXCC,
	}
}

// Count is a group key with its number of QSOs.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// IntervalStats describes the gaps between consecutive QSOs in whole minutes.
type IntervalStats struct {
	MinMinutes float64 `json:"min_minutes"`
	MaxMinutes float64 `json:"max_minutes"`
	AvgMinutes float64 `json:"avg_minutes"`
	Count      int     `json:"count"`
}

// CountryBand holds per-band QSO counts for one country.
type CountryBand struct {
	Item      string `json:"item"`
	Count160m int    `json:"count160m"`
	Count80m  int    `json:"count80m"`
	Count40m  int    `json:"count40m"`
	Count20m  int    `json:"count20m"`
	Count15m  int    `json:"count15m"`
	Count10m  int    `json:"count10m"`
	Count6m   int    `json:"count6m"`
	Total     int    `json:"total"`
}

// TimeSeriesPoint is the number of QSOs logged at one timestamp.
type TimeSeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
}

// HourBand holds per-band QSO counts for one UTC hour of the day.
type HourBand struct {
	Hour  int            `json:"hour"`
	Bands map[string]int `json:"bands"`
	Total int            `json:"total"`
}

// Summary bundles every statistic for a log.
type Summary struct {
	Total          int64             `json:"total"`
	Intervals      *IntervalStats    `json:"intervals,omitempty"`
	PerBand        []Count           `json:"per_band"`
	PerCountry     []Count           `json:"per_country"`
	PerContinent   []Count           `json:"per_continent"`
	PerMode        []Count           `json:"per_mode"`
	PerCQZone      map[int]int       `json:"per_cq_zone"`
	PerCountryBand []CountryBand     `json:"per_country_band"`
	TimeSeries     []TimeSeriesPoint `json:"time_series"`
	PerHourBand    []HourBand        `json:"per_hour_band"`
}
