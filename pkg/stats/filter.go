package stats

import (
	"strings"
	"time"
)

// Filter restricts the QSOs a query looks at. Zero values do not filter.
type Filter struct {
	// Band matches the raw frequency column, e.g. "14000"
	Band string `json:"band,omitempty"`
	// BandName matches the derived band name, e.g. "20m"
	BandName string     `json:"band_name,omitempty"`
	Country  string     `json:"country,omitempty"`
	Mode     string     `json:"mode,omitempty"`
	CQZone   int        `json:"cq_zone,omitempty"`
	ITUZone  int        `json:"itu_zone,omitempty"`
	Start    *time.Time `json:"start,omitempty"`
	End      *time.Time `json:"end,omitempty"`
}

// where renders the WHERE clause for the filter combined with extra
// conditions. The clause is empty when nothing applies.
func (f *Filter) where(extra ...string) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)

	if f != nil {
		if f.Band != "" {
			conditions = append(conditions, "freq = ?")
			args = append(args, f.Band)
		}
		if f.BandName != "" {
			conditions = append(conditions, "band_name = ?")
			args = append(args, f.BandName)
		}
		if f.Country != "" {
			conditions = append(conditions, "country = ?")
			args = append(args, f.Country)
		}
		if f.CQZone != 0 {
			conditions = append(conditions, "cq_zone = ?")
			args = append(args, f.CQZone)
		}
		if f.ITUZone != 0 {
			conditions = append(conditions, "itu_zone = ?")
			args = append(args, f.ITUZone)
		}
		if f.Mode != "" {
			conditions = append(conditions, "mode = ?")
			args = append(args, f.Mode)
		}
		if f.Start != nil {
			conditions = append(conditions, "timestamp >= ?")
			args = append(args, formatTimestamp(*f.Start))
		}
		if f.End != nil {
			conditions = append(conditions, "timestamp <= ?")
			args = append(args, formatTimestamp(*f.End))
		}
	}

	conditions = append(conditions, extra...)
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
