// Package markers groups the stations of a log by DXCC country for display
// on a map.
package markers

import (
	"sort"

	"github.com/kosciej/cabrillo-log/pkg/cabrillo"
	"github.com/kosciej/cabrillo-log/pkg/enricher"
)

// Marker is one country on the map with every callsign worked from or in it.
type Marker struct {
	Country   string   `json:"country"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	CQZone    int      `json:"cq_zone"`
	ITUZone   int      `json:"itu_zone"`
	DXCC      int      `json:"dxcc"`
	Callsigns []string `json:"callsigns"`
}

type group struct {
	marker Marker
	seen   map[string]struct{}
}

func (g *group) add(call string) {
	if _, ok := g.seen[call]; ok {
		return
	}
	g.seen[call] = struct{}{}
	g.marker.Callsigns = append(g.marker.Callsigns, call)
}

// Build resolves the sent and received callsign of every QSO and groups
// them by country. Callsigns keep their first-seen order and appear once per
// country. Unknown callsigns are dropped. Markers are sorted by country.
func Build(log *cabrillo.Log, table *enricher.Table) []Marker {
	if table == nil {
		table = enricher.Default()
	}

	groups := make(map[string]*group)
	add := func(call string) {
		entity, ok := table.Lookup(call)
		if !ok {
			return
		}
		g, ok := groups[entity.Country]
		if !ok {
			g = &group{
				marker: Marker{
					Country:   entity.Country,
					Latitude:  entity.Latitude,
					Longitude: entity.Longitude,
					CQZone:    entity.CQZone,
					ITUZone:   entity.ITUZone,
					DXCC:      entity.DXCC,
				},
				seen: make(map[string]struct{}),
			}
			groups[entity.Country] = g
		}
		g.add(call)
	}

	for _, q := range log.QSOs {
		add(q.SentCall)
		add(q.RcvdCall)
	}

	result := make([]Marker, 0, len(groups))
	for _, g := range groups {
		result = append(result, g.marker)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Country < result[j].Country })
	return result
}
