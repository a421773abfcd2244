package stats

import "strconv"

type bandEdge struct {
	name     string
	low, max float64
}

// band edges in kHz, inclusive
var bandEdges = []bandEdge{
	{"160m", 1800, 2000},
	{"80m", 3500, 4000},
	{"40m", 7000, 7300},
	{"30m", 10100, 10150},
	{"20m", 14000, 14350},
	{"17m", 18068, 18168},
	{"15m", 21000, 21450},
	{"12m", 24890, 24990},
	{"10m", 28000, 29700},
	{"6m", 50000, 54000},
	{"4m", 70000, 70500},
	{"2m", 144000, 148000},
	{"70cm", 420000, 450000},
}

// UnknownBand is returned for frequencies outside every amateur band.
const UnknownBand = "Unknown"

// FrequencyToBand maps a frequency in kHz to the amateur band name.
func FrequencyToBand(freq string) string {
	khz, err := strconv.ParseFloat(freq, 64)
	if err != nil {
		return UnknownBand
	}
	for _, b := range bandEdges {
		if khz >= b.low && khz <= b.max {
			return b.name
		}
	}
	return UnknownBand
}

// Bands returns every known band name from the lowest to the highest frequency.
func Bands() []string {
	names := make([]string, len(bandEdges))
	for i, b := range bandEdges {
		names[i] = b.name
	}
	return names
}
