package enricher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		callsign   string
		mainPrefix string
		country    string
		cqZone     int
		dxcc       int
	}{
		{"1A", "1A", "Sov Mil Order of Malta", 15, 246},
		{"3B6", "3B6", "Agalega & St. Brandon", 39, 4},
		{"4J", "4J", "Azerbaijan", 21, 18},
		{"K", "K", "United States", 5, 291},
		{"W", "K", "United States", 5, 291},
		{"3D2/c", "3D2", "Fiji", 32, 176},
		{"SP5TLS", "SP", "Poland", 15, 269},
		{"SN0K", "SP", "Poland", 15, 269},
		{"SW6ALL", "SV", "Greece", 20, 236},
		{"4U0IARU", "*4U1V", "Vienna Intl Ctr", 15, 206},
		{"TC1A", "*TA1", "European Turkey", 20, 390},
		{"TC2A", "TA", "Asiatic Turkey", 20, 390},
		{"ua9abc", "UA9", "Asiatic Russia", 17, 15},
		{"VE3/KA5WSS", "VE", "Canada", 5, 1},
	}

	table := Default()
	for _, tc := range tests {
		t.Run(tc.callsign, func(t *testing.T) {
			e, ok := table.Lookup(tc.callsign)
			require.True(t, ok, "no entity for %s", tc.callsign)
			assert.Equal(t, tc.mainPrefix, e.MainPrefix)
			assert.Equal(t, tc.country, e.Country)
			assert.Equal(t, tc.cqZone, e.CQZone)
			assert.Equal(t, tc.dxcc, e.DXCC)

			scanned, ok := table.LookupScan(tc.callsign)
			require.True(t, ok)
			assert.Equal(t, e, scanned)
		})
	}
}

func TestLookupMiss(t *testing.T) {
	table := Default()

	_, ok := table.Lookup("")
	assert.False(t, ok)

	_, ok = table.Lookup("QQ1ZZZ")
	assert.False(t, ok)

	// exact entries never act as prefixes
	_, ok = table.Lookup("4U0IARUX")
	assert.False(t, ok)
}

func TestLookupOverrides(t *testing.T) {
	table := Default()

	e, ok := table.Lookup("KH6/W1AW")
	require.True(t, ok)
	assert.Equal(t, "United States", e.Country)
	assert.Equal(t, 31, e.CQZone)
	assert.Equal(t, 61, e.ITUZone)

	// the override is a copy, the base entity keeps its zones
	base, ok := table.Lookup("W1AW")
	require.True(t, ok)
	assert.Equal(t, 5, base.CQZone)
	assert.Equal(t, 8, base.ITUZone)
}

func TestLoad(t *testing.T) {
	t.Run("overrides and parts", func(t *testing.T) {
		csv := strings.Join([]string{
			"UA9,Asiatic Russia,15,AS,17,30,55.88,-84.08,-7.0,UA9 UA0(19)[34]{AS}<62.0/-130.0>~-9.0~;",
			"CE0Y,Easter Island/Rapa Nui,47,SA,12,14,-27.10,109.37,6.0,CE0Y XQ0Y;",
			"too,short,line",
			"",
		}, "\n")

		table, err := Load(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 4, table.Len())

		e, ok := table.Lookup("UA0AA")
		require.True(t, ok)
		assert.Equal(t, 19, e.CQZone)
		assert.Equal(t, 34, e.ITUZone)
		assert.Equal(t, 62.0, e.Latitude)
		assert.Equal(t, 130.0, e.Longitude)
		assert.Equal(t, -9.0, e.TimeOffset)

		e, ok = table.Lookup("UA9AA")
		require.True(t, ok)
		assert.Equal(t, 84.08, e.Longitude)

		e, ok = table.Lookup("XQ0YAA")
		require.True(t, ok)
		assert.Equal(t, "Easter Island", e.Country)
		assert.Equal(t, "Rapa Nui", e.Part)
	})

	t.Run("last line wins for duplicate prefixes", func(t *testing.T) {
		csv := "A,First,1,EU,1,1,0,0,0,AA;\nB,Second,2,EU,2,2,0,0,0,AA;\n"
		table, err := Load(strings.NewReader(csv))
		require.NoError(t, err)

		e, ok := table.Lookup("AA1A")
		require.True(t, ok)
		assert.Equal(t, "Second", e.Country)
		assert.Len(t, table.Entities(), 2)
	})

	t.Run("bad numbers", func(t *testing.T) {
		_, err := Load(strings.NewReader("A,First,x,EU,1,1,0,0,0,AA;\n"))
		assert.ErrorContains(t, err, "line 1: invalid dxcc")

		_, err = Load(strings.NewReader("A,First,1,EU,1,1,0,0,0,AA(x;\n"))
		assert.ErrorContains(t, err, "unterminated override")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile("does-not-exist.csv")
		assert.Error(t, err)
	})
}

func TestEntities(t *testing.T) {
	entities := Default().Entities()
	require.NotEmpty(t, entities)
	for i := 1; i < len(entities); i++ {
		assert.LessOrEqual(t, entities[i-1].MainPrefix, entities[i].MainPrefix)
	}
}

func TestAllPrefixesDescending(t *testing.T) {
	assert.Equal(t, []string{"SP5", "SP", "S"}, AllPrefixesDescending("SP5"))
	assert.Empty(t, AllPrefixesDescending(""))
}
