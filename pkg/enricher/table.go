package enricher

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
)

const minFields = 10

//go:embed data/cty.csv
var embeddedCty string

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// Table maps prefixes and full callsigns to entities.
type Table struct {
	entities     []*Entity
	prefixes     map[string]*Entity
	exact        map[string]*Entity
	maxPrefixLen int
}

// Default returns the table built from the embedded cty.csv subset.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load(strings.NewReader(embeddedCty))
		if err != nil {
			panic(fmt.Sprintf("enricher: embedded cty.csv is invalid: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// LoadFile builds a table from the cty.csv file at path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Load builds a table from cty.csv content. Lines with fewer than ten
// fields are skipped. When a prefix appears more than once the last line
// wins.
func Load(r io.Reader) (*Table, error) {
	t := &Table{
		prefixes: map[string]*Entity{},
		exact:    map[string]*Entity{},
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < minFields {
			continue
		}

		entity, err := parseEntity(parts)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		t.entities = append(t.entities, entity)

		prefixList := strings.TrimSuffix(strings.Join(parts[9:], ","), ";")
		for _, token := range strings.Fields(prefixList) {
			p, err := parsePrefix(token, entity)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if p.key == "" {
				continue
			}
			if p.exact {
				t.exact[p.key] = p.entity
				continue
			}
			t.prefixes[p.key] = p.entity
			if len(p.key) > t.maxPrefixLen {
				t.maxPrefixLen = len(p.key)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

func parseEntity(parts []string) (*Entity, error) {
	dxcc, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil, fmt.Errorf("invalid dxcc %q", parts[2])
	}
	cq, err := strconv.Atoi(strings.TrimSpace(parts[4]))
	if err != nil {
		return nil, fmt.Errorf("invalid cq zone %q", parts[4])
	}
	itu, err := strconv.Atoi(strings.TrimSpace(parts[5]))
	if err != nil {
		return nil, fmt.Errorf("invalid itu zone %q", parts[5])
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[6]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q", parts[6])
	}
	long, err := strconv.ParseFloat(strings.TrimSpace(parts[7]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q", parts[7])
	}
	offset, err := strconv.ParseFloat(strings.TrimSpace(parts[8]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid time offset %q", parts[8])
	}

	e := &Entity{
		MainPrefix: parts[0],
		Country:    parts[1],
		Continent:  parts[3],
		CQZone:     cq,
		ITUZone:    itu,
		DXCC:       dxcc,
		Latitude:   lat,
		// cty.csv uses positive west
		Longitude:  -long,
		TimeOffset: offset,
	}
	if country, part, ok := strings.Cut(parts[1], "/"); ok && !strings.Contains(part, "/") {
		e.Country = country
		e.Part = part
	}
	return e, nil
}

// Lookup returns the entity for a callsign. Full callsign entries win over
// prefixes, then the longest matching prefix is used.
func (t *Table) Lookup(callsign string) (*Entity, bool) {
	call := strings.ToUpper(strings.TrimSpace(callsign))
	if call == "" {
		return nil, false
	}
	if e, ok := t.exact[call]; ok {
		return e, true
	}

	n := len(call)
	if n > t.maxPrefixLen {
		n = t.maxPrefixLen
	}
	for i := n; i > 0; i-- {
		if e, ok := t.prefixes[call[:i]]; ok {
			return e, true
		}
	}
	return nil, false
}

// LookupScan resolves a callsign by scanning every prefix. It gives the same
// answers as Lookup and is kept as a reference for it.
func (t *Table) LookupScan(callsign string) (*Entity, bool) {
	call := strings.ToUpper(strings.TrimSpace(callsign))
	if call == "" {
		return nil, false
	}
	if e, ok := t.exact[call]; ok {
		return e, true
	}

	var best *Entity
	bestLen := 0
	for prefix, e := range t.prefixes {
		if len(prefix) > bestLen && strings.HasPrefix(call, prefix) {
			best = e
			bestLen = len(prefix)
		}
	}
	return best, best != nil
}

// Len returns the number of prefixes and full callsigns in the table.
func (t *Table) Len() int {
	return len(t.prefixes) + len(t.exact)
}

// Entities returns the entities of the table sorted by main prefix.
func (t *Table) Entities() []Entity {
	out := make([]Entity, 0, len(t.entities))
	for _, e := range t.entities {
		out = append(out, *e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MainPrefix < out[j].MainPrefix })
	return out
}

// AllPrefixesDescending returns every leading substring of s, longest first.
func AllPrefixesDescending(s string) []string {
	out := make([]string, 0, len(s))
	for i := len(s); i > 0; i-- {
		out = append(out, s[:i])
	}
	return out
}
