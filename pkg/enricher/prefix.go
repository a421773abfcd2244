package enricher

import (
	"fmt"
	"strconv"
	"strings"
)

type prefixEntry struct {
	key    string
	exact  bool
	entity *Entity
}

// parsePrefix splits a cty.csv prefix token such as "=KH6/W1AW(31)[61]" into
// the callsign or prefix and the entity it resolves to. Overrides produce a
// copy of base, otherwise base is shared.
func parsePrefix(token string, base *Entity) (prefixEntry, error) {
	entry := prefixEntry{entity: base}
	if strings.HasPrefix(token, "=") {
		entry.exact = true
		token = token[1:]
	}

	var key strings.Builder
	var override *Entity
	overridden := func() *Entity {
		if override == nil {
			cp := *base
			override = &cp
		}
		return override
	}

	for i := 0; i < len(token); i++ {
		c := token[i]
		closer, isOverride := overrideClosers[c]
		if !isOverride {
			key.WriteByte(c)
			continue
		}

		end := strings.IndexByte(token[i+1:], closer)
		if end < 0 {
			return entry, fmt.Errorf("unterminated override in prefix %q", token)
		}
		value := token[i+1 : i+1+end]
		i += end + 1

		if err := applyOverride(overridden(), c, value); err != nil {
			return entry, fmt.Errorf("prefix %q: %w", token, err)
		}
	}

	entry.key = strings.ToUpper(key.String())
	if override != nil {
		entry.entity = override
	}
	return entry, nil
}

var overrideClosers = map[byte]byte{
	'(': ')',
	'[': ']',
	'<': '>',
	'{': '}',
	'~': '~',
}

func applyOverride(e *Entity, kind byte, value string) error {
	switch kind {
	case '(':
		zone, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid cq zone override %q", value)
		}
		e.CQZone = zone
	case '[':
		zone, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid itu zone override %q", value)
		}
		e.ITUZone = zone
	case '<':
		latStr, longStr, ok := strings.Cut(value, "/")
		if !ok {
			return fmt.Errorf("invalid location override %q", value)
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return fmt.Errorf("invalid latitude override %q", value)
		}
		long, err := strconv.ParseFloat(longStr, 64)
		if err != nil {
			return fmt.Errorf("invalid longitude override %q", value)
		}
		e.Latitude = lat
		e.Longitude = -long
	case '{':
		e.Continent = value
	case '~':
		offset, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid time offset override %q", value)
		}
		e.TimeOffset = offset
	}
	return nil
}
