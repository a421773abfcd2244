package cabrillo

import (
	"io"
	"os"
	"strings"
	"time"
)

const minQSOFields = 10

// Parse parses Cabrillo content.
//
// Blank lines, "#" comments, START-OF-LOG and END-OF-LOG are skipped.
// X-QSO lines end the header like QSO lines do but are otherwise ignored.
func Parse(content string) (*Log, error) {
	log := NewLog()
	inHeader := true

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "START-OF-LOG:") || strings.HasPrefix(line, "END-OF-LOG:") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "QSO:"):
			inHeader = false
			qso, err := parseQSOLine(line)
			if err != nil {
				return nil, err
			}
			log.QSOs = append(log.QSOs, *qso)
		case strings.HasPrefix(line, "X-QSO:"):
			inHeader = false
		case inHeader:
			if key, value, ok := strings.Cut(line, ":"); ok {
				log.Headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
			}
		}
	}

	return log, nil
}

// ParseReader reads r to the end and parses it.
func ParseReader(r io.Reader) (*Log, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newError(KindParseError, "%v", err)
	}
	return Parse(string(data))
}

// ParseFile parses the Cabrillo file at path.
func ParseFile(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(KindParseError, "%v", err)
	}
	return Parse(string(data))
}

func parseQSOLine(line string) (*QSO, error) {
	parts := strings.Fields(line)
	if len(parts) < minQSOFields || parts[0] != "QSO:" {
		return nil, newError(KindInvalidFormat, "Invalid QSO line")
	}

	date, err := time.Parse(dateLayout, parts[3])
	if err != nil {
		return nil, newError(KindInvalidDate, "%s", parts[3])
	}
	clock, err := time.Parse(timeLayout, parts[4])
	if err != nil {
		return nil, newError(KindInvalidTime, "%s", parts[4])
	}

	qso := &QSO{
		Freq:     parts[1],
		Mode:     parts[2],
		Time:     date.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute),
		SentCall: parts[5],
	}

	// The sent exchange has no fixed width, so the received call is the
	// first callsign-looking token after the sent call.
	rcvdIdx := 6
	for rcvdIdx < len(parts) && !IsValidCallsign(parts[rcvdIdx]) {
		rcvdIdx++
	}
	if rcvdIdx >= len(parts) {
		return nil, newError(KindInvalidFormat, "No valid received callsign found")
	}
	qso.RcvdCall = parts[rcvdIdx]
	qso.SentExch = strings.Join(parts[6:rcvdIdx], " ")

	rcvdStart := rcvdIdx + 1
	if rcvdStart >= len(parts) {
		return nil, newError(KindInvalidFormat, "Missing received RST/EXCH")
	}

	last := parts[len(parts)-1]
	if last == "0" || last == "1" {
		qso.TX = last
		if rcvdStart < len(parts)-1 {
			qso.RcvdExch = strings.Join(parts[rcvdStart:len(parts)-1], " ")
		}
	} else {
		qso.RcvdExch = strings.Join(parts[rcvdStart:], " ")
	}

	return qso, nil
}
