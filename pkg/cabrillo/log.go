package cabrillo

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "1504"

	// Version is the Cabrillo version written in START-OF-LOG.
	Version = "3.0"
)

// Log is a parsed Cabrillo file.
type Log struct {
	Headers map[string]string
	QSOs    []QSO
}

// QSO is a single contact line.
type QSO struct {
	// Freq is the frequency in kHz or a band designator such as "50" or "1.2G".
	Freq string
	// Mode is one of CW, PH, FM, RY, DG.
	Mode string
	// Time holds the UTC date and the HHMM time of the contact.
	Time     time.Time
	SentCall string
	// SentExch holds the sent RST and exchange tokens joined by single spaces.
	SentExch string
	RcvdCall string
	RcvdExch string
	// TX is the transmitter ID ("0" or "1"), empty when the log has none.
	TX string
}

// NewLog returns an empty log with an initialised header map.
func NewLog() *Log {
	return &Log{Headers: map[string]string{}}
}

// Header returns the value of a header tag, or "" when absent.
func (l *Log) Header(key string) string {
	if l.Headers == nil {
		return ""
	}
	return l.Headers[key]
}

// Callsign returns the CALLSIGN header.
func (l *Log) Callsign() string {
	return l.Header("CALLSIGN")
}

// Contest returns the CONTEST header.
func (l *Log) Contest() string {
	return l.Header("CONTEST")
}

// ClaimedScore returns the CLAIMED-SCORE header as an integer. ok is false
// when the header is missing or not a number.
func (l *Log) ClaimedScore() (score int, ok bool) {
	v := l.Header("CLAIMED-SCORE")
	if v == "" {
		return 0, false
	}
	score, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return score, true
}

// Clone returns a deep copy of the log.
func (l *Log) Clone() *Log {
	c := &Log{
		Headers: make(map[string]string, len(l.Headers)),
		QSOs:    make([]QSO, len(l.QSOs)),
	}
	for k, v := range l.Headers {
		c.Headers[k] = v
	}
	copy(c.QSOs, l.QSOs)
	return c
}

// WriteTo writes the log in Cabrillo format.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}

	fmt.Fprintf(cw, "START-OF-LOG: %s\n", Version)

	keys := make([]string, 0, len(l.Headers))
	for k := range l.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cw, "%s: %s\n", k, l.Headers[k])
	}

	for _, q := range l.QSOs {
		fmt.Fprintf(cw, "QSO: %s %s %s %s %-13s %-8s %-13s %-8s",
			q.Freq,
			q.Mode,
			q.Time.Format(dateLayout),
			q.Time.Format(timeLayout),
			q.SentCall,
			q.SentExch,
			q.RcvdCall,
			q.RcvdExch,
		)
		if q.TX != "" {
			fmt.Fprintf(cw, " %s", q.TX)
		}
		fmt.Fprintln(cw)
	}
	fmt.Fprintln(cw, "END-OF-LOG:")

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, cw.w.Flush()
}

func (l *Log) String() string {
	var buf bytes.Buffer
	_, _ = l.WriteTo(&buf)
	return buf.String()
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
