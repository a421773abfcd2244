package cabrillo

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

var validBands = map[string]bool{
	"160": true, "80": true, "40": true, "20": true, "15": true, "10": true,
	"6": true, "2": true, "222": true, "432": true, "902": true,
	"1.2G": true, "2.3G": true, "3.4G": true, "5.7G": true, "10G": true,
	"24G": true, "47G": true, "75G": true, "122G": true, "134G": true,
	"241G": true, "LIGHT": true, "50": true, "70": true, "144": true,
}

var validModes = map[string]bool{
	"CW": true, "PH": true, "FM": true, "RY": true, "DG": true,
}

// Validate checks every QSO and returns the first failure.
func (l *Log) Validate() error {
	for i := range l.QSOs {
		if err := ValidateQSO(&l.QSOs[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAll checks every QSO and returns all failures wrapped in
// *QSOError.
func (l *Log) ValidateAll() []error {
	var errs []error
	for i := range l.QSOs {
		if err := ValidateQSO(&l.QSOs[i]); err != nil {
			errs = append(errs, &QSOError{Index: i + 1, Err: err})
		}
	}
	return errs
}

// ValidateQSO checks callsigns, band, mode and transmitter ID of a QSO.
func ValidateQSO(q *QSO) error {
	if !IsValidCallsign(q.SentCall) {
		return &Error{Kind: KindInvalidCallsign, Value: q.SentCall}
	}
	if !IsValidCallsign(q.RcvdCall) {
		return &Error{Kind: KindInvalidCallsign, Value: q.RcvdCall}
	}
	if !IsValidBand(q.Freq) {
		return newError(KindInvalidFormat, "Invalid band/freq: %s", q.Freq)
	}
	if !IsValidMode(q.Mode) {
		return newError(KindInvalidFormat, "Invalid mode: %s", q.Mode)
	}
	if q.TX != "" && q.TX != "0" && q.TX != "1" {
		return newError(KindInvalidFormat, "Invalid transmitter: %s", q.TX)
	}
	return nil
}

// IsValidCallsign is a loose callsign check: ASCII only, at least three
// characters, at least one digit and one letter.
func IsValidCallsign(call string) bool {
	if len(call) <= 2 {
		return false
	}
	var hasDigit, hasLetter bool
	for _, c := range call {
		if c > unicode.MaxASCII {
			return false
		}
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
			hasLetter = true
		}
	}
	return hasDigit && hasLetter
}

// IsValidBand accepts the Cabrillo band designators and any numeric
// frequency.
func IsValidBand(band string) bool {
	if validBands[band] {
		return true
	}
	return isDecimalFloat(band)
}

// isDecimalFloat accepts decimal floats only. Hex literals are rejected and
// out-of-range values count as numbers (they round to infinity).
func isDecimalFloat(s string) bool {
	digits := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// IsValidMode accepts CW, PH, FM, RY and DG.
func IsValidMode(mode string) bool {
	return validModes[mode]
}
