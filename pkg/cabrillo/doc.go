// Package cabrillo reads, writes and validates Cabrillo 3.0 contest logs.
//
// A Cabrillo log is a line oriented text file. The header is a list of
// "KEY: value" tags followed by one "QSO:" line per contact:
//
//	START-OF-LOG: 3.0
//	CALLSIGN: N1MM
//	CONTEST: ARRL-10
//	QSO: 14000 CW 2023-10-01 1200 N1MM 599 001 W1AW 599 001 0
//	END-OF-LOG:
//
// # Parsing
//
//	log, err := cabrillo.Parse(content)
//	if err != nil {
//	    var cerr *cabrillo.Error
//	    if errors.As(err, &cerr) { ... }
//	}
//
// Exchanges are contest specific, so the parser does not know how many
// tokens the sent exchange has. It takes the first token after the sent
// callsign that looks like a callsign as the received callsign and treats
// everything in between as the sent exchange. A trailing "0" or "1" is the
// transmitter ID.
//
// # Writing
//
// Log implements fmt.Stringer and io.WriterTo. Headers are written sorted by
// key and QSO columns are padded to fixed widths.
//
// # Validation
//
// Validate stops at the first bad QSO, ValidateAll collects every failure.
package cabrillo
