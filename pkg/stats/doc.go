// Package stats computes QSO statistics for a Cabrillo log.
//
// QSOs are enriched with the DXCC entity of the received callsign and
// loaded into a private in-memory SQLite database, one per QSOStats.
// Every query accepts an optional Filter whose values are bound as SQL
// parameters.
//
//	s, err := stats.New(ctx, log.QSOs, enricher.Default())
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	perBand, err := s.QSOPerBand(ctx, &stats.Filter{Mode: "CW"})
package stats
