// Package enricher resolves amateur radio callsigns to DXCC entities.
//
// The lookup table is built from the country-files.com cty.csv format:
//
//	K,United States,291,NA,5,8,37.53,91.67,5.0,AA AB ... K N W;
//
// The columns are main prefix, country name, DXCC number, continent, CQ zone,
// ITU zone, latitude, longitude (positive west in the file), UTC offset and
// a space separated list of prefixes terminated by ";". A prefix starting
// with "=" is a full callsign. A prefix may carry overrides: (cq) [itu]
// <lat/long> {continent} ~offset~.
//
// A small subset of cty.csv is embedded and returned by Default. Load or
// LoadFile build a table from a complete file.
package enricher
