// Package model defines the database models for the log archive.
//
// # Database Schema
//
// The schema is managed by the migrations in db/migrations:
//
//   - submissions: uploaded and ingested Cabrillo logs with the callsign,
//     contest and QSO count pulled out of the log for listing
package model
