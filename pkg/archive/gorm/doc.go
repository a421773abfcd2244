// Package gorm provides a GORM-based implementation of archive.Store
// backed by PostgreSQL.
//
// The submissions table is created by the migrations in db/migrations
// ("cabrillo db migrate" or "cabrillo serve" without --no-migrate).
package gorm
