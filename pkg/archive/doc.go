// Package archive stores submitted Cabrillo logs.
//
// This package defines the Store interface and an in-memory implementation.
// A PostgreSQL implementation lives in pkg/archive/gorm; its schema is
// managed by the migrations under db/migrations.
//
// # Usage
//
//	sub := archive.NewSubmission(content, log)
//	if err := st.Save(ctx, sub); err != nil {
//	    return err
//	}
//	got, err := st.Get(ctx, sub.ID)
//	if errors.Is(err, archive.ErrNotFound) {
//	    // Handle not found
//	}
package archive
