package archive

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kosciej/cabrillo-log/pkg/cabrillo"
)

// ErrNotFound is returned when a submission does not exist
var ErrNotFound = errors.New("submission not found")

// Submission is a stored log with a few header fields pulled out for listing.
type Submission struct {
	ID        uuid.UUID `json:"id"`
	Callsign  string    `json:"callsign"`
	Contest   string    `json:"contest"`
	QSOCount  int       `json:"qso_count"`
	Content   string    `json:"content,omitempty"`
	Valid     bool      `json:"valid"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSubmission builds a submission for the raw content of a parsed log.
func NewSubmission(content string, log *cabrillo.Log) *Submission {
	return &Submission{
		ID:        uuid.New(),
		Callsign:  log.Callsign(),
		Contest:   log.Contest(),
		QSOCount:  len(log.QSOs),
		Content:   content,
		Valid:     log.Validate() == nil,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// Store persists submissions
type Store interface {
	// Save stores a new submission
	Save(ctx context.Context, sub *Submission) error

	// Get returns a submission with its content
	Get(ctx context.Context, id uuid.UUID) (*Submission, error)

	// List returns the newest submissions first, without content
	List(ctx context.Context, limit int) ([]Submission, error)

	// Delete removes a submission
	Delete(ctx context.Context, id uuid.UUID) error

	// CheckConnectivity verifies the backing storage is reachable
	CheckConnectivity(ctx context.Context) error
}
