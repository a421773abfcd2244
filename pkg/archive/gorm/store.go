package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kosciej/cabrillo-log/pkg/archive"
	"github.com/kosciej/cabrillo-log/pkg/model"
)

// Ensure Store implements archive.Store
var _ archive.Store = (*Store)(nil)

// listColumns leaves out the log content
const listColumns = "id, callsign, contest, qso_count, valid, created_at"

// Store implements archive.Store using GORM
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save inserts a submission.
func (s *Store) Save(ctx context.Context, sub *archive.Submission) error {
	row := toModel(sub)
	return s.db.WithContext(ctx).Create(&row).Error
}

// Get fetches a submission by ID including its content.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*archive.Submission, error) {
	var row model.Submission
	tx := s.db.WithContext(ctx).Where("id = ?", id).First(&row)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, archive.ErrNotFound
		}
		return nil, tx.Error
	}
	sub := fromModel(row)
	return &sub, nil
}

// List returns the newest submissions without their content.
func (s *Store) List(ctx context.Context, limit int) ([]archive.Submission, error) {
	var rows []model.Submission
	q := s.db.WithContext(ctx).Select(listColumns).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]archive.Submission, len(rows))
	for i, row := range rows {
		out[i] = fromModel(row)
	}
	return out, nil
}

// Delete removes a submission by ID.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Submission{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return archive.ErrNotFound
	}
	return nil
}

// CheckConnectivity verifies database connectivity
func (s *Store) CheckConnectivity(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec("SELECT 1").Error
}

func toModel(sub *archive.Submission) model.Submission {
	return model.Submission{
		ID:        sub.ID,
		Callsign:  sub.Callsign,
		Contest:   sub.Contest,
		QSOCount:  sub.QSOCount,
		Content:   sub.Content,
		Valid:     sub.Valid,
		CreatedAt: sub.CreatedAt,
	}
}

func fromModel(row model.Submission) archive.Submission {
	return archive.Submission{
		ID:        row.ID,
		Callsign:  row.Callsign,
		Contest:   row.Contest,
		QSOCount:  row.QSOCount,
		Content:   row.Content,
		Valid:     row.Valid,
		CreatedAt: row.CreatedAt.UTC(),
	}
}
