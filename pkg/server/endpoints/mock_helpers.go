package endpoints

import (
	"context"
	"database/sql"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kosciej/cabrillo-log/pkg/archive"
	archivegorm "github.com/kosciej/cabrillo-log/pkg/archive/gorm"
	"github.com/kosciej/cabrillo-log/pkg/config"
	"github.com/kosciej/cabrillo-log/pkg/enricher"
	"github.com/kosciej/cabrillo-log/pkg/server"
)

// MockArchiveStore is a mock implementation of archive.Store
type MockArchiveStore struct {
	mock.Mock
}

func (m *MockArchiveStore) Save(ctx context.Context, sub *archive.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockArchiveStore) Get(ctx context.Context, id uuid.UUID) (*archive.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*archive.Submission), args.Error(1)
}

func (m *MockArchiveStore) List(ctx context.Context, limit int) ([]archive.Submission, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]archive.Submission), args.Error(1)
}

func (m *MockArchiveStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArchiveStore) CheckConnectivity(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// TestStatic is a minimal set of static files for tests
var TestStatic = fstest.MapFS{
	IndexFile:   {Data: []byte("<html><body>cabrillo</body></html>")},
	"style.css": {Data: []byte("body {}")},
}

// NewTestServer creates a server with all endpoints registered on top of
// store, the built-in prefix table and TestStatic
func NewTestServer(store archive.Store) *server.Server {
	cfg := &config.Config{
		MaxUploadBytes:      1 << 20,
		ArchiveListLimitMax: 50,
	}
	s := server.NewServer(cfg, enricher.Default(), store, TestStatic, nil, "127.0.0.1", "0")
	RegisterAll(s)
	return s
}

// NewMockTestServer creates a server whose archive is backed by a mocked
// database. Returns the server, the mock database, and any error.
func NewMockTestServer() (*server.Server, *MockDB, error) {
	mdb, err := NewMockDB()
	if err != nil {
		return nil, nil, err
	}
	return NewTestServer(archivegorm.NewStore(mdb.GormDB)), mdb, nil
}

// MockDB wraps sqlmock for easier test setup
type MockDB struct {
	DB     *sql.DB
	Mock   sqlmock.Sqlmock
	GormDB *gorm.DB
}

// NewMockDB creates a new mock database connection
func NewMockDB() (*MockDB, error) {
	db, mock, err := sqlmock.New()
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &MockDB{
		DB:     db,
		Mock:   mock,
		GormDB: gormDB,
	}, nil
}

// Close closes the mock database
func (m *MockDB) Close() error {
	return m.DB.Close()
}

// ExpectSubmissionInsert sets up expectation for archiving an upload
func (m *MockDB) ExpectSubmissionInsert() {
	m.Mock.ExpectBegin()
	m.Mock.ExpectExec(`INSERT INTO "submissions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	m.Mock.ExpectCommit()
}

// ExpectSubmissionNotFound sets up expectation for a missing submission
func (m *MockDB) ExpectSubmissionNotFound(id uuid.UUID) {
	m.Mock.ExpectQuery(`SELECT .* FROM "submissions"`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
}

// ExpectPing sets up expectation for the connectivity check
func (m *MockDB) ExpectPing(err error) {
	e := m.Mock.ExpectExec(`SELECT 1`)
	if err != nil {
		e.WillReturnError(err)
		return
	}
	e.WillReturnResult(sqlmock.NewResult(0, 0))
}

// VerifyExpectations checks that all expectations were met
func (m *MockDB) VerifyExpectations() error {
	return m.Mock.ExpectationsWereMet()
}
