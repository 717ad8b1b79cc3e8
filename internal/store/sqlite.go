// Package store persists scored comparisons in a SQLite database so runs
// can be inspected and compared later.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"aniseek/internal/compare"
)

const errStoreNil = "store is nil"

// Store wraps a gorm handle on the results database.
type Store struct {
	DB *gorm.DB
	db *sql.DB
}

// Run is one aniseek invocation.
type Run struct {
	ID             string `gorm:"primaryKey;type:varchar(36)"`
	Query          string `gorm:"index:idx_run_query"`
	Fragments      int
	GenomeLength   int
	MatchPolicy    string
	StartedAt      time.Time
	FinishedAt     *time.Time
	ReferenceCount int
}

// Result is one scored reference of a run.
type Result struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	RunID        string `gorm:"type:varchar(36);uniqueIndex:idx_run_ref,priority:1"`
	ReferenceID  string `gorm:"uniqueIndex:idx_run_ref,priority:2"`
	ANI          float64
	ConservedDNA float64
	Score        float64 `gorm:"index:idx_score"`
	Matches      int
	ElapsedMs    int64
	Error        string
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Run{}, &Result{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &Store{DB: db, db: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun records a new run and returns its id.
func (s *Store) BeginRun(query string, fragments, genomeLength int, policy string) (string, error) {
	if s == nil || s.DB == nil {
		return "", errors.New(errStoreNil)
	}
	run := Run{
		ID:           uuid.NewString(),
		Query:        query,
		Fragments:    fragments,
		GenomeLength: genomeLength,
		MatchPolicy:  policy,
		StartedAt:    time.Now(),
	}
	if err := s.DB.Create(&run).Error; err != nil {
		return "", fmt.Errorf("creating run: %w", err)
	}
	return run.ID, nil
}

// AddResult stores one comparison outcome of runID.
func (s *Store) AddResult(runID string, r compare.Result) error {
	if s == nil || s.DB == nil {
		return errors.New(errStoreNil)
	}
	row := Result{
		RunID:        runID,
		ReferenceID:  r.Genome.ID,
		ANI:          r.Genome.ANI,
		ConservedDNA: r.Genome.ConservedDNA,
		Score:        r.Genome.Score(),
		Matches:      r.Matches,
		ElapsedMs:    r.Elapsed.Milliseconds(),
	}
	if r.Err != nil {
		row.Error = r.Err.Error()
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("storing result %s: %w", r.Genome.ID, err)
	}
	return nil
}

// FinishRun stamps the run's end time and reference count.
func (s *Store) FinishRun(runID string, references int) error {
	if s == nil || s.DB == nil {
		return errors.New(errStoreNil)
	}
	now := time.Now()
	return s.DB.Model(&Run{}).Where("id = ?", runID).Updates(map[string]any{
		"finished_at":     &now,
		"reference_count": references,
	}).Error
}

// GetRun loads a run by id.
func (s *Store) GetRun(runID string) (*Run, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New(errStoreNil)
	}
	var run Run
	if err := s.DB.Where("id = ?", runID).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// Results returns a run's results ordered by score, best first.
func (s *Store) Results(runID string) ([]Result, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New(errStoreNil)
	}
	var rows []Result
	err := s.DB.Where("run_id = ?", runID).Order("score DESC, reference_id ASC").Find(&rows).Error
	return rows, err
}

// DeleteRun removes a run and its results.
func (s *Store) DeleteRun(runID string) error {
	if s == nil || s.DB == nil {
		return errors.New(errStoreNil)
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id = ?", runID).Delete(&Result{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", runID).Delete(&Run{}).Error
	})
}
