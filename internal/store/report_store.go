package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	model "github.com/Jabarteley/CitizensReportApp-ionic/internal/models"
	"github.com/Jabarteley/CitizensReportApp-ionic/internal/scanner"
	"github.com/Jabarteley/CitizensReportApp-ionic/internal/utils"
)

const reportColumns = "id, user_id, title, description, category, image_url, status, created_at, updated_at"

// ErrReportNotFound is returned by mutating calls that matched no record.
var ErrReportNotFound = errors.New("report not found")

// ReportStore is the document-store client for report records.
type ReportStore struct {
	db *pgxpool.Pool
}

func NewReportStore(db *pgxpool.Pool) *ReportStore {
	return &ReportStore{db: db}
}

// Create inserts a new report owned by ownerID. The store assigns the
// identifier, the initial pending status and both timestamps.
func (s *ReportStore) Create(ctx context.Context, ownerID string, in model.CreateReportInput) (*model.Report, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	row := s.db.QueryRow(ctx, `
		INSERT INTO reports(id, user_id, title, description, category, image_url, status, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING `+reportColumns,
		id, ownerID, in.Title, in.Description, in.Category,
		utils.PointerToNullString(in.ImageURL), model.StatusPending, now,
	)

	report, err := scanner.ScanReport(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return report, nil
}

// ListByOwner returns ownerID's reports, newest first.
func (s *ReportStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Report, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

// ListAll returns every report, newest first. Administrative use.
func (s *ReportStore) ListAll(ctx context.Context) ([]model.Report, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

// GetByID returns the report or (nil, nil) when no record matches.
func (s *ReportStore) GetByID(ctx context.Context, id string) (*model.Report, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		WHERE id = $1`,
		id,
	)

	report, err := scanner.ScanReport(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return report, nil
}

// Update merges the supplied fields into the record and refreshes updated_at.
// The id, owner and created_at columns are never part of the statement.
func (s *ReportStore) Update(ctx context.Context, id string, in model.UpdateReportInput) (*model.Report, error) {
	query := "UPDATE reports SET updated_at = NOW()"
	args := []interface{}{}
	argCount := 1

	if in.Title != nil {
		query += ", title = $" + strconv.Itoa(argCount)
		args = append(args, *in.Title)
		argCount++
	}
	if in.Description != nil {
		query += ", description = $" + strconv.Itoa(argCount)
		args = append(args, *in.Description)
		argCount++
	}
	if in.Category != nil {
		query += ", category = $" + strconv.Itoa(argCount)
		args = append(args, *in.Category)
		argCount++
	}
	if in.Status != nil {
		query += ", status = $" + strconv.Itoa(argCount)
		args = append(args, *in.Status)
		argCount++
	}

	query += " WHERE id = $" + strconv.Itoa(argCount)
	args = append(args, id)
	query += " RETURNING " + reportColumns

	row := s.db.QueryRow(ctx, query, args...)
	report, err := scanner.ScanReport(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	return report, nil
}

// UpdateStatus rewrites only the status column and refreshes updated_at.
func (s *ReportStore) UpdateStatus(ctx context.Context, id, status string) (*model.Report, error) {
	st := status
	return s.Update(ctx, id, model.UpdateReportInput{Status: &st})
}

// Delete removes the record.
func (s *ReportStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.Exec(ctx, "DELETE FROM reports WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	if res.RowsAffected() == 0 {
		return ErrReportNotFound
	}

	return nil
}

func collectReports(rows pgx.Rows) ([]model.Report, error) {
	var reports []model.Report
	for rows.Next() {
		report, err := scanner.ScanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, *report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}
