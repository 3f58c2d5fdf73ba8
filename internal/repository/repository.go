package repository

import (
	"context"

	"github.com/Jabarteley/CitizensReportApp-ionic/internal/apperrors"
	model "github.com/Jabarteley/CitizensReportApp-ionic/internal/models"
	"github.com/Jabarteley/CitizensReportApp-ionic/internal/store"
)

// ReportStore is the document-store client the repository talks to.
type ReportStore interface {
	Create(ctx context.Context, ownerID string, in model.CreateReportInput) (*model.Report, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Report, error)
	ListAll(ctx context.Context) ([]model.Report, error)
	GetByID(ctx context.Context, id string) (*model.Report, error)
	Update(ctx context.Context, id string, in model.UpdateReportInput) (*model.Report, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Report, error)
	Delete(ctx context.Context, id string) error
}

// ChangeFeed delivers committed report changes.
type ChangeFeed interface {
	Subscribe() (<-chan store.Notification, func())
}

// Repository implements the report pipeline contract: guarded writes plus
// live, full-snapshot read streams. Owner scoping happens in the query
// predicate, not by filtering an unscoped stream client-side.
type Repository struct {
	store ReportStore
	feed  ChangeFeed
}

func New(st ReportStore, feed ChangeFeed) *Repository {
	return &Repository{store: st, feed: feed}
}

// CreateReport validates the input and inserts a report owned by ownerID,
// returning the assigned identifier. Status starts as pending and both
// timestamps are set to the creation time.
func (r *Repository) CreateReport(ctx context.Context, ownerID string, in model.CreateReportInput) (string, error) {
	if ownerID == "" {
		return "", apperrors.ErrNotAuthenticated
	}
	if err := in.Validate(); err != nil {
		return "", err
	}

	report, err := r.store.Create(ctx, ownerID, in)
	if err != nil {
		return "", apperrors.NewPersistenceError("create report", err)
	}

	return report.ID, nil
}

// GetUserReports returns a live stream of ownerID's reports, newest first.
// The full current set is re-emitted whenever any record in the owner's scope
// changes remotely. An empty ownerID yields a stream that only ever emits an
// empty snapshot.
func (r *Repository) GetUserReports(ctx context.Context, ownerID string) *Stream {
	if ownerID == "" {
		return emptyStream()
	}

	return newLiveStream(ctx, r.feed,
		func(ctx context.Context) ([]model.Report, error) {
			return r.store.ListByOwner(ctx, ownerID)
		},
		func(n store.Notification) bool { return n.UserID == ownerID },
	)
}

// GetAllReports returns a live stream over every report, newest first.
// Administrative use.
func (r *Repository) GetAllReports(ctx context.Context) *Stream {
	return newLiveStream(ctx, r.feed,
		func(ctx context.Context) ([]model.Report, error) {
			return r.store.ListAll(ctx)
		},
		func(store.Notification) bool { return true },
	)
}

// GetReportByID returns a live single-value stream for one report. A missing
// record is emitted as nil, not as an error.
func (r *Repository) GetReportByID(ctx context.Context, id string) *SingleStream {
	return newSingleStream(ctx, r.feed,
		func(ctx context.Context) (*model.Report, error) {
			return r.store.GetByID(ctx, id)
		},
		func(n store.Notification) bool { return n.ID == id },
	)
}

// UpdateReport merges the supplied fields into the record and refreshes its
// updatedAt. The input type cannot express changes to the identifier, owner
// or creation timestamp. No authorization is checked here; that is assumed to
// be enforced server-side.
func (r *Repository) UpdateReport(ctx context.Context, id string, in model.UpdateReportInput) error {
	if _, err := r.store.Update(ctx, id, in); err != nil {
		return apperrors.NewPersistenceError("update report", err)
	}
	return nil
}

// UpdateReportStatus rewrites only the status, refreshing updatedAt.
func (r *Repository) UpdateReportStatus(ctx context.Context, id, status string) error {
	if _, err := r.store.UpdateStatus(ctx, id, status); err != nil {
		return apperrors.NewPersistenceError("update report status", err)
	}
	return nil
}

// DeleteReport removes the record.
func (r *Repository) DeleteReport(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return apperrors.NewPersistenceError("delete report", err)
	}
	return nil
}
