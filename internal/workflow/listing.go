package workflow

import (
	"context"
	"sync"

	model "github.com/Jabarteley/CitizensReportApp-ionic/internal/models"
	"github.com/Jabarteley/CitizensReportApp-ionic/internal/repository"
)

// ReportLister opens a live owner-scoped report stream.
type ReportLister interface {
	GetUserReports(ctx context.Context, ownerID string) *repository.Stream
}

// OnReports is invoked with every new snapshot and the counts derived from
// it.
type OnReports func(reports []model.Report, stats model.ReportStats)

// ListingWorkflow keeps the "my reports" view fed: it subscribes to the
// owner's live report stream and derives the dashboard counts from each
// emission. No separate count queries are ever issued.
type ListingWorkflow struct {
	session  Session
	reports  ReportLister
	onUpdate OnReports

	mu     sync.RWMutex
	latest []model.Report
	stats  model.ReportStats
	stream *repository.Stream
}

func NewListingWorkflow(session Session, reports ReportLister, onUpdate OnReports) *ListingWorkflow {
	return &ListingWorkflow{
		session:  session,
		reports:  reports,
		onUpdate: onUpdate,
	}
}

// Start opens the live subscription for the current user and consumes it
// until ctx is cancelled or Stop is called. A logged-out session produces a
// single empty snapshot.
func (w *ListingWorkflow) Start(ctx context.Context) {
	stream := w.reports.GetUserReports(ctx, w.session.CurrentUserID())

	w.mu.Lock()
	w.stream = stream
	w.mu.Unlock()

	go func() {
		for snapshot := range stream.C {
			stats := model.StatsFor(snapshot)

			w.mu.Lock()
			w.latest = snapshot
			w.stats = stats
			w.mu.Unlock()

			if w.onUpdate != nil {
				w.onUpdate(snapshot, stats)
			}
		}
	}()
}

// Stop tears the subscription down.
func (w *ListingWorkflow) Stop() {
	w.mu.RLock()
	stream := w.stream
	w.mu.RUnlock()
	if stream != nil {
		stream.Close()
	}
}

// Reports returns the latest snapshot.
func (w *ListingWorkflow) Reports() []model.Report {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest
}

// Stats returns the counts derived from the latest snapshot.
func (w *ListingWorkflow) Stats() model.ReportStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

// Refresh re-delivers the current snapshot to the view. The subscription is
// already live, so no query is issued; this only lets a pull-to-refresh
// control complete.
func (w *ListingWorkflow) Refresh() {
	w.mu.RLock()
	latest, stats := w.latest, w.stats
	w.mu.RUnlock()

	if w.onUpdate != nil {
		w.onUpdate(latest, stats)
	}
}

// StatusColor maps a report status to the badge color the view uses.
func StatusColor(status string) string {
	switch status {
	case model.StatusResolved:
		return "success"
	case model.StatusInProgress:
		return "warning"
	default:
		return "medium"
	}
}
