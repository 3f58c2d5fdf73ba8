package repository

import (
	"context"
	"sync"

	"github.com/Jabarteley/CitizensReportApp-ionic/internal/logger"
	model "github.com/Jabarteley/CitizensReportApp-ionic/internal/models"
	"github.com/Jabarteley/CitizensReportApp-ionic/internal/store"
)

// Stream is a live sequence of full report-collection snapshots: the current
// state on subscription, then the full current state again after every remote
// change in scope. Consumers that fall behind observe the latest snapshot;
// intermediate ones may be coalesced away.
type Stream struct {
	C <-chan []model.Report

	once   sync.Once
	cancel context.CancelFunc
}

// Close tears the subscription down. Pending backend calls are not aborted;
// delivery just stops.
func (s *Stream) Close() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// SingleStream is the one-record analog of Stream. A missing record is
// delivered as nil.
type SingleStream struct {
	C <-chan *model.Report

	once   sync.Once
	cancel context.CancelFunc
}

func (s *SingleStream) Close() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

func newLiveStream(
	ctx context.Context,
	feed ChangeFeed,
	query func(ctx context.Context) ([]model.Report, error),
	inScope func(store.Notification) bool,
) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan []model.Report, 1)

	go func() {
		defer close(out)

		changes, unsubscribe := feed.Subscribe()
		defer unsubscribe()

		emit := func() {
			snapshot, err := query(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warning("Live query failed, keeping previous snapshot: %v", err)
				}
				return
			}
			if snapshot == nil {
				snapshot = []model.Report{}
			}
			pushSnapshot(out, snapshot)
		}

		emit()

		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-changes:
				if !ok {
					return
				}
				if inScope(n) {
					emit()
				}
			}
		}
	}()

	return &Stream{C: out, cancel: cancel}
}

func newSingleStream(
	ctx context.Context,
	feed ChangeFeed,
	query func(ctx context.Context) (*model.Report, error),
	inScope func(store.Notification) bool,
) *SingleStream {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan *model.Report, 1)

	go func() {
		defer close(out)

		changes, unsubscribe := feed.Subscribe()
		defer unsubscribe()

		emit := func() {
			report, err := query(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warning("Live lookup failed, keeping previous value: %v", err)
				}
				return
			}
			pushReport(out, report)
		}

		emit()

		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-changes:
				if !ok {
					return
				}
				if inScope(n) {
					emit()
				}
			}
		}
	}()

	return &SingleStream{C: out, cancel: cancel}
}

// emptyStream emits a single empty snapshot and nothing after it; used when
// no owner id is available. It never errors.
func emptyStream() *Stream {
	out := make(chan []model.Report, 1)
	out <- []model.Report{}
	return &Stream{C: out, cancel: func() { close(out) }}
}

// pushSnapshot delivers the latest snapshot, displacing an unconsumed stale
// one. Single producer per channel.
func pushSnapshot(out chan []model.Report, snapshot []model.Report) {
	for {
		select {
		case out <- snapshot:
			return
		default:
			select {
			case <-out:
			default:
			}
		}
	}
}

func pushReport(out chan *model.Report, report *model.Report) {
	for {
		select {
		case out <- report:
			return
		default:
			select {
			case <-out:
			default:
			}
		}
	}
}
