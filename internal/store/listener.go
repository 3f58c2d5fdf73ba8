package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jabarteley/CitizensReportApp-ionic/internal/logger"
)

// channel name matches the pg_notify call installed by migration 000002.
const notifyChannel = "reports_changed"

// Notification describes one committed change to the reports table.
type Notification struct {
	Op     string `json:"op"`
	ID     string `json:"id"`
	UserID string `json:"userId"`
}

// ChangeListener holds one LISTEN connection to the database and fans report
// change notifications out to every subscriber. Subscriber channels are
// buffered and coalescing: when a subscriber already has a pending
// notification, further ones are dropped, since consumers re-read the full
// current state anyway.
type ChangeListener struct {
	db *pgxpool.Pool

	mu     sync.Mutex
	subs   map[int]chan Notification
	nextID int
}

func NewChangeListener(db *pgxpool.Pool) *ChangeListener {
	return &ChangeListener{
		db:   db,
		subs: make(map[int]chan Notification),
	}
}

// Run listens for report changes until ctx is cancelled. It blocks; callers
// run it on its own goroutine.
func (l *ChangeListener) Run(ctx context.Context) error {
	conn, err := l.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return err
	}

	logger.Info("Listening for report changes on %q", notifyChannel)

	for {
		msg, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		var n Notification
		if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
			logger.Warning("Ignoring malformed change payload: %v", err)
			continue
		}

		l.broadcast(n)
	}
}

// Subscribe registers a change subscriber. The returned cancel func must be
// called to stop delivery; it is safe to call more than once.
func (l *ChangeListener) Subscribe() (<-chan Notification, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	ch := make(chan Notification, 1)
	l.subs[id] = ch

	cancel := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(ch)
		}
	}

	return ch, cancel
}

func (l *ChangeListener) broadcast(n Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, ch := range l.subs {
		select {
		case ch <- n:
		default:
			// a re-read is already pending for this subscriber
		}
	}
}
