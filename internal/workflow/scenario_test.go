package workflow

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jabarteley/CitizensReportApp-ionic/internal/auth"
	model "github.com/Jabarteley/CitizensReportApp-ionic/internal/models"
	"github.com/Jabarteley/CitizensReportApp-ionic/internal/repository"
	"github.com/Jabarteley/CitizensReportApp-ionic/internal/store"
)

// scenarioProvider is a minimal in-memory identity provider.
type scenarioProvider struct {
	mu       sync.Mutex
	accounts map[string]string
}

func newScenarioProvider() *scenarioProvider {
	return &scenarioProvider{accounts: make(map[string]string)}
}

func (p *scenarioProvider) SignUp(ctx context.Context, email, password string) (*auth.ProviderUser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.accounts[email]; ok {
		return nil, &auth.ProviderError{Code: "EMAIL_EXISTS", StatusCode: 400}
	}
	p.accounts[email] = password
	return &auth.ProviderUser{UID: "uid-" + email, Email: email, IDToken: "idt", RefreshToken: "rt"}, nil
}

func (p *scenarioProvider) SignIn(ctx context.Context, email, password string) (*auth.ProviderUser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	stored, ok := p.accounts[email]
	if !ok {
		return nil, &auth.ProviderError{Code: "EMAIL_NOT_FOUND", StatusCode: 400}
	}
	if stored != password {
		return nil, &auth.ProviderError{Code: "INVALID_PASSWORD", StatusCode: 400}
	}
	return &auth.ProviderUser{UID: "uid-" + email, Email: email, IDToken: "idt", RefreshToken: "rt"}, nil
}

func (p *scenarioProvider) UpdateProfile(ctx context.Context, idToken, displayName string) error {
	return nil
}
func (p *scenarioProvider) SendPasswordReset(ctx context.Context, email string) error { return nil }
func (p *scenarioProvider) RevokeToken(ctx context.Context, refreshToken string) error {
	return nil
}

// scenarioStore is an in-memory report store that accepts creates.
type scenarioStore struct {
	listStore
}

func (s *scenarioStore) Create(ctx context.Context, ownerID string, in model.CreateReportInput) (*model.Report, error) {
	now := time.Now().UTC()
	r := model.Report{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Status:      model.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	s.reports = append(s.reports, r)
	s.mu.Unlock()

	return &r, nil
}

func (s *scenarioStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	var out []model.Report
	for _, r := range s.reports {
		if r.UserID == ownerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func TestRegisterSubmitAndListScenario(t *testing.T) {
	feed := newListFeed()
	st := &scenarioStore{}
	repo := repository.New(st, feed)
	session := auth.NewSessionStore(newScenarioProvider())

	user, err := session.Register(context.Background(), "a@x.com", "secret1", "Ann")
	require.NoError(t, err)

	_, err = session.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	submit := NewSubmitWorkflow(session, repo, &fakeUploader{})
	id, err := submit.Submit(context.Background(), model.CreateReportInput{
		Title:       "Pothole on Main",
		Description: "Large pothole near the school",
		Category:    model.CategoryRoad,
	})
	require.NoError(t, err)
	feed.Notify(store.Notification{Op: "INSERT", ID: id, UserID: user.UID})

	updates := make(chan emission, 8)
	listing := NewListingWorkflow(session, repo,
		func(reports []model.Report, stats model.ReportStats) {
			updates <- emission{reports: reports, stats: stats}
		})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listing.Start(ctx)
	defer listing.Stop()

	e := recvEmission(t, updates)
	require.Len(t, e.reports, 1)
	assert.Equal(t, id, e.reports[0].ID)
	assert.Equal(t, user.UID, e.reports[0].UserID)
	assert.Equal(t, model.StatusPending, e.reports[0].Status)
	assert.Equal(t, model.ReportStats{Total: 1, Pending: 1}, e.stats)
}

func TestConcurrentSubmissionsProduceDistinctReports(t *testing.T) {
	feed := newListFeed()
	st := &scenarioStore{}
	repo := repository.New(st, feed)

	in := model.CreateReportInput{
		Title:       "Pothole on Main",
		Description: "Large pothole near the school",
		Category:    model.CategoryRoad,
	}

	ids := make(chan string, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := repo.CreateReport(context.Background(), "owner-1", in)
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	first, second := <-ids, <-ids
	assert.NotEqual(t, first, second)

	reports, err := st.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.False(t, reports[0].CreatedAt.Before(reports[1].CreatedAt), "newest first")
}
