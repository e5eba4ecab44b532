package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftmatch/jobmatch-service/internal/auth"
	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/events"
	"github.com/shiftmatch/jobmatch-service/internal/repository"
	"github.com/shiftmatch/jobmatch-service/internal/repository/memstore"
	apperrors "github.com/shiftmatch/jobmatch-service/pkg/util"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	store        *memstore.Store
	clock        *testClock
	tokens       *auth.TokenManager
	denylist     *auth.MemoryDenylist
	dispatcher   events.Dispatcher
	auth         *AuthService
	profiles     *ProfileService
	jobs         *JobService
	applications *ApplicationService
	matches      *MatchService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithStore(t, memstore.New())
}

// newFixtureWithStore lets tests swap the store passed to the services while
// seeding through the underlying memstore.
func newFixtureWithStore(t *testing.T, mem *memstore.Store, wrap ...func(repository.Store) repository.Store) *fixture {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)}
	mem.SetClock(clock.Now)

	var store repository.Store = mem
	for _, w := range wrap {
		store = w(store)
	}

	denylist := auth.NewMemoryDenylist(clock.Now)
	tokens := auth.NewTokenManager("test-secret", time.Hour, auth.WithDenylist(denylist), auth.WithClock(clock.Now))
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	workflow := WorkflowDependencies{Store: store, Dispatcher: dispatcher, Clock: clock.Now}

	return &fixture{
		store:      mem,
		clock:      clock,
		tokens:     tokens,
		denylist:   denylist,
		dispatcher: dispatcher,
		auth: NewAuthService(AuthDependencies{
			Store:      store,
			Tokens:     tokens,
			Hasher:     auth.NewPasswordHasher(bcrypt.MinCost),
			OTP:        auth.NewOTPGenerator(10 * time.Minute),
			Dispatcher: dispatcher,
			Clock:      clock.Now,
		}),
		profiles:     NewProfileService(store),
		jobs:         NewJobService(workflow),
		applications: NewApplicationService(workflow),
		matches:      NewMatchService(store),
	}
}

func (f *fixture) register(t *testing.T, email string, role domain.Role) *Session {
	t.Helper()
	session, err := f.auth.Register(context.Background(), RegisterInput{Email: email, Password: "secret1", Role: role})
	require.NoError(t, err)
	return session
}

func (f *fixture) seeker(t *testing.T, email string) domain.Identity {
	t.Helper()
	session := f.register(t, email, domain.RoleJobSeeker)
	_, err := f.profiles.SaveSeekerProfile(context.Background(), session.User.ID, SeekerProfileInput{Name: "Seeker"})
	require.NoError(t, err)
	return session.Token.Identity
}

func (f *fixture) owner(t *testing.T, email string) domain.Identity {
	t.Helper()
	session := f.register(t, email, domain.RoleShopOwner)
	_, err := f.profiles.SaveShop(context.Background(), session.User.ID, ShopInput{Name: "Shop of " + email})
	require.NoError(t, err)
	return session.Token.Identity
}

func (f *fixture) postJob(t *testing.T, owner domain.Identity) *domain.JobPosting {
	t.Helper()
	job, err := f.jobs.CreateJob(context.Background(), owner.UserID, JobCreateInput{
		Title:             "Weekend barista",
		RequiredHeadcount: 2,
		Wage:              12000,
		WorkDate:          f.clock.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	return job
}

func errCode(err error) string {
	if err == nil {
		return ""
	}
	return apperrors.ToDomainError(err).Code
}
