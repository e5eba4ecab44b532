package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/events"
	"github.com/shiftmatch/jobmatch-service/internal/repository"
	"github.com/shiftmatch/jobmatch-service/internal/repository/memstore"
	apperrors "github.com/shiftmatch/jobmatch-service/pkg/util"
)

func TestCreateJobRequiresShop(t *testing.T) {
	f := newFixture(t)
	session := f.register(t, "owner@x.com", domain.RoleShopOwner)

	_, err := f.jobs.CreateJob(context.Background(), session.User.ID, JobCreateInput{Title: "Cook"})
	assert.Equal(t, apperrors.CodeProfileRequired, errCode(err))
}

func TestListJobsDefaultsToOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.owner(t, "owner@x.com")
	open := f.postJob(t, owner)
	closed := f.postJob(t, owner)
	_, err := f.jobs.TransitionStatus(ctx, owner, closed.ID, domain.JobStatusClosed)
	require.NoError(t, err)

	jobs, err := f.jobs.ListJobs(ctx, JobListFilter{})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, open.ID, jobs[0].ID)

	jobs, err = f.jobs.ListJobs(ctx, JobListFilter{Statuses: []domain.JobStatus{domain.JobStatusOpen, domain.JobStatusClosed}})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	_, err = f.jobs.ListJobs(ctx, JobListFilter{Statuses: []domain.JobStatus{"archived"}})
	assert.Equal(t, apperrors.CodeValidation, errCode(err))

	mine, err := f.jobs.ListShopJobs(ctx, owner.UserID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestJobTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.owner(t, "owner@x.com")
	job := f.postJob(t, owner)

	var seen []events.JobStatusChangedPayload
	f.dispatcher.Subscribe(events.EventJobStatusChanged, func(_ context.Context, e events.Event) error {
		seen = append(seen, e.Payload.(events.JobStatusChangedPayload))
		return nil
	})

	updated, err := f.jobs.TransitionStatus(ctx, owner, job.ID, domain.JobStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusClosed, updated.Status)

	_, err = f.jobs.TransitionStatus(ctx, owner, job.ID, domain.JobStatusOpen)
	assert.Equal(t, apperrors.CodeInvalidTransition, errCode(err))

	updated, err = f.jobs.TransitionStatus(ctx, owner, job.ID, domain.JobStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, updated.Status)

	require.Len(t, seen, 2)
	assert.Equal(t, domain.JobStatusClosed, seen[1].OldStatus)
}

func TestForeignPostingLooksMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.owner(t, "owner@x.com")
	intruder := f.owner(t, "intruder@x.com")
	job := f.postJob(t, owner)

	_, foreign := f.jobs.TransitionStatus(ctx, intruder, job.ID, domain.JobStatusClosed)
	_, missing := f.jobs.TransitionStatus(ctx, intruder, 9999, domain.JobStatusClosed)

	require.Error(t, foreign)
	require.Error(t, missing)
	assert.Equal(t, apperrors.CodeNotFoundOrUnauthorized, errCode(foreign))
	assert.Equal(t, apperrors.ToDomainError(missing).Message, apperrors.ToDomainError(foreign).Message)

	got, err := f.jobs.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusOpen, got.Status)

	_, err = f.applications.ListForJob(ctx, intruder.UserID, job.ID)
	assert.Equal(t, apperrors.CodeNotFoundOrUnauthorized, errCode(err))
}

func TestApplyPreconditionsInOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.owner(t, "owner@x.com")
	job := f.postJob(t, owner)

	bare := f.register(t, "bare@x.com", domain.RoleJobSeeker).Token.Identity
	_, err := f.applications.Apply(ctx, bare, 9999, "")
	assert.Equal(t, apperrors.CodeProfileRequired, errCode(err), "profile is checked before the posting")

	seeker := f.seeker(t, "a@x.com")
	_, err = f.applications.Apply(ctx, seeker, 9999, "")
	assert.Equal(t, apperrors.CodeNotFound, errCode(err))

	app, err := f.applications.Apply(ctx, seeker, job.ID, "available all weekend")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, app.Status)

	_, err = f.applications.Apply(ctx, seeker, job.ID, "again")
	assert.Equal(t, apperrors.CodeDuplicateApplication, errCode(err))

	_, err = f.jobs.TransitionStatus(ctx, owner, job.ID, domain.JobStatusClosed)
	require.NoError(t, err)
	_, err = f.applications.Apply(ctx, seeker, job.ID, "again")
	assert.Equal(t, apperrors.CodeJobClosed, errCode(err), "closed wins over duplicate")

	other := f.seeker(t, "b@x.com")
	_, err = f.applications.Apply(ctx, other, job.ID, "")
	assert.Equal(t, apperrors.CodeJobClosed, errCode(err))

	apps, err := f.applications.ListMine(ctx, seeker.UserID)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestConcurrentApplyStoresExactlyOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.owner(t, "owner@x.com")
	job := f.postJob(t, owner)
	seeker := f.seeker(t, "a@x.com")

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		codes     []string
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.applications.Apply(ctx, seeker, job.ID, "")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			codes = append(codes, errCode(err))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	for _, code := range codes {
		assert.Equal(t, apperrors.CodeDuplicateApplication, code)
	}
	apps, err := f.applications.ListForJob(ctx, owner.UserID, job.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

type jobReads struct {
	locked, unlocked int
}

type countingJobs struct {
	repository.JobRepository
	reads *jobReads
}

func (r countingJobs) GetByID(ctx context.Context, id int64) (*domain.JobPosting, error) {
	r.reads.unlocked++
	return r.JobRepository.GetByID(ctx, id)
}

func (r countingJobs) GetForUpdate(ctx context.Context, id int64) (*domain.JobPosting, error) {
	r.reads.locked++
	return r.JobRepository.GetForUpdate(ctx, id)
}

type countingJobStore struct {
	repository.Store
	reads *jobReads
}

func (s countingJobStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return s.Store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		repos.Jobs = countingJobs{repos.Jobs, s.reads}
		return fn(ctx, repos)
	})
}

func TestApplyLocksPosting(t *testing.T) {
	reads := &jobReads{}
	f := newFixtureWithStore(t, memstore.New(), func(s repository.Store) repository.Store {
		return countingJobStore{s, reads}
	})
	ctx := context.Background()
	owner := f.owner(t, "owner@x.com")
	job := f.postJob(t, owner)
	seeker := f.seeker(t, "a@x.com")

	*reads = jobReads{}
	_, err := f.applications.Apply(ctx, seeker, job.ID, "")
	require.NoError(t, err)
	assert.Equal(t, jobReads{locked: 1}, *reads, "the posting status must be read under a row lock")
}

type blindDuplicateCheck struct {
	repository.ApplicationRepository
}

func (blindDuplicateCheck) GetBySeekerAndJob(context.Context, int64, int64) (*domain.Application, error) {
	return nil, repository.ErrNotFound
}

type blindApplicationStore struct {
	repository.Store
}

func (s blindApplicationStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return s.Store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		repos.Applications = blindDuplicateCheck{repos.Applications}
		return fn(ctx, repos)
	})
}

func TestUniqueConstraintBacksDuplicateCheck(t *testing.T) {
	f := newFixtureWithStore(t, memstore.New(), func(s repository.Store) repository.Store {
		return blindApplicationStore{s}
	})
	ctx := context.Background()
	owner := f.owner(t, "owner@x.com")
	job := f.postJob(t, owner)
	seeker := f.seeker(t, "a@x.com")

	_, err := f.applications.Apply(ctx, seeker, job.ID, "")
	require.NoError(t, err)

	_, err = f.applications.Apply(ctx, seeker, job.ID, "again")
	assert.Equal(t, apperrors.CodeDuplicateApplication, errCode(err))

	apps, err := f.applications.ListMine(ctx, seeker.UserID)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestDecideApplication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.owner(t, "owner@x.com")
	intruder := f.owner(t, "intruder@x.com")
	job := f.postJob(t, owner)
	seeker := f.seeker(t, "a@x.com")
	app, err := f.applications.Apply(ctx, seeker, job.ID, "")
	require.NoError(t, err)

	_, err = f.applications.Decide(ctx, owner, app.ID, domain.ApplicationStatusWithdrawn)
	assert.Equal(t, apperrors.CodeValidation, errCode(err))

	_, foreign := f.applications.Decide(ctx, intruder, app.ID, domain.ApplicationStatusAccepted)
	_, missing := f.applications.Decide(ctx, intruder, 9999, domain.ApplicationStatusAccepted)
	assert.Equal(t, apperrors.CodeNotFoundOrUnauthorized, errCode(foreign))
	assert.Equal(t, apperrors.ToDomainError(missing).Message, apperrors.ToDomainError(foreign).Message)

	decided, err := f.applications.Decide(ctx, owner, app.ID, domain.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusAccepted, decided.Status)

	_, err = f.applications.Decide(ctx, owner, app.ID, domain.ApplicationStatusRejected)
	assert.Equal(t, apperrors.CodeInvalidTransition, errCode(err))

	mine, err := f.applications.ListMine(ctx, seeker.UserID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.ApplicationStatusAccepted, mine[0].Status)
}

func TestWithdrawOnlyOwnApplication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.owner(t, "owner@x.com")
	job := f.postJob(t, owner)
	seeker := f.seeker(t, "a@x.com")
	other := f.seeker(t, "b@x.com")
	app, err := f.applications.Apply(ctx, seeker, job.ID, "")
	require.NoError(t, err)

	var withdrawn []events.ApplicationPayload
	f.dispatcher.Subscribe(events.EventApplicationWithdrawn, func(_ context.Context, e events.Event) error {
		withdrawn = append(withdrawn, e.Payload.(events.ApplicationPayload))
		return nil
	})

	err = f.applications.Withdraw(ctx, other, app.ID)
	assert.Equal(t, apperrors.CodeNotFoundOrUnauthorized, errCode(err))

	require.NoError(t, f.applications.Withdraw(ctx, seeker, app.ID))
	mine, err := f.applications.ListMine(ctx, seeker.UserID)
	require.NoError(t, err)
	assert.Empty(t, mine)
	require.Len(t, withdrawn, 1)
	assert.Equal(t, domain.ApplicationStatusWithdrawn, withdrawn[0].NewStatus)

	err = f.applications.Withdraw(ctx, seeker, app.ID)
	assert.Equal(t, apperrors.CodeNotFoundOrUnauthorized, errCode(err))

	_, err = f.applications.Apply(ctx, seeker, job.ID, "changed my mind")
	assert.NoError(t, err)
}

func TestMatchesNeedProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bare := f.register(t, "bare@x.com", domain.RoleJobSeeker)
	_, err := f.matches.ListMine(ctx, bare.User.ID, 10)
	assert.Equal(t, apperrors.CodeProfileRequired, errCode(err))

	seeker := f.seeker(t, "a@x.com")
	f.store.AddMatch(domain.Match{SeekerID: seeker.UserID, JobID: 1, Score: 0.2})
	f.store.AddMatch(domain.Match{SeekerID: seeker.UserID, JobID: 2, Score: 0.8})
	f.store.AddMatch(domain.Match{SeekerID: bare.User.ID, JobID: 3, Score: 1})

	matches, err := f.matches.ListMine(ctx, seeker.UserID, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, int64(2), matches[0].JobID)
}

func TestProfilesUpsert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@x.com", domain.RoleShopOwner)

	_, err := f.profiles.GetShop(ctx, owner.User.ID)
	assert.Equal(t, apperrors.CodeNotFound, errCode(err))

	first, err := f.profiles.SaveShop(ctx, owner.User.ID, ShopInput{Name: "Cafe"})
	require.NoError(t, err)
	second, err := f.profiles.SaveShop(ctx, owner.User.ID, ShopInput{Name: "Cafe Two"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := f.profiles.GetShop(ctx, owner.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cafe Two", got.Name)
}
