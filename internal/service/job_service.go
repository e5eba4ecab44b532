package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/events"
	"github.com/shiftmatch/jobmatch-service/internal/repository"
	apperrors "github.com/shiftmatch/jobmatch-service/pkg/util"
	"github.com/shiftmatch/jobmatch-service/pkg/validation"
)

// JobService coordinates job posting workflows.
type JobService struct {
	store  repository.Store
	logger *zap.Logger
	events publisher
}

// WorkflowDependencies bundles collaborators shared by the job and application services.
type WorkflowDependencies struct {
	Store      repository.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
}

// JobCreateInput describes a new posting.
type JobCreateInput struct {
	CategoryID        int64
	Title             string
	Description       string
	RequiredHeadcount int
	Wage              int64
	WorkDate          time.Time
}

// JobListFilter describes public listing filters. Empty Statuses means open only.
type JobListFilter struct {
	Statuses   []domain.JobStatus
	CategoryID *int64
	Limit      int
	Offset     int
}

// NewJobService builds the service.
func NewJobService(deps WorkflowDependencies) *JobService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{
		store:  deps.Store,
		logger: logger,
		events: newPublisher(deps.Dispatcher, logger, deps.Clock),
	}
}

// CreateJob posts a new open job for the caller's shop.
func (s *JobService) CreateJob(ctx context.Context, ownerID int64, input JobCreateInput) (*domain.JobPosting, error) {
	repos := s.store.Repositories()
	shop, err := repos.Shops.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewProfileRequired("create a shop before posting jobs")
		}
		return nil, apperrors.NewInternalError(err)
	}

	job := &domain.JobPosting{
		ShopID:            shop.ID,
		CategoryID:        input.CategoryID,
		Title:             input.Title,
		Description:       input.Description,
		Status:            domain.JobStatusOpen,
		RequiredHeadcount: input.RequiredHeadcount,
		Wage:              input.Wage,
		WorkDate:          input.WorkDate,
	}
	if err := repos.Jobs.Create(ctx, job); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("job posted", zap.Int64("job_id", job.ID), zap.Int64("shop_id", shop.ID))
	return job, nil
}

// ListJobs returns postings, defaulting to open ones.
func (s *JobService) ListJobs(ctx context.Context, filter JobListFilter) ([]domain.JobPosting, error) {
	statuses := filter.Statuses
	if len(statuses) == 0 {
		statuses = []domain.JobStatus{domain.JobStatusOpen}
	}
	for _, status := range statuses {
		if !status.Valid() {
			return nil, validation.Field("unknown job status", "status", "oneof")
		}
	}

	jobs, err := s.store.Repositories().Jobs.List(ctx, repository.JobFilter{
		CategoryID: filter.CategoryID,
		Statuses:   statuses,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return jobs, nil
}

// GetJob returns a single posting in any status.
func (s *JobService) GetJob(ctx context.Context, id int64) (*domain.JobPosting, error) {
	job, err := s.store.Repositories().Jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("job")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return job, nil
}

// ListShopJobs returns every posting of the caller's shop regardless of status.
func (s *JobService) ListShopJobs(ctx context.Context, ownerID int64, limit, offset int) ([]domain.JobPosting, error) {
	repos := s.store.Repositories()
	shop, err := repos.Shops.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewProfileRequired("create a shop before listing jobs")
		}
		return nil, apperrors.NewInternalError(err)
	}

	jobs, err := repos.Jobs.List(ctx, repository.JobFilter{ShopID: &shop.ID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return jobs, nil
}

// TransitionStatus moves the caller's posting to next. Postings of other
// shops are reported exactly like missing ones.
func (s *JobService) TransitionStatus(ctx context.Context, actor domain.Identity, jobID int64, next domain.JobStatus) (*domain.JobPosting, error) {
	if !next.Valid() {
		return nil, validation.Field("unknown job status", "status", "oneof")
	}

	var (
		updated  *domain.JobPosting
		previous domain.JobStatus
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		job, err := ownedJob(ctx, repos, actor.UserID, jobID, true)
		if err != nil {
			return err
		}
		if !job.Status.CanTransitionTo(next) {
			return apperrors.NewInvalidTransition(string(job.Status), string(next))
		}
		if err := repos.Jobs.UpdateStatus(ctx, job.ID, job.Status, next); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewInvalidTransition(string(job.Status), string(next))
			}
			return err
		}
		previous = job.Status
		updated, err = repos.Jobs.GetByID(ctx, job.ID)
		return err
	})
	if err != nil {
		return nil, internalUnlessDomain(err)
	}

	s.events.publish(ctx, events.EventJobStatusChanged, actor, events.JobStatusChangedPayload{
		JobID:     updated.ID,
		ShopID:    updated.ShopID,
		OldStatus: previous,
		NewStatus: updated.Status,
	})
	return updated, nil
}

// ownedJob loads the posting, row-locking it when forUpdate is set, and checks
// it belongs to ownerID's shop.
func ownedJob(ctx context.Context, repos repository.Repositories, ownerID, jobID int64, forUpdate bool) (*domain.JobPosting, error) {
	shop, err := repos.Shops.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundOrUnauthorized("job")
		}
		return nil, err
	}
	load := repos.Jobs.GetByID
	if forUpdate {
		load = repos.Jobs.GetForUpdate
	}
	job, err := load(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundOrUnauthorized("job")
		}
		return nil, err
	}
	if job.ShopID != shop.ID {
		return nil, apperrors.NewNotFoundOrUnauthorized("job")
	}
	return job, nil
}
