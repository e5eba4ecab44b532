package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/events"
	"github.com/shiftmatch/jobmatch-service/internal/repository"
	apperrors "github.com/shiftmatch/jobmatch-service/pkg/util"
	"github.com/shiftmatch/jobmatch-service/pkg/validation"
)

// ApplicationService coordinates application workflows.
type ApplicationService struct {
	store  repository.Store
	logger *zap.Logger
	events publisher
}

// NewApplicationService builds the service.
func NewApplicationService(deps WorkflowDependencies) *ApplicationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		store:  deps.Store,
		logger: logger,
		events: newPublisher(deps.Dispatcher, logger, deps.Clock),
	}
}

// Apply files an application. Preconditions are checked in order and the
// first failure wins; the unique (seeker, job) constraint backs the last one.
func (s *ApplicationService) Apply(ctx context.Context, seeker domain.Identity, jobID int64, message string) (*domain.Application, error) {
	app := &domain.Application{
		SeekerID: seeker.UserID,
		JobID:    jobID,
		Status:   domain.ApplicationStatusPending,
		Message:  message,
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, err := repos.Seekers.GetByUserID(ctx, seeker.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewProfileRequired("create a seeker profile before applying")
			}
			return err
		}

		// Locked so a concurrent close either waits for this insert or is seen here.
		job, err := repos.Jobs.GetForUpdate(ctx, jobID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewNotFound("job")
			}
			return err
		}
		if !job.AcceptsApplications() {
			return apperrors.NewJobClosed()
		}

		if _, err := repos.Applications.GetBySeekerAndJob(ctx, seeker.UserID, jobID); err == nil {
			return apperrors.NewDuplicateApplication()
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if err := repos.Applications.Create(ctx, app); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperrors.NewDuplicateApplication()
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, internalUnlessDomain(err)
	}

	s.events.publish(ctx, events.EventApplicationSubmitted, seeker, events.ApplicationPayload{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		SeekerID:      app.SeekerID,
		NewStatus:     app.Status,
	})
	return app, nil
}

// ListMine returns the seeker's applications, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, seekerID int64) ([]domain.Application, error) {
	apps, err := s.store.Repositories().Applications.ListBySeeker(ctx, seekerID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return apps, nil
}

// ListForJob returns applications to one of the caller's postings.
func (s *ApplicationService) ListForJob(ctx context.Context, ownerID, jobID int64) ([]domain.Application, error) {
	repos := s.store.Repositories()
	job, err := ownedJob(ctx, repos, ownerID, jobID, false)
	if err != nil {
		return nil, internalUnlessDomain(err)
	}
	apps, err := repos.Applications.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return apps, nil
}

// Decide accepts or rejects a pending application to one of the caller's postings.
func (s *ApplicationService) Decide(ctx context.Context, owner domain.Identity, applicationID int64, next domain.ApplicationStatus) (*domain.Application, error) {
	if next != domain.ApplicationStatusAccepted && next != domain.ApplicationStatusRejected {
		return nil, validation.Field("status must be accepted or rejected", "status", "oneof")
	}

	var (
		updated  *domain.Application
		previous domain.ApplicationStatus
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		app, err := repos.Applications.GetByID(ctx, applicationID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewNotFoundOrUnauthorized("application")
			}
			return err
		}
		if _, err := ownedJob(ctx, repos, owner.UserID, app.JobID, true); err != nil {
			if errors.Is(err, apperrors.NewNotFoundOrUnauthorized("")) {
				return apperrors.NewNotFoundOrUnauthorized("application")
			}
			return err
		}

		if !app.Status.CanDecide(next) {
			return apperrors.NewInvalidTransition(string(app.Status), string(next))
		}
		if err := repos.Applications.UpdateStatus(ctx, app.ID, app.Status, next); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewInvalidTransition(string(app.Status), string(next))
			}
			return err
		}
		previous = app.Status
		updated, err = repos.Applications.GetByID(ctx, app.ID)
		return err
	})
	if err != nil {
		return nil, internalUnlessDomain(err)
	}

	s.events.publish(ctx, events.EventApplicationStatusChanged, owner, events.ApplicationPayload{
		ApplicationID: updated.ID,
		JobID:         updated.JobID,
		SeekerID:      updated.SeekerID,
		OldStatus:     previous,
		NewStatus:     updated.Status,
	})
	return updated, nil
}

// Withdraw deletes the caller's own application in any state.
func (s *ApplicationService) Withdraw(ctx context.Context, seeker domain.Identity, applicationID int64) error {
	var removed *domain.Application
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		app, err := repos.Applications.GetByID(ctx, applicationID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewNotFoundOrUnauthorized("application")
			}
			return err
		}
		if app.SeekerID != seeker.UserID {
			return apperrors.NewNotFoundOrUnauthorized("application")
		}
		if err := repos.Applications.Delete(ctx, app.ID, seeker.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewNotFoundOrUnauthorized("application")
			}
			return err
		}
		removed = app
		return nil
	})
	if err != nil {
		return internalUnlessDomain(err)
	}

	s.events.publish(ctx, events.EventApplicationWithdrawn, seeker, events.ApplicationPayload{
		ApplicationID: removed.ID,
		JobID:         removed.JobID,
		SeekerID:      removed.SeekerID,
		OldStatus:     removed.Status,
		NewStatus:     domain.ApplicationStatusWithdrawn,
	})
	return nil
}
