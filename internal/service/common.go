package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/events"
	apperrors "github.com/shiftmatch/jobmatch-service/pkg/util"
)

// publisher emits events after a transaction commits. Delivery failures
// never fail the request that caused them.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func newPublisher(dispatcher events.Dispatcher, logger *zap.Logger, now func() time.Time) publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return publisher{dispatcher: dispatcher, logger: logger, now: now}
}

func (p publisher) publish(ctx context.Context, eventType events.EventType, actor domain.Identity, payload any) {
	if p.dispatcher == nil {
		return
	}
	event := events.New(eventType, events.Actor{UserID: actor.UserID, Role: actor.Role}, p.now(), payload)
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("publish event", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

// internalUnlessDomain passes domain errors through and hides everything else
// behind INTERNAL_ERROR.
func internalUnlessDomain(err error) error {
	if err == nil {
		return nil
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return apperrors.NewInternalError(err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
