package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/shiftmatch/jobmatch-service/internal/config"
	"github.com/shiftmatch/jobmatch-service/internal/events"
)

// NotificationService turns domain events into outbound notification stubs.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventApplicationSubmitted, n.handleApplicationEvent)
	n.dispatcher.Subscribe(events.EventApplicationStatusChanged, n.handleApplicationEvent)
	n.dispatcher.Subscribe(events.EventApplicationWithdrawn, n.handleApplicationEvent)
	n.dispatcher.Subscribe(events.EventJobStatusChanged, n.handleJobStatusChanged)
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordResetRequested)
}

func (n *NotificationService) handleApplicationEvent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.logger.Info("application event",
		zap.String("event_type", string(event.Type)),
		zap.Int64("application_id", payload.ApplicationID),
		zap.Int64("job_id", payload.JobID),
		zap.String("status", string(payload.NewStatus)))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleJobStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.JobStatusChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.logger.Info("job status changed",
		zap.Int64("job_id", payload.JobID),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// handlePasswordResetRequested hands the code to the email stub. The code
// itself is never written to the log.
func (n *NotificationService) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.sendEmailNotificationStub(ctx, event, payload.Email)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event, to string) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("user_id", event.Actor.UserID),
		zap.Bool("recipient_set", to != ""),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
