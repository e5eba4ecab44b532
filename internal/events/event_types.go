package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventApplicationWithdrawn     EventType = "application_withdrawn"
	EventJobStatusChanged         EventType = "job_status_changed"
	EventPasswordResetRequested   EventType = "password_reset_requested"
)

// Actor identifies who caused the event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services after commit.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New stamps an event with a fresh id.
func New(eventType EventType, actor Actor, at time.Time, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: at,
		Payload:   payload,
	}
}

// ApplicationPayload is carried by application events.
type ApplicationPayload struct {
	ApplicationID int64                    `json:"application_id"`
	JobID         int64                    `json:"job_id"`
	SeekerID      int64                    `json:"seeker_id"`
	OldStatus     domain.ApplicationStatus `json:"old_status,omitempty"`
	NewStatus     domain.ApplicationStatus `json:"new_status"`
}

// JobStatusChangedPayload payload.
type JobStatusChangedPayload struct {
	JobID     int64            `json:"job_id"`
	ShopID    int64            `json:"shop_id"`
	OldStatus domain.JobStatus `json:"old_status"`
	NewStatus domain.JobStatus `json:"new_status"`
}

// PasswordResetRequestedPayload carries delivery data for the recovery code.
// Code must only reach the delivery channel, never a log line or response.
type PasswordResetRequestedPayload struct {
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}
