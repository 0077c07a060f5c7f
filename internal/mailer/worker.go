package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vitalworks/vitality/internal/notify"
	"github.com/vitalworks/vitality/internal/store"
)

// Worker listens for generated results and mails the user their score.
type Worker struct {
	client *Client
	events notify.Publisher
	store  store.Store
	logger *slog.Logger
}

func NewWorker(client *Client, events notify.Publisher, st store.Store, logger *slog.Logger) *Worker {
	return &Worker{client: client, events: events, store: st, logger: logger}
}

// Start subscribes to result events. It is a no-op when mail is disabled.
func (w *Worker) Start() error {
	if !w.client.Enabled() {
		w.logger.Info("mail delivery disabled, no API key configured")
		return nil
	}
	return w.events.Subscribe(notify.SubjectAnyResultGenerated, w.handle)
}

func (w *Worker) handle(subject string, data []byte) {
	var event notify.ResultGeneratedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		w.logger.Error("malformed result event", "subject", subject, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mailSubject, html := Compose(event)
	if err := w.client.Send(ctx, event.Email, mailSubject, html); err != nil {
		w.logger.Error("failed to deliver score email",
			"result_id", event.ResultID, "error", err)
		return
	}

	if userID, err := uuid.Parse(event.UserID); err == nil {
		if err := w.store.UpdateLastNotification(ctx, userID, time.Now()); err != nil {
			w.logger.Warn("failed to record notification time",
				"user_id", event.UserID, "error", err)
		}
	}
	emailsSent.Inc()
	w.logger.Info("score email sent", "result_id", event.ResultID)
}

// Compose picks the message wording: a first score gets a welcome, an
// improved score a congratulation, anything else encouragement.
func Compose(event notify.ResultGeneratedEvent) (subject, html string) {
	name := event.FirstName
	if name == "" {
		name = "there"
	}

	switch {
	case event.PreviousPoints == nil:
		subject = "Your first Vitality Index score is ready"
		html = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your first Vitality Index score is ready: "+
				"<strong>%d</strong> out of %d for the questions you answered. "+
				"Log in to see the full breakdown.</p>",
			name, event.Points, event.MaxForAnswered)
	case event.Points > *event.PreviousPoints:
		subject = "Your Vitality Index score went up"
		html = fmt.Sprintf(
			"<p>Hi %s,</p><p>Congratulations! Your score rose from %d to "+
				"<strong>%d</strong>. Keep it up.</p>",
			name, *event.PreviousPoints, event.Points)
	default:
		subject = "Your new Vitality Index score is ready"
		html = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your new score is <strong>%d</strong> "+
				"(previously %d). Small changes add up; check the breakdown "+
				"to see where to focus next.</p>",
			name, event.Points, *event.PreviousPoints)
	}
	return subject, html
}
