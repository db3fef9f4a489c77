package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kabz8/Nextcare/internal/service/notification"
	"github.com/kabz8/Nextcare/pkg/metrics"
	"github.com/kabz8/Nextcare/pkg/worker"
)

// ConfirmationMailer sends the confirmation email for every appointment.confirmed
// event read from the broker.
type ConfirmationMailer struct {
	mailer  *notification.Mailer
	metrics *metrics.Metrics
}

func NewConfirmationMailer(mailer *notification.Mailer, m *metrics.Metrics) *ConfirmationMailer {
	return &ConfirmationMailer{mailer: mailer, metrics: m}
}

func (w *ConfirmationMailer) Handle(ctx context.Context, raw []byte) error {
	apt, err := notification.DecodeConfirmation(raw)
	if err != nil {
		if !errors.Is(err, notification.ErrUnknownEvent) {
			w.metrics.Notifications.WithLabelValues("failed").Inc()
		}
		return fmt.Errorf("%w: %v", worker.ErrSkip, err)
	}

	if err := w.mailer.Send(apt); err != nil {
		w.metrics.Notifications.WithLabelValues("failed").Inc()
		return err
	}

	w.metrics.Notifications.WithLabelValues("sent").Inc()
	log.Info().Int64("appointment_id", apt.ID).Msg("confirmation email sent")
	return nil
}
