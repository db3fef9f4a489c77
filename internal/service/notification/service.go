package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kabz8/Nextcare/internal/model"
	"github.com/kabz8/Nextcare/pkg/messaging"
	"github.com/kabz8/Nextcare/pkg/metrics"
)

const EventAppointmentConfirmed = "appointment.confirmed"

var ErrUnknownEvent = errors.New("unknown event type")

type Config struct {
	Channel string
	// Async leaves the email to the worker consuming Channel.
	Async bool
}

// Service announces confirmed appointments on the broker and, unless Async is set,
// sends the confirmation email itself.
type Service struct {
	broker  messaging.Broker
	mailer  *Mailer
	config  Config
	metrics *metrics.Metrics
}

func NewService(broker messaging.Broker, mailer *Mailer, config Config, m *metrics.Metrics) *Service {
	return &Service{
		broker:  broker,
		mailer:  mailer,
		config:  config,
		metrics: m,
	}
}

func (s *Service) AppointmentConfirmed(ctx context.Context, apt *model.Appointment) error {
	if s.config.Async {
		if err := s.publish(ctx, apt); err != nil {
			s.metrics.Notifications.WithLabelValues("failed").Inc()
			return err
		}
		s.metrics.Notifications.WithLabelValues("queued").Inc()
		return nil
	}

	// Mail first; a failed publish only loses the event.
	if err := s.mailer.Send(apt); err != nil {
		s.metrics.Notifications.WithLabelValues("failed").Inc()
		return err
	}
	s.metrics.Notifications.WithLabelValues("sent").Inc()
	log.Debug().Int64("appointment_id", apt.ID).Msg("confirmation sent")

	if err := s.publish(ctx, apt); err != nil {
		log.Warn().Err(err).Int64("appointment_id", apt.ID).Msg("confirmation event not published")
	}
	return nil
}

func (s *Service) publish(ctx context.Context, apt *model.Appointment) error {
	msg := messaging.Message{
		Type:    EventAppointmentConfirmed,
		Payload: apt,
	}
	if err := s.broker.Publish(ctx, s.config.Channel, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", EventAppointmentConfirmed, err)
	}
	return nil
}

// DecodeConfirmation parses a broker message published by AppointmentConfirmed.
func DecodeConfirmation(raw []byte) (*model.Appointment, error) {
	var envelope struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}
	if envelope.Type != EventAppointmentConfirmed {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, envelope.Type)
	}

	var apt model.Appointment
	if err := json.Unmarshal(envelope.Payload, &apt); err != nil {
		return nil, fmt.Errorf("failed to decode appointment: %w", err)
	}
	return &apt, nil
}
