package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kabz8/Nextcare/internal/model"
	"github.com/kabz8/Nextcare/internal/repository"
	apperrors "github.com/kabz8/Nextcare/pkg/errors"
	"github.com/kabz8/Nextcare/pkg/metrics"
	"github.com/kabz8/Nextcare/pkg/validator"
)

// Notifier is told about every confirmed appointment.
type Notifier interface {
	AppointmentConfirmed(ctx context.Context, apt *model.Appointment) error
}

type Service struct {
	slots        repository.TimeSlotRepository
	appointments repository.AppointmentRepository
	services     repository.ServiceRepository
	notifier     Notifier
	metrics      *metrics.Metrics
}

func NewService(
	slots repository.TimeSlotRepository,
	appointments repository.AppointmentRepository,
	services repository.ServiceRepository,
	notifier Notifier,
	m *metrics.Metrics,
) *Service {
	return &Service{
		slots:        slots,
		appointments: appointments,
		services:     services,
		notifier:     notifier,
		metrics:      m,
	}
}

// GetAvailableSlots returns the open slots of a YYYY-MM-DD date. A weekday with no
// slots yet gets its schedule generated first; weekends never do.
func (s *Service) GetAvailableSlots(ctx context.Context, date string) ([]*model.TimeSlot, error) {
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, apperrors.NewBadRequest("date must be in YYYY-MM-DD format", err)
	}

	outcome, err := s.ensureSlots(ctx, date, day)
	if err != nil {
		return nil, err
	}
	s.metrics.SlotQueries.WithLabelValues(outcome).Inc()

	if outcome == "closed" {
		return []*model.TimeSlot{}, nil
	}

	slots, err := s.slots.ListAvailable(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get available slots: %w", err)
	}
	return slots, nil
}

// ensureSlots generates the day's schedule when the date has no slots at all.
// A fully booked date keeps its rows and is not regenerated.
func (s *Service) ensureSlots(ctx context.Context, date string, day time.Time) (string, error) {
	existing, err := s.slots.CountByDate(ctx, date)
	if err != nil {
		return "", fmt.Errorf("failed to check existing slots: %w", err)
	}
	if existing > 0 {
		return "existing", nil
	}

	if model.IsWeekend(day) {
		log.Debug().Str("date", date).Msg("clinic closed, no slots generated")
		return "closed", nil
	}

	created, err := s.slots.CreateBatch(ctx, date, model.DailySlotTimes())
	if err != nil {
		return "", fmt.Errorf("failed to generate slots: %w", err)
	}
	s.metrics.SlotsGenerated.Add(float64(created))

	log.Info().Str("date", date).Int("created", created).Msg("generated time slots")
	return "generated", nil
}

// CreateAppointment stores an unconfirmed appointment and claims its slot in one step.
// A slot that is taken or does not exist yields a conflict and nothing is stored.
func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, apperrors.NewBadRequest(validator.Message(err), err)
	}

	day, err := model.ParseDate(req.AppointmentDate)
	if err != nil {
		return nil, apperrors.NewBadRequest("appointmentDate must be a YYYY-MM-DD date", err)
	}

	if _, err := s.services.Get(ctx, req.ServiceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewBadRequest("serviceId does not match a known service", err)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	if _, err := s.ensureSlots(ctx, req.AppointmentDate, day); err != nil {
		return nil, err
	}

	apt := req.ToModel()
	if err := s.appointments.CreateWithSlot(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrSlotUnavailable) {
			s.metrics.BookingConflicts.Inc()
			return nil, apperrors.NewConflict("time slot is no longer available", err)
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	log.Info().
		Int64("appointment_id", apt.ID).
		Str("date", apt.AppointmentDate).
		Str("time", apt.AppointmentTime).
		Msg("appointment created")
	return apt, nil
}

// MarkSlotBooked flips one matching available slot. Finding none is not an error.
func (s *Service) MarkSlotBooked(ctx context.Context, date, time string) (bool, error) {
	booked, err := s.slots.MarkBooked(ctx, date, time)
	if err != nil {
		return false, fmt.Errorf("failed to mark slot booked: %w", err)
	}
	return booked, nil
}

func (s *Service) ConfirmAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	apt, err := s.appointments.Confirm(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to confirm appointment: %w", err)
	}
	return apt, nil
}

// Book creates and immediately confirms an appointment, then sends the confirmation
// notice. A failed notice is logged and does not fail the booking.
func (s *Service) Book(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	start := time.Now()
	defer func() {
		s.metrics.BookingLatency.Observe(time.Since(start).Seconds())
	}()

	apt, err := s.CreateAppointment(ctx, req)
	if err != nil {
		s.metrics.BookingsTotal.WithLabelValues(bookingResult(err)).Inc()
		return nil, err
	}

	confirmed, err := s.ConfirmAppointment(ctx, apt.ID)
	if err != nil {
		s.metrics.BookingsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	s.metrics.BookingsTotal.WithLabelValues("confirmed").Inc()

	if s.notifier != nil {
		if err := s.notifier.AppointmentConfirmed(ctx, confirmed); err != nil {
			log.Warn().Err(err).Int64("appointment_id", confirmed.ID).Msg("failed to send confirmation notice")
		}
	}

	return confirmed, nil
}

func bookingResult(err error) string {
	switch {
	case apperrors.IsCode(err, apperrors.ErrConflict):
		return "conflict"
	case apperrors.IsCode(err, apperrors.ErrBadRequest):
		return "invalid"
	default:
		return "error"
	}
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return apt, nil
}

func (s *Service) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.appointments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
