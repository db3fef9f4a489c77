package repository

import (
	"context"
	"errors"

	"github.com/kabz8/Nextcare/internal/model"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrSlotUnavailable means no available slot matched the requested (date, time).
	ErrSlotUnavailable = errors.New("time slot unavailable")
	ErrDuplicate       = errors.New("duplicate record")
)

// All repository interfaces in one file
type (
	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id int64) (*model.Service, error)
		List(ctx context.Context) ([]*model.Service, error)
		Count(ctx context.Context) (int, error)
	}

	TimeSlotRepository interface {
		// CountByDate counts every slot of the date, booked or not.
		CountByDate(ctx context.Context, date string) (int, error)
		// ListAvailable returns the date's open slots in insertion order.
		ListAvailable(ctx context.Context, date string) ([]*model.TimeSlot, error)
		// CreateBatch inserts available slots, skipping (date, time) pairs that already exist.
		// It returns the number of rows inserted.
		CreateBatch(ctx context.Context, date string, times []string) (int, error)
		// MarkBooked flips one matching available slot to unavailable and reports whether it did.
		MarkBooked(ctx context.Context, date, time string) (bool, error)
		Count(ctx context.Context) (int, error)
	}

	AppointmentRepository interface {
		// CreateWithSlot claims the appointment's slot and inserts the appointment in one
		// atomic step. It returns ErrSlotUnavailable and writes nothing when the slot is taken.
		CreateWithSlot(ctx context.Context, appointment *model.Appointment) error
		Confirm(ctx context.Context, id int64) (*model.Appointment, error)
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		// List returns appointments newest first.
		List(ctx context.Context) ([]*model.Appointment, error)
	}

	TestimonialRepository interface {
		Create(ctx context.Context, testimonial *model.Testimonial) error
		List(ctx context.Context) ([]*model.Testimonial, error)
		Count(ctx context.Context) (int, error)
	}

	ProductRepository interface {
		Create(ctx context.Context, product *model.Product) error
		Get(ctx context.Context, id int64) (*model.Product, error)
		Update(ctx context.Context, product *model.Product) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error)
		Count(ctx context.Context) (int, error)
	}

	UserRepository interface {
		// Create returns ErrDuplicate when the username is taken.
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id int64) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
	}

	Pinger interface {
		PingContext(ctx context.Context) error
	}
)

// Store bundles the repositories of one backing store.
type Store struct {
	Services     ServiceRepository
	TimeSlots    TimeSlotRepository
	Appointments AppointmentRepository
	Testimonials TestimonialRepository
	Products     ProductRepository
	Users        UserRepository
	Pinger       Pinger
}
