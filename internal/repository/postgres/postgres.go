package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/kabz8/Nextcare/internal/repository"
)

type serviceRepository struct {
	db *sqlx.DB
}

type timeSlotRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type testimonialRepository struct {
	db *sqlx.DB
}

type productRepository struct {
	db *sqlx.DB
}

type userRepository struct {
	db *sqlx.DB
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

func NewTimeSlotRepository(db *sqlx.DB) repository.TimeSlotRepository {
	return &timeSlotRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewTestimonialRepository(db *sqlx.DB) repository.TestimonialRepository {
	return &testimonialRepository{db: db}
}

func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// NewStore wires every postgres repository over one pool.
func NewStore(db *sqlx.DB) *repository.Store {
	return &repository.Store{
		Services:     NewServiceRepository(db),
		TimeSlots:    NewTimeSlotRepository(db),
		Appointments: NewAppointmentRepository(db),
		Testimonials: NewTestimonialRepository(db),
		Products:     NewProductRepository(db),
		Users:        NewUserRepository(db),
		Pinger:       db,
	}
}
