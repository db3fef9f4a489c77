// Package memory is an in-process implementation of the repository interfaces.
// All repositories of one Store share a single lock so that cross-table operations
// such as claiming a slot while inserting an appointment stay atomic.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kabz8/Nextcare/internal/model"
	"github.com/kabz8/Nextcare/internal/repository"
)

type db struct {
	mu  sync.RWMutex
	now func() time.Time

	services     []*model.Service
	timeSlots    []*model.TimeSlot
	appointments []*model.Appointment
	testimonials []*model.Testimonial
	products     []*model.Product
	users        []*model.User

	nextID map[string]int64
}

func (d *db) id(table string) int64 {
	d.nextID[table]++
	return d.nextID[table]
}

// NewStore returns an empty in-memory store.
func NewStore() *repository.Store {
	return newStore(time.Now)
}

func newStore(now func() time.Time) *repository.Store {
	d := &db{now: now, nextID: map[string]int64{}}
	return &repository.Store{
		Services:     &serviceRepository{d},
		TimeSlots:    &timeSlotRepository{d},
		Appointments: &appointmentRepository{d},
		Testimonials: &testimonialRepository{d},
		Products:     &productRepository{d},
		Users:        &userRepository{d},
		Pinger:       d,
	}
}

func (d *db) PingContext(ctx context.Context) error {
	return ctx.Err()
}

type serviceRepository struct{ *db }

func (r *serviceRepository) Create(ctx context.Context, s *model.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = r.id("services")
	c := *s
	r.services = append(r.services, &c)
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id int64) (*model.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.services {
		if s.ID == id {
			c := *s
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Service, 0, len(r.services))
	for _, s := range r.services {
		c := *s
		out = append(out, &c)
	}
	return out, nil
}

func (r *serviceRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.services), nil
}

type timeSlotRepository struct{ *db }

func (r *timeSlotRepository) CountByDate(ctx context.Context, date string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, s := range r.timeSlots {
		if s.Date == date {
			n++
		}
	}
	return n, nil
}

func (r *timeSlotRepository) ListAvailable(ctx context.Context, date string) ([]*model.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*model.TimeSlot{}
	for _, s := range r.timeSlots {
		if s.Date == date && s.Available {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *timeSlotRepository) CreateBatch(ctx context.Context, date string, times []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := map[string]bool{}
	for _, s := range r.timeSlots {
		if s.Date == date {
			existing[s.Time] = true
		}
	}

	inserted := 0
	for _, t := range times {
		if existing[t] {
			continue
		}
		existing[t] = true
		r.timeSlots = append(r.timeSlots, &model.TimeSlot{
			ID:        r.id("time_slots"),
			Date:      date,
			Time:      t,
			Available: true,
		})
		inserted++
	}
	return inserted, nil
}

func (r *timeSlotRepository) MarkBooked(ctx context.Context, date, time string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.claim(date, time), nil
}

// claim must be called with the write lock held.
func (d *db) claim(date, time string) bool {
	for _, s := range d.timeSlots {
		if s.Date == date && s.Time == time && s.Available {
			s.Available = false
			return true
		}
	}
	return false
}

func (r *timeSlotRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.timeSlots), nil
}

type appointmentRepository struct{ *db }

func (r *appointmentRepository) CreateWithSlot(ctx context.Context, apt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.claim(apt.AppointmentDate, apt.AppointmentTime) {
		return repository.ErrSlotUnavailable
	}

	apt.ID = r.id("appointments")
	apt.CreatedAt = r.now()
	c := *apt
	r.appointments = append(r.appointments, &c)
	return nil
}

func (r *appointmentRepository) Confirm(ctx context.Context, id int64) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.appointments {
		if a.ID == id {
			a.Confirmed = true
			c := *a
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.appointments {
		if a.ID == id {
			c := *a
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		c := *a
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type testimonialRepository struct{ *db }

func (r *testimonialRepository) Create(ctx context.Context, t *model.Testimonial) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.id("testimonials")
	c := *t
	r.testimonials = append(r.testimonials, &c)
	return nil
}

func (r *testimonialRepository) List(ctx context.Context) ([]*model.Testimonial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Testimonial, 0, len(r.testimonials))
	for _, t := range r.testimonials {
		c := *t
		out = append(out, &c)
	}
	return out, nil
}

func (r *testimonialRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.testimonials), nil
}

type productRepository struct{ *db }

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.id("products")
	p.CreatedAt = r.now()
	c := *p
	r.products = append(r.products, &c)
	return nil
}

func (r *productRepository) Get(ctx context.Context, id int64) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			c := *p
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.products {
		if existing.ID == p.ID {
			p.CreatedAt = existing.CreatedAt
			c := *p
			r.products[i] = &c
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*model.Product{}
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.FeaturedOnly && !p.Featured {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products), nil
}

type userRepository struct{ *db }

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}

	u.ID = r.id("users")
	c := *u
	r.users = append(r.users, &c)
	return nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}
