// Package seed loads the clinic's initial catalog and opening schedule.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kabz8/Nextcare/internal/model"
	"github.com/kabz8/Nextcare/internal/repository"
)

type Options struct {
	// HorizonDays is how many days after today get weekday slots.
	HorizonDays int
	// ExtraDates always get a full schedule, whatever the weekday.
	ExtraDates []string
	Now        func() time.Time
}

type Result struct {
	Services     int
	Testimonials int
	Products     int
	Slots        int
}

// Run seeds every empty table and every date without slots. Running it again
// changes nothing.
func Run(ctx context.Context, store *repository.Store, opts Options) (*Result, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	var (
		res Result
		err error
	)

	if res.Services, err = seedServices(ctx, store.Services); err != nil {
		return nil, err
	}
	if res.Testimonials, err = seedTestimonials(ctx, store.Testimonials); err != nil {
		return nil, err
	}
	if res.Products, err = seedProducts(ctx, store.Products); err != nil {
		return nil, err
	}
	if res.Slots, err = seedSlots(ctx, store.TimeSlots, opts); err != nil {
		return nil, err
	}

	log.Info().
		Int("services", res.Services).
		Int("testimonials", res.Testimonials).
		Int("products", res.Products).
		Int("slots", res.Slots).
		Msg("seed completed")
	return &res, nil
}

func seedServices(ctx context.Context, repo repository.ServiceRepository) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	if n > 0 {
		log.Debug().Int("existing", n).Msg("services already seeded")
		return 0, nil
	}

	for i := range services {
		s := services[i]
		if err := repo.Create(ctx, &s); err != nil {
			return 0, fmt.Errorf("failed to seed service %q: %w", s.Name, err)
		}
	}
	return len(services), nil
}

func seedTestimonials(ctx context.Context, repo repository.TestimonialRepository) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count testimonials: %w", err)
	}
	if n > 0 {
		log.Debug().Int("existing", n).Msg("testimonials already seeded")
		return 0, nil
	}

	for i := range testimonials {
		t := testimonials[i]
		if err := repo.Create(ctx, &t); err != nil {
			return 0, fmt.Errorf("failed to seed testimonial from %q: %w", t.Name, err)
		}
	}
	return len(testimonials), nil
}

func seedProducts(ctx context.Context, repo repository.ProductRepository) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if n > 0 {
		log.Debug().Int("existing", n).Msg("products already seeded")
		return 0, nil
	}

	for i := range products {
		p := products[i]
		if err := repo.Create(ctx, &p); err != nil {
			return 0, fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}
	return len(products), nil
}

func seedSlots(ctx context.Context, repo repository.TimeSlotRepository, opts Options) (int, error) {
	today := opts.Now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var dates []string
	for i := 0; i <= opts.HorizonDays; i++ {
		day := today.AddDate(0, 0, i)
		if model.IsWeekend(day) {
			continue
		}
		dates = append(dates, day.Format(model.DateLayout))
	}
	for _, d := range opts.ExtraDates {
		if _, err := model.ParseDate(d); err != nil {
			return 0, fmt.Errorf("invalid extra seed date %q: %w", d, err)
		}
		dates = append(dates, d)
	}

	times := model.DailySlotTimes()
	total := 0
	for _, date := range dates {
		n, err := repo.CountByDate(ctx, date)
		if err != nil {
			return 0, fmt.Errorf("failed to count slots for %s: %w", date, err)
		}
		if n > 0 {
			continue
		}

		created, err := repo.CreateBatch(ctx, date, times)
		if err != nil {
			return 0, fmt.Errorf("failed to seed slots for %s: %w", date, err)
		}
		total += created
	}
	return total, nil
}
