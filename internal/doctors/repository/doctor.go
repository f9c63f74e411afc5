package repository

import (
	"context"
	"fmt"
	"strings"

	doctorserrors "skincare/internal/doctors/errors"
	"skincare/pkg/model"
)

type DoctorRepository interface {
	FindAll(ctx context.Context) ([]*model.Doctor, error)
	FindByID(ctx context.Context, id string) (*model.Doctor, error)
	Count(ctx context.Context) (int, error)
}

// DefaultDoctors is the clinic's roster.
func DefaultDoctors() []*model.Doctor {
	return []*model.Doctor{
		{
			ID:             "1",
			Name:           "Dr. Sarah Johnson",
			Specialty:      "Dermatologist",
			Experience:     "15 years",
			Image:          "/placeholder.svg",
			Email:          "sarah.johnson@skincare.com",
			AvailableSlots: []string{"09:00", "10:30", "14:00", "15:30", "16:00"},
		},
		{
			ID:             "2",
			Name:           "Dr. Michael Chen",
			Specialty:      "Cosmetic Dermatologist",
			Experience:     "12 years",
			Image:          "/placeholder.svg",
			Email:          "michael.chen@skincare.com",
			AvailableSlots: []string{"10:00", "11:30", "13:00", "14:30", "16:30"},
		},
		{
			ID:             "3",
			Name:           "Dr. Emily Rodriguez",
			Specialty:      "Pediatric Dermatologist",
			Experience:     "10 years",
			Image:          "/placeholder.svg",
			Email:          "emily.rodriguez@skincare.com",
			AvailableSlots: []string{"09:30", "11:00", "13:30", "15:00", "17:00"},
		},
		{
			ID:             "4",
			Name:           "Dr. David Kim",
			Specialty:      "Mohs Surgeon",
			Experience:     "18 years",
			Image:          "/placeholder.svg",
			Email:          "david.kim@skincare.com",
			AvailableSlots: []string{"08:00", "10:00", "12:00", "14:00", "16:00"},
		},
	}
}

type inMemoryDoctorRepository struct {
	doctors []*model.Doctor
	byID    map[string]*model.Doctor
}

// NewInMemoryDoctorRepository seeds the directory. Records are copied on the
// way in and on the way out, so the directory is effectively immutable.
func NewInMemoryDoctorRepository(seed []*model.Doctor) (DoctorRepository, error) {
	r := &inMemoryDoctorRepository{
		doctors: make([]*model.Doctor, 0, len(seed)),
		byID:    make(map[string]*model.Doctor, len(seed)),
	}
	for _, d := range seed {
		if d == nil || strings.TrimSpace(d.ID) == "" {
			return nil, fmt.Errorf("%w: empty id in seed", doctorserrors.ErrInvalidID)
		}
		if _, dup := r.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q in seed", doctorserrors.ErrInvalidID, d.ID)
		}
		c := d.Clone()
		r.doctors = append(r.doctors, c)
		r.byID[c.ID] = c
	}
	return r, nil
}

func (r *inMemoryDoctorRepository) FindAll(ctx context.Context) ([]*model.Doctor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*model.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		out = append(out, d.Clone())
	}
	return out, nil
}

func (r *inMemoryDoctorRepository) FindByID(ctx context.Context, id string) (*model.Doctor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, doctorserrors.ErrInvalidID
	}
	d, ok := r.byID[id]
	if !ok {
		return nil, doctorserrors.ErrNotFound
	}
	return d.Clone(), nil
}

func (r *inMemoryDoctorRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(r.doctors), nil
}
