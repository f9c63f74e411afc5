package service

import (
	"context"
	"errors"

	doctorserrors "skincare/internal/doctors/errors"
	"skincare/internal/doctors/repository"
	apperrors "skincare/pkg/errors"
	"skincare/pkg/logger"
	"skincare/pkg/model"
)

type DoctorService interface {
	GetAll(ctx context.Context) ([]*model.Doctor, error)
	GetByID(ctx context.Context, id string) (*model.Doctor, error)
}

type doctorService struct {
	repo repository.DoctorRepository
	log  *logger.Logger
}

func NewDoctorService(repo repository.DoctorRepository, log *logger.Logger) DoctorService {
	return &doctorService{repo: repo, log: log}
}

func (s *doctorService) GetAll(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list doctors", "error", err)
		return nil, apperrors.Internal("Failed to retrieve doctors", err)
	}
	return doctors, nil
}

func (s *doctorService) GetByID(ctx context.Context, id string) (*model.Doctor, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Doctor ID cannot be empty")
	}

	doctor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, doctorserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Doctor", id)
		}
		if errors.Is(err, doctorserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid doctor ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve doctor", err)
	}
	return doctor, nil
}
