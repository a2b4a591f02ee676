package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agendaly/booking-api/internal/model"
	"github.com/agendaly/booking-api/internal/repository"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
)

// Service manages a store's service catalog.
type Service struct {
	repo repository.ServiceRepository
}

func NewService(repo repository.ServiceRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateService(ctx context.Context, storeID uuid.UUID, req *model.CreateServiceRequest) (*model.Service, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("service name is required")
	}
	if req.DurationMinutes <= 0 || req.DurationMinutes > model.MaxServiceMinutes {
		return nil, apperrors.Validation("service duration out of range")
	}
	if req.PriceCents < 0 {
		return nil, apperrors.Validation("price must not be negative")
	}

	svc := &model.Service{
		StoreID:         storeID,
		Name:            name,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *Service) GetService(ctx context.Context, storeID, serviceID uuid.UUID) (*model.Service, error) {
	return s.repo.GetForStore(ctx, storeID, serviceID)
}

func (s *Service) ListServices(ctx context.Context, storeID uuid.UUID) ([]*model.Service, error) {
	services, err := s.repo.List(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *Service) UpdateService(ctx context.Context, storeID, serviceID uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.repo.GetForStore(ctx, storeID, serviceID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
		if svc.Name == "" {
			return nil, apperrors.Validation("service name is required")
		}
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 || *req.DurationMinutes > model.MaxServiceMinutes {
			return nil, apperrors.Validation("service duration out of range")
		}
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return nil, apperrors.Validation("price must not be negative")
		}
		svc.PriceCents = *req.PriceCents
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, storeID, serviceID uuid.UUID) error {
	return s.repo.Delete(ctx, storeID, serviceID)
}
