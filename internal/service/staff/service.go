package staff

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agendaly/booking-api/internal/model"
	"github.com/agendaly/booking-api/internal/repository"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
)

type Service struct {
	repo repository.StaffRepository
}

func NewService(repo repository.StaffRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateStaff(ctx context.Context, storeID uuid.UUID, req *model.CreateStaffRequest) (*model.Staff, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("staff name is required")
	}

	staff := &model.Staff{StoreID: storeID, Name: name}
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}
	// no default schedule is persisted here: a staff member without
	// working-hour rules is simply closed every day
	return staff, nil
}

func (s *Service) GetStaff(ctx context.Context, storeID, staffID uuid.UUID) (*model.Staff, error) {
	return s.repo.GetForStore(ctx, storeID, staffID)
}

func (s *Service) ListStaff(ctx context.Context, storeID uuid.UUID) ([]*model.Staff, error) {
	staff, err := s.repo.List(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (s *Service) UpdateStaff(ctx context.Context, storeID, staffID uuid.UUID, req *model.UpdateStaffRequest) (*model.Staff, error) {
	staff, err := s.repo.GetForStore(ctx, storeID, staffID)
	if err != nil {
		return nil, err
	}

	staff.Name = strings.TrimSpace(req.Name)
	if staff.Name == "" {
		return nil, apperrors.Validation("staff name is required")
	}
	if err := s.repo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *Service) DeleteStaff(ctx context.Context, storeID, staffID uuid.UUID) error {
	return s.repo.Delete(ctx, storeID, staffID)
}
