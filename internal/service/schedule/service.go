package schedule

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/agendaly/booking-api/internal/model"
	"github.com/agendaly/booking-api/internal/repository"
	coreschedule "github.com/agendaly/booking-api/internal/schedule"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
)

// Service manages the recurring weekly schedule and ad-hoc blocks.
type Service struct {
	hours  repository.WorkingHourRepository
	blocks repository.BlockRepository
	staff  repository.StaffRepository
}

func NewService(hours repository.WorkingHourRepository, blocks repository.BlockRepository, staff repository.StaffRepository) *Service {
	return &Service{hours: hours, blocks: blocks, staff: staff}
}

// ReplaceWorkingHours swaps a staff member's full weekly rule set.
// Zero-padded HH:MM strings compare lexicographically in chronological
// order, which is what the shift ordering checks rely on.
func (s *Service) ReplaceWorkingHours(ctx context.Context, storeID, staffID uuid.UUID, req *model.ReplaceWorkingHoursRequest) ([]*model.WorkingHourRule, error) {
	if _, err := s.staff.GetForStore(ctx, storeID, staffID); err != nil {
		return nil, err
	}

	rules := make([]*model.WorkingHourRule, 0, len(req.Rules))
	for _, in := range req.Rules {
		if in.Weekday < 0 || in.Weekday > 6 {
			return nil, apperrors.Validation("weekday must be between 0 and 6")
		}
		if in.Position < 1 {
			return nil, apperrors.Validation("shift position must be >= 1")
		}
		if !coreschedule.ValidHHMM(in.StartTime) || !coreschedule.ValidHHMM(in.EndTime) {
			return nil, apperrors.Validation("shift times must be HH:MM")
		}
		if in.IsOpen && in.StartTime >= in.EndTime {
			return nil, apperrors.Validation("shift start must be before its end")
		}
		rules = append(rules, &model.WorkingHourRule{
			Weekday:   in.Weekday,
			Position:  in.Position,
			IsOpen:    in.IsOpen,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		})
	}

	if err := validateWeek(rules); err != nil {
		return nil, err
	}

	if err := s.hours.ReplaceForStaff(ctx, storeID, staffID, rules); err != nil {
		return nil, apperrors.Internal(err)
	}
	return rules, nil
}

// validateWeek enforces per-day invariants: unique positions, and open
// shifts in position order must not overlap (an earlier shift ends at or
// before the next one starts).
func validateWeek(rules []*model.WorkingHourRule) error {
	byDay := make(map[int][]*model.WorkingHourRule)
	for _, r := range rules {
		byDay[r.Weekday] = append(byDay[r.Weekday], r)
	}

	for day, dayRules := range byDay {
		sort.Slice(dayRules, func(i, j int) bool { return dayRules[i].Position < dayRules[j].Position })

		seen := make(map[int]bool)
		var prevOpen *model.WorkingHourRule
		for _, r := range dayRules {
			if seen[r.Position] {
				return apperrors.Validation(fmt.Sprintf("duplicate shift position %d on weekday %d", r.Position, day))
			}
			seen[r.Position] = true

			if !r.IsOpen {
				continue
			}
			if prevOpen != nil && r.StartTime < prevOpen.EndTime {
				return apperrors.Validation(fmt.Sprintf("shifts overlap on weekday %d", day))
			}
			prevOpen = r
		}
	}
	return nil
}

func (s *Service) ListWorkingHours(ctx context.Context, storeID, staffID uuid.UUID) ([]*model.WorkingHourRule, error) {
	if _, err := s.staff.GetForStore(ctx, storeID, staffID); err != nil {
		return nil, err
	}
	rules, err := s.hours.ListForStaff(ctx, storeID, staffID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return rules, nil
}

func (s *Service) CreateBlock(ctx context.Context, storeID uuid.UUID, req *model.CreateBlockRequest) (*model.AvailabilityBlock, error) {
	if !req.EndAt.After(req.StartAt) {
		return nil, apperrors.Validation("block end must be after its start")
	}
	if req.StaffID != nil {
		if _, err := s.staff.GetForStore(ctx, storeID, *req.StaffID); err != nil {
			return nil, err
		}
	}

	block := &model.AvailabilityBlock{
		StoreID: storeID,
		StaffID: req.StaffID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Reason:  req.Reason,
	}
	if err := s.blocks.Create(ctx, block); err != nil {
		return nil, apperrors.Internal(err)
	}
	return block, nil
}

func (s *Service) ListBlocks(ctx context.Context, storeID uuid.UUID) ([]*model.AvailabilityBlock, error) {
	blocks, err := s.blocks.List(ctx, storeID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return blocks, nil
}

func (s *Service) DeleteBlock(ctx context.Context, storeID, blockID uuid.UUID) error {
	return s.blocks.Delete(ctx, storeID, blockID)
}
