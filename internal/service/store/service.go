package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/agendaly/booking-api/internal/model"
	"github.com/agendaly/booking-api/internal/repository"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
)

const (
	slugCacheTTL     = 5 * time.Minute
	slugCacheCleanup = 15 * time.Minute
)

// Service resolves and manages stores. Slug lookups are cached: the slug
// and time zone are immutable after onboarding, so a cached hit can never
// disagree with the booking path.
type Service struct {
	repo  repository.StoreRepository
	slugs *cache.Cache
}

func NewService(repo repository.StoreRepository) *Service {
	return &Service{
		repo:  repo,
		slugs: cache.New(slugCacheTTL, slugCacheCleanup),
	}
}

// ResolveSlug returns the store for a public slug.
func (s *Service) ResolveSlug(ctx context.Context, slug string) (*model.Store, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, apperrors.Validation("missing store slug")
	}

	if cached, ok := s.slugs.Get(slug); ok {
		return cached.(*model.Store), nil
	}

	store, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	s.slugs.SetDefault(slug, store)
	return store, nil
}

// GetStore fetches a store by primary key (dashboard path, no cache).
func (s *Service) GetStore(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	store, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Service) UpdateStore(ctx context.Context, id uuid.UUID, req *model.UpdateStoreRequest) (*model.Store, error) {
	store, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		store.Name = strings.TrimSpace(*req.Name)
		if store.Name == "" {
			return nil, apperrors.Validation("store name must not be empty")
		}
	}
	if err := s.repo.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}
	return store, nil
}

// Zone loads the store's IANA location.
func Zone(store *model.Store) (*time.Location, error) {
	loc, err := time.LoadLocation(store.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid store timezone %q: %w", store.Timezone, err)
	}
	return loc, nil
}
