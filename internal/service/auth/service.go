package auth

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/agendaly/booking-api/internal/model"
	"github.com/agendaly/booking-api/internal/repository"
	"github.com/agendaly/booking-api/pkg/auth"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
	"github.com/agendaly/booking-api/pkg/security"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Service handles owner registration (the onboarding step that creates
// the store) and login.
type Service struct {
	owners          repository.OwnerRepository
	stores          repository.StoreRepository
	tx              repository.TxRunner
	hasher          security.PasswordHasher
	jwt             auth.JWTService
	defaultTimezone string
}

func NewService(
	owners repository.OwnerRepository,
	stores repository.StoreRepository,
	tx repository.TxRunner,
	hasher security.PasswordHasher,
	jwt auth.JWTService,
	defaultTimezone string,
) *Service {
	return &Service{
		owners:          owners,
		stores:          stores,
		tx:              tx,
		hasher:          hasher,
		jwt:             jwt,
		defaultTimezone: defaultTimezone,
	}
}

// Register creates the owner account and its store atomically. The slug
// is immutable afterwards; collisions reject the whole registration.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.LoginResponse, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !slugRe.MatchString(slug) {
		return nil, apperrors.Validation("slug must be lowercase letters, digits and hyphens")
	}

	timezone := strings.TrimSpace(req.Timezone)
	if timezone == "" {
		timezone = s.defaultTimezone
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, apperrors.Validation("unknown timezone")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("password too weak")
	}

	store := &model.Store{
		Slug:     slug,
		Name:     strings.TrimSpace(req.StoreName),
		Timezone: timezone,
	}
	owner := &model.Owner{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
	}

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.stores.CreateTx(ctx, tx, store); err != nil {
			return err
		}
		owner.StoreID = store.ID
		return s.owners.CreateTx(ctx, tx, owner)
	})
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(owner.ID, store.ID, owner.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.LoginResponse{Token: token, Store: store}, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	owner, err := s.owners.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := s.hasher.Compare(owner.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	store, err := s.stores.GetByID(ctx, owner.StoreID)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(owner.ID, store.ID, owner.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.LoginResponse{Token: token, Store: store}, nil
}
