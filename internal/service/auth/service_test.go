package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaly/booking-api/internal/model"
	pkgauth "github.com/agendaly/booking-api/pkg/auth"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
	"github.com/agendaly/booking-api/pkg/security"
)

type fakeOwners struct {
	byEmail map[string]*model.Owner
	created []*model.Owner
}

func (f *fakeOwners) CreateTx(ctx context.Context, tx *sqlx.Tx, owner *model.Owner) error {
	owner.ID = uuid.New()
	f.created = append(f.created, owner)
	return nil
}

func (f *fakeOwners) GetByEmail(ctx context.Context, email string) (*model.Owner, error) {
	owner, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.NotFound("owner")
	}
	return owner, nil
}

type fakeStores struct {
	slugTaken bool
	byID      map[uuid.UUID]*model.Store
}

func (f *fakeStores) CreateTx(ctx context.Context, tx *sqlx.Tx, store *model.Store) error {
	if f.slugTaken {
		return apperrors.Conflict("store slug already taken")
	}
	store.ID = uuid.New()
	return nil
}

func (f *fakeStores) GetBySlug(ctx context.Context, slug string) (*model.Store, error) {
	return nil, apperrors.NotFound("store")
}

func (f *fakeStores) GetByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	store, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NotFound("store")
	}
	return store, nil
}

func (f *fakeStores) Update(ctx context.Context, store *model.Store) error { return nil }

type fakeTx struct{}

func (f *fakeTx) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

func newAuthService(owners *fakeOwners, stores *fakeStores) *Service {
	return NewService(
		owners,
		stores,
		&fakeTx{},
		security.NewBcryptHasher(4), // min cost, tests only
		pkgauth.NewJWTService("test-secret", 1),
		"Europe/Lisbon",
	)
}

func TestRegister(t *testing.T) {
	owners := &fakeOwners{}
	stores := &fakeStores{}
	svc := newAuthService(owners, stores)

	resp, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:     "Rita@Example.COM",
		Password:  "correct-horse",
		StoreName: "Corte e Cor",
		Slug:      "Corte-E-Cor",
		Timezone:  "Europe/Lisbon",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "corte-e-cor", resp.Store.Slug)

	require.Len(t, owners.created, 1)
	assert.Equal(t, "rita@example.com", owners.created[0].Email)
	assert.Equal(t, resp.Store.ID, owners.created[0].StoreID)
	assert.NotEqual(t, "correct-horse", owners.created[0].PasswordHash)
}

func TestRegisterDefaultsTimezone(t *testing.T) {
	svc := newAuthService(&fakeOwners{}, &fakeStores{})

	resp, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:     "rita@example.com",
		Password:  "correct-horse",
		StoreName: "Corte e Cor",
		Slug:      "corte-e-cor",
	})
	require.NoError(t, err)
	assert.Equal(t, "Europe/Lisbon", resp.Store.Timezone)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.RegisterRequest)
	}{
		{"bad slug", func(r *model.RegisterRequest) { r.Slug = "Olá Loja" }},
		{"slug with trailing hyphen", func(r *model.RegisterRequest) { r.Slug = "loja-" }},
		{"unknown timezone", func(r *model.RegisterRequest) { r.Timezone = "Mars/Olympus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthService(&fakeOwners{}, &fakeStores{})

			req := &model.RegisterRequest{
				Email:     "rita@example.com",
				Password:  "correct-horse",
				StoreName: "Corte e Cor",
				Slug:      "corte-e-cor",
			}
			tt.mutate(req)

			_, err := svc.Register(context.Background(), req)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
		})
	}
}

func TestRegisterSlugCollision(t *testing.T) {
	svc := newAuthService(&fakeOwners{}, &fakeStores{slugTaken: true})

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:     "rita@example.com",
		Password:  "correct-horse",
		StoreName: "Corte e Cor",
		Slug:      "corte-e-cor",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestLogin(t *testing.T) {
	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	store := &model.Store{Slug: "corte-e-cor", Timezone: "Europe/Lisbon"}
	store.ID = uuid.New()
	owner := &model.Owner{StoreID: store.ID, Email: "rita@example.com", PasswordHash: hash}
	owner.ID = uuid.New()

	svc := newAuthService(
		&fakeOwners{byEmail: map[string]*model.Owner{"rita@example.com": owner}},
		&fakeStores{byID: map[uuid.UUID]*model.Store{store.ID: store}},
	)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    " Rita@example.com ",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, store, resp.Store)
}

func TestLoginWrongPassword(t *testing.T) {
	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	owner := &model.Owner{Email: "rita@example.com", PasswordHash: hash}

	svc := newAuthService(
		&fakeOwners{byEmail: map[string]*model.Owner{"rita@example.com": owner}},
		&fakeStores{},
	)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "rita@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

func TestLoginUnknownEmailIndistinguishable(t *testing.T) {
	svc := newAuthService(&fakeOwners{}, &fakeStores{})

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	// unknown email and wrong password answer identically
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}
