package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaly/booking-api/internal/model"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
)

type fakeRepo struct {
	store       *model.Store
	slugLookups int
}

func (f *fakeRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, store *model.Store) error { return nil }

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (*model.Store, error) {
	f.slugLookups++
	if f.store == nil || f.store.Slug != slug {
		return nil, apperrors.NotFound("store")
	}
	return f.store, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	if f.store == nil || f.store.ID != id {
		return nil, apperrors.NotFound("store")
	}
	return f.store, nil
}

func (f *fakeRepo) Update(ctx context.Context, store *model.Store) error {
	f.store = store
	return nil
}

func testStore() *model.Store {
	store := &model.Store{Slug: "corte-e-cor", Name: "Corte e Cor", Timezone: "Europe/Lisbon"}
	store.ID = uuid.New()
	return store
}

func TestResolveSlugCaches(t *testing.T) {
	repo := &fakeRepo{store: testStore()}
	svc := NewService(repo)

	for i := 0; i < 3; i++ {
		store, err := svc.ResolveSlug(context.Background(), "corte-e-cor")
		require.NoError(t, err)
		assert.Equal(t, repo.store, store)
	}

	assert.Equal(t, 1, repo.slugLookups)
}

func TestResolveSlugNormalizes(t *testing.T) {
	repo := &fakeRepo{store: testStore()}
	svc := NewService(repo)

	store, err := svc.ResolveSlug(context.Background(), "  Corte-E-Cor ")
	require.NoError(t, err)
	assert.Equal(t, "corte-e-cor", store.Slug)
}

func TestResolveSlugMissesAreNotCached(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.ResolveSlug(context.Background(), "ghost")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))

	_, err = svc.ResolveSlug(context.Background(), "ghost")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))

	assert.Equal(t, 2, repo.slugLookups)
}

func TestResolveSlugEmpty(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.ResolveSlug(context.Background(), "   ")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
}

func TestUpdateStore(t *testing.T) {
	repo := &fakeRepo{store: testStore()}
	svc := NewService(repo)

	name := "  Novo Nome  "
	store, err := svc.UpdateStore(context.Background(), repo.store.ID, &model.UpdateStoreRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Novo Nome", store.Name)
}

func TestUpdateStoreRejectsEmptyName(t *testing.T) {
	repo := &fakeRepo{store: testStore()}
	svc := NewService(repo)

	name := "   "
	_, err := svc.UpdateStore(context.Background(), repo.store.ID, &model.UpdateStoreRequest{Name: &name})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
}

func TestZone(t *testing.T) {
	loc, err := Zone(testStore())
	require.NoError(t, err)
	assert.Equal(t, "Europe/Lisbon", loc.String())

	_, err = Zone(&model.Store{Timezone: "Nowhere/Nothing"})
	assert.Error(t, err)
}
