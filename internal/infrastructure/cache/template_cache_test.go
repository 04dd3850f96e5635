package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/corretor-landing-api/internal/domain/catalog"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/infrastructure/memory"
)

type fakeStore struct {
	mu   sync.Mutex
	data map[string][]byte
	fail error
}

func newFakeStore() *fakeStore { return &fakeStore{data: map[string][]byte{}} }

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	v, ok := s.data[key]
	if !ok {
		return nil, errMiss
	}
	return v, nil
}

func (s *fakeStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.data[key] = value
	return nil
}

func (s *fakeStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

// countingRepo cuenta las llamadas a List del repositorio subyacente.
type countingRepo struct {
	*memory.TemplateRepo
	lists int
}

func (r *countingRepo) List(ctx context.Context, activeOnly bool) ([]entity.Template, error) {
	r.lists++
	return r.TemplateRepo.List(ctx, activeOnly)
}

func seeded(t *testing.T) *countingRepo {
	t.Helper()
	repo := &countingRepo{TemplateRepo: memory.NewStore().Templates()}
	for _, tpl := range catalog.DefaultTemplates() {
		require.NoError(t, repo.Upsert(context.Background(), tpl))
	}
	return repo
}

func TestTemplateCache_ListReadThrough(t *testing.T) {
	repo := seeded(t)
	c := NewTemplateRepository(repo, newFakeStore(), time.Minute, nil)
	ctx := context.Background()

	first, err := c.List(ctx, true)
	require.NoError(t, err)
	second, err := c.List(ctx, true)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.lists)
	assert.Equal(t, first, second)
	assert.Equal(t, catalog.TemplateClassic, second[0].ID)
	assert.Equal(t, *first[0].Defaults.Headline, *second[0].Defaults.Headline)
}

func TestTemplateCache_GetByID(t *testing.T) {
	c := NewTemplateRepository(seeded(t), newFakeStore(), time.Minute, nil)

	tpl, err := c.GetByID(context.Background(), catalog.TemplateModern)
	require.NoError(t, err)
	require.NotNil(t, tpl)
	assert.Equal(t, []entity.PlanID{
		entity.PlanCorretorProfissional, entity.PlanCorretorAutoridade,
		entity.PlanImobiliariaProfissional, entity.PlanImobiliariaAutoridade,
	}, tpl.AllowedPlans)

	missing, err := c.GetByID(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTemplateCache_UpsertInvalida(t *testing.T) {
	repo := seeded(t)
	c := NewTemplateRepository(repo, newFakeStore(), time.Minute, nil)
	ctx := context.Background()

	_, err := c.List(ctx, true)
	require.NoError(t, err)

	tpl := catalog.DefaultTemplates()[2]
	tpl.Active = false
	require.NoError(t, c.Upsert(ctx, tpl))

	list, err := c.List(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lists)
	for _, got := range list {
		assert.NotEqual(t, tpl.ID, got.ID)
	}
}

func TestTemplateCache_CacheCaidaNoRompeLecturas(t *testing.T) {
	repo := seeded(t)
	store := newFakeStore()
	store.fail = errors.New("connection refused")
	c := NewTemplateRepository(repo, store, time.Minute, nil)

	list, err := c.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, list, len(catalog.DefaultTemplates()))
}
