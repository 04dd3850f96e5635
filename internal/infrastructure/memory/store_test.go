package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/catalog"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/infrastructure/memory"
)

func TestConfigRepo_UpsertCreaLuegoActualiza(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Configs()

	nome := "Ana"
	rec, created, err := repo.Upsert(ctx, "c1", entity.ConfigFields{Nome: &nome})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "c1", rec.CorretorID)

	wa := "5511999999999"
	rec, created, err = repo.Upsert(ctx, "c1", entity.ConfigFields{Whatsapp: &wa})
	require.NoError(t, err)
	assert.False(t, created)
	require.NotNil(t, rec.Nome)
	assert.Equal(t, "Ana", *rec.Nome, "campos ausentes en el parche se conservan")
	assert.Equal(t, wa, *rec.Whatsapp)
}

func TestConfigRepo_UpsertsConcurrentesDeCamposDistintosNoSePierden(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Configs()

	var wg sync.WaitGroup
	nome, headline := "Ana", "Casas em Campinas"
	wg.Add(2)
	go func() { defer wg.Done(); _, _, _ = repo.Upsert(ctx, "c1", entity.ConfigFields{Nome: &nome}) }()
	go func() { defer wg.Done(); _, _, _ = repo.Upsert(ctx, "c1", entity.ConfigFields{Headline: &headline}) }()
	wg.Wait()

	rec, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, rec.Nome)
	require.NotNil(t, rec.Headline)
	assert.Equal(t, nome, *rec.Nome)
	assert.Equal(t, headline, *rec.Headline)
}

func TestConfigRepo_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := memory.NewStore().Configs()

	nome := "Ana"
	_, _, err := repo.Upsert(ctx, "c1", entity.ConfigFields{Nome: &nome})
	require.Error(t, err)

	got, err := repo.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Nil(t, got, "una escritura abandonada no deja estado parcial")
}

func TestRoleRepo_Idempotente(t *testing.T) {
	ctx := context.Background()
	roles := memory.NewStore().Roles()

	require.NoError(t, roles.AddRole(ctx, "a1", entity.RoleAdmin))
	require.NoError(t, roles.AddRole(ctx, "a1", entity.RoleAdmin))
	got, err := roles.GetRoles(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, []entity.Role{entity.RoleAdmin}, got)

	require.NoError(t, roles.RemoveRole(ctx, "a1", entity.RoleModerator))
	require.NoError(t, roles.RemoveRole(ctx, "ninguna", entity.RoleAdmin))
}

func TestAccountRepo_GetPlanCuentaInexistente(t *testing.T) {
	_, err := memory.NewStore().Accounts().GetPlan(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateRepo_ListOrdenYActivas(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Templates()
	templates := catalog.DefaultTemplates()
	for i := len(templates) - 1; i >= 0; i-- {
		require.NoError(t, repo.Upsert(ctx, templates[i]))
	}
	inactive := entity.Template{ID: "old-template", Position: 0}
	require.NoError(t, repo.Upsert(ctx, inactive))

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "old-template", all[0].ID)

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, len(templates))
	assert.Equal(t, catalog.TemplateClassic, active[0].ID)
}
