package bootstrap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/corretor-landing-api/internal/application/dto"
	"github.com/jhoicas/corretor-landing-api/internal/bootstrap"
	"github.com/jhoicas/corretor-landing-api/pkg/config"
	"github.com/jhoicas/corretor-landing-api/pkg/logger"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{Driver: config.StorageMemory},
		JWT:     config.JWTConfig{Secret: "s", Expiration: 5, Issuer: "test"},
	}
}

func TestBuild_MemoriaSiembraDemo(t *testing.T) {
	ctx := context.Background()
	c, err := bootstrap.Build(ctx, memoryConfig(), logger.Nop())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.PlanRepo)
	require.NoError(t, c.Registry.Validate(ctx))

	cfg, err := c.Resolver.Resolve(ctx, bootstrap.DemoBrokerID)
	require.NoError(t, err)
	assert.False(t, cfg.Fallback)

	out, err := c.AuthUC.Login(ctx, dto.LoginRequest{Email: "admin@corretor.local", Password: bootstrap.DemoPassword})
	require.NoError(t, err)
	assert.Equal(t, bootstrap.DemoAdminID, out.Account.ID)
	assert.Equal(t, []string{"admin", "broker"}, out.Account.Roles)
}
