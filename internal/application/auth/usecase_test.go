package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/corretor-landing-api/internal/application/auth"
	"github.com/jhoicas/corretor-landing-api/internal/application/dto"
	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/infrastructure/memory"
	"github.com/jhoicas/corretor-landing-api/pkg/jwt"
)

const secret = "test-secret"

func newUseCase(t *testing.T, status string) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correcta123"), bcrypt.MinCost)
	require.NoError(t, err)
	store := memory.NewStore()
	store.PutAccount(entity.Account{
		ID: "acc-1", Email: "ana@example.com", PasswordHash: string(hash),
		PlanID: entity.PlanCorretorEssencial, Status: status,
	}, entity.RoleBroker, entity.RoleAdmin)
	return auth.NewAuthUseCase(store.Accounts(), store.Roles(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestLogin_TokenConRoles(t *testing.T) {
	uc := newUseCase(t, entity.AccountActive)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " ana@example.com ", Password: "correcta123"})
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, []string{"admin", "broker"}, claims.Roles)
	assert.Equal(t, "corretor_essencial", out.Account.PlanID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newUseCase(t, entity.AccountActive)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "correcta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaSuspendida(t *testing.T) {
	uc := newUseCase(t, entity.AccountSuspended)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "correcta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
