package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/corretor-landing-api/internal/application/dto"
	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/domain/repository"
	"github.com/jhoicas/corretor-landing-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login de cuentas dadas de alta externamente.
type AuthUseCase struct {
	accounts repository.AccountRepository
	roles    repository.RoleRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(accounts repository.AccountRepository, roles repository.RoleRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{accounts: accounts, roles: roles, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT con los roles y retorna token + cuenta.
// Email desconocido y password incorrecta devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	acc, err := uc.accounts.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, fmt.Errorf("auth: buscar cuenta: %w", err)
	}
	if acc == nil || acc.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if acc.Status != entity.AccountActive {
		return nil, domain.ErrForbidden
	}
	tags, err := uc.roles.GetRoles(ctx, acc.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: roles: %w", err)
	}
	roles := entity.NewRoleSet(tags...).Strings()
	token, err := jwt.Generate(uc.jwtCfg.Secret, acc.ID, roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Account: ToAccountResponse(acc, roles),
	}, nil
}

// ToAccountResponse convierte la cuenta sin exponer el hash.
func ToAccountResponse(a *entity.Account, roles []string) dto.AccountResponse {
	if roles == nil {
		roles = []string{}
	}
	return dto.AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		PlanID:    string(a.PlanID),
		Roles:     roles,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
}
