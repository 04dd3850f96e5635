// Package memory implementa los puertos de persistencia en memoria
// (STORAGE_DRIVER=memory para desarrollo local y tests de casos de uso).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/corretor-landing-api/internal/domain"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/domain/repository"
)

var (
	_ repository.AccountRepository  = (*AccountRepo)(nil)
	_ repository.RoleRepository     = (*RoleRepo)(nil)
	_ repository.ConfigRepository   = (*ConfigRepo)(nil)
	_ repository.TemplateRepository = (*TemplateRepo)(nil)
)

// Store estado compartido por los repositorios en memoria. Seguro para uso concurrente.
type Store struct {
	mu        sync.RWMutex
	saveMu    sync.Mutex
	accounts  map[string]entity.Account
	roles     map[string]entity.RoleSet
	configs   map[string]entity.ConfigRecord
	templates map[string]entity.Template
	now       func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		accounts:  map[string]entity.Account{},
		roles:     map[string]entity.RoleSet{},
		configs:   map[string]entity.ConfigRecord{},
		templates: map[string]entity.Template{},
		now:       time.Now,
	}
}

// PutAccount inserta o reemplaza una cuenta con sus roles (alta externa simulada).
func (s *Store) PutAccount(acc entity.Account, roles ...entity.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = s.now()
		acc.UpdatedAt = acc.CreatedAt
	}
	s.accounts[acc.ID] = acc
	s.roles[acc.ID] = entity.NewRoleSet(roles...)
}

// Accounts repositorio de cuentas.
func (s *Store) Accounts() *AccountRepo { return &AccountRepo{s: s} }

// Roles repositorio de roles.
func (s *Store) Roles() *RoleRepo { return &RoleRepo{s: s} }

// Configs repositorio de configuraciones.
func (s *Store) Configs() *ConfigRepo { return &ConfigRepo{s: s} }

// Templates repositorio de plantillas.
func (s *Store) Templates() *TemplateRepo { return &TemplateRepo{s: s} }

// RunConfigSave serializa los guardados de configuración: la lectura del plan y el upsert
// no se intercalan con otro guardado. El único efecto de fn es el Upsert final, que es atómico.
func (s *Store) RunConfigSave(ctx context.Context, fn func(
	accounts repository.AccountRepository,
	configs repository.ConfigRepository,
) error) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s.Accounts(), s.Configs())
}

// AccountRepo implementación en memoria de repository.AccountRepository.
type AccountRepo struct{ s *Store }

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	acc, ok := r.s.accounts[id]
	if !ok {
		return nil, nil
	}
	return &acc, nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, acc := range r.s.accounts {
		if strings.EqualFold(acc.Email, email) {
			a := acc
			return &a, nil
		}
	}
	return nil, nil
}

func (r *AccountRepo) GetPlan(ctx context.Context, accountID string) (entity.PlanID, error) {
	acc, err := r.GetByID(ctx, accountID)
	if err != nil {
		return "", err
	}
	if acc == nil {
		return "", domain.NotFound("cuenta", accountID)
	}
	return acc.PlanID, nil
}

func (r *AccountRepo) UpdatePlan(ctx context.Context, accountID string, plan entity.PlanID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	acc, ok := r.s.accounts[accountID]
	if !ok {
		return domain.NotFound("cuenta", accountID)
	}
	acc.PlanID = plan
	acc.UpdatedAt = r.s.now()
	r.s.accounts[accountID] = acc
	return nil
}

// RoleRepo implementación en memoria de repository.RoleRepository.
type RoleRepo struct{ s *Store }

func (r *RoleRepo) GetRoles(ctx context.Context, accountID string) ([]entity.Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.roles[accountID].Sorted(), nil
}

func (r *RoleRepo) AddRole(ctx context.Context, accountID string, role entity.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set, ok := r.s.roles[accountID]
	if !ok {
		set = entity.NewRoleSet()
		r.s.roles[accountID] = set
	}
	set[role] = struct{}{}
	return nil
}

func (r *RoleRepo) RemoveRole(ctx context.Context, accountID string, role entity.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.roles[accountID], role)
	return nil
}

// ConfigRepo implementación en memoria de repository.ConfigRepository.
type ConfigRepo struct{ s *Store }

func (r *ConfigRepo) Get(ctx context.Context, corretorID string) (*entity.ConfigRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.configs[corretorID]
	if !ok {
		return nil, nil
	}
	out := rec
	out.ConfigFields = rec.ConfigFields.Clone()
	return &out, nil
}

// Upsert aplica el parche bajo el lock del store: todo o nada.
func (r *ConfigRepo) Upsert(ctx context.Context, corretorID string, fields entity.ConfigFields) (*entity.ConfigRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	rec, exists := r.s.configs[corretorID]
	if !exists {
		rec = entity.ConfigRecord{CorretorID: corretorID, CreatedAt: now}
	}
	rec.ConfigFields = rec.ConfigFields.Apply(fields)
	rec.UpdatedAt = now
	r.s.configs[corretorID] = rec

	out := rec
	out.ConfigFields = rec.ConfigFields.Clone()
	return &out, !exists, nil
}

// TemplateRepo implementación en memoria de repository.TemplateRepository.
type TemplateRepo struct{ s *Store }

func (r *TemplateRepo) List(ctx context.Context, activeOnly bool) ([]entity.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Template, 0, len(r.s.templates))
	for _, t := range r.s.templates {
		if activeOnly && !t.Active {
			continue
		}
		out = append(out, cloneTemplate(t))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TemplateRepo) GetByID(ctx context.Context, id string) (*entity.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.templates[id]
	if !ok {
		return nil, nil
	}
	out := cloneTemplate(t)
	return &out, nil
}

func (r *TemplateRepo) Upsert(ctx context.Context, t entity.Template) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.templates[t.ID] = cloneTemplate(t)
	return nil
}

func cloneTemplate(t entity.Template) entity.Template {
	t.Defaults = t.Defaults.Clone()
	t.AllowedPlans = append([]entity.PlanID(nil), t.AllowedPlans...)
	return t
}
