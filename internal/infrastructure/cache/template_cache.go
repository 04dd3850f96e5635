package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
	"github.com/jhoicas/corretor-landing-api/internal/domain/repository"
	"github.com/jhoicas/corretor-landing-api/pkg/logger"
)

var _ repository.TemplateRepository = (*TemplateRepository)(nil)

const (
	keyTemplatesAll    = "templates:all"
	keyTemplatesActive = "templates:active"
)

// TemplateRepository decorador read-through: List se sirve desde la caché y GetByID se
// resuelve sobre la lista completa. Si la caché falla se consulta el repositorio.
type TemplateRepository struct {
	next  repository.TemplateRepository
	store Store
	ttl   time.Duration
	log   *logger.Logger
}

// NewTemplateRepository envuelve next con la caché.
func NewTemplateRepository(next repository.TemplateRepository, store Store, ttl time.Duration, log *logger.Logger) *TemplateRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &TemplateRepository{next: next, store: store, ttl: ttl, log: log.Named("template_cache")}
}

func (c *TemplateRepository) List(ctx context.Context, activeOnly bool) ([]entity.Template, error) {
	key := keyTemplatesAll
	if activeOnly {
		key = keyTemplatesActive
	}

	raw, err := c.store.Get(ctx, key)
	if err == nil {
		var list []entity.Template
		if err := json.Unmarshal(raw, &list); err == nil {
			return list, nil
		}
		c.log.Warn().Str("key", key).Msg("entrada de caché ilegible, se descarta")
	} else if !errors.Is(err, errMiss) {
		c.log.Warn().Err(err).Str("key", key).Msg("caché no disponible")
	}

	list, err := c.next.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(list); err == nil {
		if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("no se pudo escribir la caché")
		}
	}
	return list, nil
}

func (c *TemplateRepository) GetByID(ctx context.Context, id string) (*entity.Template, error) {
	list, err := c.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			t := list[i]
			return &t, nil
		}
	}
	return nil, nil
}

// Upsert escribe en el repositorio e invalida ambas listas.
func (c *TemplateRepository) Upsert(ctx context.Context, t entity.Template) error {
	if err := c.next.Upsert(ctx, t); err != nil {
		return err
	}
	if err := c.store.Delete(ctx, keyTemplatesAll, keyTemplatesActive); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo invalidar la caché de plantillas")
	}
	return nil
}
