package repository

import (
	"context"

	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

// ConfigRepository persistencia del ConfigRecord del corretor (ConfigStore).
type ConfigRepository interface {
	// Get devuelve (nil, nil) si el corretor todavía no guardó su configuración.
	Get(ctx context.Context, corretorID string) (*entity.ConfigRecord, error)
	// Upsert aplica solo los campos no nulos de fields en una única escritura atómica.
	// created indica la transición Absent → Created.
	Upsert(ctx context.Context, corretorID string, fields entity.ConfigFields) (rec *entity.ConfigRecord, created bool, err error)
}
