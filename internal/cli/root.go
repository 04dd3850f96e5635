// Package cli comandos de administración de corretorctl.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/corretor-landing-api/internal/bootstrap"
	"github.com/jhoicas/corretor-landing-api/pkg/config"
	"github.com/jhoicas/corretor-landing-api/pkg/logger"
)

// Builder construye las dependencias para un comando. Los tests inyectan uno en memoria.
type Builder func(ctx context.Context) (*bootstrap.Container, error)

// DefaultBuilder lee la configuración del entorno igual que la API.
func DefaultBuilder(ctx context.Context) (*bootstrap.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	// La salida estándar queda para el resultado del comando; los logs van a stderr.
	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel, Output: os.Stderr})
	return bootstrap.Build(ctx, cfg, log)
}

var version = "dev"

// SetVersion fija la versión mostrada por --version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// NewRootCmd arma el árbol de comandos.
func NewRootCmd(build Builder) *cobra.Command {
	root := &cobra.Command{
		Use:     "corretorctl",
		Version: version,
		Short:   "Administración del catálogo, roles y landings de corretores",
		Long: `corretorctl opera sobre la misma base de datos que la API.

Valida y sincroniza el catálogo de planes, siembra las plantillas base,
gestiona roles y planes de cuentas y muestra la configuración resuelta de un corretor.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddCommand(
		newCatalogCmd(build),
		newTemplatesCmd(build),
		newRolesCmd(build),
		newPlanCmd(build),
		newConfigCmd(build),
	)
	return root
}

// withContainer construye las dependencias, ejecuta fn y las libera.
func withContainer(cmd *cobra.Command, build Builder, fn func(ctx context.Context, c *bootstrap.Container) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := build(ctx)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(ctx, c)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
