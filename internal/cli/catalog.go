package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/corretor-landing-api/internal/bootstrap"
	"github.com/jhoicas/corretor-landing-api/internal/domain/catalog"
)

func newCatalogCmd(build Builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catálogo de planes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Valida planes y plantillas persistidas",
		Long: `Verifica que cada plantilla referencie planes conocidos, que todo plan tenga
al menos una plantilla activa y que ninguno supere su límite de plantillas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, build, func(ctx context.Context, c *bootstrap.Container) error {
				if err := c.Registry.Validate(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "catálogo válido: %d planes\n", len(c.Plans.List()))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Replica el catálogo en la tabla plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, build, func(ctx context.Context, c *bootstrap.Container) error {
				if c.PlanRepo == nil {
					return fmt.Errorf("catalog sync requiere STORAGE_DRIVER=postgres")
				}
				plans := c.Plans.List()
				if err := c.PlanRepo.Sync(ctx, plans); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d planes sincronizados\n", len(plans))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "Lista los planes con límites y precio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plans := catalog.Default().List()
			w := cmd.OutOrStdout()
			for _, p := range plans {
				fmt.Fprintf(w, "%-26s tier=%d landings=%-3d templates=%-3d %s %s\n",
					p.ID, p.Tier, p.Limits.MaxLandingPages, p.Limits.MaxTemplates, p.Currency, p.Price.StringFixed(2))
			}
			return nil
		},
	})
	return cmd
}
