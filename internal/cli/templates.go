package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/corretor-landing-api/internal/bootstrap"
	"github.com/jhoicas/corretor-landing-api/internal/domain/catalog"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

func newTemplatesCmd(build Builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Plantillas de landing",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Crea o actualiza las plantillas base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, build, func(ctx context.Context, c *bootstrap.Container) error {
				templates := catalog.DefaultTemplates()
				if err := catalog.ValidateTemplates(c.Plans, templates); err != nil {
					return err
				}
				for _, t := range templates {
					if err := c.Templates.Upsert(ctx, t); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "plantilla %s\n", t.ID)
				}
				return c.Registry.Validate(ctx)
			})
		},
	})

	var plan string
	ls := &cobra.Command{
		Use:   "ls",
		Short: "Lista plantillas (todas o las elegibles para --plan)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, build, func(ctx context.Context, c *bootstrap.Container) error {
				var (
					list []entity.Template
					err  error
				)
				if plan != "" {
					if _, err := c.Plans.Get(entity.PlanID(plan)); err != nil {
						return err
					}
					list, err = c.Registry.Eligible(ctx, entity.PlanID(plan))
				} else {
					list, err = c.Registry.List(ctx, false)
				}
				if err != nil {
					return err
				}
				for _, t := range list {
					fmt.Fprintf(cmd.OutOrStdout(), "%-20s tier=%d active=%t plans=%v\n", t.ID, t.Tier, t.Active, t.AllowedPlans)
				}
				return nil
			})
		},
	}
	ls.Flags().StringVar(&plan, "plan", "", "filtrar por plan")
	cmd.AddCommand(ls)
	return cmd
}
