package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/corretor-landing-api/internal/bootstrap"
	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

func newRolesCmd(build Builder) *cobra.Command {
	var actor string
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Concede o revoca roles (el actor debe ser admin)",
	}
	cmd.PersistentFlags().StringVar(&actor, "actor", "", "cuenta admin que ejecuta el cambio")
	_ = cmd.MarkPersistentFlagRequired("actor")

	mutate := func(use, short string, apply func(ctx context.Context, c *bootstrap.Container, account string, role entity.Role) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <account-id> <role>",
			Short: short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withContainer(cmd, build, func(ctx context.Context, c *bootstrap.Container) error {
					if err := apply(ctx, c, args[0], entity.Role(args[1])); err != nil {
						return err
					}
					caps, err := c.Entitlements.Resolve(ctx, args[0])
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s roles=%v\n", args[0], caps.Roles)
					return nil
				})
			},
		}
	}

	cmd.AddCommand(
		mutate("grant", "Concede un rol", func(ctx context.Context, c *bootstrap.Container, account string, role entity.Role) error {
			return c.Entitlements.GrantRole(ctx, actor, account, role)
		}),
		mutate("revoke", "Revoca un rol", func(ctx context.Context, c *bootstrap.Container, account string, role entity.Role) error {
			return c.Entitlements.RevokeRole(ctx, actor, account, role)
		}),
	)
	return cmd
}

func newPlanCmd(build Builder) *cobra.Command {
	var actor string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan de una cuenta",
	}
	set := &cobra.Command{
		Use:   "set <account-id> <plan-id>",
		Short: "Reasigna el plan (informativo, sin cobro)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, build, func(ctx context.Context, c *bootstrap.Container) error {
				if err := c.Entitlements.ChangePlan(ctx, actor, args[0], entity.PlanID(args[1])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s plan=%s\n", args[0], args[1])
				return nil
			})
		},
	}
	set.Flags().StringVar(&actor, "actor", "", "cuenta admin que ejecuta el cambio")
	_ = set.MarkFlagRequired("actor")
	cmd.AddCommand(set)
	return cmd
}

func newConfigCmd(build Builder) *cobra.Command {
	var public bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuración de landing",
	}
	resolve := &cobra.Command{
		Use:   "resolve <account-id>",
		Short: "Muestra la configuración resuelta en JSON",
		Long: `Resuelve la configuración como la ve el editor. Con --public usa la
ruta de la landing pública: ante errores devuelve la página mínima.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, build, func(ctx context.Context, c *bootstrap.Container) error {
				if public {
					return printJSON(cmd.OutOrStdout(), c.Resolver.ResolvePublic(ctx, args[0]))
				}
				cfg, err := c.Resolver.Resolve(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), cfg)
			})
		},
	}
	resolve.Flags().BoolVar(&public, "public", false, "usar la resolución pública con fallback")
	cmd.AddCommand(resolve)
	return cmd
}
