package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ariefcatur/unicor-shoes/internal/app"
	"github.com/ariefcatur/unicor-shoes/internal/config"
	"github.com/ariefcatur/unicor-shoes/internal/logging"
	"github.com/ariefcatur/unicor-shoes/internal/money"
	"github.com/ariefcatur/unicor-shoes/internal/seed"
	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type env struct {
	log   *logrus.Entry
	store *shop.Store
	svc   *shop.Services
	close func()
}

// open loads config from the environment, opens the configured store and
// publishes order events when KAFKA_BROKERS is set.
func open(ctx context.Context) (*env, error) {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, "unicorctl")
	store, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	notifiers, stopEvents := app.OrderNotifiers(cfg, log)
	return &env{
		log:   log,
		store: store,
		svc:   shop.NewServices(store, app.NewHasher(cfg), notifiers, log),
		close: func() {
			stopEvents()
			closeStore()
		},
	}, nil
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "unicorctl",
		Short:        "Administer the Unicor Shoes store",
		SilenceUsage: true,
	}
	cmd.AddCommand(seedCmd(), hashPasswordCmd(), productsCmd(), ordersCmd(), setStatusCmd())
	return cmd
}

func seedCmd() *cobra.Command {
	var catalogPath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default accounts and catalog products that are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			catalog, err := seed.DefaultCatalog()
			if catalogPath != "" {
				catalog, err = seed.LoadCatalogFile(catalogPath)
			}
			if err != nil {
				return err
			}
			res, err := seed.Run(cmd.Context(), e.store, e.svc.Auth.Hasher, catalog, e.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "users created: %d, products added: %d\n", res.UsersCreated, res.ProductsAdded)
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML catalog file (default: built-in catalog)")
	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <plaintext>",
		Short: "Print the stored form of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			digest, err := app.NewHasher(config.Load()).Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), digest)
			return nil
		},
	}
}

func productsCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			ps := e.svc.Products.All(cmd.Context())
			if all {
				ps = e.svc.Products.AllAdmin(cmd.Context())
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK\tACTIVE")
			for _, p := range ps {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%t\n", p.ID, p.Name, money.FormatPrice(p.Price), p.Stock, p.Active)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include deactivated products")
	return cmd
}

func ordersCmd() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tUSER\tITEMS\tTOTAL\tSTATUS")
			for _, o := range e.svc.Orders.All(cmd.Context()) {
				if username != "" && !strings.EqualFold(o.Username, username) {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
					o.ID, o.OrderDate.Format("2006-01-02 15:04"), o.Username, o.TotalItems(), money.FormatPrice(o.Total), o.Status.Label())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&username, "user", "", "only orders of this username")
	return cmd
}

func setStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <order-id> <status>",
		Short: "Move an order to PROCESSING, SHIPPED, DELIVERED or CANCELLED",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			status := shop.Status(strings.ToUpper(args[1]))
			var o shop.Order
			if status == shop.StatusCancelled {
				o, err = e.svc.Orders.Cancel(cmd.Context(), args[0])
			} else {
				o, err = e.svc.Orders.UpdateStatus(cmd.Context(), args[0], status)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", o.ID, o.Status.Label())
			return nil
		},
	}
}
