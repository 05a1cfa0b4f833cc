package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	query "github.com/Pesokrava/storefront/internal/catalog"
	"github.com/Pesokrava/storefront/internal/config"
	"github.com/Pesokrava/storefront/internal/delivery/events"
	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/database"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	"github.com/Pesokrava/storefront/internal/repository/postgres"
	"github.com/Pesokrava/storefront/internal/repository/static"
)

type filterFlags struct {
	category string
	colors   []string
	sizes    []string
	minPrice float64
	maxPrice float64
	sort     string
	inStock  bool
	onlyNew  bool
	limited  bool
}

func (f filterFlags) spec() (domain.FilterSpec, error) {
	spec := domain.DefaultFilterSpec()

	key, ok := domain.ParseSortKey(f.sort)
	if !ok {
		return spec, fmt.Errorf("invalid sort %q", f.sort)
	}
	if f.minPrice > f.maxPrice {
		return spec, fmt.Errorf("min-price %v exceeds max-price %v", f.minPrice, f.maxPrice)
	}

	spec.SortKey = key
	spec.Colors = f.colors
	spec.Sizes = f.sizes
	spec.PriceRange = domain.PriceRange{Min: f.minPrice, Max: f.maxPrice}
	spec.OnlyInStock = f.inStock
	spec.OnlyNew = f.onlyNew
	spec.OnlyLimited = f.limited
	return spec, nil
}

func newRootCmd() *cobra.Command {
	var feed string

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect and publish the storefront catalog feed",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&feed, "feed", "", "catalog feed file (YAML); empty uses the built-in seed")

	loadFeed := func(ctx context.Context) ([]domain.Product, error) {
		return static.NewFeedRepository(feed).ListAll(ctx)
	}

	root.AddCommand(
		newQueryCmd(loadFeed),
		newFacetsCmd(loadFeed),
		newValidateCmd(loadFeed),
		newSeedCmd(loadFeed),
		newMigrateCmd(),
	)
	return root
}

type feedLoader func(ctx context.Context) ([]domain.Product, error)

func newQueryCmd(loadFeed feedLoader) *cobra.Command {
	var f filterFlags
	var locale string
	var asTable bool

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter and sort the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := f.spec()
			if err != nil {
				return err
			}
			tag, err := language.Parse(locale)
			if err != nil {
				return fmt.Errorf("invalid locale: %w", err)
			}

			products, err := loadFeed(cmd.Context())
			if err != nil {
				return err
			}
			if products, err = inCategory(products, f.category); err != nil {
				return err
			}

			result := query.Query(products, spec, query.WithLocale(tag))
			if asTable {
				return writeTable(cmd.OutOrStdout(), result)
			}
			return writeJSON(cmd.OutOrStdout(), query.NewViews(result))
		},
	}

	cmd.Flags().StringVar(&f.category, "category", "", "streetwear, drops or accessories")
	cmd.Flags().StringSliceVar(&f.colors, "colors", nil, "colors to match (any)")
	cmd.Flags().StringSliceVar(&f.sizes, "sizes", nil, "sizes to match (any)")
	cmd.Flags().Float64Var(&f.minPrice, "min-price", domain.DefaultPriceMin, "minimum price (inclusive)")
	cmd.Flags().Float64Var(&f.maxPrice, "max-price", domain.DefaultPriceMax, "maximum price (inclusive)")
	cmd.Flags().StringVar(&f.sort, "sort", string(domain.SortByName), "name, price-asc, price-desc or rating-desc")
	cmd.Flags().BoolVar(&f.inStock, "in-stock", false, "only products in stock")
	cmd.Flags().BoolVar(&f.onlyNew, "new", false, "only new products")
	cmd.Flags().BoolVar(&f.limited, "limited", false, "only limited products")
	cmd.Flags().StringVar(&locale, "locale", "en", "collation locale for name sort")
	cmd.Flags().BoolVar(&asTable, "table", false, "print a table instead of JSON")
	return cmd
}

func newFacetsCmd(loadFeed feedLoader) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "facets",
		Short: "Print the filter options of the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := loadFeed(cmd.Context())
			if err != nil {
				return err
			}
			if products, err = inCategory(products, category); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), query.DeriveFacets(products))
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "streetwear, drops or accessories")
	return cmd
}

func newValidateCmd(loadFeed feedLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the feed parses and every product is valid",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := loadFeed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "feed ok: %d products\n", len(products))
			return nil
		},
	}
}

func newSeedCmd(loadFeed feedLoader) *cobra.Command {
	var notify bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the PostgreSQL catalog with the feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			products, err := loadFeed(cmd.Context())
			if err != nil {
				return err
			}

			db, err := database.WaitForDB(cfg, 5, 2*time.Second, log)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.RunMigrations(db); err != nil {
				return err
			}
			if err := postgres.NewProductRepository(db).ReplaceAll(cmd.Context(), products); err != nil {
				return err
			}

			log.WithFields(map[string]interface{}{
				"products": len(products),
			}).Info("Catalog seeded")

			if notify {
				publisher, err := events.NewPublisher(cfg, log)
				if err != nil {
					return err
				}
				defer publisher.Close()

				if err := publisher.PublishCatalogChanged(cmd.Context(), "catalogctl"); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", len(products))
			return nil
		},
	}
	cmd.Flags().BoolVar(&notify, "notify", false, "publish catalog.changed so every running API instance reloads")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the catalog schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.WaitForDB(cfg, 5, 2*time.Second, log)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.RunMigrations(db); err != nil {
				return err
			}

			names, err := database.Migrations()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migrations\n", len(names))
			return nil
		},
	}
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewWithWriter(cfg.Env, os.Stderr), nil
}

func inCategory(products []domain.Product, category string) ([]domain.Product, error) {
	if category == "" {
		return products, nil
	}
	c := domain.Category(category)
	if !c.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	return query.ByCategory(products, c), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, products []domain.Product) error {
	for _, p := range products {
		badges := strings.Join(query.Badges(p), ",")
		if _, err := fmt.Fprintf(w, "%-10s %-28s %9.2f %4.1f %-10s %s\n",
			p.ID, p.Name, p.Price, p.Rating, query.StockStatus(p), badges); err != nil {
			return err
		}
	}
	return nil
}
