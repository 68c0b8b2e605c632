package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"bargainbay/internal/config"
	"bargainbay/internal/domain"
	"bargainbay/internal/repos"
	"bargainbay/internal/services"
)

type loader func(args []string) (config.Config, error)

type app struct {
	load       loader
	configPath string
}

func (a *app) config() (config.Config, error) {
	var args []string
	if a.configPath != "" {
		args = []string{"--config", a.configPath}
	}
	return a.load(args)
}

func (a *app) withRatings(ctx context.Context, fn func(*services.Ratings) error) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	kv, err := repos.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer kv.Close()
	return fn(services.NewRatings(ctx, repos.NewRatingRepo(kv)))
}

func newRootCmd(load loader) *cobra.Command {
	a := &app{load: load}
	root := &cobra.Command{
		Use:          "bargainctl",
		Short:        "BargainBay maintenance tool",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file")
	root.AddCommand(a.ratingsCmd(), a.couponCmd(), a.timelineCmd())
	return root
}

func (a *app) ratingsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "ratings", Short: "Manage stored product ratings"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every rated product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withRatings(cmd.Context(), func(r *services.Ratings) error {
				printRatings(cmd.OutOrStdout(), r.All())
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rate <product-id> <stars>",
		Short: "Add a 1-5 star rating to a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stars, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("stars: %w", err)
			}
			return a.withRatings(cmd.Context(), func(r *services.Ratings) error {
				rec, err := r.Rate(cmd.Context(), args[0], stars)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f (%d)\tmine=%d\n", args[0], rec.Average, rec.Count, rec.UserRating)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget every stored rating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withRatings(cmd.Context(), func(r *services.Ratings) error {
				if err := r.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ratings cleared")
				return nil
			})
		},
	})
	return cmd
}

func printRatings(w io.Writer, all map[string]domain.RatingRecord) {
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tAVERAGE\tCOUNT\tMINE")
	for _, id := range ids {
		rec := all[id]
		fmt.Fprintf(tw, "%s\t%.1f\t%d\t%d\n", id, rec.Average, rec.Count, rec.UserRating)
	}
	tw.Flush()
}

func (a *app) couponCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "coupon", Short: "Preview coupon pricing"}
	cmd.AddCommand(&cobra.Command{
		Use:   "quote <code> <subtotal>",
		Short: "Show the discounted total for a subtotal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			book, err := services.NewCouponBook(cfg.Coupons)
			if err != nil {
				return err
			}
			subtotal, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("subtotal: %w", err)
			}
			var st services.CouponState
			if err := st.Apply(book, args[0]); err != nil {
				return err
			}
			q := st.Quote(subtotal)
			fmt.Fprintf(cmd.OutOrStdout(), "%s -%d%%: %s -> %s (saves %s)\n",
				q.Code, q.Percent, q.Subtotal.StringFixed(2), q.Final.StringFixed(2), q.Discount.StringFixed(2))
			return nil
		},
	})
	return cmd
}

func (a *app) timelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline <status>",
		Short: "Render the delivery timeline for an order status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl := services.Project(domain.OrderStatus(strings.ToUpper(args[0])))
			out := cmd.OutOrStdout()
			if tl.Cancelled {
				fmt.Fprintln(out, "Cancelled")
				return nil
			}
			for _, s := range tl.Steps {
				mark := "[ ]"
				if s.Reached {
					mark = "[x]"
				}
				fmt.Fprintf(out, "%s %s\n", mark, s.Name)
			}
			return nil
		},
	}
}
