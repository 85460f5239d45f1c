package main

import (
	"fmt"

	"github.com/sokebat/barber-frontend-sub000/pkg/cart"
	"github.com/sokebat/barber-frontend-sub000/pkg/client"
	"github.com/spf13/cobra"
)

func newServicesCmd(a *app) *cobra.Command {
	var flat bool
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List the services on offer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flat {
				resp := a.client.Services.ListFlat(cmd.Context())
				if err := resp.Err(); err != nil {
					return err
				}
				tw := a.table()
				fmt.Fprintln(tw, "ID\tSERVICE\tCATEGORY\tPRICE")
				for _, s := range resp.Data {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Title, s.CategoryName, cart.FormatUSD(s.Price))
				}
				return tw.Flush()
			}

			resp := a.client.Services.List(cmd.Context())
			if err := resp.Err(); err != nil {
				return err
			}
			for _, c := range resp.Data {
				a.printf("%s  %s\n", c.Name, c.Description)
				for _, item := range c.Items {
					a.printf("  %-24s %-30s %s\n", item.Title, item.Subtitle, cart.FormatUSD(item.Price))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flat, "flat", false, "one row per service item")
	return cmd
}

func newProductsCmd(a *app) *cobra.Command {
	var query, category string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List or search store products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var products []client.Product
			if query != "" {
				resp := a.client.Products.Search(cmd.Context(), query, category, 0)
				if err := resp.Err(); err != nil {
					return err
				}
				products = resp.Data.Products
			} else {
				resp := a.client.Products.List(cmd.Context(), category)
				if err := resp.Err(); err != nil {
					return err
				}
				products = resp.Data
			}

			tw := a.table()
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE")
			for _, p := range products {
				price := cart.FormatUSD(p.Price)
				if p.DiscountPrice != nil {
					price = fmt.Sprintf("%s (was %s)", cart.FormatUSD(*p.DiscountPrice), price)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.CategoryName, price)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&query, "search", "", "full-text query")
	cmd.Flags().StringVar(&category, "category", "", "only this category")
	return cmd
}

func newTeamCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "team",
		Short: "List the specialists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp := a.client.Team.List(cmd.Context())
			if err := resp.Err(); err != nil {
				return err
			}
			tw := a.table()
			fmt.Fprintln(tw, "NAME\tSPECIALTY")
			for _, m := range resp.Data {
				fmt.Fprintf(tw, "%s\t%s\n", m.Name, m.Specialty)
			}
			return tw.Flush()
		},
	}
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp := a.client.Categories.List(cmd.Context())
			if err := resp.Err(); err != nil {
				return err
			}
			for _, c := range resp.Data {
				a.printf("%s\n", c.Name)
			}
			return nil
		},
	}
}
