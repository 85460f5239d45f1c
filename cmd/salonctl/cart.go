package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sokebat/barber-frontend-sub000/pkg/cart"
	"github.com/sokebat/barber-frontend-sub000/pkg/client"
	"github.com/spf13/cobra"
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add PRODUCT_ID [QTY]",
			Short: "Add a product, merging with an existing line",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				qty := 1
				if len(args) == 2 {
					n, err := strconv.Atoi(args[1])
					if err != nil || n <= 0 {
						return fmt.Errorf("quantity must be a positive number, got %q", args[1])
					}
					qty = n
				}
				return a.editCart(func(c *cart.Cart) { c.Add(args[0], qty) })
			},
		},
		&cobra.Command{
			Use:   "remove PRODUCT_ID",
			Short: "Remove a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.editCart(func(c *cart.Cart) { c.Remove(args[0]) })
			},
		},
		&cobra.Command{
			Use:   "set PRODUCT_ID QTY",
			Short: "Set a line's quantity; zero removes it",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				qty, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("quantity must be a number, got %q", args[1])
				}
				return a.editCart(func(c *cart.Cart) { c.UpdateQuantity(args[0], qty) })
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.editCart(func(c *cart.Cart) { c.Clear() })
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the cart priced against the current catalog",
			RunE: func(cmd *cobra.Command, _ []string) error {
				resp := a.client.Products.List(cmd.Context(), "")
				if err := resp.Err(); err != nil {
					return err
				}
				return a.printCart(cart.Load(a.storage), resp.Data)
			},
		},
	)
	return cmd
}

func newCheckoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cart.Load(a.storage)
			items := c.Items()
			if len(items) == 0 {
				return errors.New("cart is empty")
			}

			lines := make([]client.CartItem, 0, len(items))
			for _, it := range items {
				lines = append(lines, client.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
			}

			resp := a.client.Checkout.Checkout(cmd.Context(), lines)
			if err := resp.Err(); err != nil {
				return err
			}

			c.Clear()
			if err := c.Save(a.storage); err != nil {
				return err
			}

			order := resp.Data
			a.printf("order %s placed: %s (subtotal %s, tax %s)\n",
				order.ID, cart.FormatUSD(order.Total), cart.FormatUSD(order.Subtotal), cart.FormatUSD(order.Tax))
			if order.PaymentURL != "" {
				a.printf("pay at %s\n", order.PaymentURL)
			}
			return nil
		},
	}
}

func (a *app) editCart(fn func(*cart.Cart)) error {
	c := cart.Load(a.storage)
	fn(c)
	if err := c.Save(a.storage); err != nil {
		return err
	}
	a.printf("%d item(s) in cart\n", c.Count())
	return nil
}

func (a *app) printCart(c *cart.Cart, products []client.Product) error {
	items := c.Items()
	if len(items) == 0 {
		a.printf("cart is empty\n")
		return nil
	}

	byID := make(map[string]client.Product, len(products))
	priced := make([]cart.Product, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		priced = append(priced, cart.Product{ID: p.ID, Price: p.Price, DiscountPrice: p.DiscountPrice})
	}

	tw := a.table()
	fmt.Fprintln(tw, "PRODUCT\tQTY\tUNIT\tTOTAL")
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			fmt.Fprintf(tw, "%s\t%d\t-\tunavailable\n", it.ProductID, it.Quantity)
			continue
		}
		unit := p.EffectivePrice()
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", p.Name, it.Quantity, cart.FormatUSD(unit), cart.FormatUSD(unit*float64(it.Quantity)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	summary := c.Totals(priced, a.v.GetFloat64("tax-rate"))
	a.printf("\nsubtotal %s\ntax      %s\ntotal    %s\n",
		cart.FormatUSD(summary.Subtotal), cart.FormatUSD(summary.Tax), cart.FormatUSD(summary.Total))
	return nil
}
