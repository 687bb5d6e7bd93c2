package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"storefront/internal/checkout"
	"storefront/internal/dataurl"
	"storefront/internal/domain"
)

func (a *app) cart(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: storefront cart add|show|clear")
	}
	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ContinueOnError)
		title := fs.String("title", "", "item title")
		price := fs.Float64("price", 0, "unit price")
		qty := fs.Int("qty", 1, "quantity")
		image := fs.String("image", "", "image file")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *title == "" {
			return errors.New("-title is required")
		}
		if *qty <= 0 {
			return fmt.Errorf("-qty must be positive, got %d", *qty)
		}
		item := domain.CartItem{Title: *title, Price: *price, Quantity: *qty, StoreID: a.session.StoreID()}
		if *image != "" {
			img, err := dataurl.EncodeFile(*image)
			if err != nil {
				return err
			}
			item.Image = img
		}
		if err := a.session.AddToCart(item); err != nil {
			return err
		}
		fmt.Printf("Added %d × %s to cart\n", item.Quantity, item.Title)
		return nil
	case "show":
		items, err := a.session.Cart()
		if err != nil {
			return err
		}
		return checkout.RenderSummary(os.Stdout, items)
	case "clear":
		return a.session.ClearCart()
	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	var form checkout.Form
	fs.StringVar(&form.FirstName, "first", "", "first name")
	fs.StringVar(&form.LastName, "last", "", "last name")
	fs.StringVar(&form.Email, "email", "", "email address")
	fs.StringVar(&form.Address, "address", "", "street address")
	fs.StringVar(&form.City, "city", "", "city")
	fs.StringVar(&form.Phone, "phone", "", "phone number (+92...)")
	payment := fs.String("payment", string(domain.PaymentCashOnDelivery), "payment method: cod or online")
	fs.StringVar(&form.UID, "uid", "", "transaction reference (online)")
	proof := fs.String("proof", "", "payment proof image file (online)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	form.PaymentMethod = domain.PaymentMethod(*payment)
	if *proof != "" {
		img, err := dataurl.EncodeFile(*proof)
		if err != nil {
			return err
		}
		form.ProofImage = img
	}

	items, err := a.session.Cart()
	if err != nil {
		return err
	}
	if err := checkout.RenderSummary(os.Stdout, items); err != nil {
		return err
	}

	order, err := checkout.NewFlow(a.client, a.session).PlaceOrder(ctx, form)
	if err != nil {
		return err
	}
	fmt.Printf("Thank you, %s! Order %s placed for %s.\n",
		order.FirstName, order.ID, checkout.FormatMoney(checkout.Total(order.CartItems)))
	return nil
}
