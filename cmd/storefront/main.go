package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"storefront/internal/apiclient"
	"storefront/internal/session"
)

const usage = `usage: storefront <command> [flags]

commands:
  store [id]          show or select the active store
  cart add|show|clear manage the cart
  checkout            place an order for the cart
  items               list the store's items
  add-item            add an item to the store
  update-item         update an item
  delete-item         delete items
  export              download the store's items as xlsx

environment:
  STOREFRONT_API      API base url (default http://localhost:8080)
  STOREFRONT_SESSION  session file path
`

type app struct {
	client  *apiclient.Client
	session *session.File
	logger  *log.Logger
}

func main() {
	logger := log.New(os.Stderr, "[storefront] ", 0)
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	sessionPath := os.Getenv("STOREFRONT_SESSION")
	if sessionPath == "" {
		sessionPath = session.DefaultPath()
	}
	sess, err := session.Load(sessionPath)
	if err != nil {
		logger.Fatalf("load session: %v", err)
	}
	apiURL := os.Getenv("STOREFRONT_API")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	a := &app{client: apiclient.New(apiURL, nil), session: sess, logger: logger}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			logger.Print(apiErr.Message)
		} else {
			logger.Print(err)
		}
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "store":
		return a.store(args)
	case "cart":
		return a.cart(args)
	case "checkout":
		return a.checkout(ctx, args)
	case "items":
		return a.items(ctx, args)
	case "add-item":
		return a.addItem(ctx, args)
	case "update-item":
		return a.updateItem(ctx, args)
	case "delete-item":
		return a.deleteItem(ctx, args)
	case "export":
		return a.export(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func (a *app) storeID(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if id := a.session.StoreID(); id != "" {
		return id, nil
	}
	return "", errors.New("no store selected: run `storefront store <id>` or pass -store")
}

func (a *app) store(args []string) error {
	if len(args) == 0 {
		id := a.session.StoreID()
		if id == "" {
			fmt.Println("No store selected.")
			return nil
		}
		fmt.Println(id)
		return nil
	}
	if err := a.session.SetStoreID(args[0]); err != nil {
		return err
	}
	fmt.Printf("Store set to %s\n", args[0])
	return nil
}
