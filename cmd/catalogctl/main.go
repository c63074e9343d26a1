// Package main implements catalogctl, the admin client for the product
// catalog. Each subcommand drives the interaction controller the way the
// original table and form views did.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bpsoft/catalog/internal/config"
	"github.com/bpsoft/catalog/internal/controller"
	"github.com/bpsoft/catalog/internal/form"
	"github.com/bpsoft/catalog/internal/gateway"
	"github.com/bpsoft/catalog/internal/store"
	"github.com/bpsoft/catalog/pkg/bootstrap"
	"github.com/bpsoft/catalog/pkg/config/configloader"
)

const appName = "catalogctl"

var apiURL string

func main() {
	rootCmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Manage the product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "base URL of the product API (overrides config)")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newVerifyCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("command failed: %v", err)
		os.Exit(1)
	}
}

// appContext bundles the explicitly constructed collaborators. This is the
// composition root: gateway and store are built here and handed to the
// controller, and the store doubles as the gateway's busy sink.
type appContext struct {
	cfg  *config.ClientConfig
	gw   *gateway.Gateway
	st   *store.Store
	ctrl *controller.Controller
}

func newAppContext() (*appContext, error) {
	cfg, err := configloader.Load[*config.ClientConfig](appName)
	if err != nil {
		if apiURL == "" {
			return nil, fmt.Errorf("failed to load configuration (set --api-url or provide config.yaml): %w", err)
		}
		cfg = &config.ClientConfig{}
		cfg.API.BaseURL = apiURL
		cfg.API.Timeout = 10 * time.Second
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	logger := bootstrap.NewLogger(cfg.Log.Level)

	gw := gateway.New(cfg.API.BaseURL, cfg.API.Timeout, logger)
	st := store.New(gw, logger)
	gw.BindBusy(st)

	ctrl := controller.New(st, gw, form.NewValidator(), logger, controller.Callbacks{
		Alert: func(message string) { fmt.Println(message) },
	})
	if cfg.Page.Size > 0 {
		ctrl.SetPageSize(cfg.Page.Size)
	}

	return &appContext{cfg: cfg, gw: gw, st: st, ctrl: ctrl}, nil
}
