package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/John-Robertt/mdapi/internal/api"
	"github.com/John-Robertt/mdapi/internal/infra/httpx"
	"github.com/John-Robertt/mdapi/internal/site"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := c.siteClient()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &api.Server{Addr: c.cfg.Listen, Catalog: sc, Logger: c.logger}
			return srv.Run(ctx)
		},
	}
}

func (c *cli) siteClient() (*site.Client, error) {
	hc, err := httpx.NewClient(httpx.Options{
		UserAgent: c.cfg.UserAgent,
		ProxyURL:  c.cfg.ProxyURL,
		Timeout:   c.cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return site.New(c.cfg.BaseURL, hc), nil
}
