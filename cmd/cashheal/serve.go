package main

import (
	"github.com/Veraticus/cashheal/internal/api"
	"github.com/Veraticus/cashheal/internal/charts"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger over a local HTTP API",
		Long: `Start the JSON API used by display clients on this machine. It listens on
server.addr (default 127.0.0.1:8080) until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if viper.GetString("logging.level") != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			srv, err := api.NewServer(api.Deps{
				Storage: a.storage,
				Plans:   a.plans,
				Charts:  charts.NewGenerator(a.cfg.Settings.Currency, a.translator),
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context(), a.cfg.ServerAddr)
		},
	}

	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
