package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/feedback-quality/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing:

  POST /evaluations        evaluate one response set
  POST /evaluations/batch  evaluate up to 100 sets, streamed as server-sent events
  GET  /health             liveness, and database reachability when configured`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	ctx := cmd.Context()
	e, err := newEngine(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer e.Close()

	srvCfg := server.Config{
		Port:      cfg.Port,
		Evaluator: e.service,
		Logger:    e.logger,
	}
	if e.db != nil {
		srvCfg.Store = e.db
		srvCfg.Health = e.db
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return err
	}
	return srv.Start(ctx)
}
