package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mo-shahab/go-pong-ai/config"
	"github.com/mo-shahab/go-pong-ai/wsserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve games over websockets at /ws.",
	RunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env")
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		return serve(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().String("env", ".env", "dotenv file to load before reading the environment")
	serveCmd.Flags().String("addr", "", "listen address, overrides "+config.EnvAddr)
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wsh := wsserver.NewWebSocketHandler(wsserver.Options{
		Game:                cfg.Game,
		WaitingRoomDuration: cfg.WaitingRoom,
		Tuning:              cfg.Tuning,
	})

	mux := http.NewServeMux()
	mux.Handle("/ws", wsh)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		<-ctx.Done()
		wsh.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
	}()

	log.Printf("Server starting on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
