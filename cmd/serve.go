package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/attendance"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/config"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/extractor"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/recognizer"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/roster"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the attendance web server",
	Long: `Start the attendance monitoring web server.
The server exposes the enrollment, recognition and attendance API used
by the classroom kiosk frontend.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return port, host
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if cfg.Extractor.URL == "" {
		return errors.New("EXTRACTOR_URL environment variable is required")
	}

	fmt.Printf("Connecting to database...\n")
	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	services := web.Services{
		Roster:    roster.NewService(st.students, cfg.Extractor.Dim),
		Engine:    recognizer.NewEngine(st.students, cfg.Matching.Threshold),
		Ledger:    attendance.NewLedger(st.events),
		Students:  st.students,
		Extractor: extractor.NewHTTPClient(cfg.Extractor.URL, cfg.Extractor.Model),
	}

	port, host := resolveServeHostPort(cmd)
	server := web.NewServer(cfg, port, host, services)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting attendance monitor on http://%s:%d\n", host, port)
	fmt.Printf("Matching threshold %.2f, embedding dim %d (%s)\n",
		cfg.Matching.Threshold, cfg.Extractor.Dim, cfg.Extractor.Model)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
