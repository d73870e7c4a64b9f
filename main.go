package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/ledger"
	"github.com/Zachkp/portfolio/internal/visitclient"
)

var (
	port          string
	env           string
	ledgerBackend string
	ledgerPath    string
	sqlitePath    string
	writeMode     string
	redisURL      string

	siteURL   string
	locale    string
	flagsPath string

	shutdownTimeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "portfolio",
		Short:        "Portfolio site with a unique-visitor ledger",
		SilenceUsage: true,
		RunE:         runServe,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&env, "env", "", "deployment mode: development or production (APP_ENV)")
	pf.StringVar(&ledgerBackend, "ledger-backend", "", "ledger backend: file, sqlite, redis or memory (LEDGER_BACKEND)")
	pf.StringVar(&ledgerPath, "ledger-path", "", "JSON ledger file (LEDGER_PATH)")
	pf.StringVar(&sqlitePath, "sqlite-path", "", "SQLite ledger database (LEDGER_SQLITE_PATH)")
	pf.StringVar(&writeMode, "write-mode", "", "ledger write mode: serialized or best-effort (LEDGER_WRITE_MODE)")
	pf.StringVar(&redisURL, "redis-url", "", "Redis URL for the redis backend (REDIS_URL)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE:  runServe,
	}
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().StringVar(&port, "port", "", "listen port (PORT)")
		cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "graceful shutdown timeout")
	}

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect or reset the visit ledger",
	}
	ledgerCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the visit ledger as JSON",
			Args:  cobra.NoArgs,
			RunE:  runLedgerShow,
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Clear the visit ledger",
			Args:  cobra.NoArgs,
			RunE:  runLedgerReset,
		},
	)

	visitsCmd := &cobra.Command{
		Use:   "visits",
		Short: "Record a visit against a running site and print the counter",
		Args:  cobra.NoArgs,
		RunE:  runVisits,
	}
	visitsCmd.Flags().StringVar(&siteURL, "site", "", "site base URL (SITE_URL, default http://localhost:PORT)")
	visitsCmd.Flags().StringVar(&locale, "locale", LocaleEN, "counter locale: en or pt-BR")
	visitsCmd.Flags().StringVar(&flagsPath, "flags", "", "local flag file (default in the user config dir)")

	rootCmd.AddCommand(serveCmd, ledgerCmd, visitsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the environment and applies any flags given on the command line.
func setup() (*Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.Port, port)
	override(&cfg.Env, env)
	override(&cfg.LedgerBackend, ledgerBackend)
	override(&cfg.LedgerPath, ledgerPath)
	override(&cfg.SQLitePath, sqlitePath)
	override(&cfg.WriteMode, writeMode)
	override(&cfg.RedisURL, redisURL)
	override(&cfg.SiteURL, siteURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if os.Getenv(gin.EnvGinMode) == "" {
		if cfg.IsDevelopment() {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}
	}
	return cfg, nil
}

func openLedger(ctx context.Context, cfg *Config) (*ledger.Service, error) {
	svc, err := ledger.Open(ctx, cfg.LedgerConfig())
	if err != nil {
		return nil, err
	}
	log.Printf("Visit ledger: %s backend, %s writes", cfg.LedgerBackend, svc.Mode())
	return svc, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := openLedger(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	a := newApp(cfg, svc)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting portfolio on :%s (%s)", cfg.Port, cfg.Mode())
		log.Printf("Admin access available at: /admin/login")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("Shutting down")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runLedgerShow(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	svc, err := openLedger(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	snap, err := svc.Snapshot(cmd.Context())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func runLedgerReset(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	svc, err := openLedger(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Reset(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "visit ledger reset")
	return nil
}

func runVisits(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	base := cfg.SiteURL
	if base == "" {
		base = "http://localhost:" + cfg.Port
	}

	path := flagsPath
	if path == "" {
		if path, err = visitclient.DefaultFlagsPath(); err != nil {
			return fmt.Errorf("locate flag file: %w", err)
		}
	}

	client := visitclient.New(base, visitclient.NewFileFlags(path),
		visitclient.WithLogger(log.New(cmd.ErrOrStderr(), "", log.LstdFlags)))

	if label := client.Activate(cmd.Context()).Render(locale); label != "" {
		fmt.Fprintln(cmd.OutOrStdout(), label)
	}
	return nil
}
