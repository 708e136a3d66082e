// Command rdap-gateway runs the RDAP reverse-proxy routing gateway:
// it scrapes the IANA bootstrap registry on a fixed interval, builds
// the in-memory routing maps described in spec §3-4, and serves
// RDAP lookups over HTTP by forwarding to whichever authority's
// server URIs the request resolves to.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
	"github.com/BourgeoisBear/rdap-gateway/internal/bootstrap"
	"github.com/BourgeoisBear/rdap-gateway/internal/config"
	"github.com/BourgeoisBear/rdap-gateway/internal/directory"
	"github.com/BourgeoisBear/rdap-gateway/internal/httpapi"
	"github.com/BourgeoisBear/rdap-gateway/internal/log"
	"github.com/BourgeoisBear/rdap-gateway/internal/metrics"
	"github.com/BourgeoisBear/rdap-gateway/internal/scheduler"
	"github.com/BourgeoisBear/rdap-gateway/internal/store"
	"github.com/BourgeoisBear/rdap-gateway/internal/upstream"
)

const gatewayVersion = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		listenAddr   string
		logLevel     string
		noStaticSeed bool
	)

	var iWri io.Writer = os.Stderr
	flag.CommandLine.SetOutput(iWri)
	flag.StringVar(&listenAddr, "listen", ":8080", "address to serve RDAP and operational endpoints on")
	flag.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.BoolVar(&noStaticSeed, "no-static-seed", false, "skip seeding the five well-known RIR authorities before the first scrape")
	flag.Usage = func() {
		fmt.Fprint(iWri, `USAGE
  rdap-gateway [OPTION]...

Serves RDAP lookups by routing requests to the authority registered
for an IP prefix, ASN range, or domain suffix, per the IANA RDAP
bootstrap registry (RFC 7484).

Configuration not covered by flags is read from environment
variables (RDAP_BOOTSTRAP_BASE_URI, RDAP_BOOTSTRAP_INTERVAL_SECONDS,
RDAP_BOOTSTRAP_REQUEST_TIMEOUT_SECONDS, RDAP_BOOTSTRAP_SUPPORTED_VERSIONS).

OPTION
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := log.New(logLevel)
	cfg := config.FromEnv()

	authStore := authority.New()
	resStore := store.New()
	met := metrics.New()

	scr := &bootstrap.Scraper{
		BaseURI:           cfg.BootstrapBaseURI,
		RequestTimeout:    cfg.BootstrapRequestTimeout,
		SupportedVersions: cfg.SupportedVersions,
		AuthorityStore:    authStore,
		ResourceStore:     resStore,
		Client:            &http.Client{},
		Logger:            logger,
	}
	if !noStaticSeed {
		scr.SeedStatic(bootstrap.SeedStaticAuthorities(config.DefaultStaticAuthorities()))
	}

	sched := scheduler.New(scr, cfg.BootstrapInterval, logger)
	sched.Metrics = met

	dir := directory.New(resStore)
	handler := &httpapi.Handler{
		Directory:      dir,
		AuthorityStore: authStore,
		ResourceStore:  resStore,
		Forwarder:      upstream.New(cfg.BootstrapRequestTimeout),
		Metrics:        met,
		Logger:         logger,
		GatewayVersion: gatewayVersion,
	}

	srv := &http.Server{
		Addr:    listenAddr,
		Handler: handler.Mux(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sched.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", listenAddr).Info("rdap-gateway listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
