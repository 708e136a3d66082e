// Command rdap-gatewayctl is a standalone diagnostic CLI: it runs one
// bootstrap scrape cycle against the IANA registry (or a
// --bootstrap-uri override) and answers ad hoc lookups against the
// result, printing tabular output. It shares no process with
// rdap-gateway; it exists for operators to sanity-check what a scrape
// would resolve without standing up the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/BourgeoisBear/rdap-gateway/colwriter"
	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
	"github.com/BourgeoisBear/rdap-gateway/internal/bootstrap"
	"github.com/BourgeoisBear/rdap-gateway/internal/config"
	"github.com/BourgeoisBear/rdap-gateway/internal/directory"
	"github.com/BourgeoisBear/rdap-gateway/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var bootstrapURI string
	var timeoutSeconds int

	var iWri io.Writer = os.Stdout
	flag.CommandLine.SetOutput(iWri)
	flag.StringVar(&bootstrapURI, "bootstrap-uri", "https://data.iana.org/rdap/", "IANA bootstrap base URI")
	flag.IntVar(&timeoutSeconds, "timeout", 30, "per-endpoint fetch timeout, in seconds")
	flag.Usage = func() {
		fmt.Fprint(iWri, `USAGE
  rdap-gatewayctl [OPTION]... authorities
  rdap-gatewayctl [OPTION]... ip IPADDR
  rdap-gatewayctl [OPTION]... as ASN
  rdap-gatewayctl [OPTION]... domain NAME

Runs a single bootstrap scrape and either lists every resolved
authority, or looks up the authority for one resource.

OPTION
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("no command given")
	}

	authStore := authority.New()
	resStore := store.New()
	scr := &bootstrap.Scraper{
		BaseURI:           bootstrapURI,
		RequestTimeout:    time.Duration(timeoutSeconds) * time.Second,
		SupportedVersions: map[string]bool{"1.0": true},
		AuthorityStore:    authStore,
		ResourceStore:     resStore,
		Client:            &http.Client{},
	}
	scr.SeedStatic(bootstrap.SeedStaticAuthorities(config.DefaultStaticAuthorities()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*4*time.Second)
	defer cancel()

	gen, err := scr.Run(ctx)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}
	fmt.Fprintf(os.Stdout, "scrape committed, generation %d\n\n", gen.Sequence())

	switch args[0] {
	case "authorities":
		return printAuthorities(authStore)
	case "ip":
		if len(args) != 2 {
			return fmt.Errorf("usage: ip IPADDR")
		}
		return lookupOne(resStore, "ip", args[1])
	case "as":
		if len(args) != 2 {
			return fmt.Errorf("usage: as ASN")
		}
		return lookupOne(resStore, "as", args[1])
	case "domain":
		if len(args) != 2 {
			return fmt.Errorf("usage: domain NAME")
		}
		return lookupOne(resStore, "domain", args[1])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

var authorityCols = []colwriter.ColCfg{
	{Wid: 24},
	{Wid: 6, Rt: true},
	{},
}

func printAuthorities(authStore *authority.Store) error {
	names := authStore.Names()
	wc := colwriter.Cfg{Spacer: "|", Pad: true}
	row := wc.NewWriterFuncs(authorityCols)
	row(os.Stdout, "NAME", "ALIASES", "SERVERS")
	for _, name := range names {
		a := authStore.FindByName(name)
		if a == nil {
			continue
		}
		row(os.Stdout, a.Name, fmt.Sprintf("%d", len(a.Aliases)), strings.Join(a.ServerURIs(), ", "))
	}
	return nil
}

func lookupOne(resStore *store.ResourceStore, kind, raw string) error {
	dir := directory.New(resStore)

	var a *authority.Authority
	var err error
	switch kind {
	case "ip":
		parsed, perr := directory.ParseAddr(raw)
		if perr != nil {
			return perr
		}
		a, err = dir.IPAddrAuthority(parsed)
	case "as":
		asn, perr := directory.ParseASN(raw)
		if perr != nil {
			return perr
		}
		a, err = dir.AutnumAuthority(asn)
	case "domain":
		a, err = dir.DomainAuthority(raw)
	}

	if err != nil {
		return err
	}

	wc := colwriter.Cfg{Spacer: "|", Pad: true}
	row := wc.NewWriterFuncs(authorityCols)
	row(os.Stdout, "NAME", "ALIASES", "SERVERS")
	row(os.Stdout, a.Name, fmt.Sprintf("%d", len(a.Aliases)), strings.Join(a.ServerURIs(), ", "))
	return nil
}
