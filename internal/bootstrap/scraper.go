package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
	"github.com/BourgeoisBear/rdap-gateway/internal/rerr"
	"github.com/BourgeoisBear/rdap-gateway/internal/store"
)

// allKinds is the four IANA endpoints fetched every cycle (spec §4.7).
var allKinds = []Kind{KindASN, KindDNS, KindIPv4, KindIPv6}

// Scraper fetches, validates, and materialises the four IANA bootstrap
// documents into a staging Builder each cycle, then commits
// all-or-nothing (spec §4.7).
type Scraper struct {
	BaseURI           string
	RequestTimeout    time.Duration
	SupportedVersions map[string]bool
	AuthorityStore    *authority.Store
	ResourceStore     *store.ResourceStore
	Client            *http.Client
	Logger            *logrus.Logger

	// staticSeed is copied into every fresh staging builder before
	// bootstrap data is applied, so bootstrap inserts can still
	// override it on exact-prefix conflicts (SPEC_FULL.md supplemented
	// feature 3).
	staticSeed func(*store.Builder, *authority.Store) error
}

// SeedStatic registers a function invoked against every fresh staging
// Builder before this cycle's IANA fetches are applied.
func (s *Scraper) SeedStatic(fn func(*store.Builder, *authority.Store) error) {
	s.staticSeed = fn
}

func (s *Scraper) httpClient() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

func (s *Scraper) logger() *logrus.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logrus.StandardLogger()
}

// Run executes one scrape cycle: the four endpoints are fetched
// concurrently; if any fails, the whole cycle is abandoned and the
// live ResourceStore is left unchanged (spec §4.7 failure policy,
// invariant 7). On success, the staged generation is committed and
// returned.
func (s *Scraper) Run(ctx context.Context) (*store.Generation, error) {
	builder := s.ResourceStore.Stage()

	if s.staticSeed != nil {
		if err := s.staticSeed(builder, s.AuthorityStore); err != nil {
			return nil, err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range allKinds {
		kind := kind
		g.Go(func() error {
			return s.fetchAndStage(gctx, kind, builder)
		})
	}

	if err := g.Wait(); err != nil {
		s.logger().WithError(err).Warn("bootstrap cycle aborted, live generation unchanged")
		return nil, err
	}

	gen := s.ResourceStore.Commit(builder)
	s.logger().WithField("sequence", gen.Sequence()).Info("bootstrap cycle committed")
	return gen, nil
}

func (s *Scraper) fetchAndStage(ctx context.Context, kind Kind, builder *store.Builder) error {
	body, err := s.fetch(ctx, kind)
	if err != nil {
		s.logger().WithFields(logrus.Fields{"endpoint": s.BaseURI + kind.Path(), "kind": kind.String()}).
			WithError(err).Error("bootstrap fetch failed")
		return err
	}

	doc, err := ParseDocument(body, s.SupportedVersions)
	if err != nil {
		s.logger().WithFields(logrus.Fields{"endpoint": s.BaseURI + kind.Path(), "kind": kind.String()}).
			WithError(err).Error("bootstrap parse failed")
		return err
	}

	return stageDocument(kind, doc, builder, s.AuthorityStore)
}

func (s *Scraper) fetch(ctx context.Context, kind Kind) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	url := fmt.Sprintf("%s%s", s.BaseURI, kind.Path())
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, rerr.Wrap(rerr.NetworkError, err.Error())
	}
	req.Header.Set("Accept", "application/json")

	rsp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, rerr.Wrap(rerr.NetworkError, err.Error())
	}
	defer rsp.Body.Close()

	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		return nil, rerr.Wrapf(rerr.NetworkError, "%s: %s", url, rsp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(rsp.Body, 32<<20))
	if err != nil {
		return nil, rerr.Wrap(rerr.NetworkError, err.Error())
	}
	return body, nil
}
