package session

import (
	"context"
	"errors"
	"sync"

	"github.com/hirewatch/hirewatch/pkg/api"
	"github.com/hirewatch/hirewatch/pkg/hiring"
)

// Collection names the four entity collections a session mirrors.
type Collection string

const (
	Candidates Collection = "candidates"
	Roles      Collection = "roles"
	Matches    Collection = "matches"
	Offers     Collection = "offers"
)

// Gateway is the slice of the API client the store needs for bootstrap.
type Gateway interface {
	ListCandidates(ctx context.Context) ([]hiring.Candidate, error)
	ListRoles(ctx context.Context, activeOnly bool) ([]hiring.Role, error)
	ListMatches(ctx context.Context, filter api.MatchFilter) ([]hiring.Match, error)
	ListOffers(ctx context.Context, filter api.OfferFilter) ([]hiring.Offer, error)
}

// FallbackProvider serves the canned collections loaded when every
// bootstrap fetch comes back failed or empty.
type FallbackProvider interface {
	Candidates() []hiring.Candidate
	Roles() []hiring.Role
	Matches() []hiring.Match
	Offers() []hiring.Offer
}

// Logger is the minimal logging surface the store uses. logrus satisfies it.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
func (nopLogger) Debugf(string, ...any) {}

// Options tunes a Store.
type Options struct {
	// Log receives bootstrap progress and warnings. Defaults to a no-op.
	Log Logger
	// ForceFallback skips the network entirely and starts the session on
	// the fallback dataset.
	ForceFallback bool
}

// Store holds one session's view of the four collections. It is an
// explicit object: construct it, bootstrap it, and pass it to whatever
// needs state. All methods are safe for concurrent use.
//
// Returned slices are read views over copied headers; treat elements as
// read-only and mutate through the Replace/Put methods.
type Store struct {
	gw   Gateway
	fb   FallbackProvider
	log  Logger
	opts Options

	mu         sync.RWMutex
	candidates []hiring.Candidate
	roles      []hiring.Role
	matches    []hiring.Match
	offers     []hiring.Offer
	versions   map[Collection]uint64
	loading    bool
	fallback   bool
	err        error
}

// New builds an empty store. Call Bootstrap before reading from it.
func New(gw Gateway, fb FallbackProvider, opts Options) *Store {
	log := opts.Log
	if log == nil {
		log = nopLogger{}
	}
	return &Store{
		gw:   gw,
		fb:   fb,
		log:  log,
		opts: opts,
		versions: map[Collection]uint64{
			Candidates: 0, Roles: 0, Matches: 0, Offers: 0,
		},
	}
}

// Bootstrap loads the four collections: all fetches fire concurrently and
// partial failure is tolerated. Only when no fetch yields data does the
// session degrade to the fallback dataset. The returned error mirrors the
// recorded session error and is nil on a clean live bootstrap.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	if s.opts.ForceFallback {
		s.log.Infof("[session] fallback forced, skipping bootstrap fetches")
		s.installFallback(nil)
		return nil
	}

	var (
		wg         sync.WaitGroup
		candidates []hiring.Candidate
		roles      []hiring.Role
		matches    []hiring.Match
		offers     []hiring.Offer
		errs       [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		candidates, errs[0] = s.gw.ListCandidates(ctx)
	}()
	go func() {
		defer wg.Done()
		// inactive roles stay addressable for historical matches
		roles, errs[1] = s.gw.ListRoles(ctx, false)
	}()
	go func() {
		defer wg.Done()
		matches, errs[2] = s.gw.ListMatches(ctx, api.MatchFilter{})
	}()
	go func() {
		defer wg.Done()
		offers, errs[3] = s.gw.ListOffers(ctx, api.OfferFilter{})
	}()
	wg.Wait()

	for i, name := range []Collection{Candidates, Roles, Matches, Offers} {
		if errs[i] != nil {
			s.log.Warnf("[session] %s fetch failed: %v", name, errs[i])
		}
	}

	var firstErr error
	for _, err := range errs {
		if err != nil {
			firstErr = err
			break
		}
	}

	anyData := len(candidates) > 0 || len(roles) > 0 || len(matches) > 0 || len(offers) > 0
	if !anyData {
		s.log.Warnf("[session] no collection returned data, degrading to the fallback dataset")
		s.installFallback(firstErr)
		return s.Err()
	}

	s.mu.Lock()
	s.candidates = candidates
	s.roles = roles
	s.matches = matches
	s.offers = offers
	for _, name := range []Collection{Candidates, Roles, Matches, Offers} {
		s.versions[name]++
	}
	s.fallback = false
	s.err = firstErr
	s.mu.Unlock()

	s.log.Infof("[session] bootstrap done: %d candidates, %d roles, %d matches, %d offers",
		len(candidates), len(roles), len(matches), len(offers))
	return firstErr
}

// installFallback swaps in the canned dataset. A nil cause means the
// generic demo notice is recorded instead of a specific failure.
func (s *Store) installFallback(cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.candidates = s.fb.Candidates()
	s.roles = s.fb.Roles()
	s.matches = s.fb.Matches()
	s.offers = s.fb.Offers()
	for _, name := range []Collection{Candidates, Roles, Matches, Offers} {
		s.versions[name]++
	}
	s.fallback = true
	if cause != nil {
		s.err = cause
	} else if !s.opts.ForceFallback {
		s.err = errors.New(FallbackNotice)
	} else {
		s.err = nil
	}
}

// FallbackNotice is the generic banner text for a degraded session.
const FallbackNotice = "Backend unavailable - showing demo data"

// Loading reports whether Bootstrap is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// FallbackMode reports whether the session runs on the fallback dataset.
func (s *Store) FallbackMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fallback
}

// Err returns the recorded session error: the first bootstrap failure, or
// the demo notice when the session degraded without a specific cause.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Version returns the monotonic swap counter of a collection.
func (s *Store) Version(name Collection) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.versions[name]
}
