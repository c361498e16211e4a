package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/hirewatch/hirewatch/pkg/api"
	"github.com/hirewatch/hirewatch/pkg/hiring"
	"github.com/hirewatch/hirewatch/pkg/repo"
)

// Workflow names one of the backend's long-running jobs.
type Workflow string

const (
	Upload Workflow = "upload"
	Match  Workflow = "match"
	Offers Workflow = "offers"
)

// State tracks a single workflow through one run.
type State string

const (
	StateIdle       State = "idle"
	StateTriggering State = "triggering"
	StateTriggered  State = "triggered"
)

// Severity grades a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is one line of workflow progress for the user.
type Notification struct {
	Workflow Workflow  `json:"workflow"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	Time     time.Time `json:"time"`
}

// Notifier receives workflow progress. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// nopNotifier silently discards all notifications.
type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

// Gateway is the backend trigger surface. *api.Client satisfies it.
type Gateway interface {
	UploadCandidates(ctx context.Context, paths []string) (string, error)
	ProcessMatches(ctx context.Context, candidateIDs, roleIDs []string) (string, error)
	GenerateOffers(ctx context.Context, matchIDs []string) (string, error)
}

// Synthesizer produces workflow results locally for demo sessions.
// *demo.Provider satisfies it.
type Synthesizer interface {
	CandidatesFromUploads(filenames []string) []hiring.Candidate
	MatchesFor(candidates []hiring.Candidate, roles []hiring.Role) []hiring.Match
	OffersFor(matches []hiring.Match, roles []hiring.Role) []hiring.Offer
}

// BusyError rejects a trigger while the same workflow is still running.
// Different workflows run independently.
type BusyError struct {
	Workflow Workflow
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("%s workflow is already running", e.Workflow)
}

// IsBusy reports whether err is a concurrent-trigger rejection.
func IsBusy(err error) bool {
	var be *BusyError
	return errors.As(err, &be)
}

// Outcome describes the delayed re-fetch that closes a workflow run.
type Outcome struct {
	Workflow Workflow
	Count    int // collection size after the refresh
	Added    int // net new rows since the trigger
	Err      error
}

// Receipt acknowledges an accepted trigger. Done is buffered and yields
// the one refresh outcome; ignoring it never leaks a goroutine.
type Receipt struct {
	Workflow Workflow
	Message  string
	Done     <-chan Outcome
}

const (
	// DefaultRefreshDelay is how long a live session waits before the
	// single re-fetch. The backend gives no completion signal, so the
	// delay is a guess at job duration, not a poll interval.
	DefaultRefreshDelay = 3 * time.Second

	// DefaultDemoRefreshDelay keeps the started/refreshed choreography
	// visible without making demo sessions crawl.
	DefaultDemoRefreshDelay = time.Second
)

// Canonical acceptance messages, mirroring the backend's responses.
const (
	matchStartedMessage  = "Match processing started"
	offersStartedMessage = "Offer generation started"
)

// Config wires a Runner.
type Config struct {
	Hub      *repo.Hub
	Gateway  Gateway
	Synth    Synthesizer
	Notifier Notifier      // optional; nil = silent
	Delay    time.Duration // optional; <= 0 picks the mode default
}

// Runner drives the three fire-and-forget workflows: upload (files ->
// parsed candidates), match (candidate x role scoring), offers (matches ->
// drafted offers). Each trigger schedules exactly one delayed re-fetch of
// the affected collection.
type Runner struct {
	hub      *repo.Hub
	gw       Gateway
	synth    Synthesizer
	notifier Notifier
	delay    time.Duration

	mu     sync.Mutex
	states map[Workflow]State
}

// New builds a Runner. Hub, Gateway and Synth are required.
func New(cfg Config) *Runner {
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Runner{
		hub:      cfg.Hub,
		gw:       cfg.Gateway,
		synth:    cfg.Synth,
		notifier: notifier,
		delay:    cfg.Delay,
		states: map[Workflow]State{
			Upload: StateIdle,
			Match:  StateIdle,
			Offers: StateIdle,
		},
	}
}

// State reports where a workflow currently stands.
func (r *Runner) State(w Workflow) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[w]
}

// Upload triggers resume parsing for the given files and schedules a
// candidates re-fetch.
func (r *Runner) Upload(ctx context.Context, paths []string) (*Receipt, error) {
	if err := r.begin(Upload); err != nil {
		return nil, err
	}

	store := r.hub.Store()
	demo := store.FallbackMode()

	var ack string
	var err error
	if demo {
		if err = api.CheckUploadPaths(paths); err == nil {
			ack = fmt.Sprintf("Successfully uploaded and processed %d files", len(paths))
		}
	} else {
		ack, err = r.gw.UploadCandidates(ctx, paths)
	}
	if err != nil {
		return nil, r.rejected(Upload, err)
	}

	before := len(store.Candidates())
	return r.accepted(ctx, Upload, ack, before, func(ctx context.Context) (int, error) {
		if demo {
			fresh := r.synth.CandidatesFromUploads(basenames(paths))
			merged := append(store.Candidates(), fresh...)
			store.ReplaceCandidates(merged)
			return len(merged), nil
		}
		list, err := r.hub.Candidates().Refresh(ctx)
		return len(list), err
	}), nil
}

// RunMatching triggers candidate-to-role scoring. Empty id lists mean
// all candidates / all active roles.
func (r *Runner) RunMatching(ctx context.Context, candidateIDs, roleIDs []string) (*Receipt, error) {
	if err := r.begin(Match); err != nil {
		return nil, err
	}

	store := r.hub.Store()
	demo := store.FallbackMode()

	ack := matchStartedMessage
	if !demo {
		msg, err := r.gw.ProcessMatches(ctx, candidateIDs, roleIDs)
		if err != nil {
			return nil, r.rejected(Match, err)
		}
		if msg != "" {
			ack = msg
		}
	}

	before := len(store.Matches())
	return r.accepted(ctx, Match, ack, before, func(ctx context.Context) (int, error) {
		if demo {
			candidates := selectCandidates(store.Candidates(), candidateIDs)
			roles := selectRoles(store.Roles(), roleIDs)
			fresh := r.synth.MatchesFor(candidates, roles)
			merged := upsertMatches(store.Matches(), fresh)
			store.ReplaceMatches(merged)
			return len(merged), nil
		}
		list, err := r.hub.Matches().Refresh(ctx)
		return len(list), err
	}), nil
}

// GenerateOffers triggers offer drafting. An empty id list means every
// match that scored at or above the threshold and stands Matched.
func (r *Runner) GenerateOffers(ctx context.Context, matchIDs []string) (*Receipt, error) {
	if err := r.begin(Offers); err != nil {
		return nil, err
	}

	store := r.hub.Store()
	demo := store.FallbackMode()

	ack := offersStartedMessage
	if !demo {
		msg, err := r.gw.GenerateOffers(ctx, matchIDs)
		if err != nil {
			return nil, r.rejected(Offers, err)
		}
		if msg != "" {
			ack = msg
		}
	}

	before := len(store.Offers())
	return r.accepted(ctx, Offers, ack, before, func(ctx context.Context) (int, error) {
		if demo {
			matches := selectMatches(store, matchIDs)
			fresh := r.synth.OffersFor(matches, store.Roles())
			merged := upsertOffers(store.Offers(), fresh)
			store.ReplaceOffers(merged)
			return len(merged), nil
		}
		list, err := r.hub.Offers().Refresh(ctx)
		return len(list), err
	}), nil
}

// begin claims a workflow or rejects the trigger while one is running.
func (r *Runner) begin(w Workflow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.states[w] != StateIdle {
		return &BusyError{Workflow: w}
	}
	r.states[w] = StateTriggering
	return nil
}

func (r *Runner) setState(w Workflow, s State) {
	r.mu.Lock()
	r.states[w] = s
	r.mu.Unlock()
}

// rejected releases the workflow and surfaces the trigger failure.
func (r *Runner) rejected(w Workflow, err error) error {
	r.setState(w, StateIdle)
	r.notify(w, SeverityError, fmt.Sprintf("%s trigger failed: %v", w, err))
	return err
}

// accepted emits the started notification and schedules the single
// delayed re-fetch. The timer honors ctx, so closing the session cancels
// pending refreshes.
func (r *Runner) accepted(ctx context.Context, w Workflow, ack string, before int, refetch func(context.Context) (int, error)) *Receipt {
	r.setState(w, StateTriggered)
	r.notify(w, SeverityInfo, ack)

	done := make(chan Outcome, 1)
	go func() {
		defer r.setState(w, StateIdle)

		timer := time.NewTimer(r.delayFor())
		defer timer.Stop()
		select {
		case <-ctx.Done():
			r.notify(w, SeverityWarning, fmt.Sprintf("%s refresh canceled: %v", w, ctx.Err()))
			done <- Outcome{Workflow: w, Err: ctx.Err()}
			return
		case <-timer.C:
		}

		count, err := refetch(ctx)
		if err != nil {
			r.notify(w, SeverityWarning, fmt.Sprintf("%s refresh failed: %v", w, err))
			done <- Outcome{Workflow: w, Err: err}
			return
		}

		added := count - before
		if added < 0 {
			added = 0
		}
		r.notify(w, SeveritySuccess, refreshedMessage(w, count, added))
		done <- Outcome{Workflow: w, Count: count, Added: added}
	}()

	return &Receipt{Workflow: w, Message: ack, Done: done}
}

func (r *Runner) delayFor() time.Duration {
	if r.delay > 0 {
		return r.delay
	}
	if r.hub.Store().FallbackMode() {
		return DefaultDemoRefreshDelay
	}
	return DefaultRefreshDelay
}

func (r *Runner) notify(w Workflow, sev Severity, msg string) {
	r.notifier.Notify(Notification{Workflow: w, Message: msg, Severity: sev, Time: time.Now()})
}

func refreshedMessage(w Workflow, count, added int) string {
	switch w {
	case Upload:
		return fmt.Sprintf("Candidates refreshed: %d total, %d new", count, added)
	case Match:
		return fmt.Sprintf("Matches refreshed: %d total, %d new", count, added)
	default:
		return fmt.Sprintf("Offers refreshed: %d total, %d new", count, added)
	}
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}
