package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"doctor-finder/internal/domain/entity"
	domainGateway "doctor-finder/internal/domain/gateway"
	domainRepo "doctor-finder/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// Workspace is the state of one API client, identified by its client id.
// All fields are guarded by the workspace lock taken by WorkspaceRegistry.Acquire.
type Workspace struct {
	ClientID  string
	Filter    entity.FilterState
	Selection entity.BookingSelection
	Auth      *AuthSession

	// OTP verification
	OTPEmail      string
	OTPCountdown  *Countdown
	EmailVerified bool

	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
	ready    bool
	closed   bool
}

// WorkspaceOptions configures the workspaces created by the registry.
type WorkspaceOptions struct {
	StorageNamespace string
	Clock            Clock
	CountdownTick    time.Duration
	CountdownSeconds int
}

// WorkspaceRegistry creates workspaces on first use and removes idle ones.
//
// Lock ordering: the registry map is never held while a workspace lock is
// taken; a workspace removed by Sweep is marked closed so Acquire retries.
type WorkspaceRegistry struct {
	log         *logrus.Logger
	storage     domainRepo.KeyValueStorage
	authBackend domainGateway.AuthBackend
	notifier    Notifier
	opts        WorkspaceOptions
	now         func() time.Time

	workspaces sync.Map // map[string]*Workspace
	stopped    atomic.Bool
}

func NewWorkspaceRegistry(
	log *logrus.Logger,
	storage domainRepo.KeyValueStorage,
	authBackend domainGateway.AuthBackend,
	notifier Notifier,
	opts WorkspaceOptions,
) *WorkspaceRegistry {
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.CountdownTick <= 0 {
		opts.CountdownTick = time.Second
	}
	return &WorkspaceRegistry{
		log:         log,
		storage:     storage,
		authBackend: authBackend,
		notifier:    notifier,
		opts:        opts,
		now:         time.Now,
	}
}

// Acquire returns the locked workspace of clientID, creating and rehydrating
// it on first use. The caller must call the returned release func.
//
// After Stop the workspace still serves the caller but is torn down on
// release, so no countdown outlives the registry.
func (r *WorkspaceRegistry) Acquire(ctx context.Context, clientID string) (*Workspace, func()) {
	for {
		value, _ := r.workspaces.LoadOrStore(clientID, &Workspace{ClientID: clientID})
		ws := value.(*Workspace)

		ws.mu.Lock()
		if ws.closed {
			ws.mu.Unlock()
			continue
		}
		if !ws.ready {
			r.materialize(ctx, ws)
		}
		ws.lastUsed.Store(r.now().Unix())

		if r.stopped.Load() {
			return ws, func() {
				r.teardown(ws)
				r.workspaces.CompareAndDelete(clientID, ws)
				ws.mu.Unlock()
			}
		}
		return ws, ws.mu.Unlock
	}
}

// materialize sets up a fresh workspace. Called with the workspace lock held.
func (r *WorkspaceRegistry) materialize(ctx context.Context, ws *Workspace) {
	ws.Filter = entity.DefaultFilterState()
	ws.Auth = NewAuthSession(r.log, r.storage, r.storageKey(ws.ClientID), r.authBackend)
	ws.Auth.Rehydrate(ctx)

	clientID := ws.ClientID
	ws.OTPCountdown = NewCountdown(r.opts.Clock, r.opts.CountdownTick, r.opts.CountdownSeconds, func() {
		r.log.Debugf("OTP resend enabled for client %s", clientID)
	})
	ws.ready = true
	r.log.Debugf("Workspace created for client %s", clientID)
}

// storageKey is the client-scoped key of the fixed auth storage namespace.
func (r *WorkspaceRegistry) storageKey(clientID string) string {
	return fmt.Sprintf("%s:%s", clientID, r.opts.StorageNamespace)
}

// Sweep tears down workspaces unused for longer than idle. Workspaces that
// are currently locked are skipped.
func (r *WorkspaceRegistry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle).Unix()
	var swept int

	r.workspaces.Range(func(key, value any) bool {
		ws, ok := value.(*Workspace)
		if !ok {
			return true
		}

		if ws.mu.TryLock() {
			if ws.lastUsed.Load() < cutoff {
				r.teardown(ws)
				r.workspaces.Delete(key)
				swept++
			}
			ws.mu.Unlock()
		}
		return true
	})

	if swept > 0 {
		r.log.Infof("Swept %d idle workspaces", swept)
	}
	return swept
}

// teardown stops timers of a workspace. Called with the workspace lock held.
func (r *WorkspaceRegistry) teardown(ws *Workspace) {
	ws.closed = true
	if ws.OTPCountdown != nil {
		ws.OTPCountdown.Stop()
	}
	r.notifier.Forget(ws.ClientID)
}

// Stop tears down every workspace. Safe to call multiple times.
func (r *WorkspaceRegistry) Stop() {
	if !r.stopped.CompareAndSwap(false, true) {
		return
	}
	r.workspaces.Range(func(key, value any) bool {
		ws := value.(*Workspace)
		ws.mu.Lock()
		r.teardown(ws)
		ws.mu.Unlock()
		r.workspaces.Delete(key)
		return true
	})
	r.log.Info("Workspace registry stopped")
}

// Len returns the number of live workspaces.
func (r *WorkspaceRegistry) Len() int {
	n := 0
	r.workspaces.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
