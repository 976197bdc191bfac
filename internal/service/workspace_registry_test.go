package service

import (
	"context"
	"testing"
	"time"

	"doctor-finder/internal/domain/entity"
	"doctor-finder/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (*WorkspaceRegistry, *manualClock) {
	t.Helper()
	clock := newManualClock()
	registry := NewWorkspaceRegistry(
		quietLogger(),
		repository.NewMemoryStorage(),
		&stubAuthBackend{},
		NewNotificationService(quietLogger()),
		WorkspaceOptions{StorageNamespace: "auth-storage", Clock: clock, CountdownSeconds: 60},
	)
	t.Cleanup(registry.Stop)
	return registry, clock
}

func TestAcquireCreatesWorkspaceOnce(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	ws, release := registry.Acquire(ctx, "client-a")
	assert.Equal(t, entity.AllSpecialties, ws.Filter.Specialty)
	ws.Filter.Query = "chen"
	release()

	again, release := registry.Acquire(ctx, "client-a")
	assert.Same(t, ws, again)
	assert.Equal(t, "chen", again.Filter.Query)
	release()

	assert.Equal(t, 1, registry.Len())
}

func TestAcquireRehydratesAuthFromStorage(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	ws, release := registry.Acquire(ctx, "client-a")
	_, err := ws.Auth.Login(ctx, "jane@example.com", "x")
	require.NoError(t, err)
	release()

	registry.now = func() time.Time { return time.Now().Add(time.Hour) }
	require.Equal(t, 1, registry.Sweep(time.Minute))

	restored, release := registry.Acquire(ctx, "client-a")
	defer release()
	assert.NotSame(t, ws, restored)
	assert.True(t, restored.Auth.State().IsAuthenticated)
}

func TestSweepStopsCountdownAndSkipsActive(t *testing.T) {
	registry, clock := newTestRegistry(t)
	ctx := context.Background()

	ws, release := registry.Acquire(ctx, "idle")
	ws.OTPCountdown.Start()
	ticker := clock.next(t)
	release()

	_, releaseBusy := registry.Acquire(ctx, "busy")

	registry.now = func() time.Time { return time.Now().Add(time.Hour) }
	assert.Equal(t, 1, registry.Sweep(time.Minute))
	assert.False(t, ticker.fire())
	assert.False(t, ws.OTPCountdown.Running())

	releaseBusy()
	assert.Equal(t, 1, registry.Len())
}

func TestWorkspacesAreIsolated(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	a, release := registry.Acquire(ctx, "a")
	_, err := a.Auth.Login(ctx, "a@example.com", "x")
	require.NoError(t, err)
	release()

	b, release := registry.Acquire(ctx, "b")
	defer release()
	assert.False(t, b.Auth.State().IsAuthenticated)
}

func TestAcquireAfterStopTearsDownOnRelease(t *testing.T) {
	registry, clock := newTestRegistry(t)
	ctx := context.Background()

	registry.Stop()

	ws, release := registry.Acquire(ctx, "late")
	assert.Equal(t, entity.AllSpecialties, ws.Filter.Specialty)
	ws.OTPCountdown.Start()
	ticker := clock.next(t)
	release()

	assert.False(t, ticker.fire())
	assert.False(t, ws.OTPCountdown.Running())
	assert.Equal(t, 0, registry.Len())

	again, release := registry.Acquire(ctx, "late")
	defer release()
	assert.NotSame(t, ws, again)
}
