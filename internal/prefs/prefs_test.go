package prefs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/querycache"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRefetchIntervalDefault(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, querycache.DefaultInterval, s.RefetchInterval())
}

func TestRefetchIntervalRoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetRefetchInterval(10*time.Second))
	assert.Equal(t, 10*time.Second, s.RefetchInterval())

	require.NoError(t, s.SetRefetchInterval(time.Minute))
	assert.Equal(t, time.Minute, s.RefetchInterval())
}

func TestSetRefetchIntervalRejectsUnknown(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.SetRefetchInterval(7*time.Second))
	assert.Equal(t, querycache.DefaultInterval, s.RefetchInterval())
}

func TestCorruptIntervalFallsBack(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.set(keyRefetchInterval, "garbage"))
	assert.Equal(t, querycache.DefaultInterval, s.RefetchInterval())

	// A parseable but unsupported duration also falls back.
	require.NoError(t, s.set(keyRefetchInterval, "42s"))
	assert.Equal(t, querycache.DefaultInterval, s.RefetchInterval())
}

func TestNotifPanelOpenRoundTrip(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.NotifPanelOpen())

	require.NoError(t, s.SetNotifPanelOpen(true))
	assert.True(t, s.NotifPanelOpen())

	require.NoError(t, s.SetNotifPanelOpen(false))
	assert.False(t, s.NotifPanelOpen())
}

func TestCorruptPanelFlagFallsBack(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.set(keyNotifPanelOpen, "maybe"))
	assert.False(t, s.NotifPanelOpen())
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetRefetchInterval(5*time.Second))
	require.NoError(t, s.SetNotifPanelOpen(true))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, 5*time.Second, s.RefetchInterval())
	assert.True(t, s.NotifPanelOpen())
}
