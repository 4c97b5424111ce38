package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"
)

func TestWatcherDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w, err := New(dir, []string{"edf.csv", "esc.csv"}, 100*time.Millisecond, func(context.Context) { calls.Add(1) })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := range 5 {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "edf.csv"), []byte{byte('a' + i)}, 0o644))
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 20*time.Millisecond)

	// unrelated files never trigger
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), []string{"edf.csv"}, 0, func(context.Context) {})
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	w := &Watcher{files: sets.New("edf.csv")}

	assert.True(t, w.relevant(fsnotify.Event{Name: "/data/edf.csv", Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/data/edf.csv", Op: fsnotify.Rename}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/data/edf.csv", Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/data/esc.csv", Op: fsnotify.Write}))
}
