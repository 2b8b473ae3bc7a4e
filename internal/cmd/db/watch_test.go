package db

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/loader"
	"github.com/opmodel/osinfo/internal/testutil"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := testutil.TempDir(t)
	testutil.WriteFile(t, dir, "devices.xml", testutil.Doc(`<device id="a"/>`))

	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, &out, []string{dir}, loader.WithDebounce(20*time.Millisecond))
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "1 devices")
	}, 5*time.Second, 10*time.Millisecond)

	testutil.WriteFile(t, dir, "more.xml", testutil.Doc(`<device id="b"/>`))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "2 devices")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestRunWatch_InitialLoadFails(t *testing.T) {
	defer goleak.VerifyNone(t)

	err := runWatch(context.Background(), &bytes.Buffer{},
		[]string{testutil.FixturePath(t, "invalid", "wrong-root.xml")})
	require.Error(t, err)
}

func TestWatchPaths(t *testing.T) {
	paths, roots, err := watchPaths([]string{"/a", "/b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, paths)
	assert.False(t, roots)

	existing := testutil.TempDir(t)
	t.Setenv(loader.EnvDataDir, "")
	t.Setenv(loader.EnvSystemDir, existing)
	t.Setenv(loader.EnvLocalDir, existing+"/missing-local")
	t.Setenv(loader.EnvUserDir, existing+"/missing-user")
	paths, roots, err = watchPaths(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{existing}, paths)
	assert.True(t, roots)

	t.Setenv(loader.EnvSystemDir, existing+"/missing-system")
	_, _, err = watchPaths(nil)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestRunWatch_DefaultRootsOverlay(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Setenv(loader.EnvDataDir, "")
	t.Setenv(loader.EnvSystemDir, testutil.FixturePath(t, "overlay", "system"))
	t.Setenv(loader.EnvLocalDir, filepath.Join(testutil.TempDir(t), "absent"))
	t.Setenv(loader.EnvUserDir, testutil.FixturePath(t, "overlay", "user"))

	paths, roots, err := watchPaths(nil)
	require.NoError(t, err)
	require.True(t, roots)

	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, &out, paths, loader.WithRoots())
	}()

	// user/devices.xml replaces system/devices.xml, leaving sound and nic-user.
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "2 devices")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
