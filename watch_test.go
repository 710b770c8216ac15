package followthemoney

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchPath(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	thing := []byte("Thing:\n  abstract: true\n  properties:\n    name:\n      type: name\n")
	require.NoError(os.WriteFile(filepath.Join(dir, "thing.yaml"), thing, 0o644))

	type result struct {
		model *Model
		err   error
	}
	results := make(chan result, 8)
	w, err := WatchPath(dir, func(m *Model, err error) {
		results <- result{model: m, err: err}
	})
	require.NoError(err)
	defer w.Close()

	// The initial load is delivered synchronously.
	initial := <-results
	require.NoError(initial.err)
	require.NotNil(initial.model.Get("Thing"))
	require.Nil(initial.model.Get("Person"))

	person := []byte("Person:\n  extends:\n    - Thing\n  required:\n    - name\n")
	require.NoError(os.WriteFile(filepath.Join(dir, "person.yaml"), person, 0o644))

	select {
	case rebuilt := <-results:
		require.NoError(rebuilt.err)
		require.NotNil(rebuilt.model.Get("Person"))
		require.True(rebuilt.model.IsA("Person", "Thing"))
	case <-time.After(10 * time.Second):
		t.Fatal("no rebuild after definition change")
	}

	require.NoError(w.Close())
	require.NoError(w.Close(), "close is idempotent")
}
