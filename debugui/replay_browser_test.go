package debugui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/replay"
)

func TestReplayBrowserFilter(t *testing.T) {
	store, err := replay.NewFileStore(t.TempDir(), replay.Binary)
	require.NoError(t, err)

	for _, id := range []string{"classic-1", "sticky-1", "Classic-2"} {
		require.NoError(t, store.Save(context.Background(), &replay.Session{ID: id, Variant: "classic"}))
	}

	rb := NewReplayBrowser(store, 10, nil)
	require.NoError(t, rb.err)
	assert.Len(t, rb.filtered(), 3)

	rb.filterText = "classic"
	assert.ElementsMatch(t, []string{"classic-1", "Classic-2"}, rb.filtered())

	require.NoError(t, store.Save(context.Background(), &replay.Session{ID: "fusion-1", Variant: "fusion"}))
	rb.filterText = ""
	assert.Len(t, rb.filtered(), 3)
	rb.Refresh()
	assert.Len(t, rb.filtered(), 4)
}
