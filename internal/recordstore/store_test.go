package recordstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abtweb/studio-api/internal/recordstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupStore(t *testing.T) *recordstore.Store {
	t.Helper()
	store, err := recordstore.OpenSQLite(filepath.Join(t.TempDir(), "store.db"), zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestStore_SetGetRoundtrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	in := map[string]string{"company": "밝은내일 웹"}
	require.NoError(t, store.Set(ctx, "adminSettings", in))

	var out map[string]string
	require.NoError(t, store.Get(ctx, "adminSettings", &out))
	assert.Equal(t, in, out)
}

func TestStore_GetMissingKey(t *testing.T) {
	store := setupStore(t)

	var out []string
	err := store.Get(context.Background(), "quotesData", &out)
	assert.ErrorIs(t, err, recordstore.ErrKeyNotFound)
}

func TestStore_MalformedRecord(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	// a JSON string is valid JSON but not a slice
	require.NoError(t, store.Set(ctx, "quotesData", "oops"))

	var out []string
	err := store.Get(ctx, "quotesData", &out)
	assert.ErrorIs(t, err, recordstore.ErrMalformedRecord)
}

func TestStore_RevisionIncrements(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	rev, err := store.Revision(ctx, "quotesData")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rev)

	require.NoError(t, store.Set(ctx, "quotesData", []string{"a"}))
	rev, err = store.Revision(ctx, "quotesData")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rev)

	require.NoError(t, store.Set(ctx, "quotesData", []string{"a", "b"}))
	rev, err = store.Revision(ctx, "quotesData")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rev)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "quotesData", []string{"a"}))
	require.NoError(t, store.Delete(ctx, "quotesData"))
	require.NoError(t, store.Delete(ctx, "quotesData"))

	var out []string
	assert.ErrorIs(t, store.Get(ctx, "quotesData", &out), recordstore.ErrKeyNotFound)
}

func TestStore_BusSignalsOnWrite(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	changes, cancel := store.Bus().Subscribe("quotesData")
	defer cancel()

	require.NoError(t, store.Set(ctx, "quotesData", []string{"a"}))

	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatal("expected a change tick after Set")
	}

	// an unrelated key does not tick this subscription
	require.NoError(t, store.Set(ctx, "customersData", []string{"b"}))
	select {
	case <-changes:
		t.Fatal("unexpected tick for unrelated key")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStore_Dump(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "quotesData", []string{"a"}))
	require.NoError(t, store.Set(ctx, "adminSettings", map[string]int{"n": 1}))

	dump, err := store.Dump(ctx)
	require.NoError(t, err)
	assert.Len(t, dump, 2)
	assert.JSONEq(t, `["a"]`, string(dump["quotesData"]))
}
