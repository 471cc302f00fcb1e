package replay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/fetchkit/packages/fetch"
	"github.com/abdul-hamid-achik/fetchkit/packages/transport"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SaveAndFind(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	ex := &Exchange{
		Method:         "GET",
		URL:            "https://example.com/users",
		RequestHeader:  []transport.Field{{Name: "Accept", Value: "application/json"}},
		StatusCode:     200,
		Status:         "OK",
		ResponseHeader: []transport.Field{{Name: "Content-Type", Value: "application/json"}},
		ResponseBody:   `[{"id":1}]`,
	}
	require.NoError(t, store.Save(ctx, ex))
	assert.NotEmpty(t, ex.ID)
	assert.False(t, ex.CreatedAt.IsZero())

	found, err := store.Find(ctx, "GET", "https://example.com/users")
	require.NoError(t, err)
	assert.Equal(t, ex.ID, found.ID)
	assert.Equal(t, `[{"id":1}]`, found.ResponseBody)
	assert.Equal(t, ex.RequestHeader, found.RequestHeader)
	assert.Equal(t, ex.ResponseHeader, found.ResponseHeader)
}

func TestStore_FindReturnsLatest(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first := &Exchange{Method: "GET", URL: "https://example.com", StatusCode: 200, Status: "OK", ResponseBody: "old"}
	second := &Exchange{Method: "GET", URL: "https://example.com", StatusCode: 200, Status: "OK", ResponseBody: "new"}
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	found, err := store.Find(ctx, "GET", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "new", found.ResponseBody)
}

func TestStore_FindMiss(t *testing.T) {
	store := openStore(t)

	_, err := store.Find(context.Background(), "GET", "https://example.com/none")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_List(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Exchange{Method: "GET", URL: "https://a", StatusCode: 200, Status: "OK"}))
	require.NoError(t, store.Save(ctx, &Exchange{Method: "POST", URL: "https://b", StatusCode: 201, Status: "Created"}))

	exchanges, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, exchanges, 2)
	assert.Equal(t, "https://a", exchanges[0].URL)
	assert.Equal(t, "https://b", exchanges[1].URL)
}

func TestRecordThenReplay(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	live := transport.Func(func(ctx context.Context, req *transport.Request) (*transport.Result, error) {
		return &transport.Result{
			StatusCode: 200,
			Status:     "OK",
			Header:     []transport.Field{{Name: "Content-Type", Value: "application/json"}},
			Body:       []byte(`{"recorded":true}`),
		}, nil
	})

	recording, err := fetch.New(NewRecordTransport(live, store))
	require.NoError(t, err)

	resp, err := recording.Do(ctx, "https://example.com/data", nil)
	require.NoError(t, err)
	assert.True(t, resp.OK())

	// Replay the same call without the live transport.
	replaying, err := fetch.New(NewReplayTransport(store))
	require.NoError(t, err)

	replayed, err := replaying.Do(ctx, "https://example.com/data", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, replayed.StatusCode)
	assert.Equal(t, `{"recorded":true}`, replayed.Text())
	assert.Equal(t, "application/json", replayed.ContentType())

	// A request that was never recorded fails.
	_, err = replaying.Do(ctx, "https://example.com/other", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplayTransport_MatchesMethod(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Exchange{
		Method: "POST", URL: "https://example.com", StatusCode: 201, Status: "Created",
	}))

	tr := NewReplayTransport(store)

	_, err := tr.RoundTrip(ctx, &transport.Request{Method: "GET", URL: "https://example.com"})
	assert.ErrorIs(t, err, ErrNotFound)

	result, err := tr.RoundTrip(ctx, &transport.Request{Method: "POST", URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, 201, result.StatusCode)
}
