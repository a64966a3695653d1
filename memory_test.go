package offlinecache_test

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
	"github.com/stock-finanzas/offlinecache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	st := &stats.TrackerMock{}
	c := offlinecache.NewMemory(offlinecache.MemoryConfig{
		Name:   "test",
		Logger: ctxd.NoOpLogger{},
		Stats:  st,
	})

	resp, err := c.Read(ctx, "GET /")
	assert.Nil(t, resp)
	assert.EqualError(t, err, offlinecache.ErrEntryNotFound.Error())

	stored := &offlinecache.Response{
		Status: http.StatusOK,
		Header: http.Header{"Content-Type": []string{"text/html"}},
		Body:   []byte("<html>shell</html>"),
	}
	require.NoError(t, c.Write(ctx, "GET /", stored))

	resp, err = c.Read(ctx, "GET /")
	require.NoError(t, err)
	assert.Equal(t, stored, resp)

	// Mutating the served copy does not touch the stored bytes.
	resp.Body[0] = 'X'
	resp.Header.Set("Content-Type", "text/plain")

	resp, err = c.Read(ctx, "GET /")
	require.NoError(t, err)
	assert.Equal(t, []byte("<html>shell</html>"), resp.Body)
	assert.Equal(t, "text/html", resp.Header.Get("Content-Type"))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, st.Int(offlinecache.MetricWrite))
	assert.Equal(t, 2, st.Int(offlinecache.MetricHit))
	assert.Equal(t, 1, st.Int(offlinecache.MetricMiss))

	c.RemoveAll()
	assert.Equal(t, 0, c.Len())

	require.NoError(t, c.Close())

	_, err = c.Read(ctx, "GET /")
	assert.EqualError(t, err, offlinecache.ErrStoreClosed.Error())

	err = c.Write(ctx, "GET /", stored)
	assert.EqualError(t, err, offlinecache.ErrStoreClosed.Error())
}

func TestMemory_maxEntries(t *testing.T) {
	ctx := context.Background()
	st := &stats.TrackerMock{}
	c := offlinecache.NewMemory(offlinecache.MemoryConfig{
		MaxEntries: 3,
		Stats:      st,
	})

	for i := 1; i <= 4; i++ {
		key := "GET /item/" + strconv.Itoa(i)
		require.NoError(t, c.Write(ctx, key, &offlinecache.Response{Status: http.StatusOK}))
	}

	assert.Equal(t, 3, c.Len())

	// Oldest write goes first.
	_, err := c.Read(ctx, "GET /item/1")
	assert.True(t, errors.Is(err, offlinecache.ErrEntryNotFound))

	_, err = c.Read(ctx, "GET /item/4")
	assert.NoError(t, err)

	assert.Equal(t, 1, st.Int(offlinecache.MetricEvict))
}

func TestMemory_Walk(t *testing.T) {
	ctx := context.Background()
	c := offlinecache.NewMemory()

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Write(ctx, strconv.Itoa(i), &offlinecache.Response{Status: http.StatusOK}))
	}

	n, err := c.Walk(func(key string, resp *offlinecache.Response) error {
		assert.Equal(t, http.StatusOK, resp.Status)

		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	walkErr := errors.New("stop")

	_, err = c.Walk(func(key string, resp *offlinecache.Response) error {
		return walkErr
	})
	assert.Equal(t, walkErr, err)
}
