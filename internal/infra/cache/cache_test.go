package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheReturnsValueWithinTTL(t *testing.T) {
	now := time.Unix(1700000000, 0)
	clock := func() time.Time { return now }
	c := New(5*time.Minute, clock)

	c.Set("products:all", json.RawMessage(`[{"id":1}]`))

	now = now.Add(5*time.Minute - time.Second)
	got, ok := c.Get("products:all")
	require.True(t, ok)
	require.JSONEq(t, `[{"id":1}]`, string(got))
}

func TestCacheMissAtExactTTL(t *testing.T) {
	now := time.Unix(1700000000, 0)
	clock := func() time.Time { return now }
	c := New(5*time.Minute, clock)

	c.Set("products:all", json.RawMessage(`[]`))

	now = now.Add(5 * time.Minute)
	_, ok := c.Get("products:all")
	require.False(t, ok)
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	c := New(time.Minute, nil)
	_, ok := c.Get("missing")
	require.False(t, ok)
}

func TestCacheSetOverwrites(t *testing.T) {
	now := time.Unix(1700000000, 0)
	clock := func() time.Time { return now }
	c := New(5*time.Minute, clock)

	c.Set("k", json.RawMessage(`"old"`))
	now = now.Add(10 * time.Minute)
	c.Set("k", json.RawMessage(`"new"`))

	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, `"new"`, string(got))
}

func TestCacheStaleEntryRevivedBySet(t *testing.T) {
	now := time.Unix(1700000000, 0)
	clock := func() time.Time { return now }
	c := New(time.Minute, clock)

	c.Set("k", json.RawMessage(`1`))
	now = now.Add(2 * time.Minute)

	_, ok := c.Get("k")
	require.False(t, ok)

	c.Set("k", json.RawMessage(`2`))
	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, `2`, string(got))
}
