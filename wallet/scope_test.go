package wallet

import (
	"context"
	"testing"
	"time"

	"charm-wallet-connect/provider/providertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeReleaseStopsWatchers(t *testing.T) {
	p := &providertest.Provider{}
	scope := NewScope(context.Background())

	errs := make(chan error, 2)
	go func() {
		errs <- scope.Run((&AccountWatcher{Provider: p, Deliver: func([]string) {}}).Run)
	}()
	go func() {
		errs <- scope.Run((&ChainWatcher{Provider: p, Deliver: func(string) {}}).Run)
	}()
	require.Eventually(t, func() bool {
		return p.Calls("eth_subscribe:accountsChanged") == 1 && p.Calls("eth_subscribe:chainChanged") == 1
	}, waitFor, time.Millisecond)

	var order []string
	scope.OnRelease(func() { order = append(order, "first") })
	scope.OnRelease(func() { order = append(order, "second"); p.Close() })

	scope.Release()
	for range 2 {
		select {
		case err := <-errs:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(waitFor):
			t.Fatal("watcher still running after release")
		}
	}

	assert.Equal(t, []string{"second", "first"}, order)
	assert.True(t, p.Closed())
	assert.Zero(t, p.PushAccounts([]string{"0xAA"}))
	assert.Zero(t, p.PushChain("0x1"))
}

func TestScopeReleaseIdempotent(t *testing.T) {
	scope := NewScope(context.Background())
	calls := 0
	scope.OnRelease(func() { calls++ })

	scope.Release()
	scope.Release()
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, scope.Context().Err(), context.Canceled)

	ran := false
	err := scope.Run(func(context.Context) error { ran = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)

	scope.OnRelease(func() { calls++ })
	assert.Equal(t, 2, calls, "cleanups registered after release run immediately")
}
