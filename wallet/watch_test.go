package wallet

import (
	"context"
	"errors"
	"testing"
	"time"

	"charm-wallet-connect/provider/providertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

func startAccountWatcher(t *testing.T, ctx context.Context, p *providertest.Provider) (<-chan []string, <-chan error) {
	t.Helper()
	got := make(chan []string, 16)
	done := make(chan error, 1)
	w := &AccountWatcher{Provider: p, Deliver: func(a []string) { got <- a }}
	go func() { done <- w.Run(ctx) }()
	return got, done
}

func pushAccounts(t *testing.T, p *providertest.Provider, accounts []string) {
	t.Helper()
	require.Eventually(t, func() bool { return p.PushAccounts(accounts) > 0 }, waitFor, time.Millisecond)
}

func pushChain(t *testing.T, p *providertest.Provider, id string) {
	t.Helper()
	require.Eventually(t, func() bool { return p.PushChain(id) > 0 }, waitFor, time.Millisecond)
}

func TestAccountWatcherDeliversInOrder(t *testing.T) {
	p := &providertest.Provider{}
	ctx, cancel := context.WithCancel(context.Background())
	got, done := startAccountWatcher(t, ctx, p)

	updates := [][]string{{"0xAA"}, {"0xBB", "0xAA"}, {}}
	for _, u := range updates {
		pushAccounts(t, p, u)
	}
	for _, want := range updates {
		select {
		case a := <-got:
			assert.Equal(t, want, a)
		case <-time.After(waitFor):
			t.Fatal("update not delivered")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(waitFor):
		t.Fatal("watcher did not stop on cancel")
	}
	assert.Zero(t, p.PushAccounts([]string{"0xCC"}), "subscription released after cancel")
}

func TestChainWatcherOverwrites(t *testing.T) {
	p := &providertest.Provider{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewMachine(true)
	got := make(chan string, 4)
	w := &ChainWatcher{Provider: p, Deliver: func(id string) { got <- id }}
	go func() { _ = w.Run(ctx) }()

	pushChain(t, p, "0x1")
	pushChain(t, p, "0xaa36a7")
	for range 2 {
		select {
		case id := <-got:
			m.ApplyChain(id)
		case <-time.After(waitFor):
			t.Fatal("chain update not delivered")
		}
	}
	assert.Equal(t, "0xaa36a7", m.ChainID())
	assert.Equal(t, Disconnected, m.Status(), "chain updates never touch the status")
}

func TestWatcherStreamEnded(t *testing.T) {
	p := &providertest.Provider{}
	_, done := startAccountWatcher(t, context.Background(), p)

	// wait for the subscription before ending it
	pushAccounts(t, p, []string{"0xAA"})
	closed := errors.New("websocket closed")
	p.EndStreams(closed)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrStreamEnded)
		assert.ErrorIs(t, err, closed)
	case <-time.After(waitFor):
		t.Fatal("watcher did not notice the stream ending")
	}
}

func TestWatcherSubscribeError(t *testing.T) {
	unsupported := errors.New("notifications not supported")
	p := &providertest.Provider{SubscribeErr: unsupported}

	w := &ChainWatcher{Provider: p, Deliver: func(string) { t.Error("nothing should be delivered") }}
	err := w.Run(context.Background())
	assert.ErrorIs(t, err, unsupported)
	assert.Contains(t, err.Error(), "chainChanged")
}

func TestEndToEndWithWatchers(t *testing.T) {
	p := &providertest.Provider{
		ChainResult:    "0x1",
		AccountsResult: []string{"0xAA"},
	}
	scope := NewScope(context.Background())
	defer scope.Release()

	m := NewMachine(true)
	accounts := make(chan []string, 8)
	chains := make(chan string, 8)

	go func() {
		_ = scope.Run((&AccountWatcher{Provider: p, Deliver: func(a []string) { accounts <- a }}).Run)
	}()
	go func() {
		_ = scope.Run((&ChainWatcher{Provider: p, Deliver: func(id string) { chains <- id }}).Run)
	}()

	m.ApplySync(InitialSync(scope.Context(), p))
	assert.Equal(t, Snapshot{Status: Connected, ChainID: "0x1", Address: "0xAA"}, m.Snapshot())

	pushAccounts(t, p, []string{})
	select {
	case a := <-accounts:
		m.ApplyAccounts(a)
	case <-time.After(waitFor):
		t.Fatal("account update not delivered")
	}
	assert.Equal(t, Snapshot{Status: Disconnected, ChainID: "0x1", Address: Unavailable}, m.Snapshot())
}
