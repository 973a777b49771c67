package provider

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"charm-wallet-connect/provider/providertest"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	fake := &providertest.Provider{}
	refused := errors.New("connection refused")

	var dialed []string
	dial := func(_ context.Context, url string) (Provider, error) {
		dialed = append(dialed, url)
		if url == "ws://up" {
			return fake, nil
		}
		return nil, refused
	}

	t.Run("first reachable candidate wins", func(t *testing.T) {
		dialed = nil
		d := Detector{Dial: dial}.Detect(context.Background(), []string{"ws://down", "ws://up", "ws://later"})

		p, ok := Handle(d)
		require.True(t, ok)
		assert.Same(t, fake, p)
		assert.Equal(t, []string{"ws://down", "ws://up"}, dialed, "probing stops at the first hit")
	})

	t.Run("nothing reachable", func(t *testing.T) {
		dialed = nil
		d := Detector{Dial: dial}.Detect(context.Background(), []string{"ws://down"})

		_, ok := Handle(d)
		assert.False(t, ok)
		u, isUnavailable := d.(Unavailable)
		require.True(t, isUnavailable)
		assert.ErrorIs(t, u.Reason, ErrNoProvider)
		assert.ErrorIs(t, u.Reason, refused)
		assert.Len(t, dialed, 1, "no retries")
	})

	t.Run("no candidates", func(t *testing.T) {
		d := Detector{Dial: dial}.Detect(context.Background(), nil)
		u, isUnavailable := d.(Unavailable)
		require.True(t, isUnavailable)
		assert.ErrorIs(t, u.Reason, ErrNoProvider)
	})

	t.Run("detection never requests accounts", func(t *testing.T) {
		Detector{Dial: dial}.Detect(context.Background(), []string{"ws://up"})
		assert.Zero(t, fake.TotalCalls())
	})
}

func TestHandleNilProvider(t *testing.T) {
	_, ok := Handle(Available{})
	assert.False(t, ok)
	_, ok = Handle(nil)
	assert.False(t, ok)
}

// walletService mimics the eth namespace of a wallet endpoint.
type walletService struct {
	accounts []string
	chainID  string
	events   chan []string
}

func (s *walletService) RequestAccounts() ([]string, error) { return s.accounts, nil }
func (s *walletService) Accounts() ([]string, error)        { return []string{}, nil }
func (s *walletService) ChainId() (string, error)           { return s.chainID, nil }

func (s *walletService) AccountsChanged(ctx context.Context) (*rpc.Subscription, error) {
	notifier, ok := rpc.NotifierFromContext(ctx)
	if !ok {
		return nil, rpc.ErrNotificationsUnsupported
	}
	sub := notifier.CreateSubscription()
	go func() {
		for {
			select {
			case accts := <-s.events:
				_ = notifier.Notify(sub.ID, accts)
			case <-sub.Err():
				return
			}
		}
	}()
	return sub, nil
}

func TestRPCProviderInProc(t *testing.T) {
	svc := &walletService{
		accounts: []string{"0xAA", "0xBB"},
		chainID:  "0x1",
		events:   make(chan []string),
	}
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", svc))
	t.Cleanup(server.Stop)

	p := NewRPCProvider(rpc.DialInProc(server), "inproc")
	t.Cleanup(p.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	accts, err := p.RequestAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0xAA", "0xBB"}, accts)

	accts, err = p.Accounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accts)

	id, err := p.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0x1", id)
	assert.Equal(t, "inproc", p.URL())

	ch := make(chan []string, 1)
	sub, err := p.SubscribeAccounts(ctx, ch)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	svc.events <- []string{"0xCC"}
	select {
	case got := <-ch:
		assert.Equal(t, []string{"0xCC"}, got)
	case <-ctx.Done():
		t.Fatal("accountsChanged notification not delivered")
	}

	_, err = p.SubscribeChain(ctx, make(chan string))
	assert.Error(t, err, "service has no chainChanged subscription")
}

func TestDialRPCRejectsHTTP(t *testing.T) {
	for _, url := range []string{"http://127.0.0.1:1", "HTTPS://wallet.example"} {
		t.Run(url, func(t *testing.T) {
			p, err := DialRPC(context.Background(), url)
			assert.ErrorIs(t, err, rpc.ErrNotificationsUnsupported)
			assert.Nil(t, p)
		})
	}
}

func TestDetectUnreachableHTTP(t *testing.T) {
	d := Detect(context.Background(), []string{"http://127.0.0.1:1"}, nil)

	u, ok := d.(Unavailable)
	require.True(t, ok, "an http endpoint is never a detected wallet")
	assert.ErrorIs(t, u.Reason, ErrNoProvider)
	assert.ErrorIs(t, u.Reason, rpc.ErrNotificationsUnsupported)
	_, ok = Handle(d)
	assert.False(t, ok)
}

func TestCheckTransport(t *testing.T) {
	assert.NoError(t, CheckTransport("ws://127.0.0.1:1248"))
	assert.NoError(t, CheckTransport("wss://wallet.example"))
	assert.NoError(t, CheckTransport("/tmp/wallet.ipc"))
	assert.Error(t, CheckTransport(" http://127.0.0.1:8545"))
}

func TestDialRPC(t *testing.T) {
	url := os.Getenv("ETH_PROVIDER_URL")
	if url == "" {
		t.Skip("ETH_PROVIDER_URL not set, skipping provider connection test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p, err := DialRPC(ctx, url)
	require.NoError(t, err)
	defer p.Close()

	id, err := p.ChainID(ctx)
	require.NoError(t, err)
	t.Logf("Connected to chain ID: %s", id)
}

func TestDialRPCInvalidURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	p, err := DialRPC(ctx, "not-a-valid-url")
	assert.Error(t, err)
	assert.Nil(t, p)
}
