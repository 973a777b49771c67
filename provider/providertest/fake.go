// Package providertest has an in-memory provider for driving the wallet core
// with synthetic events.
package providertest

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/event"
)

// Provider is a scriptable provider. Zero value is ready to use.
type Provider struct {
	mu sync.Mutex

	AccountsResult []string
	AccountsErr    error
	ChainResult    string
	ChainErr       error

	RequestResult []string
	RequestErr    error
	// RequestGate, when set, blocks RequestAccounts until it is closed.
	RequestGate chan struct{}

	SubscribeErr error

	calls  map[string]int
	closed bool

	accounts event.FeedOf[[]string]
	chain    event.FeedOf[string]

	endOnce sync.Once
	ended   chan struct{}
	endErr  error
}

func (p *Provider) record(method string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.calls == nil {
		p.calls = map[string]int{}
	}
	p.calls[method]++
}

// Calls returns how often method was invoked.
func (p *Provider) Calls(method string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[method]
}

// TotalCalls returns the number of provider calls of any kind.
func (p *Provider) TotalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		n += c
	}
	return n
}

func (p *Provider) RequestAccounts(ctx context.Context) ([]string, error) {
	p.record("eth_requestAccounts")
	if p.RequestGate != nil {
		select {
		case <-p.RequestGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.RequestResult, p.RequestErr
}

func (p *Provider) Accounts(context.Context) ([]string, error) {
	p.record("eth_accounts")
	return p.AccountsResult, p.AccountsErr
}

func (p *Provider) ChainID(context.Context) (string, error) {
	p.record("eth_chainId")
	return p.ChainResult, p.ChainErr
}

func (p *Provider) SubscribeAccounts(_ context.Context, ch chan<- []string) (ethereum.Subscription, error) {
	p.record("eth_subscribe:accountsChanged")
	if p.SubscribeErr != nil {
		return nil, p.SubscribeErr
	}
	return p.wrap(p.accounts.Subscribe(ch)), nil
}

func (p *Provider) SubscribeChain(_ context.Context, ch chan<- string) (ethereum.Subscription, error) {
	p.record("eth_subscribe:chainChanged")
	if p.SubscribeErr != nil {
		return nil, p.SubscribeErr
	}
	return p.wrap(p.chain.Subscribe(ch)), nil
}

// PushAccounts delivers an accountsChanged event to every subscriber and
// reports how many received it.
func (p *Provider) PushAccounts(accounts []string) int {
	return p.accounts.Send(accounts)
}

// PushChain delivers a chainChanged event to every subscriber.
func (p *Provider) PushChain(id string) int {
	return p.chain.Send(id)
}

// EndStreams terminates every subscription with err (nil closes them cleanly).
func (p *Provider) EndStreams(err error) {
	p.endOnce.Do(func() {
		p.mu.Lock()
		p.endErr = err
		p.mu.Unlock()
		close(p.endedCh())
	})
}

func (p *Provider) endedCh() chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ended == nil {
		p.ended = make(chan struct{})
	}
	return p.ended
}

func (p *Provider) wrap(inner event.Subscription) ethereum.Subscription {
	ended := p.endedCh()
	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer inner.Unsubscribe()
		select {
		case <-quit:
			return nil
		case <-ended:
			p.mu.Lock()
			defer p.mu.Unlock()
			return p.endErr
		case err := <-inner.Err():
			return err
		}
	})
}

func (p *Provider) URL() string { return "memory://providertest" }

func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Closed reports whether Close was called.
func (p *Provider) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
