package wallet

import (
	"context"
	"fmt"
	"io"

	"charm-wallet-connect/provider"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum"
)

// AccountWatcher forwards accountsChanged events, in arrival order, to Deliver.
// Deliver normally hands the list to the goroutine that owns the Machine,
// which applies it with ApplyAccounts.
type AccountWatcher struct {
	Provider provider.Provider
	Deliver  func(accounts []string)
	Logger   *log.Logger
}

// Run subscribes and delivers until ctx is cancelled or the stream ends.
// The subscription is released on every return path.
func (w *AccountWatcher) Run(ctx context.Context) error {
	return watch(ctx, "accountsChanged", w.Provider.SubscribeAccounts, w.Deliver, w.Logger)
}

// ChainWatcher forwards chainChanged events to Deliver. Every value
// overwrites the chain id; it never touches the status.
type ChainWatcher struct {
	Provider provider.Provider
	Deliver  func(chainID string)
	Logger   *log.Logger
}

// Run subscribes and delivers until ctx is cancelled or the stream ends.
func (w *ChainWatcher) Run(ctx context.Context) error {
	return watch(ctx, "chainChanged", w.Provider.SubscribeChain, w.Deliver, w.Logger)
}

type subscribeFunc[T any] func(ctx context.Context, ch chan<- T) (ethereum.Subscription, error)

func watch[T any](ctx context.Context, stream string, subscribe subscribeFunc[T], deliver func(T), logger *log.Logger) error {
	logger = orDiscard(logger)

	ch := make(chan T, 16)
	sub, err := subscribe(ctx, ch)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", stream, err)
	}
	defer sub.Unsubscribe()
	logger.Debug("subscribed", "stream", stream)

	for {
		select {
		case v := <-ch:
			deliver(v)
		case err := <-sub.Err():
			if err == nil {
				return fmt.Errorf("%s: %w", stream, ErrStreamEnded)
			}
			return fmt.Errorf("%s: %w: %w", stream, ErrStreamEnded, err)
		case <-ctx.Done():
			logger.Debug("unsubscribed", "stream", stream)
			return ctx.Err()
		}
	}
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}
