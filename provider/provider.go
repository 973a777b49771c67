// Package provider finds and talks to an EIP-1193 style wallet provider.
//
// A provider is reached over JSON-RPC (usually a websocket exposed by a
// desktop wallet). Detection happens once, at startup, and never asks the
// wallet for account access.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum"
)

// DefaultTimeout bounds a single dial during detection
const DefaultTimeout = 8 * time.Second

// ErrNoProvider is the reason reported when no candidate endpoint answers
var ErrNoProvider = errors.New("no ethereum compatible wallet found")

// Provider is the capability surface the wallet core consumes.
// Addresses and chain ids are opaque strings.
type Provider interface {
	// RequestAccounts asks the wallet to expose accounts (eth_requestAccounts).
	// This is user-intent gated and may prompt inside the wallet.
	RequestAccounts(ctx context.Context) ([]string, error)
	// Accounts returns the accounts already exposed to us (eth_accounts).
	Accounts(ctx context.Context) ([]string, error)
	// ChainID returns the currently selected chain (eth_chainId).
	ChainID(ctx context.Context) (string, error)
	// SubscribeAccounts streams accountsChanged notifications into ch.
	SubscribeAccounts(ctx context.Context, ch chan<- []string) (ethereum.Subscription, error)
	// SubscribeChain streams chainChanged notifications into ch.
	SubscribeChain(ctx context.Context, ch chan<- string) (ethereum.Subscription, error)
	// URL identifies the endpoint for display.
	URL() string
	Close()
}

// Detection is the outcome of probing for a provider: either Available or
// Unavailable. It is decided once and never re-probed.
type Detection interface {
	detection()
}

// Available carries the detected provider handle.
type Available struct {
	Provider Provider
}

// Unavailable means no wallet was found. Reason wraps ErrNoProvider.
type Unavailable struct {
	Reason error
}

func (Available) detection()   {}
func (Unavailable) detection() {}

// Handle unpacks a Detection into the provider handle, if any.
func Handle(d Detection) (Provider, bool) {
	if a, ok := d.(Available); ok && a.Provider != nil {
		return a.Provider, true
	}
	return nil, false
}

// DialFunc opens a provider handle for one endpoint
type DialFunc func(ctx context.Context, url string) (Provider, error)

// Detector probes candidate endpoints in order and keeps the first that dials.
type Detector struct {
	Dial    DialFunc
	Timeout time.Duration
	Logger  *log.Logger
}

// Detect runs the default detector over candidates.
func Detect(ctx context.Context, candidates []string, logger *log.Logger) Detection {
	d := Detector{Dial: DialRPC, Timeout: DefaultTimeout, Logger: logger}
	return d.Detect(ctx, candidates)
}

// Detect probes each candidate once. There are no retries.
func (d Detector) Detect(ctx context.Context, candidates []string) Detection {
	logger := orDiscard(d.Logger)
	dial := d.Dial
	if dial == nil {
		dial = DialRPC
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var errs []error
	for _, url := range candidates {
		dctx, cancel := context.WithTimeout(ctx, timeout)
		p, err := dial(dctx, url)
		cancel()
		if err != nil {
			logger.Debug("provider probe failed", "url", url, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", url, err))
			continue
		}
		logger.Info("provider detected", "url", url)
		return Available{Provider: p}
	}

	if len(errs) == 0 {
		return Unavailable{Reason: ErrNoProvider}
	}
	return Unavailable{Reason: fmt.Errorf("%w: %w", ErrNoProvider, errors.Join(errs...))}
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}
