package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/rpc"
)

// RPCProvider wraps a go-ethereum RPC client speaking to a wallet endpoint
type RPCProvider struct {
	client *rpc.Client
	url    string
}

// CheckTransport rejects endpoints that cannot push accountsChanged and
// chainChanged. HTTP is request/response only, and dialing it never contacts
// the server, so it could not prove a wallet is there either.
func CheckTransport(url string) error {
	lower := strings.ToLower(strings.TrimSpace(url))
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return fmt.Errorf("http transport: %w", rpc.ErrNotificationsUnsupported)
	}
	return nil
}

// DialRPC is the DialFunc used by Detect. Websocket and IPC dials connect
// right away, so a returned provider is reachable.
func DialRPC(ctx context.Context, url string) (Provider, error) {
	if err := CheckTransport(url); err != nil {
		return nil, err
	}
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return NewRPCProvider(client, url), nil
}

// NewRPCProvider wraps an existing client. url is only used for display.
func NewRPCProvider(client *rpc.Client, url string) *RPCProvider {
	return &RPCProvider{client: client, url: url}
}

func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	err := p.client.CallContext(ctx, &accounts, "eth_requestAccounts")
	return accounts, err
}

func (p *RPCProvider) Accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	err := p.client.CallContext(ctx, &accounts, "eth_accounts")
	return accounts, err
}

func (p *RPCProvider) ChainID(ctx context.Context) (string, error) {
	var id string
	err := p.client.CallContext(ctx, &id, "eth_chainId")
	return id, err
}

// SubscribeAccounts needs a transport with notifications (websocket or IPC).
// Over HTTP it fails with rpc.ErrNotificationsUnsupported.
func (p *RPCProvider) SubscribeAccounts(ctx context.Context, ch chan<- []string) (ethereum.Subscription, error) {
	return p.subscribe(ctx, ch, "accountsChanged")
}

func (p *RPCProvider) SubscribeChain(ctx context.Context, ch chan<- string) (ethereum.Subscription, error) {
	return p.subscribe(ctx, ch, "chainChanged")
}

func (p *RPCProvider) subscribe(ctx context.Context, ch any, event string) (ethereum.Subscription, error) {
	sub, err := p.client.Subscribe(ctx, "eth", ch, event)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (p *RPCProvider) URL() string { return p.url }

func (p *RPCProvider) Close() { p.client.Close() }
