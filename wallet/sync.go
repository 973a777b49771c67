package wallet

import (
	"context"
	"fmt"

	"charm-wallet-connect/provider"

	"golang.org/x/sync/errgroup"
)

// SyncResult holds the outcome of the two initial queries. A non-nil error
// wraps ErrBestEffort and means the matching value must be left alone.
type SyncResult struct {
	ChainID  string
	ChainErr error

	Accounts    []string
	AccountsErr error
}

// InitialSync queries the current chain id and accounts concurrently.
// Failures are recorded, never returned: seeding is best effort.
func InitialSync(ctx context.Context, p provider.Provider) SyncResult {
	var r SyncResult
	var g errgroup.Group

	g.Go(func() error {
		id, err := p.ChainID(ctx)
		if err != nil {
			r.ChainErr = fmt.Errorf("%w: eth_chainId: %w", ErrBestEffort, err)
			return nil
		}
		r.ChainID = id
		return nil
	})
	g.Go(func() error {
		accounts, err := p.Accounts(ctx)
		if err != nil {
			r.AccountsErr = fmt.Errorf("%w: eth_accounts: %w", ErrBestEffort, err)
			return nil
		}
		r.Accounts = accounts
		return nil
	})

	_ = g.Wait()
	return r
}
