package main

import (
	"context"
	"errors"
	"time"

	"charm-wallet-connect/provider"
	"charm-wallet-connect/wallet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// runInitialSync seeds chain id and accounts once, best effort
func runInitialSync(scope *wallet.Scope, p provider.Provider) tea.Cmd {
	return func() tea.Msg {
		var result wallet.SyncResult
		err := scope.Run(func(ctx context.Context) error {
			result = wallet.InitialSync(ctx, p)
			return nil
		})
		if err != nil {
			return nil
		}
		return initialSyncMsg{result: result}
	}
}

// requestAccounts asks the wallet for account access.
// There is no timeout: a wallet that never answers leaves the state Loading.
func requestAccounts(scope *wallet.Scope, p provider.Provider) tea.Cmd {
	return func() tea.Msg {
		var accounts []string
		err := scope.Run(func(ctx context.Context) error {
			var err error
			accounts, err = p.RequestAccounts(ctx)
			return err
		})
		return connectResultMsg{accounts: accounts, err: err}
	}
}

// emit hands a watcher event to the update loop unless the scope is gone
func emit(ctx context.Context, events chan<- tea.Msg, msg tea.Msg) {
	select {
	case events <- msg:
	case <-ctx.Done():
	}
}

// watchAccounts runs the account watcher for the lifetime of the scope
func watchAccounts(scope *wallet.Scope, p provider.Provider, events chan<- tea.Msg, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx := scope.Context()
		w := &wallet.AccountWatcher{
			Provider: p,
			Logger:   logger,
			Deliver: func(accounts []string) {
				emit(ctx, events, accountsChangedMsg{accounts: accounts})
			},
		}
		return watchEndedMsg{stream: "accountsChanged", err: scope.Run(w.Run)}
	}
}

// watchChain runs the chain watcher for the lifetime of the scope
func watchChain(scope *wallet.Scope, p provider.Provider, events chan<- tea.Msg, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx := scope.Context()
		w := &wallet.ChainWatcher{
			Provider: p,
			Logger:   logger,
			Deliver: func(chainID string) {
				emit(ctx, events, chainChangedMsg{chainID: chainID})
			},
		}
		return watchEndedMsg{stream: "chainChanged", err: scope.Run(w.Run)}
	}
}

// listen waits for the next watcher event
func listen(scope *wallet.Scope, events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-scope.Context().Done():
			return nil
		}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		if err == nil {
			return clipboardCopiedMsg{}
		}
		return nil
	}
}

// clearCopiedAfter waits 2 seconds then clears clipboard feedback
func clearCopiedAfter() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// isShutdown reports whether err only means the scope was released
func isShutdown(err error) bool {
	return errors.Is(err, context.Canceled)
}
