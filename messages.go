package main

import (
	"charm-wallet-connect/wallet"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// initialSyncMsg carries the result of the one-shot chain id / accounts queries
type initialSyncMsg struct {
	result wallet.SyncResult
}

// connectResultMsg contains the result of eth_requestAccounts
type connectResultMsg struct {
	accounts []string
	err      error
}

// accountsChangedMsg is one accountsChanged event from the provider
type accountsChangedMsg struct {
	accounts []string
}

// chainChangedMsg is one chainChanged event from the provider
type chainChangedMsg struct {
	chainID string
}

// watchEndedMsg reports that a watcher returned
type watchEndedMsg struct {
	stream string
	err    error
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct{}

// clearCopiedMsg clears the clipboard feedback
type clearCopiedMsg struct{}
