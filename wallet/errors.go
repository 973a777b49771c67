package wallet

import "errors"

var (
	// ErrNoWallet is returned by operations that need a provider when none was detected.
	ErrNoWallet = errors.New("no wallet provider")

	// ErrConnectRejected means the connect request failed or exposed no accounts.
	ErrConnectRejected = errors.New("connect request rejected")

	// ErrBestEffort marks an initial query failure that was deliberately ignored.
	ErrBestEffort = errors.New("best-effort seeding query failed")

	// ErrStreamEnded means a provider event stream stopped delivering.
	ErrStreamEnded = errors.New("provider event stream ended")
)
