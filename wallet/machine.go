// Package wallet holds the connection state machine and the tasks that keep
// it in sync with a provider: the initial one-shot queries and the two
// long-lived event watchers.
package wallet

import (
	"errors"
	"fmt"
)

// Unavailable is the address shown when the provider exposes no account.
// It differs from "", which means the address was never queried.
const Unavailable = "Unavailable"

// Cause names what triggered a status change
type Cause string

const (
	CauseConnect Cause = "connect"
	CauseResolve Cause = "resolve"
	CauseSeed    Cause = "seed"
	CauseWatch   Cause = "accountsChanged"
)

// Transition is passed to observers on every status change
type Transition struct {
	From  Status
	To    Status
	Cause Cause
}

// Snapshot is a copy of every cell the view renders
type Snapshot struct {
	Status  Status
	ChainID string
	Address string
}

// Machine owns connection status, chain id and wallet address.
//
// It is not safe for concurrent use. All mutations are expected to come from
// one goroutine (the program's update loop); other tasks hand their results
// to that goroutine instead of calling the machine directly.
// Writes are last-write-wins.
type Machine struct {
	status  Status
	chainID string
	address string

	observers []func(Transition)
}

// NewMachine starts in Disconnected when a provider was detected and in the
// terminal NoWallet state otherwise.
func NewMachine(available bool) *Machine {
	if available {
		return &Machine{status: Disconnected}
	}
	return &Machine{status: NoWallet}
}

// Observe registers fn to be called after every status change.
func (m *Machine) Observe(fn func(Transition)) {
	m.observers = append(m.observers, fn)
}

func (m *Machine) Status() Status  { return m.status }
func (m *Machine) ChainID() string { return m.chainID }
func (m *Machine) Address() string { return m.address }

// Snapshot copies the current cells.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{Status: m.status, ChainID: m.chainID, Address: m.address}
}

// InteractionDisabled reports whether the connect trigger should be disabled.
func (m *Machine) InteractionDisabled() bool {
	return m.status == Connected || m.status == Loading
}

// RequestConnect handles the "connect requested" intent. From Disconnected it
// moves to Loading and returns true; the caller then issues the request.
// In any other state it is a no-op and returns false.
func (m *Machine) RequestConnect() bool {
	if m.status != Disconnected {
		return false
	}
	m.set(Loading, CauseConnect)
	return true
}

// ResolveConnect applies the outcome of a connect request. At least one
// account means Connected with the first account as address; an error or an
// empty list means Disconnected. The returned error wraps ErrConnectRejected
// on failure.
//
// The outcome is applied even if an account event moved the status out of
// Loading while the request was in flight: it is the newer answer.
func (m *Machine) ResolveConnect(accounts []string, err error) error {
	if m.status == NoWallet {
		return ErrNoWallet
	}
	if err != nil {
		m.set(Disconnected, CauseResolve)
		return fmt.Errorf("%w: %w", ErrConnectRejected, err)
	}
	if len(accounts) == 0 {
		m.set(Disconnected, CauseResolve)
		return fmt.Errorf("%w: no accounts exposed", ErrConnectRejected)
	}
	m.address = accounts[0]
	m.set(Connected, CauseResolve)
	return nil
}

// ApplyAccounts applies an accountsChanged event. A non-empty list only
// updates the address; an empty one clears it and forces Disconnected.
func (m *Machine) ApplyAccounts(accounts []string) {
	if m.status == NoWallet {
		return
	}
	if len(accounts) > 0 {
		m.address = accounts[0]
		return
	}
	m.address = Unavailable
	m.set(Disconnected, CauseWatch)
}

// Seed applies the initial accounts query: accounts mean Connected without a
// user click, none means Disconnected.
func (m *Machine) Seed(accounts []string) {
	if m.status == NoWallet {
		return
	}
	if len(accounts) > 0 {
		m.address = accounts[0]
		m.set(Connected, CauseSeed)
		return
	}
	m.address = Unavailable
	m.set(Disconnected, CauseSeed)
}

// ApplyChain overwrites the chain id.
func (m *Machine) ApplyChain(id string) {
	if m.status == NoWallet {
		return
	}
	m.chainID = id
}

// ApplySync applies an InitialSync result. Failed queries leave their value
// untouched; their errors (all wrapping ErrBestEffort) are returned so the
// caller can log them.
func (m *Machine) ApplySync(r SyncResult) []error {
	if m.status == NoWallet {
		return nil
	}
	var ignored []error
	if r.ChainErr != nil {
		ignored = append(ignored, r.ChainErr)
	} else {
		m.ApplyChain(r.ChainID)
	}
	if r.AccountsErr != nil {
		ignored = append(ignored, r.AccountsErr)
	} else {
		m.Seed(r.Accounts)
	}
	return ignored
}

func (m *Machine) set(to Status, cause Cause) {
	if m.status == to {
		return
	}
	tr := Transition{From: m.status, To: to, Cause: cause}
	m.status = to
	for _, fn := range m.observers {
		fn(tr)
	}
}

// IsIgnored reports whether err is a deliberately ignored seeding failure.
func IsIgnored(err error) bool {
	return errors.Is(err, ErrBestEffort)
}
