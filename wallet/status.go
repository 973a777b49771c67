package wallet

// Status is the connection state shown to the user
type Status int

const (
	// NoWallet: no provider was detected. Terminal.
	NoWallet Status = iota
	// Disconnected: a provider exists but no account is exposed.
	Disconnected
	// Loading: a connect request is in flight.
	Loading
	// Connected: at least one account is exposed.
	Connected
)

func (s Status) String() string {
	switch s {
	case NoWallet:
		return "no wallet"
	case Disconnected:
		return "disconnected"
	case Loading:
		return "loading"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}
