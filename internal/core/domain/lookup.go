package domain

// LookupState is the outcome of a store lookup.
type LookupState uint8

const (
	// Unknown means the name has never been seen and may be fetched.
	Unknown LookupState = iota
	// Found means the name resolves to an icon.
	Found
	// KnownMissing means the name was confirmed absent and must not be fetched again.
	KnownMissing
)

func (s LookupState) String() string {
	switch s {
	case Found:
		return "found"
	case KnownMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Lookup is the result of querying an icon set store.
type Lookup struct {
	State LookupState
	// Icon is the resolved icon (only valid when State is Found).
	Icon *Icon
}
