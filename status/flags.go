package status

// Flags is the lifecycle bitfield carried by editor components
// Exactly one of NotInitialized/Initialized is reported at any time
type Flags uint16

const (
	NotInitialized Flags = 1 << iota
	Initialized
	Ready
	Busy
	Error
)

// UserFlagCount is the number of component-defined flags
const UserFlagCount = 8

// userShift places user flags above the lifecycle bits
const userShift = 5

// UserFlag returns the bit for user flag i, zero if i is out of range
func UserFlag(i int) Flags {
	if i < 0 || i >= UserFlagCount {
		return 0
	}
	return 1 << (userShift + i)
}

// Tracker holds a Flags value behind lifecycle transitions
// Zero value is a not-initialized tracker
type Tracker struct {
	flags Flags
}

// Bits returns the current bitfield with the derived NotInitialized bit
func (t *Tracker) Bits() Flags {
	if t.flags&Initialized == 0 {
		return t.flags | NotInitialized
	}
	return t.flags
}

// MarkInitialized moves the tracker to the initialized state
func (t *Tracker) MarkInitialized() {
	t.flags = (t.flags &^ NotInitialized) | Initialized
}

// Reset returns the tracker to not-initialized and clears every other flag
func (t *Tracker) Reset() {
	t.flags = 0
}

// IsInitialized reports whether MarkInitialized has been called since the last Reset
func (t *Tracker) IsInitialized() bool {
	return t.flags&Initialized != 0
}

// SetReady sets or clears the ready flag
func (t *Tracker) SetReady(on bool) { t.set(Ready, on) }

// IsReady reports the ready flag
func (t *Tracker) IsReady() bool { return t.flags&Ready != 0 }

// SetBusy sets or clears the busy flag
func (t *Tracker) SetBusy(on bool) { t.set(Busy, on) }

// IsBusy reports the busy flag
func (t *Tracker) IsBusy() bool { return t.flags&Busy != 0 }

// SetError sets or clears the error flag
func (t *Tracker) SetError(on bool) { t.set(Error, on) }

// HasError reports the error flag
func (t *Tracker) HasError() bool { return t.flags&Error != 0 }

// SetUser sets or clears user flag i, out of range indices are ignored
func (t *Tracker) SetUser(i int, on bool) {
	t.set(UserFlag(i), on)
}

// User reports user flag i, false for out of range indices
func (t *Tracker) User(i int) bool {
	bit := UserFlag(i)
	return bit != 0 && t.flags&bit != 0
}

func (t *Tracker) set(bit Flags, on bool) {
	if on {
		t.flags |= bit
	} else {
		t.flags &^= bit
	}
}
