// Package clipboard holds the register shared by every field being edited.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Register is a single text slot, last writer wins. When system mirroring
// is on, writes are copied to the OS clipboard and an empty slot reads from
// it.
type Register struct {
	mu     sync.Mutex
	text   string
	system bool

	// overridable in tests
	writeAll func(string) error
	readAll  func() (string, error)
}

var (
	shared     *Register
	sharedOnce sync.Once
)

// Shared returns the process-wide register. It mirrors to the OS clipboard
// unless SetSystem(false) is called.
func Shared() *Register {
	sharedOnce.Do(func() {
		shared = NewRegister(true)
	})
	return shared
}

// NewRegister creates an isolated register.
func NewRegister(system bool) *Register {
	return &Register{
		system:   system,
		writeAll: clipboard.WriteAll,
		readAll:  clipboard.ReadAll,
	}
}

// SetSystem toggles OS clipboard mirroring.
func (r *Register) SetSystem(on bool) {
	r.mu.Lock()
	r.system = on
	r.mu.Unlock()
}

// Set stores text. The slot is always updated; the returned error only
// reports a failed OS clipboard write.
func (r *Register) Set(text string) error {
	r.mu.Lock()
	r.text = text
	system := r.system
	r.mu.Unlock()

	if !system {
		return nil
	}
	return r.writeAll(text)
}

// Get returns the slot, or the OS clipboard when the slot is empty.
func (r *Register) Get() (string, error) {
	r.mu.Lock()
	text := r.text
	system := r.system
	r.mu.Unlock()

	if text != "" || !system {
		return text, nil
	}
	return r.readAll()
}
