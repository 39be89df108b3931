// Package keybuffer queues key presses until a program asks for them
package keybuffer

import "sync"

const ringsize = 64

// BreakKey stops a running program instead of being queued
const BreakKey = "ctrl+c"

// KeyBuffer is a ring of key names, it implements object.Input.
// Keys arrive from other goroutines so it locks.
type KeyBuffer struct {
	mu       sync.Mutex
	ring     [ringsize]string
	read     int
	write    int
	sawBreak bool
}

// New returns an empty buffer
func New() *KeyBuffer {
	return &KeyBuffer{}
}

// SaveKeyStroke queues a key name, false if the buffer is full
func (kb *KeyBuffer) SaveKeyStroke(key string) bool {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	if key == BreakKey {
		kb.sawBreak = true
		return true
	}

	next := (kb.write + 1) % ringsize
	if next == kb.read {
		return false
	}

	kb.ring[kb.write] = key
	kb.write = next
	return true
}

// SaveBytes queues raw terminal input one byte at a time,
// returns how many keys were accepted
func (kb *KeyBuffer) SaveBytes(bts []byte) int {
	saved := 0
	for _, b := range bts {
		if kb.SaveKeyStroke(KeyName(b)) {
			saved++
		}
	}
	return saved
}

// ReadKey removes the oldest key
func (kb *KeyBuffer) ReadKey() (string, bool) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	if kb.read == kb.write {
		return "", false
	}

	key := kb.ring[kb.read]
	kb.read = (kb.read + 1) % ringsize
	return key, true
}

// BreakCheck reports a break and clears it
func (kb *KeyBuffer) BreakCheck() bool {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	seen := kb.sawBreak
	kb.sawBreak = false
	return seen
}

// Size is how many keys are waiting
func (kb *KeyBuffer) Size() int {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	return (kb.write - kb.read + ringsize) % ringsize
}

// Clear throws away waiting keys and any break
func (kb *KeyBuffer) Clear() {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	kb.read, kb.write = 0, 0
	kb.sawBreak = false
}

var controlNames = map[byte]string{
	0x03: BreakKey,
	0x08: "backspace",
	0x09: "tab",
	0x0a: "enter",
	0x0d: "enter",
	0x1b: "escape",
	0x20: "space",
	0x7f: "backspace",
}

// KeyName names a raw input byte
func KeyName(b byte) string {
	if name, ok := controlNames[b]; ok {
		return name
	}
	switch {
	case b >= 0x01 && b <= 0x1a:
		return "ctrl+" + string(rune('a'+b-1))
	case b < 0x20:
		// caret notation for the rest: ctrl+@, ctrl+\, ctrl+] ...
		return "ctrl+" + string(rune('@'+b))
	}
	return string(rune(b))
}
