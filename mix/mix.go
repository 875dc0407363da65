package mix

// Multiplier is the odd constant applied between the xor-shift rounds.
const Multiplier uint32 = 0x45d9f3b

// shift is the xor-shift distance used by every round.
const shift = 16

// Func maps a 32-bit value to a mixed 32-bit value.
// Implementations must be pure; seedring relies on Func(x) being stable
// for the lifetime of a Space.
type Func func(uint32) uint32

// FastHash32 mixes x with two xor-shift-multiply rounds and a final xor-shift.
func FastHash32(x uint32) uint32 {
	x = ((x >> shift) ^ x) * Multiplier
	x = ((x >> shift) ^ x) * Multiplier
	x = (x >> shift) ^ x

	return x
}

// OrDefault returns fn, or FastHash32 when fn is nil.
func OrDefault(fn Func) Func {
	if fn == nil {
		return FastHash32
	}

	return fn
}
