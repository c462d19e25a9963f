package golix

import "strconv"

func itoa(n int) string { return strconv.Itoa(n) }

// xorBytes XORs a and b, which must be the same length (true for any two
// addresses produced by the same address algorithm).
func xorBytes(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, withDetail(ErrIncompatibleSuite, "address lengths differ")
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}
