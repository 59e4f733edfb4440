package common

// WipeByteArray overwrites b with zeros. Used to drop passwords read from
// the terminal as soon as they are no longer needed. Nil-safe.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
