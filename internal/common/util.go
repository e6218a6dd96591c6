package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// It is used to drop passwords from memory once an auth call has returned.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// MaskSecret keeps the first visible runes of s and replaces the rest with
// SecretMask. Secrets shorter than or equal to visible are masked entirely.
func MaskSecret(s string, visible int) string {
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}
	if visible <= 0 || len(r) <= visible {
		return SecretMask
	}
	return string(r[:visible]) + SecretMask
}
