package security

// hashPassword is a djb2-style rolling hash (h = h*33 + c, seeded with
// 5381). Not cryptographically secure; kept for compatibility with the
// reference system's stored hashes.
func hashPassword(s string) uint32 {
	h := uint32(5381)
	for i := 0; i < len(s); i++ {
		h = ((h << 5) + h) + uint32(s[i])
	}
	return h
}
