package ports

// PasswordHasher provides one-way credential hashing. Hash salts every call,
// so two hashes of the same plaintext differ. Verify is constant-time with
// respect to the comparison and reports a wrong password as false, not as an
// error.
type PasswordHasher interface {
	Hash(plainPassword string) (string, error)
	Verify(plainPassword, hashedPassword string) bool
}
