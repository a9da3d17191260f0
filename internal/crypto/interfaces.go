package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordVerifier checks passwords against stored bcrypt hashes for the
// development session daemon. It knows nothing about users or sockets.
type PasswordVerifier interface {
	// Hash returns the bcrypt hash of password, suitable for a users file.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. A malformed hash never
	// matches.
	Verify(hash, password string) bool

	// VerifyUnknown spends the same time as a failed Verify for a user that
	// does not exist, so response timing does not reveal which names are
	// valid. It always reports false.
	VerifyUnknown(password string) bool
}
