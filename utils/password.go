package utils

import (
	"github.com/matthewhartstonge/argon2"
)

// otpArgon is lighter than argon2.DefaultConfig: the codes are short-lived
// and hashed on every request.
func otpArgon() argon2.Config {
	cfg := argon2.DefaultConfig()
	cfg.TimeCost = 1
	cfg.MemoryCost = 16 * 1024
	return cfg
}

func HashSecret(secret string) (string, error) {
	argon := otpArgon()
	encoded, err := argon.HashEncoded([]byte(secret))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func VerifySecret(encodedHash, secret string) (bool, error) {
	ok, err := argon2.VerifyEncoded([]byte(secret), []byte(encodedHash))
	if err != nil {
		return false, err
	}
	return ok, nil
}
