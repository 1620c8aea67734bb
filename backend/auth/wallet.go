package auth

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"
)

var (
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrAddressMismatch  = errors.New("address does not match public key")
)

// ed25519SingleKeyScheme is the authentication-key scheme byte for accounts
// controlled by a single ed25519 key.
const ed25519SingleKeyScheme = 0x00

// DeriveAddress computes the account address for an ed25519 public key:
// sha3-256(pubkey || scheme).
func DeriveAddress(publicKeyHex string) (string, error) {
	publicKey, err := decodeHex(publicKeyHex)
	if err != nil || len(publicKey) != ed25519.PublicKeySize {
		return "", ErrInvalidPublicKey
	}

	authKey := sha3.Sum256(append(publicKey, ed25519SingleKeyScheme))
	return "0x" + hex.EncodeToString(authKey[:]), nil
}

// VerifySignature checks an ed25519 wallet signature over message.
func VerifySignature(publicKeyHex, signatureHex string, message []byte) error {
	publicKey, err := decodeHex(publicKeyHex)
	if err != nil || len(publicKey) != ed25519.PublicKeySize {
		return ErrInvalidPublicKey
	}

	signature, err := decodeHex(signatureHex)
	if err != nil || len(signature) != ed25519.SignatureSize {
		return ErrInvalidSignature
	}

	if !ed25519.Verify(ed25519.PublicKey(publicKey), message, signature) {
		return ErrInvalidSignature
	}
	return nil
}

// VerifyLogin checks that signature is a valid wallet signature over message
// and that address belongs to the signing key.
func VerifyLogin(address, publicKeyHex, signatureHex string, message []byte) error {
	if err := VerifySignature(publicKeyHex, signatureHex, message); err != nil {
		return err
	}

	derived, err := DeriveAddress(publicKeyHex)
	if err != nil {
		return err
	}
	if !strings.EqualFold(normalizeAddress(address), derived) {
		return ErrAddressMismatch
	}
	return nil
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

func normalizeAddress(address string) string {
	return "0x" + strings.TrimPrefix(strings.ToLower(address), "0x")
}
