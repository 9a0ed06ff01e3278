package otctest

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/iov-one/otc"
	"golang.org/x/crypto/ed25519"
)

// HRP is the address prefix used by tests.
const HRP = "juno"

// Validator accepts addresses with the test prefix.
var Validator = otc.Bech32Validator{HRP: HRP}

// NewKey generates a fresh ed25519 key pair.
func NewKey(t testing.TB) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("cannot generate key: %s", err)
	}
	return pub, priv
}

// NewAddress returns the account address of a fresh key.
func NewAddress(t testing.TB) otc.Address {
	t.Helper()
	pub, _ := NewKey(t)
	addr, err := Validator.PubKeyAddress(pub)
	if err != nil {
		t.Fatalf("cannot derive address: %s", err)
	}
	return addr
}

// NewContractAddress returns a random 32 byte contract address.
func NewContractAddress(t testing.TB) otc.Address {
	t.Helper()
	payload := make([]byte, 32)
	if _, err := rand.Read(payload); err != nil {
		t.Fatalf("cannot read random: %s", err)
	}
	addr, err := Validator.Encode(payload)
	if err != nil {
		t.Fatalf("cannot encode address: %s", err)
	}
	return addr
}

// SignedBy returns a context authenticated as signer.
func SignedBy(signer otc.Address) context.Context {
	return otc.WithSigner(context.Background(), signer)
}
