package otc

import (
	"bytes"
	"testing"

	"github.com/iov-one/otc/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"
)

func TestBech32Validator(t *testing.T) {
	v := Bech32Validator{HRP: "juno"}

	account, err := v.Encode(bytes.Repeat([]byte{1}, 20))
	require.NoError(t, err)
	contract, err := v.Encode(bytes.Repeat([]byte{2}, 32))
	require.NoError(t, err)
	short, err := v.Encode(bytes.Repeat([]byte{3}, 12))
	require.NoError(t, err)
	other, err := Bech32Validator{HRP: "cosmos"}.Encode(bytes.Repeat([]byte{1}, 20))
	require.NoError(t, err)

	cases := map[string]struct {
		raw     string
		want    Address
		wantErr *errors.Error
	}{
		"account":      {raw: account.String(), want: account},
		"contract":     {raw: contract.String(), want: contract},
		"upper case":   {raw: toUpper(account.String()), want: account},
		"empty":        {raw: "", wantErr: errors.ErrEmpty},
		"wrong prefix": {raw: other.String(), wantErr: errors.ErrInvalidInput},
		"payload size": {raw: short.String(), wantErr: errors.ErrInvalidInput},
		"bad checksum": {raw: breakChecksum(account.String()), wantErr: errors.ErrInvalidInput},
		"not bech32":   {raw: "alice", wantErr: errors.ErrInvalidInput},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := v.ValidateAddress(tc.raw)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPubKeyAddress(t *testing.T) {
	v := Bech32Validator{HRP: "juno"}
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	a, err := v.PubKeyAddress(pub)
	require.NoError(t, err)
	b, err := v.PubKeyAddress(pub)
	require.NoError(t, err)
	assert.True(t, a.Equals(b))

	got, err := v.ValidateAddress(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = v.PubKeyAddress(pub[:5])
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func toUpper(s string) string {
	return string(bytes.ToUpper([]byte(s)))
}

// breakChecksum replaces the last character with another valid bech32
// character.
func breakChecksum(s string) string {
	last := s[len(s)-1]
	if last == 'q' {
		return s[:len(s)-1] + "p"
	}
	return s[:len(s)-1] + "q"
}
