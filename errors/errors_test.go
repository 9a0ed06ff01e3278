package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind *Error
		err  error
		want bool
	}{
		"root error": {
			kind: ErrNotFound,
			err:  ErrNotFound,
			want: true,
		},
		"wrapped once": {
			kind: ErrNotFound,
			err:  Wrap(ErrNotFound, "deposit 7"),
			want: true,
		},
		"wrapped twice": {
			kind: ErrIncorrectAmount,
			err:  Wrap(Wrapf(ErrIncorrectAmount, "expected %d", 50), "accept"),
			want: true,
		},
		"different kind": {
			kind: ErrNotFound,
			err:  Wrap(ErrIncorrectDenom, "nope"),
			want: false,
		},
		"stdlib error": {
			kind: ErrNotFound,
			err:  stdlib.New("not found"),
			want: false,
		},
		"nil kind and nil error": {
			kind: nil,
			err:  nil,
			want: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.kind.Is(tc.err))
		})
	}
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(ErrNotFound.ABCICode(), "again")
	})
}

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"no error": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"registered error": {
			err:      Wrap(ErrNoFunds, "deposit"),
			wantCode: ErrNoFunds.ABCICode(),
			wantLog:  "deposit: no funds provided",
		},
		"stdlib error is redacted": {
			err:      fmt.Errorf("disk on fire"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantLog, log)
		})
	}
}

func TestABCIInfoDebugHasStack(t *testing.T) {
	code, log := ABCIInfo(Wrap(ErrNotFound, "deposit 3"), true)
	assert.Equal(t, ErrNotFound.ABCICode(), code)
	assert.True(t, strings.Contains(log, "errors_test.go"), log)
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	require.Error(t, err)
	assert.True(t, ErrPanic.Is(err))
	assert.Equal(t, internalABCILog, Redact(err, false).Error())
	assert.True(t, ErrPanic.Is(Redact(err, true)))
}

func TestABCIErrorRoundTrip(t *testing.T) {
	code, log := ABCIInfo(Wrap(ErrIncorrectDenom, "expected native ujuno"), false)
	err := ABCIError(code, log)
	assert.True(t, ErrIncorrectDenom.Is(err))
	assert.Nil(t, ABCIError(SuccessABCICode, ""))
}
