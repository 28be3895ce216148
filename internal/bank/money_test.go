package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	for in, want := range map[string]string{
		"150":                "150",
		"99.95":              "99.95",
		" 0.01 ":             "0.01",
		"-5":                 "-5",
		"1000000":            "1000000",
		"1.50":               "1.5",
		"1e2":                "100",
		"999999999999999.99": "999999999999999.99",
	} {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(dec(want)), "%q -> %s", in, got)
	}

	for _, in := range []string{"", "   ", "abc", "12,50", "1.2.3", "NaN", "1e20000000", "0.001", "1000000000000000"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidArgument, "%q", in)
	}
}

func TestParseAccountType(t *testing.T) {
	typ, err := ParseAccountType("")
	require.NoError(t, err)
	assert.Equal(t, Savings, typ)

	typ, err = ParseAccountType("checking")
	require.NoError(t, err)
	assert.Equal(t, Checking, typ)

	typ, err = ParseAccountType(" SAVINGS ")
	require.NoError(t, err)
	assert.Equal(t, Savings, typ)

	_, err = ParseAccountType("Brokerage")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "Brokerage")
}

func TestCheckAmount(t *testing.T) {
	for _, in := range []string{"0", "0.01", "-12.5", "1.500", "999999999999999.99", "-999999999999999.99"} {
		assert.NoError(t, CheckAmount(dec(in)), in)
	}

	cases := map[string]string{
		"0.001":            "more than 2 decimal places",
		"1e-40":            "out of range",
		"1000000000000000": "out of range",
		"-1e15":            "out of range",
		"1e20000000":       "out of range",
		"1e-2000000000":    "out of range",
	}
	for in, msg := range cases {
		err := CheckAmount(dec(in))
		require.Error(t, err, in)
		assert.ErrorIs(t, err, ErrInvalidArgument, in)
		assert.Contains(t, err.Error(), msg, in)
	}
}

func TestOversizedAmountsLeaveAccountUntouched(t *testing.T) {
	l := newTestLedger()
	id, err := l.CreateAccount("Alice", dec("100"), Savings)
	require.NoError(t, err)
	a := get(t, l, id)

	assert.ErrorIs(t, a.Deposit(dec("1e20000000")), ErrInvalidArgument)
	assert.ErrorIs(t, a.Withdraw(dec("1e20000000")), ErrInvalidArgument)
	assert.ErrorIs(t, a.Deposit(dec("0.005")), ErrInvalidArgument)
	assert.True(t, a.Balance().Equal(dec("100")))
	assert.Empty(t, a.History())

	_, err = l.CreateAccount("Bob", dec("1e20000000"), Savings)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, l.Len())
}
