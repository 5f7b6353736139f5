package testing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/tx"
)

// RequireTxSuccess asserts that a transaction result indicates success.
func RequireTxSuccess(t *testing.T, result tx.ApplyResult) {
	t.Helper()
	require.True(t, result.Applied,
		"Expected transaction success, got %s: %s", result.Result, result.Message)
	require.Equal(t, tx.TesSUCCESS, result.Result,
		"Expected tesSUCCESS, got %s: %s", result.Result, result.Message)
}

// RequireTxFail asserts that a transaction failed with a specific code.
func RequireTxFail(t *testing.T, result tx.ApplyResult, expected tx.Result) {
	t.Helper()
	require.False(t, result.Applied,
		"Expected transaction failure with code %s, but transaction was applied", expected)
	require.Equal(t, expected, result.Result,
		"Expected failure code %s, got %s: %s", expected, result.Result, result.Message)
}

// RequireBalance asserts an account's exact native-currency balance.
func RequireBalance(t *testing.T, env *TestEnv, acc *Account, expected amount.Amount) {
	t.Helper()
	actual := env.Balance(acc)
	require.Equal(t, expected, actual,
		"Account %s balance mismatch: expected %s, got %s", acc.Name, expected, actual)
}
