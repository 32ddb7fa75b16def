package testing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireSuccess asserts that a request committed.
func RequireSuccess(t *testing.T, result Result) {
	t.Helper()
	require.NoError(t, result.Err, "Expected request to succeed")
}

// RequireError asserts that a request failed with target.
func RequireError(t *testing.T, result Result, target error) {
	t.Helper()
	require.Error(t, result.Err, "Expected request to fail with %v, but it succeeded", target)
	require.ErrorIs(t, result.Err, target)
}

// RequireBalance asserts the test denomination balance of an account.
func RequireBalance(t *testing.T, env *TestEnv, account string, expected uint64) {
	t.Helper()
	actual := env.Balance(account)
	require.Equal(t, expected, actual,
		"Account %s balance mismatch: expected %d, got %d", account, expected, actual)
}

// RequireOwner asserts the holder of an item.
func RequireOwner(t *testing.T, env *TestEnv, itemID, expected string) {
	t.Helper()
	actual := env.Owner(itemID)
	require.Equal(t, expected, actual,
		"Item %s owner mismatch: expected %s, got %s", itemID, expected, actual)
}

// RequireNoAuction asserts that an item has no live auction.
func RequireNoAuction(t *testing.T, env *TestEnv, itemID string) {
	t.Helper()
	require.Nil(t, env.Auction(itemID), "Expected no live auction for item %s", itemID)
}

// AssertBalanceChange runs fn and asserts the balance change of account.
func AssertBalanceChange(t *testing.T, env *TestEnv, account string, expectedChange int64, fn func()) {
	t.Helper()
	before := env.Balance(account)
	fn()
	after := env.Balance(account)

	actualChange := int64(after) - int64(before)
	require.Equal(t, expectedChange, actualChange,
		"Account %s balance change mismatch: expected %d, got %d (before: %d, after: %d)",
		account, expectedChange, actualChange, before, after)
}

// AssertNoBalanceChange runs fn and asserts the balance of account is unchanged.
func AssertNoBalanceChange(t *testing.T, env *TestEnv, account string, fn func()) {
	t.Helper()
	AssertBalanceChange(t, env, account, 0, fn)
}

// RequireSupply asserts that the listed accounts together hold total.
func RequireSupply(t *testing.T, env *TestEnv, total uint64, accounts ...string) {
	t.Helper()
	var sum uint64
	for _, acc := range accounts {
		sum += env.Balance(acc)
	}
	require.Equal(t, total, sum, "Supply across %v mismatch", accounts)
}
