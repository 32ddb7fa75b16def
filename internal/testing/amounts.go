package testing

import "github.com/LeJamon/goAuctiond/internal/core/auction"

// Denom is the settlement denomination of every TestEnv market.
const Denom = "uusd"

// USD returns an amount in the test denomination.
func USD(amount uint64) auction.Coin {
	return auction.NewCoin(amount, Denom)
}

// USDPtr returns a pointer to an amount in the test denomination, for
// optional prices.
func USDPtr(amount uint64) *auction.Coin {
	c := USD(amount)
	return &c
}

// Coins builds a funds list.
func Coins(coins ...auction.Coin) []auction.Coin {
	return coins
}
