package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
)

// printJSON writes v to the command output as indented JSON.
func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseCoin reads "150uusd". A bare amount is in defaultDenom.
func parseCoin(s, defaultDenom string) (auction.Coin, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return auction.Coin{}, fmt.Errorf("invalid coin %q: missing amount", s)
	}
	amount, err := strconv.ParseUint(s[:i], 10, 64)
	if err != nil {
		return auction.Coin{}, fmt.Errorf("invalid coin %q: %w", s, err)
	}
	denom := s[i:]
	if denom == "" {
		denom = defaultDenom
	}
	return auction.NewCoin(amount, denom), nil
}

func parseCoins(ss []string, defaultDenom string) ([]auction.Coin, error) {
	if len(ss) == 0 {
		return nil, nil
	}
	coins := make([]auction.Coin, 0, len(ss))
	for _, s := range ss {
		c, err := parseCoin(s, defaultDenom)
		if err != nil {
			return nil, err
		}
		coins = append(coins, c)
	}
	return coins, nil
}
