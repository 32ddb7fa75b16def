package engine

import (
	"fmt"
	"math/bits"
	"strconv"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
)

// Payout is the split of a sale price.
type Payout struct {
	Fee      uint64 `json:"fee"`
	Royalty  uint64 `json:"royalty"`
	Proceeds uint64 `json:"proceeds"`
}

// SplitPayout divides price into the market fee, the royalty and the seller
// proceeds. Fee and royalty are rounded down; proceeds take the remainder so
// the three always sum to price.
func SplitPayout(price, feeBps, royaltyBps uint64) (Payout, error) {
	fee, err := applyBps(price, feeBps)
	if err != nil {
		return Payout{}, fmt.Errorf("trading fee: %w", err)
	}
	royalty, err := applyBps(price, royaltyBps)
	if err != nil {
		return Payout{}, fmt.Errorf("royalty: %w", err)
	}

	if royalty > price || fee > price-royalty {
		return Payout{}, fmt.Errorf("%w: fee %d and royalty %d exceed price %d", auction.ErrInvalidConfig, fee, royalty, price)
	}
	return Payout{Fee: fee, Royalty: royalty, Proceeds: price - fee - royalty}, nil
}

// applyBps returns floor(amount * bps / 10000) without intermediate overflow.
func applyBps(amount, bps uint64) (uint64, error) {
	if bps > auction.BpsDenominator {
		return 0, fmt.Errorf("%w: %d bps exceeds 100%%", auction.ErrInvalidConfig, bps)
	}
	hi, lo := bits.Mul64(amount, bps)
	// hi < BpsDenominator because bps <= BpsDenominator
	q, _ := bits.Div64(hi, lo, auction.BpsDenominator)
	return q, nil
}

// royaltyTerms resolves the royalty of the market's collection.
func (ctx *ApplyContext) royaltyTerms() (*auction.RoyaltyTerms, error) {
	if ctx.Engine.royalties == nil {
		return nil, nil
	}
	terms, err := ctx.Engine.royalties.CollectionTerms(ctx.Txn, ctx.Config.ItemRegistry)
	if err != nil {
		return nil, fmt.Errorf("royalty lookup for %s: %w", ctx.Config.ItemRegistry, err)
	}
	if terms == nil || terms.ShareBps == 0 || terms.PaymentAddress == "" {
		return nil, nil
	}
	return terms, nil
}

// settleSale pays out the highest bid and hands the item to the winner.
func (ctx *ApplyContext) settleSale(a *auction.Auction) error {
	bid := a.HighestBid
	price := bid.Price

	terms, err := ctx.royaltyTerms()
	if err != nil {
		return err
	}
	var royaltyBps uint64
	if terms != nil {
		royaltyBps = terms.ShareBps
	}

	payout, err := SplitPayout(price.Amount, ctx.Config.TradingFeeBps, royaltyBps)
	if err != nil {
		return err
	}

	if payout.Fee > 0 {
		fee := auction.NewCoin(payout.Fee, price.Denom)
		ctx.Pay(ctx.Config.Collector, fee)
		ctx.Emit(EventPayoutMarket, a.ItemID, coinAttr("coin", fee), attr("recipient", ctx.Config.Collector))
	}
	if payout.Royalty > 0 {
		royalty := auction.NewCoin(payout.Royalty, price.Denom)
		ctx.Pay(terms.PaymentAddress, royalty)
		ctx.Emit(EventPayoutRoyalty, a.ItemID, coinAttr("coin", royalty), attr("recipient", terms.PaymentAddress))
	}

	proceeds := auction.NewCoin(payout.Proceeds, price.Denom)
	ctx.Pay(a.Recipient(), proceeds)
	ctx.Emit(EventPayoutSeller, a.ItemID, coinAttr("coin", proceeds), attr("recipient", a.Recipient()))

	ctx.TransferItem(a.ItemID, bid.Bidder)

	ctx.Emit(EventFinalizeSale, a.ItemID,
		attr("item_id", a.ItemID),
		attr("seller", a.Seller),
		attr("buyer", bid.Bidder),
		coinAttr("price", price),
		attr("royalty_bps", strconv.FormatUint(royaltyBps, 10)),
	)
	return nil
}

// settleNoSale returns the item to the seller and refunds any bid.
func (ctx *ApplyContext) settleNoSale(a *auction.Auction) {
	ctx.TransferItem(a.ItemID, a.Seller)
	if a.HighestBid != nil {
		ctx.refundBid(a.ItemID, a.HighestBid)
	}
}

func (ctx *ApplyContext) refundBid(itemID string, bid *auction.AuctionBid) {
	ctx.Pay(bid.Bidder, bid.Price)
	ctx.Emit(EventRefundAuctionBidder, itemID,
		attr("item_id", itemID),
		attr("bidder", bid.Bidder),
		coinAttr("price", bid.Price),
	)
}
