package store

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/pierrec/lz4"
	"github.com/ugorji/go/codec"
)

// Format tags leading every encoded value.
const (
	formatMsgpack    byte = 0x00
	formatMsgpackLZ4 byte = 0x01
)

// Compression selects how values are written. Reads accept every format.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionLZ4  Compression = "lz4"
)

// ParseCompression maps a configuration string to a Compression.
func ParseCompression(s string) (Compression, error) {
	switch Compression(s) {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionLZ4:
		return CompressionLZ4, nil
	}
	return "", fmt.Errorf("unknown compression %q", s)
}

var msgpackHandle = func() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.RawToString = true
	h.Canonical = true
	return h
}()

// Codec encodes stored values as tagged msgpack, optionally lz4 compressed.
type Codec struct {
	compression Compression
}

func NewCodec(c Compression) *Codec {
	return &Codec{compression: c}
}

// Marshal encodes v.
func (c *Codec) Marshal(v interface{}) ([]byte, error) {
	var raw []byte
	if err := codec.NewEncoderBytes(&raw, msgpackHandle).Encode(v); err != nil {
		return nil, fmt.Errorf("msgpack encode: %w", err)
	}

	if c.compression == CompressionLZ4 {
		if out, ok := compressLZ4(raw); ok {
			return out, nil
		}
	}
	return append([]byte{formatMsgpack}, raw...), nil
}

// Unmarshal decodes data produced by Marshal into v.
func (c *Codec) Unmarshal(data []byte, v interface{}) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty value", ErrCorruptRecord)
	}

	raw := data[1:]
	switch data[0] {
	case formatMsgpack:
	case formatMsgpackLZ4:
		var err error
		if raw, err = decompressLZ4(raw); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown format tag 0x%02x", ErrCorruptRecord, data[0])
	}

	if err := codec.NewDecoderBytes(raw, msgpackHandle).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return nil
}

// maxDecompressedSize caps the length header of compressed values.
const maxDecompressedSize = 4 << 20

// compressLZ4 returns tag | uvarint(len(raw)) | block. It reports false
// when the block would not be smaller than the input.
func compressLZ4(raw []byte) ([]byte, bool) {
	if len(raw) > maxDecompressedSize {
		return nil, false
	}
	bound := lz4.CompressBlockBound(len(raw))
	out := make([]byte, 1+binary.MaxVarintLen64+bound)
	out[0] = formatMsgpackLZ4
	hdr := 1 + binary.PutUvarint(out[1:], uint64(len(raw)))

	n, err := lz4.CompressBlock(raw, out[hdr:], nil)
	if err != nil || n == 0 || hdr+n >= len(raw)+1 {
		return nil, false
	}
	return out[:hdr+n], true
}

func decompressLZ4(data []byte) ([]byte, error) {
	size, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, fmt.Errorf("%w: bad lz4 length header", ErrCorruptRecord)
	}
	if size > maxDecompressedSize {
		return nil, fmt.Errorf("%w: lz4 length %d exceeds %d", ErrCorruptRecord, size, maxDecompressedSize)
	}
	raw := make([]byte, size)
	m, err := lz4.UncompressBlock(data[n:], raw)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %v", ErrCorruptRecord, err)
	}
	if uint64(m) != size {
		return nil, fmt.Errorf("%w: lz4 length mismatch", ErrCorruptRecord)
	}
	return raw, nil
}

// Persistent shapes. Times are stored as Unix nanoseconds.

type coinRecord struct {
	Amount uint64 `codec:"amount"`
	Denom  string `codec:"denom"`
}

type bidRecord struct {
	Bidder string     `codec:"bidder"`
	Price  coinRecord `codec:"price"`
}

type auctionRecord struct {
	ItemID         string      `codec:"item_id"`
	Seller         string      `codec:"seller"`
	StartTime      int64       `codec:"start_time"`
	EndTime        int64       `codec:"end_time"`
	StartingPrice  coinRecord  `codec:"starting_price"`
	ReservePrice   *coinRecord `codec:"reserve_price,omitempty"`
	FundsRecipient string      `codec:"funds_recipient,omitempty"`
	HighestBid     *bidRecord  `codec:"highest_bid,omitempty"`
}

type configRecord struct {
	ItemRegistry    string   `codec:"item_registry"`
	Denom           string   `codec:"denom"`
	Collector       string   `codec:"collector"`
	TradingFeeBps   uint64   `codec:"trading_fee_bps"`
	Operators       []string `codec:"operators"`
	MinPrice        uint64   `codec:"min_price"`
	MinBidIncrement uint64   `codec:"min_bid_increment"`
	MinDuration     int64    `codec:"min_duration"`
	MaxDuration     int64    `codec:"max_duration"`
	ClosedDuration  int64    `codec:"closed_duration"`
	BufferDuration  int64    `codec:"buffer_duration"`
}

func toCoinRecord(c auction.Coin) coinRecord {
	return coinRecord{Amount: c.Amount, Denom: c.Denom}
}

func (c coinRecord) coin() auction.Coin {
	return auction.Coin{Amount: c.Amount, Denom: c.Denom}
}

func toAuctionRecord(a *auction.Auction) *auctionRecord {
	r := &auctionRecord{
		ItemID:         a.ItemID,
		Seller:         a.Seller,
		StartTime:      a.StartTime.UnixNano(),
		EndTime:        a.EndTime.UnixNano(),
		StartingPrice:  toCoinRecord(a.StartingPrice),
		FundsRecipient: a.FundsRecipient,
	}
	if a.ReservePrice != nil {
		rp := toCoinRecord(*a.ReservePrice)
		r.ReservePrice = &rp
	}
	if a.HighestBid != nil {
		r.HighestBid = &bidRecord{Bidder: a.HighestBid.Bidder, Price: toCoinRecord(a.HighestBid.Price)}
	}
	return r
}

func (r *auctionRecord) auction() *auction.Auction {
	a := &auction.Auction{
		ItemID:         r.ItemID,
		Seller:         r.Seller,
		StartTime:      time.Unix(0, r.StartTime).UTC(),
		EndTime:        time.Unix(0, r.EndTime).UTC(),
		StartingPrice:  r.StartingPrice.coin(),
		FundsRecipient: r.FundsRecipient,
	}
	if r.ReservePrice != nil {
		rp := r.ReservePrice.coin()
		a.ReservePrice = &rp
	}
	if r.HighestBid != nil {
		a.HighestBid = &auction.AuctionBid{Bidder: r.HighestBid.Bidder, Price: r.HighestBid.Price.coin()}
	}
	return a
}

func toConfigRecord(c *auction.Config) *configRecord {
	return &configRecord{
		ItemRegistry:    c.ItemRegistry,
		Denom:           c.Denom,
		Collector:       c.Collector,
		TradingFeeBps:   c.TradingFeeBps,
		Operators:       append([]string(nil), c.Operators...),
		MinPrice:        c.MinPrice,
		MinBidIncrement: c.MinBidIncrement,
		MinDuration:     int64(c.MinDuration),
		MaxDuration:     int64(c.MaxDuration),
		ClosedDuration:  int64(c.ClosedDuration),
		BufferDuration:  int64(c.BufferDuration),
	}
}

func (r *configRecord) config() *auction.Config {
	return &auction.Config{
		ItemRegistry:    r.ItemRegistry,
		Denom:           r.Denom,
		Collector:       r.Collector,
		TradingFeeBps:   r.TradingFeeBps,
		Operators:       r.Operators,
		MinPrice:        r.MinPrice,
		MinBidIncrement: r.MinBidIncrement,
		MinDuration:     time.Duration(r.MinDuration),
		MaxDuration:     time.Duration(r.MaxDuration),
		ClosedDuration:  time.Duration(r.ClosedDuration),
		BufferDuration:  time.Duration(r.BufferDuration),
	}
}

func (c *Codec) encodeAuction(a *auction.Auction) ([]byte, error) {
	return c.Marshal(toAuctionRecord(a))
}

func (c *Codec) decodeAuction(data []byte) (*auction.Auction, error) {
	var r auctionRecord
	if err := c.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return r.auction(), nil
}
