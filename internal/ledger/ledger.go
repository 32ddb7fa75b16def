// Package ledger is an in-process implementation of the auction engine's
// collaborators: account balances, item holders and collection royalties.
// Its state lives under its own key prefix in the auction database, so every
// effect commits atomically with the auction records.
package ledger

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/engine"
	"github.com/LeJamon/goAuctiond/internal/core/store"
	"github.com/LeJamon/goAuctiond/internal/storage/database"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownItem       = errors.New("unknown item")
	ErrItemExists        = errors.New("item already minted")
	ErrInvalidRoyalty    = errors.New("invalid royalty terms")
	ErrInvalidAmount     = errors.New("invalid amount")
)

var (
	balancePrefix = []byte("l/b/")
	holderPrefix  = []byte("l/h/")
	royaltyPrefix = []byte("l/r/")
)

// Ledger keeps balances and item holders. Funds and items in custody belong
// to the custodian account.
type Ledger struct {
	custodian string
	codec     *store.Codec
}

var (
	_ engine.ItemRegistry   = (*Ledger)(nil)
	_ engine.AssetTransfer  = (*Ledger)(nil)
	_ engine.RoyaltyLookup  = (*Ledger)(nil)
	_ engine.FundsCollector = (*Ledger)(nil)
)

func New(custodian string, codec *store.Codec) *Ledger {
	return &Ledger{custodian: custodian, codec: codec}
}

func (l *Ledger) Custodian() string {
	return l.custodian
}

func balanceKey(account, denom string) []byte {
	key := append([]byte{}, balancePrefix...)
	key = binary.BigEndian.AppendUint16(key, uint16(len(account)))
	key = append(key, account...)
	return append(key, denom...)
}

func holderKey(itemID string) []byte {
	return append(append([]byte{}, holderPrefix...), itemID...)
}

func royaltyKey(collection string) []byte {
	return append(append([]byte{}, royaltyPrefix...), collection...)
}

// Balance returns the amount of denom held by account.
func (l *Ledger) Balance(view store.KV, account, denom string) (uint64, error) {
	data, err := view.Read(balanceKey(account, denom))
	if errors.Is(err, database.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("%w: balance of %s", store.ErrCorruptRecord, account)
	}
	return binary.BigEndian.Uint64(data), nil
}

func (l *Ledger) setBalance(view store.KV, account, denom string, amount uint64) error {
	if amount == 0 {
		return view.Delete(balanceKey(account, denom))
	}
	return view.Write(balanceKey(account, denom), binary.BigEndian.AppendUint64(nil, amount))
}

func (l *Ledger) credit(view store.KV, account string, c auction.Coin) error {
	bal, err := l.Balance(view, account, c.Denom)
	if err != nil {
		return err
	}
	if bal > math.MaxUint64-c.Amount {
		return fmt.Errorf("%w: balance of %s would overflow", ErrInvalidAmount, account)
	}
	return l.setBalance(view, account, c.Denom, bal+c.Amount)
}

func (l *Ledger) debit(view store.KV, account string, c auction.Coin) error {
	bal, err := l.Balance(view, account, c.Denom)
	if err != nil {
		return err
	}
	if bal < c.Amount {
		return fmt.Errorf("%w: %s holds %d%s, needs %s", ErrInsufficientFunds, account, bal, c.Denom, c)
	}
	return l.setBalance(view, account, c.Denom, bal-c.Amount)
}

// Fund credits account with newly issued coins.
func (l *Ledger) Fund(view store.KV, account string, c auction.Coin) error {
	if c.Denom == "" {
		return fmt.Errorf("%w: denom is required", ErrInvalidAmount)
	}
	return l.credit(view, account, c)
}

// Send moves coins between two accounts.
func (l *Ledger) Send(view store.KV, from, to string, c auction.Coin) error {
	if c.IsZero() {
		return nil
	}
	if err := l.debit(view, from, c); err != nil {
		return err
	}
	return l.credit(view, to, c)
}

// Pay moves coins out of custody.
func (l *Ledger) Pay(view store.KV, recipient string, amount auction.Coin) error {
	return l.Send(view, l.custodian, recipient, amount)
}

// Collect moves the funds attached to a request into custody.
func (l *Ledger) Collect(view store.KV, from string, funds []auction.Coin) error {
	for _, c := range funds {
		if err := l.Send(view, from, l.custodian, c); err != nil {
			return err
		}
	}
	return nil
}

// Mint registers a new item held by owner.
func (l *Ledger) Mint(view store.KV, itemID, owner string) error {
	if itemID == "" || owner == "" {
		return fmt.Errorf("%w: item and owner are required", ErrUnknownItem)
	}
	if _, err := view.Read(holderKey(itemID)); err == nil {
		return fmt.Errorf("%w: %s", ErrItemExists, itemID)
	} else if !errors.Is(err, database.ErrKeyNotFound) {
		return err
	}
	return view.Write(holderKey(itemID), []byte(owner))
}

// OwnerOf returns the current holder of an item.
func (l *Ledger) OwnerOf(view store.KV, itemID string) (string, error) {
	data, err := view.Read(holderKey(itemID))
	if errors.Is(err, database.ErrKeyNotFound) {
		return "", fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Transfer hands an item to recipient.
func (l *Ledger) Transfer(view store.KV, itemID, recipient string) error {
	if _, err := l.OwnerOf(view, itemID); err != nil {
		return err
	}
	return view.Write(holderKey(itemID), []byte(recipient))
}

type royaltyRecord struct {
	PaymentAddress string `codec:"payment_address"`
	ShareBps       uint64 `codec:"share_bps"`
}

// SetRoyalty attaches royalty terms to a collection. Nil terms remove them.
func (l *Ledger) SetRoyalty(view store.KV, collection string, terms *auction.RoyaltyTerms) error {
	if terms == nil {
		return view.Delete(royaltyKey(collection))
	}
	if terms.ShareBps > auction.BpsDenominator {
		return fmt.Errorf("%w: share %d bps exceeds 100%%", ErrInvalidRoyalty, terms.ShareBps)
	}
	if terms.ShareBps > 0 && terms.PaymentAddress == "" {
		return fmt.Errorf("%w: payment address is required", ErrInvalidRoyalty)
	}

	data, err := l.codec.Marshal(&royaltyRecord{PaymentAddress: terms.PaymentAddress, ShareBps: terms.ShareBps})
	if err != nil {
		return err
	}
	return view.Write(royaltyKey(collection), data)
}

// CollectionTerms returns the royalty terms of a collection, or nil.
func (l *Ledger) CollectionTerms(view store.KV, collection string) (*auction.RoyaltyTerms, error) {
	data, err := view.Read(royaltyKey(collection))
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var r royaltyRecord
	if err := l.codec.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("royalty terms of %s: %w", collection, err)
	}
	return &auction.RoyaltyTerms{PaymentAddress: r.PaymentAddress, ShareBps: r.ShareBps}, nil
}
