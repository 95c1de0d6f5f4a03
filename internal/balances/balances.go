// Package balances implements a minimal account-balance ledger with a
// fee-charging transfer.
//
// A Ledger is a plain value owned by its caller. It holds no locks; callers
// that share one across goroutines must serialize access to it.
package balances

import (
	"cmp"
	"errors"
	"slices"

	"github.com/holiman/uint256"
)

// TransactionFee is charged to the sender on every transfer on top of the
// transferred amount. It is not credited to any account.
const TransactionFee = 10

var (
	// ErrInsufficientFunds is returned when the sender cannot cover amount plus fee.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBalanceOverflow is returned when crediting the recipient would exceed
	// the range of the balance type.
	ErrBalanceOverflow = errors.New("balance overflow")
)

var fee = uint256.NewInt(TransactionFee)

// Fee returns the per-transfer fee as a balance value.
func Fee() *uint256.Int {
	return fee.Clone()
}

// Ledger maps account identifiers to balances. Accounts without an entry have
// an implicit balance of zero.
type Ledger[K cmp.Ordered] struct {
	balances map[K]uint256.Int
}

// New returns an empty ledger.
func New[K cmp.Ordered]() *Ledger[K] {
	return &Ledger[K]{balances: make(map[K]uint256.Int)}
}

// SetBalance overwrites the stored balance of who. A nil amount stores zero.
func (l *Ledger[K]) SetBalance(who K, amount *uint256.Int) {
	if amount == nil {
		l.balances[who] = uint256.Int{}
		return
	}
	l.balances[who] = *amount
}

// Balance returns a copy of the balance of who, or zero if it has no entry.
func (l *Ledger[K]) Balance(who K) *uint256.Int {
	bal := l.balances[who]
	return &bal
}

// Transfer moves amount from sender to recipient and burns TransactionFee
// from the sender. The sender loses amount+fee, the recipient gains amount.
// On error the ledger is left unchanged.
func (l *Ledger[K]) Transfer(sender, recipient K, amount *uint256.Int) error {
	if amount == nil {
		amount = new(uint256.Int)
	}

	senderBalance := l.Balance(sender)
	total, overflow := new(uint256.Int).AddOverflow(amount, fee)
	if overflow || senderBalance.Lt(total) {
		return ErrInsufficientFunds
	}

	// Writes are staged so the recipient read observes the debit, as it would
	// if the debit were written first. With sender == recipient this nets -fee.
	staged := map[K]uint256.Int{sender: *new(uint256.Int).Sub(senderBalance, total)}
	credited, ok := staged[recipient]
	if !ok {
		credited = l.balances[recipient]
	}
	if _, overflow := credited.AddOverflow(&credited, amount); overflow {
		return ErrBalanceOverflow
	}
	staged[recipient] = credited

	for who, bal := range staged {
		l.balances[who] = bal
	}
	return nil
}

// Accounts returns the accounts holding a stored entry in ascending order.
func (l *Ledger[K]) Accounts() []K {
	accounts := make([]K, 0, len(l.balances))
	for who := range l.balances {
		accounts = append(accounts, who)
	}
	slices.Sort(accounts)
	return accounts
}

// Len reports the number of stored entries.
func (l *Ledger[K]) Len() int {
	return len(l.balances)
}
