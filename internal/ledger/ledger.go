package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/congo-pay/balances/internal/balances"
)

var (
	// ErrInsufficientFunds occurs when the sender cannot cover the amount plus
	// the transaction fee.
	ErrInsufficientFunds = balances.ErrInsufficientFunds

	// ErrBalanceOverflow occurs when a credit would exceed the balance range.
	ErrBalanceOverflow = balances.ErrBalanceOverflow

	// ErrDuplicateTransaction indicates the provided client transaction identifier
	// already exists and therefore the operation should be treated as idempotent.
	ErrDuplicateTransaction = errors.New("duplicate transaction")

	// ErrInvalidAccount is returned for an empty account identifier.
	ErrInvalidAccount = errors.New("invalid account")
)

// TransactionResult captures the outcome of a transfer.
type TransactionResult struct {
	TransactionID string
	ClientTxID    string
	From          string
	To            string
	Amount        *uint256.Int
	Fee           *uint256.Int
	FromBalance   *uint256.Int
	ToBalance     *uint256.Int
}

// AccountBalance pairs an account with its stored balance.
type AccountBalance struct {
	Account string
	Balance *uint256.Int
}

// Ledger defines the contract the host exposes over a balances ledger.
type Ledger interface {
	SetBalance(ctx context.Context, account string, amount *uint256.Int) error
	Balance(ctx context.Context, account string) (*uint256.Int, error)
	Accounts(ctx context.Context) ([]AccountBalance, error)
	Transfer(ctx context.Context, fromAccount, toAccount, clientTxID string, amount *uint256.Int) (TransactionResult, error)
}

// ErrInvalidAmount is returned when an amount is not a non-negative decimal integer.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a base-10 amount. Signs, blanks and fractional parts are rejected.
func ParseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, ErrInvalidAmount
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, ErrInvalidAmount
		}
	}
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	return amount, nil
}
