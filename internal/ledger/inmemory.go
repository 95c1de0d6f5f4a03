package ledger

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/congo-pay/balances/internal/balances"
)

type inMemoryLedger struct {
	mu           sync.RWMutex
	balances     *balances.Ledger[string]
	transactions map[string]TransactionResult
}

// NewInMemory creates a concurrency-safe ledger. Every transfer runs under a
// single write lock so its balance check and both writes are never interleaved.
func NewInMemory() Ledger {
	return &inMemoryLedger{
		balances:     balances.New[string](),
		transactions: make(map[string]TransactionResult),
	}
}

func (l *inMemoryLedger) SetBalance(_ context.Context, account string, amount *uint256.Int) error {
	if account == "" {
		return ErrInvalidAccount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances.SetBalance(strings.Clone(account), amount)
	return nil
}

func (l *inMemoryLedger) Balance(_ context.Context, account string) (*uint256.Int, error) {
	if account == "" {
		return nil, ErrInvalidAccount
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances.Balance(account), nil
}

func (l *inMemoryLedger) Accounts(_ context.Context) ([]AccountBalance, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	accounts := l.balances.Accounts()
	out := make([]AccountBalance, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, AccountBalance{Account: account, Balance: l.balances.Balance(account)})
	}
	return out, nil
}

func (l *inMemoryLedger) Transfer(_ context.Context, fromAccount, toAccount, clientTxID string, amount *uint256.Int) (TransactionResult, error) {
	if fromAccount == "" || toAccount == "" {
		return TransactionResult{}, ErrInvalidAccount
	}
	if amount == nil {
		amount = new(uint256.Int)
	}
	// Keys outlive the call; never retain a caller's borrowed buffer.
	fromAccount, toAccount = strings.Clone(fromAccount), strings.Clone(toAccount)
	clientTxID = strings.Clone(clientTxID)

	l.mu.Lock()
	defer l.mu.Unlock()

	if clientTxID != "" {
		if res, exists := l.transactions[clientTxID]; exists {
			return res, ErrDuplicateTransaction
		}
	}

	if err := l.balances.Transfer(fromAccount, toAccount, amount); err != nil {
		return TransactionResult{}, err
	}

	res := TransactionResult{
		TransactionID: uuid.NewString(),
		ClientTxID:    clientTxID,
		From:          fromAccount,
		To:            toAccount,
		Amount:        amount.Clone(),
		Fee:           balances.Fee(),
		FromBalance:   l.balances.Balance(fromAccount),
		ToBalance:     l.balances.Balance(toAccount),
	}

	if clientTxID != "" {
		l.transactions[clientTxID] = res
	}
	return res, nil
}
