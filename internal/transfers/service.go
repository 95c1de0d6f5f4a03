package transfers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/congo-pay/balances/internal/ledger"
	"github.com/congo-pay/balances/internal/notification"
)

// Service moves funds between accounts on the ledger.
type Service struct {
	ledger   ledger.Ledger
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService constructs a transfer service. notifier may be nil.
func NewService(ledger ledger.Ledger, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{ledger: ledger, notifier: notifier, logger: logger}
}

// TransferInput captures the data needed to move funds between accounts.
// Amount is a base-10 integer string.
type TransferInput struct {
	From       string
	To         string
	Amount     string
	ClientTxID string
}

// TransferResult describes the ledger outcome of a transfer.
type TransferResult struct {
	TransactionID string
	ClientTxID    string
	From          string
	To            string
	Amount        *uint256.Int
	Fee           *uint256.Int
	FromBalance   *uint256.Int
	ToBalance     *uint256.Int
	CompletedAt   time.Time
}

// Transfer debits amount plus the ledger fee from the sender and credits
// amount to the recipient. A replayed client transaction id returns the
// original result together with ledger.ErrDuplicateTransaction.
func (s *Service) Transfer(ctx context.Context, input TransferInput) (TransferResult, error) {
	from := strings.TrimSpace(input.From)
	to := strings.TrimSpace(input.To)
	if from == "" || to == "" {
		return TransferResult{}, ledger.ErrInvalidAccount
	}
	amount, err := ledger.ParseAmount(input.Amount)
	if err != nil {
		return TransferResult{}, err
	}
	if input.ClientTxID == "" {
		input.ClientTxID = uuid.NewString()
	}

	res, err := s.ledger.Transfer(ctx, from, to, input.ClientTxID, amount)
	if err != nil {
		if errors.Is(err, ledger.ErrDuplicateTransaction) {
			return toResult(res), err
		}
		return TransferResult{}, err
	}

	outcome := toResult(res)
	s.logger.InfoContext(ctx, "transfer completed",
		slog.String("transaction_id", outcome.TransactionID),
		slog.String("from", from),
		slog.String("to", to),
		slog.String("amount", amount.Dec()),
		slog.String("fee", outcome.Fee.Dec()),
	)

	if s.notifier != nil {
		if err := s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransferReceived,
			Destination: to,
			Body:        fmt.Sprintf("You received %s from %s", amount.Dec(), from),
			Attrs:       map[string]string{"transaction_id": outcome.TransactionID},
		}); err != nil {
			s.logger.WarnContext(ctx, "transfer notification failed", slog.String("transaction_id", outcome.TransactionID), slog.Any("error", err))
		}
	}

	return outcome, nil
}

func toResult(res ledger.TransactionResult) TransferResult {
	return TransferResult{
		TransactionID: res.TransactionID,
		ClientTxID:    res.ClientTxID,
		From:          res.From,
		To:            res.To,
		Amount:        res.Amount,
		Fee:           res.Fee,
		FromBalance:   res.FromBalance,
		ToBalance:     res.ToBalance,
		CompletedAt:   time.Now().UTC(),
	}
}
