package transfers

import (
	"context"
	"errors"
	"testing"

	"github.com/congo-pay/balances/internal/ledger"
	"github.com/congo-pay/balances/internal/logging"
	"github.com/congo-pay/balances/internal/notification"
)

type testNotifier struct {
	last notification.Message
	err  error
}

func (n *testNotifier) Send(_ context.Context, msg notification.Message) error {
	n.last = msg
	return n.err
}

func TestTransferSuccess(t *testing.T) {
	led := ledger.NewInMemory()
	notifier := &testNotifier{}
	svc := NewService(led, notifier, logging.Discard())

	ctx := context.Background()
	ledger.SeedBalance(led, "alice", 100)

	res, err := svc.Transfer(ctx, TransferInput{From: "alice", To: "bob", Amount: "30", ClientTxID: "abc"})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	if res.FromBalance.Uint64() != 60 || res.ToBalance.Uint64() != 30 {
		t.Fatalf("unexpected balances: from=%s to=%s", res.FromBalance.Dec(), res.ToBalance.Dec())
	}
	if res.ClientTxID != "abc" || res.CompletedAt.IsZero() {
		t.Fatalf("unexpected result: %+v", res)
	}

	if notifier.last.Kind != notification.KindTransferReceived || notifier.last.Destination != "bob" {
		t.Fatalf("expected notification to be sent to bob, got %+v", notifier.last)
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	led := ledger.NewInMemory()
	notifier := &testNotifier{}
	svc := NewService(led, notifier, logging.Discard())

	ctx := context.Background()
	ledger.SeedBalance(led, "alice", 20)

	if _, err := svc.Transfer(ctx, TransferInput{From: "alice", To: "bob", Amount: "15"}); err != ledger.ErrInsufficientFunds {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if notifier.last.Kind != "" {
		t.Fatalf("expected no notification on failure")
	}

	alice, _ := led.Balance(ctx, "alice")
	if alice.Uint64() != 20 {
		t.Fatalf("expected alice unchanged, got %s", alice.Dec())
	}
}

func TestTransferGeneratesClientTxID(t *testing.T) {
	led := ledger.NewInMemory()
	svc := NewService(led, nil, logging.Discard())
	ledger.SeedBalance(led, "alice", 100)

	res, err := svc.Transfer(context.Background(), TransferInput{From: "alice", To: "bob", Amount: "1"})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if res.ClientTxID == "" {
		t.Fatalf("expected generated client tx id")
	}
}

func TestTransferDuplicateReturnsOriginal(t *testing.T) {
	led := ledger.NewInMemory()
	svc := NewService(led, nil, logging.Discard())
	ctx := context.Background()
	ledger.SeedBalance(led, "alice", 100)

	first, err := svc.Transfer(ctx, TransferInput{From: "alice", To: "bob", Amount: "30", ClientTxID: "dup"})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	replay, err := svc.Transfer(ctx, TransferInput{From: "alice", To: "bob", Amount: "30", ClientTxID: "dup"})
	if !errors.Is(err, ledger.ErrDuplicateTransaction) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	if replay.TransactionID != first.TransactionID {
		t.Fatalf("expected original transaction id")
	}
}

func TestTransferValidation(t *testing.T) {
	svc := NewService(ledger.NewInMemory(), nil, logging.Discard())
	ctx := context.Background()

	if _, err := svc.Transfer(ctx, TransferInput{From: " ", To: "bob", Amount: "1"}); !errors.Is(err, ledger.ErrInvalidAccount) {
		t.Fatalf("expected invalid account, got %v", err)
	}
	if _, err := svc.Transfer(ctx, TransferInput{From: "alice", To: "bob", Amount: "-1"}); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
}

func TestTransferNotificationFailureDoesNotFailTransfer(t *testing.T) {
	led := ledger.NewInMemory()
	svc := NewService(led, &testNotifier{err: errors.New("smtp down")}, logging.Discard())
	ledger.SeedBalance(led, "alice", 100)

	if _, err := svc.Transfer(context.Background(), TransferInput{From: "alice", To: "bob", Amount: "5"}); err != nil {
		t.Fatalf("expected transfer to succeed, got %v", err)
	}
}
