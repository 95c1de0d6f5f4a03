package transfers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/holiman/uint256"

	"github.com/congo-pay/balances/internal/ledger"
)

// Handler exposes transfer endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a transfer handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// transferRequest accepts the amount as a JSON number or a decimal string.
type transferRequest struct {
	From       string      `json:"from"`
	To         string      `json:"to"`
	Amount     json.Number `json:"amount"`
	ClientTxID string      `json:"client_tx_id"`
}

type transferResponse struct {
	TransactionID string    `json:"transaction_id"`
	ClientTxID    string    `json:"client_tx_id"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	Amount        string    `json:"amount"`
	Fee           string    `json:"fee"`
	FromBalance   string    `json:"from_balance"`
	ToBalance     string    `json:"to_balance"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Create processes an account-to-account transfer.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Transfer(c.UserContext(), TransferInput{
		From:       req.From,
		To:         req.To,
		Amount:     req.Amount.String(),
		ClientTxID: req.ClientTxID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrDuplicateTransaction):
			return c.Status(http.StatusConflict).JSON(fiber.Map{
				"error":       "duplicate transaction",
				"transaction": toResponse(res),
			})
		case errors.Is(err, ledger.ErrInsufficientFunds):
			return fiber.NewError(http.StatusBadRequest, "insufficient funds")
		case errors.Is(err, ledger.ErrBalanceOverflow):
			return fiber.NewError(http.StatusUnprocessableEntity, "recipient balance overflow")
		case errors.Is(err, ledger.ErrInvalidAccount):
			return fiber.NewError(http.StatusBadRequest, "from and to accounts are required")
		case errors.Is(err, ledger.ErrInvalidAmount):
			return fiber.NewError(http.StatusBadRequest, "amount must be a non-negative integer")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(toResponse(res))
}

func toResponse(res TransferResult) transferResponse {
	return transferResponse{
		TransactionID: res.TransactionID,
		ClientTxID:    res.ClientTxID,
		From:          res.From,
		To:            res.To,
		Amount:        decString(res.Amount),
		Fee:           decString(res.Fee),
		FromBalance:   decString(res.FromBalance),
		ToBalance:     decString(res.ToBalance),
		CompletedAt:   res.CompletedAt,
	}
}

func decString(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}
