package accounts

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/congo-pay/balances/internal/ledger"
)

// Handler exposes account HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type setBalanceRequest struct {
	Amount json.Number `json:"amount"`
}

type balanceResponse struct {
	Account   string    `json:"account"`
	Balance   string    `json:"balance"`
	Timestamp time.Time `json:"timestamp"`
}

func toResponse(b Balance) balanceResponse {
	return balanceResponse{Account: b.Account, Balance: b.Amount.Dec(), Timestamp: b.AsOf}
}

// List returns all accounts holding a stored balance.
func (h *Handler) List(c *fiber.Ctx) error {
	balances, err := h.service.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]balanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, toResponse(b))
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"accounts": out})
}

// accountParam copies the route param; Fiber reuses its backing buffer after
// the handler returns and the value may end up as a ledger key.
func accountParam(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("account"))
}

// Balance returns the account balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	balance, err := h.service.Balance(c.UserContext(), accountParam(c))
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(balance))
}

// SetBalance overwrites the account balance.
func (h *Handler) SetBalance(c *fiber.Ctx) error {
	var req setBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	balance, err := h.service.SetBalance(c.UserContext(), accountParam(c), req.Amount.String())
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(balance))
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidAccount):
		return fiber.NewError(http.StatusBadRequest, "account is required")
	case errors.Is(err, ledger.ErrInvalidAmount):
		return fiber.NewError(http.StatusBadRequest, "amount must be a non-negative integer")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
