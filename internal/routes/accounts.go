package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/balances/internal/accounts"
)

// RegisterAccountRoutes wires account balance endpoints. Setting a balance
// requires the admin guard.
func RegisterAccountRoutes(r fiber.Router, h *accounts.Handler, admin fiber.Handler) {
	r.Get("/accounts", h.List)
	r.Get("/accounts/:account/balance", h.Balance)
	r.Put("/accounts/:account/balance", admin, h.SetBalance)
}
