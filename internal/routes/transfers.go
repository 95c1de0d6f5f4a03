package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/balances/internal/transfers"
)

// RegisterTransferRoutes wires transfer endpoints. Nil middlewares are skipped.
func RegisterTransferRoutes(r fiber.Router, h *transfers.Handler, mws ...fiber.Handler) {
	handlers := make([]fiber.Handler, 0, len(mws)+1)
	for _, mw := range mws {
		if mw != nil {
			handlers = append(handlers, mw)
		}
	}
	handlers = append(handlers, h.Create)
	r.Post("/transfers", handlers...)
}
