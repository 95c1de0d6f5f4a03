package accounts

import (
	"time"

	"github.com/holiman/uint256"
)

// Balance is the balance of one account at a point in time.
type Balance struct {
	Account string
	Amount  *uint256.Int
	AsOf    time.Time
}
