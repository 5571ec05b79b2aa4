package calculator

import (
	"fmt"
	"math"

	"splitpay/internal/models"
)

// SplitEqually divides an amount evenly among the given members, rounding
// each share to a cent. Any rounding remainder lands on the payer's share so
// the shares always sum exactly to the amount. The payer's own share is
// marked pre-settled.
func SplitEqually(amount float64, memberIDs []string, payerID string) ([]models.ExpenseSplit, error) {
	if len(memberIDs) == 0 {
		return nil, fmt.Errorf("must have at least one member")
	}
	if amount <= 0 {
		return nil, models.ErrNonPositiveAmount
	}

	share := math.Round(amount/float64(len(memberIDs))*100) / 100

	splits := make([]models.ExpenseSplit, len(memberIDs))
	payerIdx := -1
	rounded := 0.0
	for i, id := range memberIDs {
		splits[i] = models.ExpenseSplit{
			UserID:  id,
			Amount:  share,
			Settled: id == payerID,
		}
		rounded += share
		if id == payerID {
			payerIdx = i
		}
	}

	// Park the rounding remainder on the payer, or the first member if the
	// payer carries no split.
	remainder := math.Round((amount-rounded)*100) / 100
	if remainder != 0 {
		idx := payerIdx
		if idx < 0 {
			idx = 0
		}
		splits[idx].Amount = math.Round((splits[idx].Amount+remainder)*100) / 100
	}

	return splits, nil
}
