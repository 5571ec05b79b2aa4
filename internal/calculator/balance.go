// Package calculator holds the pure balance math. Nothing here touches the
// store or mutates its inputs; balances are re-derived from raw expense
// lists on every call so a stale cached value can never be displayed.
package calculator

import "splitpay/internal/models"

// noiseFloor is the threshold below which a residual balance is treated as
// floating point noise rather than a real debt.
const noiseFloor = 0.01

// MemberBalance represents the net position of one group member.
type MemberBalance struct {
	UserID  string  `json:"user_id"`
	Balance float64 `json:"balance"` // positive = owed money, negative = owes money
}

// DebtEdge represents a suggested payment from one member to another.
type DebtEdge struct {
	FromUserID string  `json:"from_user_id"`
	ToUserID   string  `json:"to_user_id"`
	Amount     float64 `json:"amount"`
}

// Balance computes the signed net position of one user within a group.
//
// For each expense in the group: if the user paid, they are owed the amount
// they fronted for others (amount minus their own split); otherwise they owe
// their split. An expense whose splits omit the user contributes 0, as does
// an expense where the payer is the only member.
func Balance(groupID string, expenses []models.Expense, userID string) float64 {
	var balance float64
	for i := range expenses {
		exp := &expenses[i]
		if exp.GroupID != groupID {
			continue
		}

		var own float64
		if split := exp.SplitFor(userID); split != nil {
			own = split.Amount
		}

		if exp.PaidByUserID == userID {
			balance += exp.Amount - own
		} else {
			balance -= own
		}
	}
	return balance
}

// GroupBalances computes the net position of every member of the group.
// The sum of the returned balances is zero within SplitTolerance for any
// expense set whose splits cover their amounts.
func GroupBalances(group *models.Group, expenses []models.Expense) []MemberBalance {
	balances := make([]MemberBalance, len(group.Members))
	for i, member := range group.Members {
		balances[i] = MemberBalance{
			UserID:  member.ID,
			Balance: Balance(group.ID, expenses, member.ID),
		}
	}
	return balances
}

// SimplifyDebts reduces a set of member balances to a small list of payments
// that settles the group. Debtors are matched with creditors greedily;
// residuals under the noise floor are dropped.
func SimplifyDebts(balances []MemberBalance) []DebtEdge {
	var creditors, debtors []MemberBalance
	for _, b := range balances {
		switch {
		case b.Balance > noiseFloor:
			creditors = append(creditors, b)
		case b.Balance < -noiseFloor:
			debtors = append(debtors, MemberBalance{UserID: b.UserID, Balance: -b.Balance})
		}
	}

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].Balance
		if creditors[j].Balance < amount {
			amount = creditors[j].Balance
		}

		if amount > noiseFloor {
			edges = append(edges, DebtEdge{
				FromUserID: debtors[i].UserID,
				ToUserID:   creditors[j].UserID,
				Amount:     amount,
			})
		}

		debtors[i].Balance -= amount
		creditors[j].Balance -= amount

		if debtors[i].Balance < noiseFloor {
			i++
		}
		if creditors[j].Balance < noiseFloor {
			j++
		}
	}
	return edges
}
