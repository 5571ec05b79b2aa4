package models

import (
	"errors"
	"fmt"
	"math"
)

// SplitTolerance is the maximum allowed difference, in currency units,
// between an expense amount and the sum of its splits. It absorbs the
// rounding of equal splits (e.g. 89.99 split two ways).
const SplitTolerance = 0.01

// SplitType describes how an expense is divided among members.
type SplitType string

const (
	// SplitTypeEqual divides the amount evenly among the listed members.
	SplitTypeEqual SplitType = "equal"

	// SplitTypeCustom uses caller-supplied per-member amounts.
	SplitTypeCustom SplitType = "custom"
)

// Valid reports whether the split type is one of the known variants.
func (t SplitType) Valid() bool {
	return t == SplitTypeEqual || t == SplitTypeCustom
}

// Validation errors for expense creation. All are detected before any store
// mutation.
var (
	ErrEmptyDescription  = errors.New("expense description required")
	ErrNonPositiveAmount = errors.New("expense amount must be positive")
	ErrPayerNotMember    = errors.New("payer must be a member of the group")
	ErrSplitNotMember    = errors.New("split user must be a member of the group")
	ErrNegativeSplit     = errors.New("split amount must be non-negative")
	ErrInvalidSplitType  = errors.New("split type must be equal or custom")
)

// ExpenseSplit is one member's owed share of an expense.
type ExpenseSplit struct {
	// UserID identifies the member who owes this share.
	UserID string `json:"user_id"`

	// Amount is the non-negative share owed.
	Amount float64 `json:"amount"`

	// Settled reports whether this share has been paid back.
	// The payer's own split, if present, is pre-settled.
	Settled bool `json:"settled"`
}

// Expense represents a single purchase paid by one member and divided among
// members via splits.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"expense_id"`

	// GroupID is the group this expense belongs to.
	GroupID string `json:"group_id"`

	// Description is the human-readable label (e.g. "Hotel Booking").
	Description string `json:"description"`

	// Amount is the total amount paid. Always positive.
	Amount float64 `json:"amount"`

	// PaidByUserID is the member who fronted the money.
	PaidByUserID string `json:"paid_by_user_id"`

	// SplitType records how Splits were derived.
	SplitType SplitType `json:"split_type"`

	// Splits is the ordered list of per-member shares. Their sum equals
	// Amount within SplitTolerance.
	Splits []ExpenseSplit `json:"splits"`

	// CreatedAt is the Unix timestamp when the expense was logged.
	CreatedAt int64 `json:"created_at"`

	// Settled is true only when every non-payer split is settled.
	Settled bool `json:"settled"`
}

// SplitFor returns the split belonging to the given user, or nil if the
// expense does not include them.
func (e *Expense) SplitFor(userID string) *ExpenseSplit {
	for i := range e.Splits {
		if e.Splits[i].UserID == userID {
			return &e.Splits[i]
		}
	}
	return nil
}

// Validate checks the expense invariants against its group: non-empty
// description, positive amount, payer and all split users are members,
// non-negative shares, and split sum equal to the amount within
// SplitTolerance.
func (e *Expense) Validate(group *Group) error {
	if e.Description == "" {
		return ErrEmptyDescription
	}
	if e.Amount <= 0 {
		return ErrNonPositiveAmount
	}
	if !e.SplitType.Valid() {
		return ErrInvalidSplitType
	}
	if !group.IsMember(e.PaidByUserID) {
		return fmt.Errorf("%w: %s", ErrPayerNotMember, e.PaidByUserID)
	}

	var sum float64
	for _, split := range e.Splits {
		if split.Amount < 0 {
			return fmt.Errorf("%w: user %s", ErrNegativeSplit, split.UserID)
		}
		if !group.IsMember(split.UserID) {
			return fmt.Errorf("%w: %s", ErrSplitNotMember, split.UserID)
		}
		sum += split.Amount
	}
	if math.Abs(sum-e.Amount) > SplitTolerance {
		return fmt.Errorf("split sum %.4f does not match expense amount %.4f", sum, e.Amount)
	}
	return nil
}
