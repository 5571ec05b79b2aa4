package models

import "errors"

// PaymentStatus is the lifecycle state of a settlement attempt.
//
// The state machine is:
//
//	initial -> approving -> approved -> paying -> completed
//	                |                     |
//	                +------> failed <-----+
//
// completed and failed are terminal. A failed attempt is never resumed in
// place; the caller creates a new Settlement to retry.
type PaymentStatus string

const (
	StatusInitial   PaymentStatus = "initial"
	StatusApproving PaymentStatus = "approving"
	StatusApproved  PaymentStatus = "approved"
	StatusPaying    PaymentStatus = "paying"
	StatusCompleted PaymentStatus = "completed"
	StatusFailed    PaymentStatus = "failed"
)

// Valid reports whether the status is one of the known variants.
func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusInitial, StatusApproving, StatusApproved, StatusPaying, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the status is final for this attempt.
func (s PaymentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether moving from s to next is a legal state
// machine step. Terminal states admit no transitions; approval must complete
// before the transfer step begins.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	switch s {
	case StatusInitial:
		return next == StatusApproving
	case StatusApproving:
		return next == StatusApproved || next == StatusFailed
	case StatusApproved:
		return next == StatusPaying
	case StatusPaying:
		return next == StatusCompleted || next == StatusFailed
	default:
		return false
	}
}

// Settlement-specific validation errors.
var (
	ErrSelfSettlement        = errors.New("settlement debtor and creditor must differ")
	ErrNonPositiveSettlement = errors.New("settlement amount must be positive")
	ErrSettlementNotMember   = errors.New("settlement parties must be members of the group")
)

// Settlement represents one attempt to transfer an owed amount from a debtor
// to a creditor, tracked through the approval/payment state machine.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"settlement_id"`

	// GroupID is the group this settlement belongs to.
	GroupID string `json:"group_id"`

	// FromUserID is the debtor settling up.
	FromUserID string `json:"from_user_id"`

	// ToUserID is the creditor being paid.
	ToUserID string `json:"to_user_id"`

	// Amount is the payment amount in currency units.
	Amount float64 `json:"amount"`

	// Status is the current lifecycle state.
	Status PaymentStatus `json:"status"`

	// ExpenseID optionally links this settlement to the expense it
	// discharges.
	ExpenseID string `json:"expense_id,omitempty"`

	// ApprovalTxHash is the transaction hash of the approval step, set once
	// the status reaches approved.
	ApprovalTxHash string `json:"approval_tx_hash,omitempty"`

	// PaymentTxHash is the transaction hash of the transfer step, set once
	// the status reaches completed.
	PaymentTxHash string `json:"payment_tx_hash,omitempty"`

	// ErrorMessage records why the attempt failed. Set when status is failed.
	ErrorMessage string `json:"error_message,omitempty"`

	// CreatedAt is the Unix timestamp when the settlement was initiated.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last status change.
	UpdatedAt int64 `json:"updated_at,omitempty"`
}

// Validate checks the settlement invariants against its group.
func (s *Settlement) Validate(group *Group) error {
	if s.FromUserID == s.ToUserID {
		return ErrSelfSettlement
	}
	if s.Amount <= 0 {
		return ErrNonPositiveSettlement
	}
	if !group.IsMember(s.FromUserID) || !group.IsMember(s.ToUserID) {
		return ErrSettlementNotMember
	}
	return nil
}
