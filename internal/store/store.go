// Package store provides the in-memory session store for expenses,
// settlements, groups, and users.
package store

import (
	"context"
	"errors"

	"splitpay/internal/models"
)

// Not-found and transition errors returned by Store implementations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrSettlementNotFound = errors.New("settlement not found")

	// ErrSettlementFinal is returned when a status update targets a
	// settlement already in a terminal state.
	ErrSettlementFinal = errors.New("settlement is in a terminal state")

	// ErrInvalidTransition is returned when a status update would skip a
	// lifecycle step.
	ErrInvalidTransition = errors.New("illegal settlement status transition")
)

// SettlementUpdate carries the optional fields merged into a settlement
// alongside a status change.
type SettlementUpdate struct {
	ApprovalTxHash string
	PaymentTxHash  string
	ErrorMessage   string
}

// Store defines the collection operations the service and API layers consume.
// The interface mirrors a persistent-storage abstraction so a backend could
// be swapped in, but the shipped implementation is per-session memory: data
// lives only for the process lifetime.
type Store interface {
	// AddUser registers a user. The user.ID field is populated if empty.
	AddUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// AddGroup creates a group after validating it. Populates ID/CreatedAt.
	AddGroup(ctx context.Context, group *models.Group) error

	// GetGroupByID retrieves a group by ID.
	GetGroupByID(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns all groups in creation order.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// AddExpense validates the expense against its group, assigns ID and
	// CreatedAt, and prepends it (most-recent-first ordering for display).
	AddExpense(ctx context.Context, expense *models.Expense) error

	// GetExpenseByID retrieves an expense by ID.
	GetExpenseByID(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup returns the group's expenses, most recent first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// AddSettlement validates the settlement against its group and assigns
	// ID and CreatedAt. If settlement.ExpenseID is set, the linked expense
	// and the debtor's split are flagged settled as a side effect; this is
	// the only place settlement state back-propagates to an expense.
	AddSettlement(ctx context.Context, settlement *models.Settlement) error

	// GetSettlementByID retrieves a settlement by ID.
	GetSettlementByID(ctx context.Context, settlementID string) (*models.Settlement, error)

	// GetSettlementsByExpenseID returns settlements linked to the expense,
	// in insertion order.
	GetSettlementsByExpenseID(ctx context.Context, expenseID string) ([]models.Settlement, error)

	// UpdateSettlementStatus merges a new status and optional fields into
	// the settlement, stamping UpdatedAt. Terminal settlements reject any
	// further update with ErrSettlementFinal; lifecycle-skipping moves are
	// rejected with ErrInvalidTransition.
	UpdateSettlementStatus(ctx context.Context, settlementID string, status models.PaymentStatus, update SettlementUpdate) (*models.Settlement, error)

	// HasUserSettledExpense reports whether the user's share of the expense
	// is covered: they are the payer, their split is flagged settled, or a
	// completed settlement from them links to the expense.
	HasUserSettledExpense(ctx context.Context, expenseID, userID string) (bool, error)
}
