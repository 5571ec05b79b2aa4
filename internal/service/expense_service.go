// Package service implements the application operations over the store, the
// calculator, and the payment client.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"splitpay/internal/calculator"
	"splitpay/internal/metrics"
	"splitpay/internal/models"
	"splitpay/internal/store"
)

// ExpenseService creates and queries expenses.
type ExpenseService struct {
	store store.Store
}

// NewExpenseService creates an ExpenseService over the given store.
func NewExpenseService(st store.Store) *ExpenseService {
	return &ExpenseService{store: st}
}

// CreateExpenseInput carries the caller-supplied fields for a new expense.
// Splits may be omitted for an equal split; they are then derived from the
// group membership with the rounding remainder on the payer.
type CreateExpenseInput struct {
	GroupID      string
	Description  string
	Amount       float64
	PaidByUserID string
	SplitType    models.SplitType
	Splits       []models.ExpenseSplit
}

// Create validates and stores a new expense. All validation failures are
// returned before any store mutation.
func (s *ExpenseService) Create(ctx context.Context, in CreateExpenseInput) (*models.Expense, error) {
	group, err := s.store.GetGroupByID(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}

	splits := in.Splits
	if in.SplitType == models.SplitTypeEqual && len(splits) == 0 {
		if in.Amount <= 0 {
			return nil, models.ErrNonPositiveAmount
		}
		splits, err = calculator.SplitEqually(in.Amount, group.MemberIDs(), in.PaidByUserID)
		if err != nil {
			return nil, fmt.Errorf("derive equal splits: %w", err)
		}
	}

	expense := &models.Expense{
		GroupID:      in.GroupID,
		Description:  in.Description,
		Amount:       in.Amount,
		PaidByUserID: in.PaidByUserID,
		SplitType:    in.SplitType,
		Splits:       splits,
	}

	if err := s.store.AddExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense rejected", "group_id", in.GroupID, "error", err)
		return nil, err
	}

	metrics.ExpensesCreated.Inc()
	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"amount", expense.Amount,
		"paid_by", expense.PaidByUserID,
	)
	return expense, nil
}

// ListByGroup returns the group's expenses, most recent first.
func (s *ExpenseService) ListByGroup(ctx context.Context, groupID string) ([]models.Expense, error) {
	if _, err := s.store.GetGroupByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// Get retrieves a single expense.
func (s *ExpenseService) Get(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpenseByID(ctx, expenseID)
}
