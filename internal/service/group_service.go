package service

import (
	"context"
	"log/slog"

	"splitpay/internal/calculator"
	"splitpay/internal/models"
	"splitpay/internal/store"
)

// GroupService answers group and balance queries.
type GroupService struct {
	store store.Store
}

// NewGroupService creates a GroupService over the given store.
func NewGroupService(st store.Store) *GroupService {
	return &GroupService{store: st}
}

// List returns all groups.
func (s *GroupService) List(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}

// Get retrieves a group by ID.
func (s *GroupService) Get(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroupByID(ctx, groupID)
}

// User retrieves a registered user by ID.
func (s *GroupService) User(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

// MemberBalance computes one member's net position in a group. The value is
// re-derived from the raw expense list on every call.
func (s *GroupService) MemberBalance(ctx context.Context, groupID, userID string) (float64, error) {
	group, err := s.store.GetGroupByID(ctx, groupID)
	if err != nil {
		return 0, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}
	return calculator.Balance(group.ID, expenses, userID), nil
}

// Balances computes every member's net position plus the simplified debt
// edges that would settle the group.
func (s *GroupService) Balances(ctx context.Context, groupID string) ([]calculator.MemberBalance, []calculator.DebtEdge, error) {
	group, err := s.store.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	balances := calculator.GroupBalances(group, expenses)
	edges := calculator.SimplifyDebts(balances)

	slog.Debug("Group balances computed",
		"group_id", groupID,
		"expenses", len(expenses),
		"members", len(balances),
		"debt_edges", len(edges),
	)
	return balances, edges, nil
}
