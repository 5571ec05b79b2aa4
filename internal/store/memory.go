package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"splitpay/internal/models"
)

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// MemoryStore implements Store over in-process collections. It is created
// per session and torn down with it; there is no persistence.
//
// A single mutex guards all collections. The application has one logical
// writer, but the HTTP layer may serve reads concurrently, so access still
// needs to be serialized.
type MemoryStore struct {
	mu sync.Mutex

	users       map[string]models.User
	groups      []models.Group
	expenses    []models.Expense
	settlements []models.Settlement
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]models.User),
	}
}

// AddUser registers a user, generating an ID if unset.
func (s *MemoryStore) AddUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if _, exists := s.users[user.ID]; exists {
		return fmt.Errorf("user already exists: %s", user.ID)
	}
	s.users[user.ID] = *user
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *MemoryStore) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return &user, nil
}

// AddGroup creates a group, generating ID and CreatedAt if unset. Every
// member must already be registered.
func (s *MemoryStore) AddGroup(_ context.Context, group *models.Group) error {
	if err := group.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range group.Members {
		if _, ok := s.users[m.ID]; !ok {
			return fmt.Errorf("%w: member %s", ErrUserNotFound, m.ID)
		}
	}

	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	s.groups = append(s.groups, *group)
	return nil
}

// GetGroupByID retrieves a group by ID.
func (s *MemoryStore) GetGroupByID(_ context.Context, groupID string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.groupLocked(groupID)
}

func (s *MemoryStore) groupLocked(groupID string) (*models.Group, error) {
	for i := range s.groups {
		if s.groups[i].ID == groupID {
			g := s.groups[i]
			return &g, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
}

// ListGroups returns all groups in creation order.
func (s *MemoryStore) ListGroups(_ context.Context) ([]*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make([]*models.Group, len(s.groups))
	for i := range s.groups {
		g := s.groups[i]
		groups[i] = &g
	}
	return groups, nil
}

// AddExpense validates and admits an expense, prepending it so listings are
// most-recent-first.
func (s *MemoryStore) AddExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.groupLocked(expense.GroupID)
	if err != nil {
		return err
	}
	if err := expense.Validate(group); err != nil {
		return err
	}

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	// The payer's own share is never owed to anyone.
	if split := expense.SplitFor(expense.PaidByUserID); split != nil {
		split.Settled = true
	}

	s.expenses = slices.Insert(s.expenses, 0, *expense)
	return nil
}

// GetExpenseByID retrieves an expense by ID.
func (s *MemoryStore) GetExpenseByID(_ context.Context, expenseID string) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.expenseIndexLocked(expenseID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrExpenseNotFound, expenseID)
	}
	exp := s.expenses[idx]
	return &exp, nil
}

func (s *MemoryStore) expenseIndexLocked(expenseID string) int {
	for i := range s.expenses {
		if s.expenses[i].ID == expenseID {
			return i
		}
	}
	return -1
}

// ListExpensesByGroup returns the group's expenses, most recent first.
func (s *MemoryStore) ListExpensesByGroup(_ context.Context, groupID string) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expenses []models.Expense
	for i := range s.expenses {
		if s.expenses[i].GroupID == groupID {
			expenses = append(expenses, s.expenses[i])
		}
	}
	return expenses, nil
}

// AddSettlement validates and admits a settlement. When the settlement links
// an expense, that expense and the debtor's split are flagged settled
// immediately on creation, before the payment itself resolves; the
// per-status truth stays queryable through HasUserSettledExpense, which
// consults settlement statuses.
func (s *MemoryStore) AddSettlement(_ context.Context, settlement *models.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.groupLocked(settlement.GroupID)
	if err != nil {
		return err
	}
	if err := settlement.Validate(group); err != nil {
		return err
	}

	if settlement.ExpenseID != "" {
		idx := s.expenseIndexLocked(settlement.ExpenseID)
		if idx < 0 {
			return fmt.Errorf("%w: %s", ErrExpenseNotFound, settlement.ExpenseID)
		}
		exp := &s.expenses[idx]
		if split := exp.SplitFor(settlement.FromUserID); split != nil {
			split.Settled = true
		}
		exp.Settled = true
	}

	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Status == "" {
		settlement.Status = models.StatusInitial
	}

	s.settlements = append(s.settlements, *settlement)
	return nil
}

// GetSettlementByID retrieves a settlement by ID.
func (s *MemoryStore) GetSettlementByID(_ context.Context, settlementID string) (*models.Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.settlementIndexLocked(settlementID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSettlementNotFound, settlementID)
	}
	st := s.settlements[idx]
	return &st, nil
}

func (s *MemoryStore) settlementIndexLocked(settlementID string) int {
	for i := range s.settlements {
		if s.settlements[i].ID == settlementID {
			return i
		}
	}
	return -1
}

// GetSettlementsByExpenseID returns settlements linked to the expense, in
// insertion order.
func (s *MemoryStore) GetSettlementsByExpenseID(_ context.Context, expenseID string) ([]models.Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settlements []models.Settlement
	for i := range s.settlements {
		if s.settlements[i].ExpenseID == expenseID {
			settlements = append(settlements, s.settlements[i])
		}
	}
	return settlements, nil
}

// UpdateSettlementStatus merges a status change into the settlement as an
// atomic replace. Terminal settlements are frozen.
func (s *MemoryStore) UpdateSettlementStatus(_ context.Context, settlementID string, status models.PaymentStatus, update SettlementUpdate) (*models.Settlement, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.settlementIndexLocked(settlementID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSettlementNotFound, settlementID)
	}

	st := s.settlements[idx]
	if st.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s is %s", ErrSettlementFinal, settlementID, st.Status)
	}
	if !st.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, st.Status, status)
	}

	st.Status = status
	st.UpdatedAt = time.Now().Unix()
	if update.ApprovalTxHash != "" {
		st.ApprovalTxHash = update.ApprovalTxHash
	}
	if update.PaymentTxHash != "" {
		st.PaymentTxHash = update.PaymentTxHash
	}
	if update.ErrorMessage != "" {
		st.ErrorMessage = update.ErrorMessage
	}

	s.settlements[idx] = st
	return &st, nil
}

// HasUserSettledExpense reports whether the user's share of the expense is
// covered.
func (s *MemoryStore) HasUserSettledExpense(_ context.Context, expenseID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.expenseIndexLocked(expenseID)
	if idx < 0 {
		return false, fmt.Errorf("%w: %s", ErrExpenseNotFound, expenseID)
	}
	exp := &s.expenses[idx]

	if exp.PaidByUserID == userID {
		return true, nil
	}
	if split := exp.SplitFor(userID); split != nil && split.Settled {
		return true, nil
	}
	for i := range s.settlements {
		st := &s.settlements[i]
		if st.ExpenseID == expenseID && st.FromUserID == userID && st.Status == models.StatusCompleted {
			return true, nil
		}
	}
	return false, nil
}
