package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitpay/internal/models"
	"splitpay/internal/store"
)

func setupExpenseService(t *testing.T) (*ExpenseService, store.Store) {
	t.Helper()

	st := store.NewMemoryStore()
	ctx := context.Background()

	for _, u := range []models.User{
		{ID: "alice", DisplayName: "Alice", WalletAddress: "0xalice"},
		{ID: "bob", DisplayName: "Bob", WalletAddress: "0xbob"},
		{ID: "charlie", DisplayName: "Charlie", WalletAddress: "0xcharlie"},
	} {
		require.NoError(t, st.AddUser(ctx, &u))
	}
	require.NoError(t, st.AddGroup(ctx, &models.Group{
		ID:      "g1",
		Name:    "Weekend Trip",
		Active:  true,
		Members: []models.User{{ID: "alice"}, {ID: "bob"}, {ID: "charlie"}},
	}))

	return NewExpenseService(st), st
}

func TestExpenseCreateWithCustomSplits(t *testing.T) {
	svc, _ := setupExpenseService(t)

	exp, err := svc.Create(context.Background(), CreateExpenseInput{
		GroupID:      "g1",
		Description:  "Hotel Booking",
		Amount:       240,
		PaidByUserID: "alice",
		SplitType:    models.SplitTypeCustom,
		Splits: []models.ExpenseSplit{
			{UserID: "alice", Amount: 120},
			{UserID: "bob", Amount: 60},
			{UserID: "charlie", Amount: 60},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, exp.ID)
	assert.False(t, exp.Settled)
}

func TestExpenseCreateDerivesEqualSplits(t *testing.T) {
	svc, _ := setupExpenseService(t)

	exp, err := svc.Create(context.Background(), CreateExpenseInput{
		GroupID:      "g1",
		Description:  "Gas for Road Trip",
		Amount:       100,
		PaidByUserID: "bob",
		SplitType:    models.SplitTypeEqual,
	})
	require.NoError(t, err)
	require.Len(t, exp.Splits, 3)

	var sum float64
	for _, s := range exp.Splits {
		sum += s.Amount
	}
	assert.InDelta(t, 100, sum, 0.001, "derived splits cover the amount")

	payerSplit := exp.SplitFor("bob")
	require.NotNil(t, payerSplit)
	assert.True(t, payerSplit.Settled)
	assert.InDelta(t, 33.34, payerSplit.Amount, 0.001, "rounding remainder lands on the payer")
}

func TestExpenseCreateValidation(t *testing.T) {
	svc, st := setupExpenseService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   CreateExpenseInput
		wantErr error
	}{
		{
			name: "empty description",
			input: CreateExpenseInput{
				GroupID: "g1", Amount: 10, PaidByUserID: "alice", SplitType: models.SplitTypeEqual,
			},
			wantErr: models.ErrEmptyDescription,
		},
		{
			name: "non-positive amount",
			input: CreateExpenseInput{
				GroupID: "g1", Description: "x", Amount: -3, PaidByUserID: "alice", SplitType: models.SplitTypeEqual,
			},
			wantErr: models.ErrNonPositiveAmount,
		},
		{
			name: "payer outside group",
			input: CreateExpenseInput{
				GroupID: "g1", Description: "x", Amount: 10, PaidByUserID: "mallory", SplitType: models.SplitTypeEqual,
			},
			wantErr: models.ErrPayerNotMember,
		},
		{
			name: "unknown group",
			input: CreateExpenseInput{
				GroupID: "nope", Description: "x", Amount: 10, PaidByUserID: "alice", SplitType: models.SplitTypeEqual,
			},
			wantErr: store.ErrGroupNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	expenses, err := st.ListExpensesByGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, expenses, "no rejected expense reaches the store")
}
