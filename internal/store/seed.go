package store

import (
	"context"
	"fmt"
	"time"

	"splitpay/internal/models"
)

// Seed loads the demo dataset used in development mode: four users, three
// groups, and three unsettled expenses.
func Seed(ctx context.Context, s Store) error {
	users := []models.User{
		{ID: "u-alice", DisplayName: "Alice Johnson", SocialHandle: "alice.eth",
			WalletAddress: "0x1234567890123456789012345678901234567890"},
		{ID: "u-bob", DisplayName: "Bob Smith", SocialHandle: "bob.eth",
			WalletAddress: "0x2345678901234567890123456789012345678901"},
		{ID: "u-charlie", DisplayName: "Charlie Brown", SocialHandle: "charlie.eth",
			WalletAddress: "0x3456789012345678901234567890123456789012"},
		{ID: "u-diana", DisplayName: "Diana Prince", SocialHandle: "diana.eth",
			WalletAddress: "0x4567890123456789012345678901234567890123"},
	}
	for i := range users {
		if err := s.AddUser(ctx, &users[i]); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
	}
	alice, bob, charlie, diana := users[0], users[1], users[2], users[3]

	createdAt := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC).Unix()
	groups := []models.Group{
		{ID: "g-trip", Name: "Weekend Trip", Active: true, CreatedAt: createdAt,
			Members: []models.User{alice, bob, charlie}},
		{ID: "g-apartment", Name: "Apartment Roommates", Active: true, CreatedAt: createdAt,
			Members: []models.User{alice, diana}},
		{ID: "g-dinner", Name: "Dinner Club", Active: true, CreatedAt: createdAt,
			Members: users},
	}
	for i := range groups {
		if err := s.AddGroup(ctx, &groups[i]); err != nil {
			return fmt.Errorf("seed group: %w", err)
		}
	}

	expenses := []models.Expense{
		{
			GroupID:      "g-trip",
			Description:  "Hotel Booking",
			Amount:       240.00,
			PaidByUserID: alice.ID,
			SplitType:    models.SplitTypeEqual,
			Splits: []models.ExpenseSplit{
				{UserID: alice.ID, Amount: 80.00},
				{UserID: bob.ID, Amount: 80.00},
				{UserID: charlie.ID, Amount: 80.00},
			},
		},
		{
			GroupID:      "g-trip",
			Description:  "Gas for Road Trip",
			Amount:       60.00,
			PaidByUserID: bob.ID,
			SplitType:    models.SplitTypeEqual,
			Splits: []models.ExpenseSplit{
				{UserID: alice.ID, Amount: 20.00},
				{UserID: bob.ID, Amount: 20.00},
				{UserID: charlie.ID, Amount: 20.00},
			},
		},
		{
			GroupID:      "g-apartment",
			Description:  "Internet Bill",
			Amount:       89.99,
			PaidByUserID: diana.ID,
			SplitType:    models.SplitTypeEqual,
			Splits: []models.ExpenseSplit{
				{UserID: alice.ID, Amount: 44.995},
				{UserID: diana.ID, Amount: 44.995},
			},
		},
	}
	for i := range expenses {
		if err := s.AddExpense(ctx, &expenses[i]); err != nil {
			return fmt.Errorf("seed expense: %w", err)
		}
	}

	return nil
}
