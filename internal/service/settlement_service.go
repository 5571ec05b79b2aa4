package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"splitpay/internal/metrics"
	"splitpay/internal/models"
	"splitpay/internal/payment"
	"splitpay/internal/store"
)

// ErrSettlementNotRunnable is returned when Execute is called on a
// settlement that is not at the initial state: either an attempt is already
// in flight or the settlement has finished. A failed settlement is retried
// by creating a new one, never by re-running it.
var ErrSettlementNotRunnable = errors.New("settlement is not in the initial state")

// SettlementService drives settlement attempts through the payment
// lifecycle: initial -> approving -> approved -> paying -> completed, with
// failed reachable from either in-flight state.
type SettlementService struct {
	store  store.Store
	client payment.Client
}

// NewSettlementService creates a SettlementService over the given store and
// payment client.
func NewSettlementService(st store.Store, client payment.Client) *SettlementService {
	return &SettlementService{store: st, client: client}
}

// CreateSettlementInput carries the caller-supplied fields for a new
// settlement intent.
type CreateSettlementInput struct {
	GroupID    string
	FromUserID string
	ToUserID   string
	Amount     float64
	ExpenseID  string
}

// Create records a settlement intent at the initial state. No bridge call is
// made yet. When ExpenseID is set, the linked expense is flagged settled by
// the store as a creation side effect.
func (s *SettlementService) Create(ctx context.Context, in CreateSettlementInput) (*models.Settlement, error) {
	settlement := &models.Settlement{
		GroupID:    in.GroupID,
		FromUserID: in.FromUserID,
		ToUserID:   in.ToUserID,
		Amount:     in.Amount,
		ExpenseID:  in.ExpenseID,
		Status:     models.StatusInitial,
	}

	if err := s.store.AddSettlement(ctx, settlement); err != nil {
		slog.Error("CreateSettlement rejected", "group_id", in.GroupID, "error", err)
		return nil, err
	}

	slog.Info("Settlement created",
		"settlement_id", settlement.ID,
		"group_id", settlement.GroupID,
		"from", settlement.FromUserID,
		"to", settlement.ToUserID,
		"amount", settlement.Amount,
	)
	return settlement, nil
}

// Execute runs one settlement attempt end to end: approve, then transfer,
// awaiting each bridge call before the next. Any bridge error moves the
// settlement to failed with the error's message and is also returned; there
// is no automatic retry. The returned settlement reflects the terminal
// state.
func (s *SettlementService) Execute(ctx context.Context, settlementID string) (*models.Settlement, error) {
	settlement, err := s.store.GetSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement.Status != models.StatusInitial {
		return nil, fmt.Errorf("%w: %s is %s", ErrSettlementNotRunnable, settlementID, settlement.Status)
	}

	creditor, err := s.store.GetUserByID(ctx, settlement.ToUserID)
	if err != nil {
		return nil, err
	}

	// Approval step.
	if _, err := s.store.UpdateSettlementStatus(ctx, settlementID, models.StatusApproving, store.SettlementUpdate{}); err != nil {
		return nil, err
	}
	approval, err := s.timedStep(ctx, "approve", func(ctx context.Context) (*payment.TxResult, error) {
		return s.client.ApproveToken(ctx, payment.USDCContractAddress, creditor.WalletAddress, settlement.Amount)
	})
	if err != nil {
		return s.fail(ctx, settlementID, models.StatusApproving, err)
	}
	if _, err := s.store.UpdateSettlementStatus(ctx, settlementID, models.StatusApproved, store.SettlementUpdate{
		ApprovalTxHash: approval.Hash,
	}); err != nil {
		return nil, err
	}
	slog.Info("Settlement approved", "settlement_id", settlementID, "tx_hash", approval.Hash)

	// Transfer step. Only starts after approval resolved.
	if _, err := s.store.UpdateSettlementStatus(ctx, settlementID, models.StatusPaying, store.SettlementUpdate{}); err != nil {
		return nil, err
	}
	transfer, err := s.timedStep(ctx, "transfer", func(ctx context.Context) (*payment.TxResult, error) {
		return s.client.TransferToken(ctx, payment.USDCContractAddress, creditor.WalletAddress, settlement.Amount)
	})
	if err != nil {
		return s.fail(ctx, settlementID, models.StatusPaying, err)
	}

	final, err := s.store.UpdateSettlementStatus(ctx, settlementID, models.StatusCompleted, store.SettlementUpdate{
		PaymentTxHash: transfer.Hash,
	})
	if err != nil {
		return nil, err
	}

	metrics.SettlementsFinished.WithLabelValues(string(models.StatusCompleted)).Inc()
	slog.Info("Settlement completed",
		"settlement_id", settlementID,
		"approval_tx", final.ApprovalTxHash,
		"payment_tx", final.PaymentTxHash,
	)
	return final, nil
}

// fail records a bridge error on the settlement and returns the failed
// record along with the original error.
func (s *SettlementService) fail(ctx context.Context, settlementID string, from models.PaymentStatus, cause error) (*models.Settlement, error) {
	failed, updateErr := s.store.UpdateSettlementStatus(ctx, settlementID, models.StatusFailed, store.SettlementUpdate{
		ErrorMessage: cause.Error(),
	})
	if updateErr != nil {
		return nil, fmt.Errorf("record failure (%v): %w", cause, updateErr)
	}

	metrics.SettlementsFinished.WithLabelValues(string(models.StatusFailed)).Inc()
	slog.Warn("Settlement failed",
		"settlement_id", settlementID,
		"step", from,
		"error", cause,
	)
	return failed, cause
}

func (s *SettlementService) timedStep(ctx context.Context, step string, call func(context.Context) (*payment.TxResult, error)) (*payment.TxResult, error) {
	start := time.Now()
	result, err := call(ctx)
	metrics.PaymentStepDuration.WithLabelValues(step).Observe(time.Since(start).Seconds())
	return result, err
}

// Get retrieves a settlement.
func (s *SettlementService) Get(ctx context.Context, settlementID string) (*models.Settlement, error) {
	return s.store.GetSettlementByID(ctx, settlementID)
}

// ListByExpense returns the settlements linked to an expense.
func (s *SettlementService) ListByExpense(ctx context.Context, expenseID string) ([]models.Settlement, error) {
	if _, err := s.store.GetExpenseByID(ctx, expenseID); err != nil {
		return nil, err
	}
	return s.store.GetSettlementsByExpenseID(ctx, expenseID)
}

// WalletBalance returns the user's USDC balance via the payment bridge.
func (s *SettlementService) WalletBalance(ctx context.Context, userID string) (float64, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.client.GetTokenBalance(ctx, payment.USDCContractAddress, user.WalletAddress)
}
