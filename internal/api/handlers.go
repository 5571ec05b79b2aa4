package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"splitpay/internal/models"
	"splitpay/internal/service"
	"splitpay/internal/store"
)

// errorStatus maps application errors to HTTP status codes. Validation
// failures are 400, missing records 404, lifecycle conflicts 409; anything
// unrecognized is a 502 from the payment bridge or a genuine 500.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrGroupNotFound),
		errors.Is(err, store.ErrExpenseNotFound),
		errors.Is(err, store.ErrSettlementNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrSettlementFinal),
		errors.Is(err, store.ErrInvalidTransition),
		errors.Is(err, service.ErrSettlementNotRunnable):
		return http.StatusConflict
	case errors.Is(err, models.ErrEmptyDescription),
		errors.Is(err, models.ErrNonPositiveAmount),
		errors.Is(err, models.ErrPayerNotMember),
		errors.Is(err, models.ErrSplitNotMember),
		errors.Is(err, models.ErrNegativeSplit),
		errors.Is(err, models.ErrInvalidSplitType),
		errors.Is(err, models.ErrSelfSettlement),
		errors.Is(err, models.ErrNonPositiveSettlement),
		errors.Is(err, models.ErrSettlementNotMember),
		errors.Is(err, models.ErrEmptyGroup):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

// ListGroups handles GET /api/v1/groups.
func (h *Handler) ListGroups(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetGroup handles GET /api/v1/groups/:id.
func (h *Handler) GetGroup(c *gin.Context) {
	group, err := h.groups.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// GroupBalances handles GET /api/v1/groups/:id/balances.
func (h *Handler) GroupBalances(c *gin.Context) {
	balances, edges, err := h.groups.Balances(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": balances, "suggested_payments": edges})
}

// MemberBalance handles GET /api/v1/groups/:id/balance?user_id=.
func (h *Handler) MemberBalance(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}
	balance, err := h.groups.MemberBalance(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "balance": balance})
}

// ListGroupExpenses handles GET /api/v1/groups/:id/expenses.
func (h *Handler) ListGroupExpenses(c *gin.Context) {
	expenses, err := h.expenses.ListByGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

type createExpenseRequest struct {
	GroupID      string  `json:"group_id" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	PaidByUserID string  `json:"paid_by_user_id" binding:"required"`
	SplitType    string  `json:"split_type" binding:"required,oneof=equal custom"`
	Splits       []struct {
		UserID string  `json:"user_id" binding:"required"`
		Amount float64 `json:"amount"`
	} `json:"splits"`
}

// CreateExpense handles POST /api/v1/expenses.
func (h *Handler) CreateExpense(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	splits := make([]models.ExpenseSplit, len(req.Splits))
	for i, s := range req.Splits {
		splits[i] = models.ExpenseSplit{UserID: s.UserID, Amount: s.Amount}
	}

	expense, err := h.expenses.Create(c.Request.Context(), service.CreateExpenseInput{
		GroupID:      req.GroupID,
		Description:  req.Description,
		Amount:       req.Amount,
		PaidByUserID: req.PaidByUserID,
		SplitType:    models.SplitType(req.SplitType),
		Splits:       splits,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// GetExpense handles GET /api/v1/expenses/:id.
func (h *Handler) GetExpense(c *gin.Context) {
	expense, err := h.expenses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

// ListExpenseSettlements handles GET /api/v1/expenses/:id/settlements.
func (h *Handler) ListExpenseSettlements(c *gin.Context) {
	settlements, err := h.settlements.ListByExpense(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settlements": settlements})
}

type createSettlementRequest struct {
	GroupID    string  `json:"group_id" binding:"required"`
	FromUserID string  `json:"from_user_id" binding:"required"`
	ToUserID   string  `json:"to_user_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	ExpenseID  string  `json:"expense_id"`
}

// CreateSettlement handles POST /api/v1/settlements.
func (h *Handler) CreateSettlement(c *gin.Context) {
	var req createSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settlement, err := h.settlements.Create(c.Request.Context(), service.CreateSettlementInput{
		GroupID:    req.GroupID,
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount,
		ExpenseID:  req.ExpenseID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, settlement)
}

// GetSettlement handles GET /api/v1/settlements/:id.
func (h *Handler) GetSettlement(c *gin.Context) {
	settlement, err := h.settlements.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settlement)
}

// ExecuteSettlement handles POST /api/v1/settlements/:id/execute.
//
// A payment failure is not an HTTP error: the settlement comes back with
// status failed and the recorded message. Only lifecycle conflicts and
// missing records map to error responses.
func (h *Handler) ExecuteSettlement(c *gin.Context) {
	settlement, err := h.settlements.Execute(c.Request.Context(), c.Param("id"))
	if err != nil && settlement == nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settlement)
}

// GetUser handles GET /api/v1/users/:id.
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.groups.User(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// WalletBalance handles GET /api/v1/wallet/balance?user_id=.
func (h *Handler) WalletBalance(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}
	balance, err := h.settlements.WalletBalance(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			abortWithError(c, err)
			return
		}
		// Bridge/transport failure: recovered at the boundary, surfaced as
		// an upstream error.
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "balance": balance})
}
