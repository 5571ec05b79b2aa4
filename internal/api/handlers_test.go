package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitpay/internal/models"
	"splitpay/internal/payment"
	"splitpay/internal/service"
	"splitpay/internal/store"
)

type fakeBridge struct {
	approveErr error
}

func (f *fakeBridge) GetTokenBalance(context.Context, string, string) (float64, error) {
	return 500, nil
}

func (f *fakeBridge) ApproveToken(context.Context, string, string, float64) (*payment.TxResult, error) {
	if f.approveErr != nil {
		return nil, f.approveErr
	}
	return &payment.TxResult{Hash: "0xapprove"}, nil
}

func (f *fakeBridge) TransferToken(context.Context, string, string, float64) (*payment.TxResult, error) {
	return &payment.TxResult{Hash: "0xpay"}, nil
}

func setupRouter(t *testing.T, bridge payment.Client) *gin.Engine {
	t.Helper()

	st := store.NewMemoryStore()
	require.NoError(t, store.Seed(context.Background(), st))

	h := NewHandler(
		service.NewGroupService(st),
		service.NewExpenseService(st),
		service.NewSettlementService(st, bridge),
	)
	return Router(gin.TestMode, h)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGroupEndpoints(t *testing.T) {
	r := setupRouter(t, &fakeBridge{})

	t.Run("list groups", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/groups", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Groups []models.Group `json:"groups"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Groups, 3)
	})

	t.Run("member balance", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/groups/g-trip/balance?user_id=u-alice", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Balance float64 `json:"balance"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.InDelta(t, 140, resp.Balance, 0.01)
	})

	t.Run("missing user_id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/groups/g-trip/balance", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown group", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/groups/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestExpenseEndpoints(t *testing.T) {
	r := setupRouter(t, &fakeBridge{})

	t.Run("create equal-split expense", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/expenses", gin.H{
			"group_id":        "g-trip",
			"description":     "Dinner",
			"amount":          90,
			"paid_by_user_id": "u-charlie",
			"split_type":      "equal",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var exp models.Expense
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exp))
		assert.NotEmpty(t, exp.ID)
		assert.Len(t, exp.Splits, 3)
	})

	t.Run("binding rejects bad split type", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/expenses", gin.H{
			"group_id":        "g-trip",
			"description":     "Dinner",
			"amount":          90,
			"paid_by_user_id": "u-charlie",
			"split_type":      "weighted",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("payer outside group", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/expenses", gin.H{
			"group_id":        "g-apartment",
			"description":     "Rent",
			"amount":          100,
			"paid_by_user_id": "u-charlie",
			"split_type":      "equal",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSettlementEndpoints(t *testing.T) {
	create := func(t *testing.T, r *gin.Engine) models.Settlement {
		t.Helper()
		w := doJSON(t, r, http.MethodPost, "/api/v1/settlements", gin.H{
			"group_id":     "g-trip",
			"from_user_id": "u-bob",
			"to_user_id":   "u-alice",
			"amount":       80,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var st models.Settlement
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
		return st
	}

	t.Run("execute completes", func(t *testing.T) {
		r := setupRouter(t, &fakeBridge{})
		st := create(t, r)

		w := doJSON(t, r, http.MethodPost, "/api/v1/settlements/"+st.ID+"/execute", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var final models.Settlement
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &final))
		assert.Equal(t, models.StatusCompleted, final.Status)
		assert.Equal(t, "0xapprove", final.ApprovalTxHash)
		assert.Equal(t, "0xpay", final.PaymentTxHash)
	})

	t.Run("payment failure is reported on the settlement, not as an HTTP error", func(t *testing.T) {
		r := setupRouter(t, &fakeBridge{approveErr: errors.New("user rejected the request")})
		st := create(t, r)

		w := doJSON(t, r, http.MethodPost, "/api/v1/settlements/"+st.ID+"/execute", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var final models.Settlement
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &final))
		assert.Equal(t, models.StatusFailed, final.Status)
		assert.Contains(t, final.ErrorMessage, "user rejected the request")
	})

	t.Run("re-executing a finished settlement conflicts", func(t *testing.T) {
		r := setupRouter(t, &fakeBridge{})
		st := create(t, r)

		w := doJSON(t, r, http.MethodPost, "/api/v1/settlements/"+st.ID+"/execute", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodPost, "/api/v1/settlements/"+st.ID+"/execute", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("self settlement rejected", func(t *testing.T) {
		r := setupRouter(t, &fakeBridge{})
		w := doJSON(t, r, http.MethodPost, "/api/v1/settlements", gin.H{
			"group_id":     "g-trip",
			"from_user_id": "u-bob",
			"to_user_id":   "u-bob",
			"amount":       80,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWalletEndpoint(t *testing.T) {
	r := setupRouter(t, &fakeBridge{})

	w := doJSON(t, r, http.MethodGet, "/api/v1/wallet/balance?user_id=u-alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Balance float64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 500, resp.Balance, 0.001)

	w = doJSON(t, r, http.MethodGet, "/api/v1/wallet/balance?user_id=nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
