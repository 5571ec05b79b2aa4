package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeClient(t *testing.T) {
	var gotApprove approveRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		switch r.URL.Path {
		case "/v1/balance":
			json.NewEncoder(w).Encode(balanceResponse{Balance: 123_450_000})
		case "/v1/approve":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotApprove))
			json.NewEncoder(w).Encode(TxResult{Hash: "0xapprove"})
		case "/v1/transfer":
			w.WriteHeader(http.StatusPaymentRequired)
			json.NewEncoder(w).Encode(errorResponse{Error: "insufficient balance"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewBridgeClient(srv.URL, 5*time.Second)
	ctx := context.Background()

	t.Run("GetTokenBalance converts base units", func(t *testing.T) {
		balance, err := client.GetTokenBalance(ctx, USDCContractAddress, "0xwallet")
		require.NoError(t, err)
		assert.InDelta(t, 123.45, balance, 0.001)
	})

	t.Run("ApproveToken sends base units and returns the hash", func(t *testing.T) {
		result, err := client.ApproveToken(ctx, USDCContractAddress, "0xspender", 44.99)
		require.NoError(t, err)
		assert.Equal(t, "0xapprove", result.Hash)
		assert.Equal(t, USDCContractAddress, gotApprove.TokenAddress)
		assert.Equal(t, "0xspender", gotApprove.SpenderAddress)
		assert.Equal(t, int64(44_990_000), gotApprove.Amount)
	})

	t.Run("bridge rejection surfaces the error message", func(t *testing.T) {
		_, err := client.TransferToken(ctx, USDCContractAddress, "0xrecipient", 10)
		require.Error(t, err)
		assert.ErrorContains(t, err, "insufficient balance")
	})

	t.Run("transport failure is returned as-is", func(t *testing.T) {
		dead := NewBridgeClient("http://127.0.0.1:1", time.Second)
		_, err := dead.GetTokenBalance(ctx, USDCContractAddress, "0xwallet")
		require.Error(t, err)
	})
}

func TestBaseUnitConversion(t *testing.T) {
	tests := []struct {
		amount float64
		units  int64
	}{
		{amount: 1, units: 1_000_000},
		{amount: 44.99, units: 44_990_000},
		{amount: 0.000001, units: 1},
		{amount: 0, units: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.units, ToBaseUnits(tt.amount))
		assert.InDelta(t, tt.amount, FromBaseUnits(tt.units), 1e-9)
	}
}
