// Package payment defines the wallet bridge client used to settle debts in
// USDC on Base. The bridge owns wallet keys and transaction construction;
// this package only submits approval/transfer requests and records results.
package payment

import (
	"context"
	"math"
)

// USDCContractAddress is the USDC token contract on Base.
const USDCContractAddress = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"

// usdcDecimals is the number of decimals in the USDC token (base units per
// whole unit = 10^6).
const usdcDecimals = 6

// TxResult holds the transaction hash returned by a bridge operation.
type TxResult struct {
	Hash string `json:"hash"`
}

// Client is the external payment collaborator. All three operations may fail
// with a transport or rejection error; callers treat any failure uniformly
// as a failed settlement step.
type Client interface {
	// GetTokenBalance returns the wallet's balance of the token, in whole
	// currency units.
	GetTokenBalance(ctx context.Context, token, wallet string) (float64, error)

	// ApproveToken submits an approval of amount (currency units) for the
	// spender and returns the approval transaction hash.
	ApproveToken(ctx context.Context, token, spender string, amount float64) (*TxResult, error)

	// TransferToken submits a transfer of amount (currency units) to the
	// recipient and returns the transfer transaction hash.
	TransferToken(ctx context.Context, token, recipient string, amount float64) (*TxResult, error)
}

// ToBaseUnits converts a currency amount to integer token base units.
func ToBaseUnits(amount float64) int64 {
	return int64(math.Floor(amount * math.Pow10(usdcDecimals)))
}

// FromBaseUnits converts integer token base units to a currency amount.
func FromBaseUnits(units int64) float64 {
	return float64(units) / math.Pow10(usdcDecimals)
}
