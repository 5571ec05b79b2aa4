package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Ensure BridgeClient implements Client.
var _ Client = (*BridgeClient)(nil)

// BridgeClient talks JSON over HTTP to an x402-style wallet bridge. Amounts
// cross the wire in token base units.
type BridgeClient struct {
	baseURL string
	http    *http.Client
}

// NewBridgeClient creates a client for the bridge at baseURL. The timeout
// bounds each request; there is no retry, a failed call surfaces to the
// settlement as-is.
func NewBridgeClient(baseURL string, timeout time.Duration) *BridgeClient {
	return &BridgeClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type balanceRequest struct {
	TokenAddress  string `json:"token_address"`
	WalletAddress string `json:"wallet_address"`
}

type balanceResponse struct {
	Balance int64 `json:"balance"` // base units
}

type approveRequest struct {
	TokenAddress   string `json:"token_address"`
	SpenderAddress string `json:"spender_address"`
	Amount         int64  `json:"amount"` // base units
}

type transferRequest struct {
	TokenAddress     string `json:"token_address"`
	RecipientAddress string `json:"recipient_address"`
	Amount           int64  `json:"amount"` // base units
}

type errorResponse struct {
	Error string `json:"error"`
}

// GetTokenBalance returns the wallet's token balance in currency units.
func (c *BridgeClient) GetTokenBalance(ctx context.Context, token, wallet string) (float64, error) {
	var resp balanceResponse
	err := c.post(ctx, "/v1/balance", balanceRequest{
		TokenAddress:  token,
		WalletAddress: wallet,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return FromBaseUnits(resp.Balance), nil
}

// ApproveToken submits an approval request and returns its transaction hash.
func (c *BridgeClient) ApproveToken(ctx context.Context, token, spender string, amount float64) (*TxResult, error) {
	var result TxResult
	err := c.post(ctx, "/v1/approve", approveRequest{
		TokenAddress:   token,
		SpenderAddress: spender,
		Amount:         ToBaseUnits(amount),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// TransferToken submits a transfer request and returns its transaction hash.
func (c *BridgeClient) TransferToken(ctx context.Context, token, recipient string, amount float64) (*TxResult, error) {
	var result TxResult
	err := c.post(ctx, "/v1/transfer", transferRequest{
		TokenAddress:     token,
		RecipientAddress: recipient,
		Amount:           ToBaseUnits(amount),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *BridgeClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("bridge request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read bridge response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("bridge rejected %s: %s", path, errResp.Error)
		}
		return fmt.Errorf("bridge returned %d for %s", resp.StatusCode, path)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode bridge response: %w", err)
	}
	return nil
}
