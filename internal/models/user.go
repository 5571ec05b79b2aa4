package models

// User represents a person who can join groups and settle debts.
// Users are immutable once created.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"user_id"`

	// DisplayName is the human-readable name shown in group views.
	DisplayName string `json:"display_name"`

	// WalletAddress is the user's wallet address on Base, used as the
	// recipient/spender for USDC settlements.
	WalletAddress string `json:"wallet_address"`

	// SocialHandle is an optional handle (e.g. "alice.eth").
	SocialHandle string `json:"social_handle,omitempty"`

	// AvatarURL is an optional profile picture URL.
	AvatarURL string `json:"avatar_url,omitempty"`
}
