// Package models defines the core domain models for Splitpay.
//
// # Models
//
//   - User: A person identified by a wallet address on Base
//   - Group: A named set of users sharing expenses
//   - Expense: A purchase paid by one member and divided via splits
//   - ExpenseSplit: One member's owed share of an expense
//   - Settlement: An attempt to transfer an owed share from debtor to
//     creditor, tracked through approval/payment states
//
// # Design Principles
//
// 1. **Closed status types**: PaymentStatus and SplitType are typed string
// constants, so an illegal state is a construction-time error rather than a
// typo discovered in production.
//
// 2. **Avoid circular references**: Models reference each other by ID string
// instead of pointers.
//
// 3. **Validation at the edge**: Expenses and settlements carry Validate
// methods; the store refuses to admit a record that fails them, so every
// record held in memory satisfies its invariants.
//
// All monetary amounts are float64 currency units (USDC). Sums are compared
// within a 0.01 tolerance to absorb rounding of equal splits.
package models
