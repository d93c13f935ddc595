package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind describes what a transaction log entry records.
type TransactionKind string

const (
	TxKindDeposit             TransactionKind = "deposit"
	TxKindReferral            TransactionKind = "referral"
	TxKindInvestment          TransactionKind = "investment"
	TxKindReturn              TransactionKind = "return"
	TxKindClose               TransactionKind = "close"
	TxKindPrincipalProcessing TransactionKind = "principal_processing"
	TxKindWithdraw            TransactionKind = "withdraw"
	TxKindWithdrawReversal    TransactionKind = "withdraw_reversal"
	TxKindWithdrawBlocked     TransactionKind = "withdraw_blocked"
)

type TransactionStatus string

const (
	TxStatusPending   TransactionStatus = "pending"
	TxStatusCompleted TransactionStatus = "completed"
	TxStatusFailed    TransactionStatus = "failed"
	TxStatusRejected  TransactionStatus = "rejected"
)

// TransactionLog is an append-only audit record of a money movement or status change.
// It is never updated and is not used to derive balances.
type TransactionLog struct {
	ID              string
	OwnerID         string
	Kind            TransactionKind
	Amount          decimal.Decimal
	Status          TransactionStatus
	RelatedEntityID string
	Description     string
	Timestamp       time.Time
}
