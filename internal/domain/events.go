package domain

import "time"

// Event types
const (
	EventTypeInvestmentCreated   = "investment.created"
	EventTypeInvestmentMatured   = "investment.matured"
	EventTypeInvestmentClosed    = "investment.closed"
	EventTypeInvestmentCompleted = "investment.completed"
	EventTypeWithdrawalCreated   = "withdrawal.created"
	EventTypeWithdrawalApproved  = "withdrawal.approved"
	EventTypeWithdrawalProofed   = "withdrawal.proof_uploaded"
	EventTypeWithdrawalCompleted = "withdrawal.completed"
	EventTypeWithdrawalFailed    = "withdrawal.verification_failed"
	EventTypeWithdrawalBlocked   = "withdrawal.blocked"
	EventTypeWithdrawalRejected  = "withdrawal.rejected"
	EventTypeLedgerCredited      = "ledger.credited"
	EventTypeLedgerUnblocked     = "ledger.unblocked"
)

// Aggregate types
const (
	AggregateTypeInvestment = "investment"
	AggregateTypeWithdrawal = "withdrawal"
	AggregateTypeLedger     = "ledger"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// NewOutboxEvent builds an unpublished event.
func NewOutboxEvent(id, aggregateType, aggregateID, eventType string, payload map[string]any, now time.Time) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     now,
	}
}
