package mocks

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
)

// MockLedgerRepository is an in-memory implementation of LedgerRepository.
// Ledgers are copied on the way in and out so callers never share rows.
type MockLedgerRepository struct {
	mu      sync.RWMutex
	ledgers map[string]domain.Ledger

	GetByOwnerFunc           func(ctx context.Context, ownerID string) (*domain.Ledger, error)
	GetByOwnerForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, ownerID string) (*domain.Ledger, error)
	GetOrCreateForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ownerID string, now time.Time) (*domain.Ledger, error)
	UpdateFunc               func(ctx context.Context, tx usecase.Transaction, ledger *domain.Ledger) error
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{
		ledgers: make(map[string]domain.Ledger),
	}
}

// Put stores ledger as-is.
func (m *MockLedgerRepository) Put(ledger *domain.Ledger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledgers[ledger.OwnerID] = *ledger
}

func (m *MockLedgerRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Ledger, error) {
	if m.GetByOwnerFunc != nil {
		return m.GetByOwnerFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.ledgers[ownerID]; ok {
		return &l, nil
	}
	return nil, domain.ErrLedgerNotFound
}

func (m *MockLedgerRepository) GetByOwnerForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string) (*domain.Ledger, error) {
	if m.GetByOwnerForUpdateFunc != nil {
		return m.GetByOwnerForUpdateFunc(ctx, tx, ownerID)
	}
	return m.GetByOwner(ctx, ownerID)
}

func (m *MockLedgerRepository) GetOrCreateForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string, now time.Time) (*domain.Ledger, error) {
	if m.GetOrCreateForUpdateFunc != nil {
		return m.GetOrCreateForUpdateFunc(ctx, tx, ownerID, now)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.ledgers[ownerID]
	if !ok {
		l = *domain.NewLedger(ownerID, now)
		m.ledgers[ownerID] = l
	}
	return &l, nil
}

func (m *MockLedgerRepository) Update(ctx context.Context, tx usecase.Transaction, ledger *domain.Ledger) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, ledger)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ledgers[ledger.OwnerID]; !ok {
		return domain.ErrLedgerNotFound
	}
	m.ledgers[ledger.OwnerID] = *ledger
	return nil
}

// MockInvestmentRepository is an in-memory implementation of InvestmentRepository.
type MockInvestmentRepository struct {
	mu          sync.RWMutex
	investments map[string]domain.Investment

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, inv *domain.Investment) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Investment, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, inv *domain.Investment) error
	ListDueForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ownerID string, date time.Time) ([]*domain.Investment, error)
	OwnersWithDueFunc    func(ctx context.Context, date time.Time) ([]string, error)
}

func NewMockInvestmentRepository() *MockInvestmentRepository {
	return &MockInvestmentRepository{
		investments: make(map[string]domain.Investment),
	}
}

// Put stores inv as-is.
func (m *MockInvestmentRepository) Put(inv *domain.Investment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.investments[inv.ID] = *inv
}

func (m *MockInvestmentRepository) Create(ctx context.Context, tx usecase.Transaction, inv *domain.Investment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, inv)
	}
	m.Put(inv)
	return nil
}

func (m *MockInvestmentRepository) GetByID(ctx context.Context, id string) (*domain.Investment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inv, ok := m.investments[id]; ok {
		return &inv, nil
	}
	return nil, domain.ErrInvestmentNotFound
}

func (m *MockInvestmentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Investment, error) {
	return m.GetByID(ctx, id)
}

func (m *MockInvestmentRepository) Update(ctx context.Context, tx usecase.Transaction, inv *domain.Investment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, inv)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.investments[inv.ID]; !ok {
		return domain.ErrInvestmentNotFound
	}
	m.investments[inv.ID] = *inv
	return nil
}

func (m *MockInvestmentRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Investment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Investment
	for _, inv := range m.investments {
		if inv.OwnerID == ownerID {
			inv := inv
			result = append(result, &inv)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return page(result, limit, offset), nil
}

func (m *MockInvestmentRepository) ListDueForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string, date time.Time) ([]*domain.Investment, error) {
	if m.ListDueForUpdateFunc != nil {
		return m.ListDueForUpdateFunc(ctx, tx, ownerID, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Investment
	for _, inv := range m.investments {
		if inv.OwnerID == ownerID && inv.IsDue(date) {
			inv := inv
			result = append(result, &inv)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockInvestmentRepository) OwnersWithDue(ctx context.Context, date time.Time) ([]string, error) {
	if m.OwnersWithDueFunc != nil {
		return m.OwnersWithDueFunc(ctx, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	for _, inv := range m.investments {
		if inv.IsDue(date) {
			seen[inv.OwnerID] = true
		}
	}
	return sortedKeys(seen), nil
}

// MockReleaseRepository is an in-memory implementation of ReleaseRepository.
type MockReleaseRepository struct {
	mu       sync.RWMutex
	releases map[string]domain.PendingPrincipalRelease

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, rel *domain.PendingPrincipalRelease) error
	OwnersWithDueFunc func(ctx context.Context, date time.Time) ([]string, error)
}

func NewMockReleaseRepository() *MockReleaseRepository {
	return &MockReleaseRepository{
		releases: make(map[string]domain.PendingPrincipalRelease),
	}
}

func (m *MockReleaseRepository) Create(ctx context.Context, tx usecase.Transaction, rel *domain.PendingPrincipalRelease) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, rel)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.releases {
		if existing.InvestmentID == rel.InvestmentID {
			return domain.ErrInvalidTransition
		}
	}
	m.releases[rel.ID] = *rel
	return nil
}

func (m *MockReleaseRepository) GetByInvestment(ctx context.Context, investmentID string) (*domain.PendingPrincipalRelease, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, rel := range m.releases {
		if rel.InvestmentID == investmentID {
			return &rel, nil
		}
	}
	return nil, domain.ErrReleaseNotFound
}

func (m *MockReleaseRepository) Update(ctx context.Context, tx usecase.Transaction, rel *domain.PendingPrincipalRelease) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.releases[rel.ID]; !ok {
		return domain.ErrReleaseNotFound
	}
	m.releases[rel.ID] = *rel
	return nil
}

func (m *MockReleaseRepository) ListDueForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string, date time.Time) ([]*domain.PendingPrincipalRelease, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.PendingPrincipalRelease
	for _, rel := range m.releases {
		if rel.OwnerID == ownerID && rel.IsDue(date) {
			rel := rel
			result = append(result, &rel)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockReleaseRepository) OwnersWithDue(ctx context.Context, date time.Time) ([]string, error) {
	if m.OwnersWithDueFunc != nil {
		return m.OwnersWithDueFunc(ctx, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	for _, rel := range m.releases {
		if rel.IsDue(date) {
			seen[rel.OwnerID] = true
		}
	}
	return sortedKeys(seen), nil
}

// MockWithdrawalRepository is an in-memory implementation of WithdrawalRepository.
type MockWithdrawalRepository struct {
	mu          sync.RWMutex
	withdrawals map[string]domain.Withdrawal

	CreateFunc             func(ctx context.Context, tx usecase.Transaction, w *domain.Withdrawal) error
	UpdateFunc             func(ctx context.Context, tx usecase.Transaction, w *domain.Withdrawal) error
	CountAwaitingProofFunc func(ctx context.Context, tx usecase.Transaction, ownerID string) (int, error)
}

func NewMockWithdrawalRepository() *MockWithdrawalRepository {
	return &MockWithdrawalRepository{
		withdrawals: make(map[string]domain.Withdrawal),
	}
}

// Put stores w as-is.
func (m *MockWithdrawalRepository) Put(w *domain.Withdrawal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.withdrawals[w.ID] = *w
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, tx usecase.Transaction, w *domain.Withdrawal) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, w)
	}
	m.Put(w)
	return nil
}

func (m *MockWithdrawalRepository) GetByID(ctx context.Context, id string) (*domain.Withdrawal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.withdrawals[id]; ok {
		return &w, nil
	}
	return nil, domain.ErrWithdrawalNotFound
}

func (m *MockWithdrawalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Withdrawal, error) {
	return m.GetByID(ctx, id)
}

func (m *MockWithdrawalRepository) Update(ctx context.Context, tx usecase.Transaction, w *domain.Withdrawal) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, w)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.withdrawals[w.ID]; !ok {
		return domain.ErrWithdrawalNotFound
	}
	m.withdrawals[w.ID] = *w
	return nil
}

func (m *MockWithdrawalRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Withdrawal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Withdrawal
	for _, w := range m.withdrawals {
		if w.OwnerID == ownerID {
			w := w
			result = append(result, &w)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return page(result, limit, offset), nil
}

func (m *MockWithdrawalRepository) CountAwaitingProof(ctx context.Context, tx usecase.Transaction, ownerID string) (int, error) {
	if m.CountAwaitingProofFunc != nil {
		return m.CountAwaitingProofFunc(ctx, tx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, w := range m.withdrawals {
		if w.OwnerID == ownerID && w.AwaitsProof() {
			n++
		}
	}
	return n, nil
}

// MockTransactionLogRepository is an in-memory implementation of TransactionLogRepository.
type MockTransactionLogRepository struct {
	mu      sync.RWMutex
	entries []domain.TransactionLog

	CreateFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.TransactionLog) error
}

func NewMockTransactionLogRepository() *MockTransactionLogRepository {
	return &MockTransactionLogRepository{}
}

func (m *MockTransactionLogRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.TransactionLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *MockTransactionLogRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.TransactionLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.TransactionLog
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].OwnerID == ownerID {
			e := m.entries[i]
			result = append(result, &e)
		}
	}
	return page(result, limit, offset), nil
}

// Entries returns every recorded entry in insertion order.
func (m *MockTransactionLogRepository) Entries() []domain.TransactionLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.TransactionLog(nil), m.entries...)
}

// MockOutboxRepository is an in-memory implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc  func(ctx context.Context, id string, publishedAt time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published && len(result) < limit {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// EventTypes returns the types of all recorded events in order.
func (m *MockOutboxRepository) EventTypes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	types := make([]string, 0, len(m.events))
	for _, e := range m.events {
		types = append(types, e.EventType)
	}
	return types
}

// MockAuditRepository is an in-memory implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.AuditLog
	for _, l := range m.logs {
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.ResourceID != "" && l.ResourceID != filter.ResourceID {
			continue
		}
		result = append(result, l)
	}
	return result, nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + strconv.Itoa(m.counter)
}

// MockClock is a settable Clock.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to now.
func (m *MockClock) Set(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// MockOwnerLocker is an in-process OwnerLocker.
type MockOwnerLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex

	LockFunc func(ctx context.Context, ownerID string) (func(), error)
}

func NewMockOwnerLocker() *MockOwnerLocker {
	return &MockOwnerLocker{locks: make(map[string]*sync.Mutex)}
}

func (m *MockOwnerLocker) Lock(ctx context.Context, ownerID string) (func(), error) {
	if m.LockFunc != nil {
		return m.LockFunc(ctx, ownerID)
	}
	m.mu.Lock()
	l, ok := m.locks[ownerID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[ownerID] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock, nil
}

// MockOTPService accepts a single fixed code unless overridden. Consumed codes
// stay valid so one code can serve a whole test.
type MockOTPService struct {
	Code string

	mu       sync.Mutex
	consumed []string

	SendFunc     func(ctx context.Context, ownerID string) error
	ValidateFunc func(ctx context.Context, ownerID, code string) (bool, error)
	ConsumeFunc  func(ctx context.Context, ownerID, code string) (bool, error)
}

func NewMockOTPService(code string) *MockOTPService {
	return &MockOTPService{Code: code}
}

func (m *MockOTPService) Send(ctx context.Context, ownerID string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, ownerID)
	}
	return nil
}

func (m *MockOTPService) Validate(ctx context.Context, ownerID, code string) (bool, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, ownerID, code)
	}
	return code == m.Code, nil
}

func (m *MockOTPService) Consume(ctx context.Context, ownerID, code string) (bool, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, ownerID, code)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.consumed = append(m.consumed, ownerID)
	return true, nil
}

// Consumed returns the owners whose code was spent, in order.
func (m *MockOTPService) Consumed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.consumed...)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	ReleaseFunc     func(ctx context.Context, key string) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
