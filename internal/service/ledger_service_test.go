package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ahorra-oink/internal/dto"
	"ahorra-oink/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryLedger is an in-memory LedgerStore. The mutex is held for the whole
// unit of work, mirroring the row lock the SQL implementation takes, so
// concurrent operations on the same user serialize.
type memoryLedger struct {
	mu              sync.Mutex
	transactions    map[uuid.UUID]*models.Transaction
	balances        map[uuid.UUID]decimal.Decimal
	balanceWrites   int
	transactionList []uuid.UUID
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		transactions: make(map[uuid.UUID]*models.Transaction),
		balances:     make(map[uuid.UUID]decimal.Decimal),
	}
}

func (m *memoryLedger) InTx(ctx context.Context, fn func(tx LedgerTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m)
}

func (m *memoryLedger) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	cp := *tx
	m.transactions[tx.ID] = &cp
	m.transactionList = append(m.transactionList, tx.ID)
	return nil
}

func (m *memoryLedger) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	existing, ok := m.transactions[tx.ID]
	if !ok || existing.UserID != tx.UserID {
		return models.ErrTransactionNotFound
	}
	cp := *tx
	m.transactions[tx.ID] = &cp
	return nil
}

func (m *memoryLedger) DeleteTransaction(ctx context.Context, userID, txID uuid.UUID) error {
	existing, ok := m.transactions[txID]
	if !ok || existing.UserID != userID {
		return models.ErrTransactionNotFound
	}
	delete(m.transactions, txID)
	return nil
}

func (m *memoryLedger) GetTransactionForUpdate(ctx context.Context, userID, txID uuid.UUID) (*models.Transaction, error) {
	existing, ok := m.transactions[txID]
	if !ok || existing.UserID != userID {
		return nil, models.ErrTransactionNotFound
	}
	cp := *existing
	return &cp, nil
}

func (m *memoryLedger) BalanceForUpdate(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return m.balances[userID], nil
}

func (m *memoryLedger) SetBalance(ctx context.Context, userID uuid.UUID, balance decimal.Decimal) error {
	m.balances[userID] = balance
	m.balanceWrites++
	return nil
}

func (m *memoryLedger) GetTransaction(ctx context.Context, userID, txID uuid.UUID) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GetTransactionForUpdate(ctx, userID, txID)
}

func (m *memoryLedger) ListTransactions(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Transaction
	for _, id := range m.transactionList {
		if tx, ok := m.transactions[id]; ok && tx.UserID == userID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memoryLedger) Statistics(ctx context.Context, userID uuid.UUID) (*LedgerStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &LedgerStats{Balance: m.balances[userID]}
	for _, tx := range m.transactions {
		if tx.UserID != userID {
			continue
		}
		stats.TotalTransactions++
		switch tx.Type {
		case models.TransactionIncome:
			stats.TotalIncome = stats.TotalIncome.Add(tx.Amount)
		case models.TransactionExpense:
			stats.TotalExpense = stats.TotalExpense.Add(tx.Amount)
		case models.TransactionSavings:
			stats.TotalSavings = stats.TotalSavings.Add(tx.Amount)
		}
	}
	return stats, nil
}

func (m *memoryLedger) balance(userID uuid.UUID) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[userID]
}

func (m *memoryLedger) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transactions)
}

// recordingUnlocker captures achievement signals; it can be told to fail.
type recordingUnlocker struct {
	mu      sync.Mutex
	signals []string
	err     error
}

func (u *recordingUnlocker) Unlock(ctx context.Context, userID uuid.UUID, conditionType string) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return false, u.err
	}
	for _, s := range u.signals {
		if s == conditionType {
			u.signals = append(u.signals, conditionType)
			return false, nil
		}
	}
	u.signals = append(u.signals, conditionType)
	return true, nil
}

func (u *recordingUnlocker) count(conditionType string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, s := range u.signals {
		if s == conditionType {
			n++
		}
	}
	return n
}

type staticResolver struct {
	category *models.Category
}

func (r *staticResolver) ResolveOrCreate(ctx context.Context, userID uuid.UUID, name string) (*models.Category, error) {
	return r.category, nil
}

func newLedgerFixture() (*LedgerService, *memoryLedger, *recordingUnlocker) {
	store := newMemoryLedger()
	unlocker := &recordingUnlocker{}
	resolver := &staticResolver{category: &models.Category{ID: uuid.New(), Name: "Otros"}}
	svc := NewLedgerService(store, resolver, unlocker, zap.NewNop())
	return svc, store, unlocker
}

func dtoCreate(txType string, amount *decimal.Decimal, description string) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{Type: txType, Amount: amount, Description: description}
}

func createTx(t *testing.T, svc *LedgerService, userID uuid.UUID, txType, amount, description string) *models.Transaction {
	t.Helper()
	amt := decimal.RequireFromString(amount)
	req := dtoCreate(txType, &amt, description)
	tx, err := svc.Create(context.Background(), userID, &req)
	require.NoError(t, err)
	return tx
}

func TestCreate_IncomeAndExpenseAdjustBalance(t *testing.T) {
	svc, store, _ := newLedgerFixture()
	userID := uuid.New()

	createTx(t, svc, userID, "income", "100.00", "Salario mensual")
	createTx(t, svc, userID, "expense", "30.00", "Mercado semanal")

	assert.True(t, store.balance(userID).Equal(decimal.RequireFromString("70.00")),
		"balance is %s, want 70.00", store.balance(userID))
}

func TestCreate_SavingsNeverMovesBalance(t *testing.T) {
	svc, store, _ := newLedgerFixture()
	userID := uuid.New()

	createTx(t, svc, userID, "income", "100.00", "Salario mensual")
	createTx(t, svc, userID, "savings", "50.00", "Fondo de emergencia")

	assert.True(t, store.balance(userID).Equal(decimal.RequireFromString("100.00")))

	stats, err := svc.Statistics(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, stats.TotalSavings.Equal(decimal.RequireFromString("50.00")))
}

func TestUpdate_ReclassifyingIncomeToExpenseFlipsEffect(t *testing.T) {
	svc, store, _ := newLedgerFixture()
	userID := uuid.New()

	tx := createTx(t, svc, userID, "income", "100.00", "Pago freelance")
	require.True(t, store.balance(userID).Equal(decimal.RequireFromString("100.00")))

	newType := "expense"
	_, err := svc.Update(context.Background(), userID, tx.ID, &dto.UpdateTransactionRequest{Type: &newType})
	require.NoError(t, err)

	assert.True(t, store.balance(userID).Equal(decimal.RequireFromString("-100.00")),
		"balance is %s, want -100.00", store.balance(userID))
}

func TestUpdate_DescriptionOnlyLeavesBalanceUntouched(t *testing.T) {
	svc, store, _ := newLedgerFixture()
	userID := uuid.New()

	tx := createTx(t, svc, userID, "expense", "25.00", "Taxi al trabajo")
	writesBefore := store.balanceWrites

	newDesc := "Taxi al aeropuerto"
	updated, err := svc.Update(context.Background(), userID, tx.ID, &dto.UpdateTransactionRequest{Description: &newDesc})
	require.NoError(t, err)

	assert.Equal(t, "Taxi al aeropuerto", updated.Description)
	assert.Equal(t, writesBefore, store.balanceWrites, "balance written on a no-effect update")
	assert.True(t, store.balance(userID).Equal(decimal.RequireFromString("-25.00")))
}

func TestUpdate_AmountChangeReconcilesDelta(t *testing.T) {
	svc, store, _ := newLedgerFixture()
	userID := uuid.New()

	tx := createTx(t, svc, userID, "income", "100.00", "Salario mensual")

	amount := decimal.RequireFromString("150.00")
	_, err := svc.Update(context.Background(), userID, tx.ID, &dto.UpdateTransactionRequest{Amount: &amount})
	require.NoError(t, err)

	assert.True(t, store.balance(userID).Equal(decimal.RequireFromString("150.00")))
}

func TestDelete_ReversesEffectExactlyOnce(t *testing.T) {
	svc, store, _ := newLedgerFixture()
	userID := uuid.New()

	tx := createTx(t, svc, userID, "expense", "40.00", "Cena con amigos")
	require.True(t, store.balance(userID).Equal(decimal.RequireFromString("-40.00")))

	require.NoError(t, svc.Delete(context.Background(), userID, tx.ID))
	assert.True(t, store.balance(userID).IsZero(), "balance is %s, want 0", store.balance(userID))

	err := svc.Delete(context.Background(), userID, tx.ID)
	assert.ErrorIs(t, err, models.ErrTransactionNotFound)
	assert.True(t, store.balance(userID).IsZero(), "second delete moved the balance")
}

func TestDelete_OtherUsersTransactionNotFound(t *testing.T) {
	svc, store, _ := newLedgerFixture()
	owner := uuid.New()
	stranger := uuid.New()

	tx := createTx(t, svc, owner, "income", "10.00", "Venta de libro")

	err := svc.Delete(context.Background(), stranger, tx.ID)
	assert.ErrorIs(t, err, models.ErrTransactionNotFound)
	assert.True(t, store.balance(owner).Equal(decimal.RequireFromString("10.00")))
}

func TestCreate_RejectsOutOfRangeAmounts(t *testing.T) {
	svc, store, _ := newLedgerFixture()
	userID := uuid.New()

	for _, raw := range []string{"0", "-5.00", "1000000000.01"} {
		amount := decimal.RequireFromString(raw)
		req := dtoCreate("expense", &amount, "Compra inválida")
		_, err := svc.Create(context.Background(), userID, &req)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "amount %s accepted", raw)
		assert.Contains(t, vErr.Fields, "amount")
	}

	assert.Zero(t, store.count(), "rejected transactions were persisted")
	assert.True(t, store.balance(userID).IsZero())
}

func TestCreate_RejectsMissingAmountAndShortDescription(t *testing.T) {
	svc, _, _ := newLedgerFixture()
	userID := uuid.New()

	req := dtoCreate("income", nil, "ab")
	_, err := svc.Create(context.Background(), userID, &req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "amount")
	assert.Contains(t, vErr.Fields, "description")
}

func TestCreate_RejectsUnknownType(t *testing.T) {
	svc, _, _ := newLedgerFixture()
	amount := decimal.RequireFromString("10.00")

	req := dtoCreate("transfer", &amount, "Movimiento raro")
	_, err := svc.Create(context.Background(), uuid.New(), &req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "type")
}

func TestCreate_FirstIncomeSignalsAchievement(t *testing.T) {
	svc, _, unlocker := newLedgerFixture()
	userID := uuid.New()

	createTx(t, svc, userID, "income", "10.00", "Primer ingreso")
	createTx(t, svc, userID, "expense", "5.00", "Primer gasto")
	createTx(t, svc, userID, "savings", "2.00", "Primer ahorro")

	assert.Equal(t, 1, unlocker.count(models.AchievementFirstIncome))
	assert.Equal(t, 1, unlocker.count(models.AchievementFirstExpense))
}

func TestCreate_FailingAchievementSignalDoesNotFailLedger(t *testing.T) {
	svc, store, unlocker := newLedgerFixture()
	unlocker.err = errors.New("notifier down")
	userID := uuid.New()

	tx := createTx(t, svc, userID, "income", "100.00", "Salario mensual")

	assert.NotNil(t, tx)
	assert.True(t, store.balance(userID).Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, 1, store.count())
}

func TestCreate_ConcurrentWritesNeverLoseUpdates(t *testing.T) {
	svc, store, _ := newLedgerFixture()
	userID := uuid.New()

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			amount := decimal.RequireFromString("1.00")
			req := dtoCreate("income", &amount, "Depósito concurrente")
			_, err := svc.Create(context.Background(), userID, &req)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.True(t, store.balance(userID).Equal(decimal.RequireFromString("20.00")),
		"balance is %s, want 20.00", store.balance(userID))

	stats, err := svc.Statistics(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(workers), stats.TotalTransactions)
	assert.True(t, stats.TotalIncome.Equal(store.balance(userID)), "cached balance drifted from the ledger")
}

func TestList_NewestTransactionsBelongToUser(t *testing.T) {
	svc, _, _ := newLedgerFixture()
	alice := uuid.New()
	bob := uuid.New()

	createTx(t, svc, alice, "income", "10.00", "Venta de libro")
	createTx(t, svc, bob, "income", "99.00", "Salario de Bob")

	txs, err := svc.List(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, alice, txs[0].UserID)
}
