package credits

import (
	"context"
	"fmt"
	"sync"

	"contentops/internal/domain"
)

// Ledger is the persistent side of the gate: balance reads and atomic
// balance-changing appends.
type Ledger interface {
	Balance(ctx context.Context, accountID int64) (int64, error)
	Apply(ctx context.Context, accountID, amount int64, reason string) (*domain.CreditTransaction, error)
}

// Gate performs the pre-flight balance check and the post-hoc debit for paid
// work. Check-then-debit for one account is serialized with a per-account
// mutex so a concurrent debit cannot make the check stale.
type Gate struct {
	ledger Ledger

	mu       sync.Mutex
	accounts map[int64]*sync.Mutex
}

func NewGate(ledger Ledger) *Gate {
	return &Gate{
		ledger:   ledger,
		accounts: make(map[int64]*sync.Mutex),
	}
}

// Acquire locks the account for one check-then-debit sequence and returns the
// release function. Callers must release on every exit path.
func (g *Gate) Acquire(accountID int64) func() {
	g.mu.Lock()
	lock, ok := g.accounts[accountID]
	if !ok {
		lock = &sync.Mutex{}
		g.accounts[accountID] = lock
	}
	g.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Check verifies the account can cover cost before any paid call is made.
// An unfunded account yields InsufficientCreditsError.
func (g *Gate) Check(ctx context.Context, accountID, cost int64) error {
	balance, err := g.ledger.Balance(ctx, accountID)
	if err != nil {
		return fmt.Errorf("read balance: %w", err)
	}

	if balance < cost {
		return &domain.InsufficientCreditsError{
			AccountID: accountID,
			Required:  cost,
			Balance:   balance,
		}
	}

	return nil
}

// Debit records the actual cost once the work's side effects are known. The
// amount is stored as a negative ledger entry with the resulting balance.
func (g *Gate) Debit(ctx context.Context, accountID, cost int64, reason string) (*domain.CreditTransaction, error) {
	if cost <= 0 {
		return nil, fmt.Errorf("debit cost must be positive, got %d", cost)
	}

	tx, err := g.ledger.Apply(ctx, accountID, -cost, reason)
	if err != nil {
		return nil, fmt.Errorf("apply debit: %w", err)
	}

	return tx, nil
}
