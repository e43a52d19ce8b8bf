package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"contentops/internal/domain"
)

// CreditStore backs the ledger gate: balance reads plus atomic
// balance-changing appends with a snapshot on every transaction row.
type CreditStore struct {
	db *sqlx.DB
	tm *TransactionManager
}

func NewCreditStore(db *sqlx.DB, tm *TransactionManager) *CreditStore {
	return &CreditStore{db: db, tm: tm}
}

func (s *CreditStore) Balance(ctx context.Context, accountID int64) (int64, error) {
	var balance int64
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &balance,
		"SELECT balance FROM accounts WHERE id = $1", accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &domain.NotFoundError{Entity: "account", ID: accountID}
	}
	return balance, err
}

// Apply adjusts the account balance in one statement and appends the ledger
// row carrying the resulting balance. Both writes share one transaction.
func (s *CreditStore) Apply(ctx context.Context, accountID, amount int64, reason string) (*domain.CreditTransaction, error) {
	var tx domain.CreditTransaction

	err := s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.db)

		var balance int64
		err := exec.QueryRowxContext(txCtx, `
			UPDATE accounts SET balance = balance + $2 WHERE id = $1
			RETURNING balance`,
			accountID, amount,
		).Scan(&balance)
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.NotFoundError{Entity: "account", ID: accountID}
		}
		if err != nil {
			return fmt.Errorf("adjust balance: %w", err)
		}

		err = exec.QueryRowxContext(txCtx, `
			INSERT INTO credit_transactions (account_id, amount, reason, balance)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			accountID, amount, reason, balance,
		).Scan(&tx.ID, &tx.CreatedAt)
		if err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}

		tx.AccountID = accountID
		tx.Amount = amount
		tx.Reason = reason
		tx.Balance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

// ListByAccount returns the account's ledger, newest first.
func (s *CreditStore) ListByAccount(ctx context.Context, accountID int64, limit int) ([]domain.CreditTransaction, error) {
	query := `
		SELECT id, account_id, amount, reason, balance, created_at
		FROM credit_transactions
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	var txs []domain.CreditTransaction
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &txs, query, accountID, limit)
	return txs, err
}
