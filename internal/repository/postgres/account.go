package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dentix/clinic-server/internal/model"
	"github.com/dentix/clinic-server/internal/password"
)

var _ model.AccountStore = (*AccountRepository)(nil)

const pgUniqueViolation = "23505"

const accountColumns = `id, name, last_name, email, status, lang, phone, birthday,
			  confirmation_token, terms_accepted_at, created_at, updated_at, deleted_at`

type AccountRepository struct {
	db     *Connection
	hasher password.Hasher
}

// NewAccountRepository creates an account repository. The hasher lives
// here so plaintext passwords cross the store boundary exactly once and
// the hash never leaves it.
func NewAccountRepository(db *Connection, hasher password.Hasher) *AccountRepository {
	return &AccountRepository{
		db:     db,
		hasher: hasher,
	}
}

// Create inserts the account and its initial role assignment in one
// transaction. The email unique index is the authority on duplicates;
// a violation surfaces as model.ErrDuplicateEmail regardless of any
// earlier lookup.
func (r *AccountRepository) Create(ctx context.Context, account model.Account, plaintext string, roleID uuid.UUID) (model.Account, error) {
	hash, err := r.hasher.Hash(plaintext)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO accounts (id, name, last_name, email, password_hash, status, lang, phone, birthday, terms_accepted_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING ` + accountColumns

	var saved model.Account
	err = tx.QueryRow(ctx, query,
		account.ID, account.Name, account.LastName, account.Email, hash,
		account.Status, account.Lang, account.Phone, account.Birthday,
		account.TermsAcceptedAt, account.CreatedAt, account.UpdatedAt,
	).Scan(
		&saved.ID, &saved.Name, &saved.LastName, &saved.Email, &saved.Status,
		&saved.Lang, &saved.Phone, &saved.Birthday, &saved.ConfirmationToken,
		&saved.TermsAcceptedAt, &saved.CreatedAt, &saved.UpdatedAt, &saved.DeletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return model.Account{}, model.ErrDuplicateEmail
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO account_roles (account_id, role_id) VALUES ($1, $2)`,
		saved.ID, roleID,
	)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to assign role: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Account{}, fmt.Errorf("failed to commit account creation: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 AND deleted_at IS NULL`
	return r.scanOne(ctx, query, email)
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(ctx, query, id)
}

func (r *AccountRepository) List(ctx context.Context) ([]model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE deleted_at IS NULL ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(
			&a.ID, &a.Name, &a.LastName, &a.Email, &a.Status, &a.Lang, &a.Phone,
			&a.Birthday, &a.ConfirmationToken, &a.TermsAcceptedAt,
			&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) Update(ctx context.Context, account model.Account) (model.Account, error) {
	query := `UPDATE accounts
			  SET name = $2, last_name = $3, email = $4, status = $5, lang = $6, phone = $7, birthday = $8, updated_at = $9
			  WHERE id = $1 AND deleted_at IS NULL
			  RETURNING ` + accountColumns

	var saved model.Account
	err := r.db.QueryRow(ctx, query,
		account.ID, account.Name, account.LastName, account.Email,
		account.Status, account.Lang, account.Phone, account.Birthday, account.UpdatedAt,
	).Scan(
		&saved.ID, &saved.Name, &saved.LastName, &saved.Email, &saved.Status,
		&saved.Lang, &saved.Phone, &saved.Birthday, &saved.ConfirmationToken,
		&saved.TermsAcceptedAt, &saved.CreatedAt, &saved.UpdatedAt, &saved.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return model.Account{}, model.ErrDuplicateEmail
		}
		return model.Account{}, fmt.Errorf("failed to update account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) SetConfirmationToken(ctx context.Context, id uuid.UUID, token string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET confirmation_token = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id, token,
	)
	if err != nil {
		return fmt.Errorf("failed to set confirmation token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ConfirmByToken performs the unconfirmed -> active transition keyed on
// the token and clears it in the same statement, making the token
// single-use under concurrent attempts.
func (r *AccountRepository) ConfirmByToken(ctx context.Context, token string) (model.Account, error) {
	query := `UPDATE accounts
			  SET status = $2, confirmation_token = NULL, updated_at = now()
			  WHERE confirmation_token = $1 AND status = $3 AND deleted_at IS NULL
			  RETURNING ` + accountColumns

	var saved model.Account
	err := r.db.QueryRow(ctx, query, token, model.StatusActive, model.StatusUnconfirmed).Scan(
		&saved.ID, &saved.Name, &saved.LastName, &saved.Email, &saved.Status,
		&saved.Lang, &saved.Phone, &saved.Birthday, &saved.ConfirmationToken,
		&saved.TermsAcceptedAt, &saved.CreatedAt, &saved.UpdatedAt, &saved.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrTokenConsumed
		}
		return model.Account{}, fmt.Errorf("failed to confirm account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) VerifyPassword(ctx context.Context, email, plaintext string) (model.Account, error) {
	query := `SELECT ` + accountColumns + `, password_hash FROM accounts WHERE email = $1 AND deleted_at IS NULL`

	var a model.Account
	var hash string
	err := r.db.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Name, &a.LastName, &a.Email, &a.Status, &a.Lang, &a.Phone,
		&a.Birthday, &a.ConfirmationToken, &a.TermsAcceptedAt,
		&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt, &hash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrInvalidCredentials
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	if err := r.hasher.Compare(hash, plaintext); err != nil {
		return model.Account{}, model.ErrInvalidCredentials
	}

	return a, nil
}

func (r *AccountRepository) scanOne(ctx context.Context, query string, arg any) (model.Account, error) {
	var a model.Account
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Name, &a.LastName, &a.Email, &a.Status, &a.Lang, &a.Phone,
		&a.Birthday, &a.ConfirmationToken, &a.TermsAcceptedAt,
		&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	return a, nil
}
