package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"nimbushost/internal/models"
)

// MySQLStore implements UserStore over an injected *sql.DB. The DSN
// must carry parseTime=true so DATETIME columns scan into time.Time.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

const userCols = `id, email, name, password_hash, is_verified,
	verify_token, verify_token_expiry,
	reset_password_token, reset_password_token_expiry,
	last_login, created_at, updated_at`

func (s *MySQLStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, verify_token, verify_token_expiry)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, u.Email, u.Name, u.PasswordHash, u.VerifyToken, u.VerifyTokenExpiry,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return s.ByID(ctx, id)
}

func (s *MySQLStore) ByID(ctx context.Context, id string) (*models.User, error) {
	return s.one(ctx, `SELECT `+userCols+` FROM users WHERE id = ?`, id)
}

func (s *MySQLStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.one(ctx, `SELECT `+userCols+` FROM users WHERE email = ?`, email)
}

func (s *MySQLStore) ByEmailOrName(ctx context.Context, email, name string) (*models.User, error) {
	// NULLIF keeps an empty identifier from matching empty columns.
	return s.one(ctx,
		`SELECT `+userCols+` FROM users
		 WHERE email = NULLIF(?, '') OR name = NULLIF(?, '') LIMIT 1`,
		email, name,
	)
}

func (s *MySQLStore) ConsumeVerifyToken(ctx context.Context, code string, now time.Time) (*models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	u, err := scanUser(tx.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users
		 WHERE verify_token = ? AND verify_token_expiry > ? LIMIT 1 FOR UPDATE`,
		code, now,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNoActiveToken
	} else if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET is_verified = 1, verify_token = NULL, verify_token_expiry = NULL
		 WHERE id = ? AND verify_token = ? AND verify_token_expiry > ?`,
		u.ID, code, now,
	)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// lost the race to a concurrent consumption
		return nil, ErrNoActiveToken
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	u.IsVerified = true
	u.VerifyToken = nil
	u.VerifyTokenExpiry = nil
	return u, nil
}

func (s *MySQLStore) SetResetToken(ctx context.Context, id, token string, expiry time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET reset_password_token = ?, reset_password_token_expiry = ? WHERE id = ?`,
		token, expiry, id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MySQLStore) ConsumeResetToken(ctx context.Context, token, newHash string, now time.Time) (*models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	u, err := scanUser(tx.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users
		 WHERE reset_password_token = ? AND reset_password_token_expiry > ? LIMIT 1 FOR UPDATE`,
		token, now,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNoActiveToken
	} else if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, reset_password_token = NULL, reset_password_token_expiry = NULL
		 WHERE id = ? AND reset_password_token = ? AND reset_password_token_expiry > ?`,
		newHash, u.ID, token, now,
	)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNoActiveToken
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	u.PasswordHash = newHash
	u.ResetPasswordToken = nil
	u.ResetPasswordTokenExpiry = nil
	return u, nil
}

func (s *MySQLStore) RecordLogin(ctx context.Context, id string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE users SET last_login = ? WHERE id = ?`, at, id)
	return err
}

func (s *MySQLStore) one(ctx context.Context, query string, args ...any) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u         models.User
		verifyTok sql.NullString
		verifyExp sql.NullTime
		resetTok  sql.NullString
		resetExp  sql.NullTime
		lastLogin sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsVerified,
		&verifyTok, &verifyExp, &resetTok, &resetExp,
		&lastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if verifyTok.Valid {
		u.VerifyToken = &verifyTok.String
	}
	if verifyExp.Valid {
		u.VerifyTokenExpiry = &verifyExp.Time
	}
	if resetTok.Valid {
		u.ResetPasswordToken = &resetTok.String
	}
	if resetExp.Valid {
		u.ResetPasswordTokenExpiry = &resetExp.Time
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return &u, nil
}
