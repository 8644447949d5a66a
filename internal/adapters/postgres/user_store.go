// Package postgres implements the user persistence port on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/adapters/postgres/pgxutil"
	domainsession "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/session"
	apperrors "github.com/syed-arham-coder/Pak-Turk-sub001/internal/errors"
)

// UserStore provides database operations for user rows.
type UserStore struct {
	DB *sql.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{DB: db}
}

// userRow mirrors the users table columns pgx maps by name.
type userRow struct {
	ID          string  `db:"id"`
	FullName    string  `db:"full_name"`
	Role        string  `db:"role"`
	CompanyName *string `db:"company_name"`
	CompanyLogo *string `db:"company_logo"`
	PictureRef  *string `db:"picture_ref"`
}

func (r userRow) toDomain() domainsession.User {
	u := domainsession.User{
		ID:       r.ID,
		FullName: r.FullName,
		Role:     domainsession.Role(r.Role),
	}
	if r.CompanyName != nil {
		u.CompanyName = *r.CompanyName
	}
	if r.CompanyLogo != nil {
		u.CompanyLogo = *r.CompanyLogo
	}
	if r.PictureRef != nil {
		u.PictureRef = *r.PictureRef
	}
	return u
}

const userSelectColumns = `id, full_name, role, company_name, company_logo, picture_ref`

// GetUser fetches the user row for id.
func (s *UserStore) GetUser(ctx context.Context, id string) (domainsession.User, error) {
	if id == "" {
		return domainsession.User{}, apperrors.ValidationField("id", "user ID is required")
	}

	var out userRow
	err := pgxutil.WithPgxConn(ctx, s.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx,
			`SELECT `+userSelectColumns+` FROM users WHERE id = $1`, id)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		out, queryErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
		return queryErr
	})
	if err != nil {
		return domainsession.User{}, apperrors.MapDBError(err)
	}
	return out.toDomain(), nil
}

// CreateUser inserts a user row. Used on first SSO visit and by dev seeding.
func (s *UserStore) CreateUser(ctx context.Context, u domainsession.User) error {
	if u.ID == "" {
		return apperrors.ValidationField("id", "user ID is required")
	}
	if !u.Role.Valid() {
		return apperrors.ValidationField("role", "unknown role")
	}

	err := pgxutil.WithPgxConn(ctx, s.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, `
			INSERT INTO users (id, full_name, role, company_name, company_logo)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING
		`, u.ID, strings.TrimSpace(u.FullName), string(u.Role),
			nullable(u.CompanyName), nullable(u.CompanyLogo))
		return execErr
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// UpdateUserName writes a new display name and returns the affected row count.
func (s *UserStore) UpdateUserName(ctx context.Context, id, name string) (int64, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, s.DB, func(conn *pgx.Conn) error {
		tag, execErr := conn.Exec(ctx, `
			UPDATE users SET full_name = $2, updated_at = now() WHERE id = $1
		`, id, name)
		if execErr != nil {
			return execErr
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return affected, nil
}

// UpdateUserPicture writes new picture bytes and rotates the picture_ref so
// readers can tell the image changed without comparing bytes.
func (s *UserStore) UpdateUserPicture(ctx context.Context, id string, picture []byte) (int64, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, s.DB, func(conn *pgx.Conn) error {
		tag, execErr := conn.Exec(ctx, `
			UPDATE users
			SET picture = $2, picture_ref = gen_random_uuid()::text, updated_at = now()
			WHERE id = $1
		`, id, picture)
		if execErr != nil {
			return execErr
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return affected, nil
}

// GetUserPicture fetches the stored picture bytes for id.
func (s *UserStore) GetUserPicture(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := pgxutil.WithPgxConn(ctx, s.DB, func(conn *pgx.Conn) error {
		row := conn.QueryRow(ctx, `SELECT picture FROM users WHERE id = $1`, id)
		return row.Scan(&data)
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	if data == nil {
		return nil, apperrors.NotFoundf("no picture stored for user %s", id)
	}
	return data, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
