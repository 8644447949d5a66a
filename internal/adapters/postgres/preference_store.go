package postgres

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/adapters/postgres/pgxutil"
	domainlocale "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/locale"
	apperrors "github.com/syed-arham-coder/Pak-Turk-sub001/internal/errors"
)

// PreferenceStore persists locale preferences in PostgreSQL. Used when no
// Redis is configured, and as the durable backing for support tooling.
type PreferenceStore struct {
	DB *sql.DB
}

// NewPreferenceStore creates a new PostgreSQL locale preference store.
func NewPreferenceStore(db *sql.DB) *PreferenceStore {
	return &PreferenceStore{DB: db}
}

func (s *PreferenceStore) SaveLocale(ctx context.Context, key string, st domainlocale.State) error {
	if key == "" {
		return apperrors.ValidationField("key", "preference key is required")
	}

	err := pgxutil.WithPgxConn(ctx, s.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, `
			INSERT INTO locale_preferences (pref_key, language, currency)
			VALUES ($1, $2, $3)
			ON CONFLICT (pref_key) DO UPDATE
			SET language = EXCLUDED.language,
			    currency = EXCLUDED.currency,
			    updated_at = now()
		`, key, st.Language, st.Currency)
		return execErr
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

func (s *PreferenceStore) LoadLocale(ctx context.Context, key string) (domainlocale.State, error) {
	if key == "" {
		return domainlocale.State{}, apperrors.ValidationField("key", "preference key is required")
	}

	var st domainlocale.State
	err := pgxutil.WithPgxConn(ctx, s.DB, func(conn *pgx.Conn) error {
		row := conn.QueryRow(ctx,
			`SELECT language, currency FROM locale_preferences WHERE pref_key = $1`, key)
		return row.Scan(&st.Language, &st.Currency)
	})
	if err != nil {
		return domainlocale.State{}, apperrors.MapDBError(err)
	}
	return st, nil
}
