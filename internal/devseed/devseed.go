// Package devseed populates a development database with sample users so the
// dashboard has data to log in against.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/adapters/postgres"
	domainsession "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/session"
)

func defaultUsers() []domainsession.User {
	return []domainsession.User{
		{
			ID:          "dev-user",
			FullName:    "Dev User",
			Role:        domainsession.RoleAdmin,
			CompanyName: "Dev Company",
		},
		{
			ID:          "seed-manager",
			FullName:    "Fatima Noor",
			Role:        domainsession.RoleManager,
			CompanyName: "Dev Company",
		},
		{
			ID:          "seed-member",
			FullName:    "Emre Demir",
			Role:        domainsession.RoleMember,
			CompanyName: "Dev Company",
		},
	}
}

// Run inserts the sample users, skipping ones that already exist.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	store := postgres.NewUserStore(db)
	for _, u := range defaultUsers() {
		if err := store.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
		logger.InfoContext(ctx, "seeded user", "user_id", u.ID, "role", u.Role)
	}

	logger.InfoContext(ctx, "dev seed completed", "users", len(defaultUsers()))
	return nil
}
