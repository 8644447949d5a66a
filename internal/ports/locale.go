package ports

import (
	"context"
	"time"

	domainlocale "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/locale"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/i18n"
)

// TranslationSource loads the key→template table for a language. Tables are
// read-only and cacheable indefinitely per language version.
type TranslationSource interface {
	LoadTable(ctx context.Context, lang string) (i18n.Table, error)
}

// RateSource loads a consistent snapshot of conversion factors relative to
// the base currency. Staleness is acceptable for display purposes.
type RateSource interface {
	LoadRates(ctx context.Context) (domainlocale.RateTable, error)
}

// PreferenceStore persists the locale preference across reloads, keyed by
// user ID (or an anonymous key before login).
type PreferenceStore interface {
	SaveLocale(ctx context.Context, key string, st domainlocale.State) error
	// LoadLocale returns NotFound when no preference has been stored.
	LoadLocale(ctx context.Context, key string) (domainlocale.State, error)
}

// PictureCache holds fetched profile-picture bytes. Get returns (nil, nil)
// on a miss; Delete reports whether a key was actually removed.
type PictureCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
}
