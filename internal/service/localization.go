package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	domainlocale "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/locale"
	apperrors "github.com/syed-arham-coder/Pak-Turk-sub001/internal/errors"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/i18n"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/money"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/ports"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/state"
)

// AnonymousPreferenceKey is the preference-store key used before login.
const AnonymousPreferenceKey = "anonymous"

// LocalizationServiceOptions groups dependencies for LocalizationService.
type LocalizationServiceOptions struct {
	Translations ports.TranslationSource
	Rates        ports.RateSource
	Preferences  ports.PreferenceStore
	Logger       *slog.Logger
}

// LocalizationService owns the active (language, currency) pair and resolves
// display strings and monetary amounts for the whole UI. Translation lookups
// and currency formatting never fail; they degrade to the raw key or the
// base currency.
type LocalizationService struct {
	translations ports.TranslationSource
	rates        ports.RateSource
	prefs        ports.PreferenceStore
	logger       *slog.Logger

	state *state.Container[domainlocale.State]

	mu        sync.Mutex
	table     i18n.Table
	loadGen   uint64 // tag for the stale-response guard on table loads
	rateTable domainlocale.RateTable
	prefKey   string
	explicit  bool // an explicit preference outranks company defaults

	matcher language.Matcher
}

// NewLocalizationService constructs a LocalizationService at the fallback
// locale with an empty translation table and rate snapshot.
func NewLocalizationService(opts LocalizationServiceOptions) *LocalizationService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	supported := make([]language.Tag, 0, len(domainlocale.SupportedLanguages))
	for _, tag := range domainlocale.SupportedLanguages {
		supported = append(supported, language.Make(tag))
	}

	return &LocalizationService{
		translations: opts.Translations,
		rates:        opts.Rates,
		prefs:        opts.Preferences,
		logger:       logger,
		state:        state.New(domainlocale.Default()),
		prefKey:      AnonymousPreferenceKey,
		matcher:      language.NewMatcher(supported),
	}
}

// Locale returns the active (language, currency) pair.
func (s *LocalizationService) Locale() domainlocale.State {
	return s.state.Get()
}

// Subscribe registers a listener for locale changes. The cancel function
// must be called when the consumer unmounts.
func (s *LocalizationService) Subscribe() (<-chan domainlocale.State, func()) {
	return s.state.Subscribe()
}

// Initialize restores the persisted preference, or derives one from the
// browser's language hints when none is stored, and warms the translation
// table for the resulting language. Precedence: stored preference >
// browser hint > fallback.
func (s *LocalizationService) Initialize(ctx context.Context, browserLanguages []string) error {
	st := domainlocale.Default()
	stored, err := s.prefs.LoadLocale(ctx, s.prefKey)
	switch {
	case err == nil:
		st = sanitizeState(stored)
		s.mu.Lock()
		s.explicit = true
		s.mu.Unlock()
	case apperrors.IsNotFound(err):
		if tag, matchErr := s.matchBrowserLanguage(browserLanguages); matchErr == nil {
			st.Language = tag
		}
	default:
		s.logger.WarnContext(ctx, "load locale preference failed", "error", err)
	}

	s.state.Set(st)
	return s.loadTableSync(ctx, st.Language)
}

// AttachUser re-keys preference persistence to the logged-in user and, when
// no explicit preference exists, adopts the company's default locale.
// Precedence overall: explicit preference > company default > browser hint
// (applied at Initialize) > fallback.
func (s *LocalizationService) AttachUser(ctx context.Context, userKey, companyLanguage, companyCurrency string) {
	s.mu.Lock()
	if userKey != "" {
		s.prefKey = userKey
	}
	explicit := s.explicit
	key := s.prefKey
	s.mu.Unlock()

	// The user's own stored preference wins over company defaults.
	if stored, err := s.prefs.LoadLocale(ctx, key); err == nil {
		s.mu.Lock()
		s.explicit = true
		s.mu.Unlock()
		s.switchState(ctx, sanitizeState(stored))
		return
	} else if !apperrors.IsNotFound(err) {
		s.logger.WarnContext(ctx, "load locale preference failed", "key", key, "error", err)
	}

	if explicit {
		return
	}

	st := s.state.Get()
	if domainlocale.LanguageSupported(companyLanguage) {
		st.Language = companyLanguage
	}
	if domainlocale.CurrencySupported(companyCurrency) {
		st.Currency = companyCurrency
	}
	s.switchState(ctx, st)
}

// switchState publishes st and, when the active language changed, refreshes
// the translation table through the stale-response guard.
func (s *LocalizationService) switchState(ctx context.Context, st domainlocale.State) {
	langChanged := st.Language != s.state.Get().Language

	var gen uint64
	if langChanged {
		s.mu.Lock()
		s.loadGen++
		gen = s.loadGen
		s.mu.Unlock()
	}

	s.applyState(ctx, st)

	if langChanged {
		go s.loadTableAsync(context.WithoutCancel(ctx), st.Language, gen)
	}
}

// Translate resolves key in the active language's table and substitutes
// {name} placeholders from params. A missing key returns the key itself:
// missing translations are a display degradation, not an error.
func (s *LocalizationService) Translate(key string, params map[string]string) string {
	return s.TranslateOr(key, key, params)
}

// TranslateOr is Translate with a caller-supplied fallback used when the
// key is absent from the active table.
func (s *LocalizationService) TranslateOr(key, fallback string, params map[string]string) string {
	s.mu.Lock()
	table := s.table
	s.mu.Unlock()

	tmpl, ok := table.Lookup(key)
	if !ok {
		tmpl = fallback
	}
	return i18n.Render(tmpl, params)
}

// FormatCurrency converts amount from fromCurrency (the base currency when
// empty) into the active currency on a single rate snapshot and renders it
// with the active currency's symbol and decimal digits. Unsupported codes
// are treated as the base currency; the call never fails.
func (s *LocalizationService) FormatCurrency(amount decimal.Decimal, fromCurrency string) string {
	if fromCurrency == "" {
		fromCurrency = domainlocale.BaseCurrency
	}

	s.mu.Lock()
	table := s.rateTable
	s.mu.Unlock()

	active := s.CurrencyInfo()
	converted := money.Convert(table, amount, fromCurrency, active.Code)
	return money.Format(converted, active)
}

// CurrencyInfo returns the display conventions of the active currency.
// Pure and synchronous; degrades to the base currency if state were ever
// to hold an unsupported code.
func (s *LocalizationService) CurrencyInfo() domainlocale.Currency {
	st := s.state.Get()
	if cur, ok := domainlocale.CurrencyInfo(st.Currency); ok {
		return cur
	}
	base, _ := domainlocale.CurrencyInfo(domainlocale.BaseCurrency)
	return base
}

// SetLanguage switches the active language. The new table is loaded in the
// background; a load superseded by a newer switch is discarded on arrival,
// and the previous table keeps serving lookups until the replacement lands.
func (s *LocalizationService) SetLanguage(ctx context.Context, tag string) error {
	if !domainlocale.LanguageSupported(tag) {
		return apperrors.UnsupportedLocalef("language %q is not supported", tag)
	}

	st := s.state.Get()
	if st.Language == tag {
		return nil
	}
	st.Language = tag

	s.mu.Lock()
	s.explicit = true
	s.loadGen++
	gen := s.loadGen
	s.mu.Unlock()

	s.applyState(ctx, st)

	go s.loadTableAsync(context.WithoutCancel(ctx), tag, gen)
	return nil
}

// SetCurrency switches the active currency. Codes outside the supported
// set leave the state untouched.
func (s *LocalizationService) SetCurrency(ctx context.Context, code string) error {
	if !domainlocale.CurrencySupported(code) {
		return apperrors.UnsupportedLocalef("currency %q is not supported", code)
	}

	st := s.state.Get()
	if st.Currency == code {
		return nil
	}
	st.Currency = code

	s.mu.Lock()
	s.explicit = true
	s.mu.Unlock()

	s.applyState(ctx, st)
	return nil
}

// RefreshRates swaps in a fresh rate snapshot. Formatting calls in flight
// keep the snapshot they started with.
func (s *LocalizationService) RefreshRates(ctx context.Context) error {
	if s.rates == nil {
		return apperrors.Validation("no rate source configured")
	}

	table, err := s.rates.LoadRates(ctx)
	if err != nil {
		return fmt.Errorf("load rates: %w", err)
	}

	s.mu.Lock()
	s.rateTable = table
	s.mu.Unlock()
	return nil
}

// RatesSnapshot returns the current rate snapshot, zero before the first
// successful refresh.
func (s *LocalizationService) RatesSnapshot() domainlocale.RateTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rateTable
}

// applyState publishes the state and persists it as the stored preference.
// Persistence failures are logged, not surfaced: the in-memory switch must
// still take effect.
func (s *LocalizationService) applyState(ctx context.Context, st domainlocale.State) {
	s.state.Set(st)

	s.mu.Lock()
	key := s.prefKey
	s.mu.Unlock()
	if err := s.prefs.SaveLocale(ctx, key, st); err != nil {
		s.logger.WarnContext(ctx, "persist locale preference failed", "key", key, "error", err)
	}
}

// loadTableSync loads and installs the table for lang, bypassing the
// stale-response guard. Used during initialization only.
func (s *LocalizationService) loadTableSync(ctx context.Context, lang string) error {
	table, err := s.translations.LoadTable(ctx, lang)
	if err != nil {
		return fmt.Errorf("load translation table %q: %w", lang, err)
	}
	s.mu.Lock()
	s.table = table
	s.mu.Unlock()
	return nil
}

// loadTableAsync loads the table for lang and installs it only if no newer
// language switch happened while the load was in flight.
func (s *LocalizationService) loadTableAsync(ctx context.Context, lang string, gen uint64) {
	table, err := s.translations.LoadTable(ctx, lang)
	if err != nil {
		s.logger.WarnContext(ctx, "load translation table failed", "language", lang, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadGen != gen {
		// Superseded by a faster subsequent switch: discard.
		return
	}
	s.table = table
}

// matchBrowserLanguage picks the best supported language for the browser's
// Accept-Language style hints.
func (s *LocalizationService) matchBrowserLanguage(hints []string) (string, error) {
	if len(hints) == 0 {
		return "", fmt.Errorf("no language hints")
	}

	tags := make([]language.Tag, 0, len(hints))
	for _, h := range hints {
		if tag, err := language.Parse(h); err == nil {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return "", fmt.Errorf("no parseable language hints")
	}

	_, index, conf := s.matcher.Match(tags...)
	if conf == language.No {
		return "", fmt.Errorf("no supported language matches")
	}
	return domainlocale.SupportedLanguages[index], nil
}

// sanitizeState clamps a stored preference to the supported sets, so a
// stale or hand-edited preference can never produce an unsupported state.
func sanitizeState(st domainlocale.State) domainlocale.State {
	if !domainlocale.LanguageSupported(st.Language) {
		st.Language = domainlocale.FallbackLanguage
	}
	if !domainlocale.CurrencySupported(st.Currency) {
		st.Currency = domainlocale.BaseCurrency
	}
	return st
}
