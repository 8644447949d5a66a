package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainlocale "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/locale"
	apperrors "github.com/syed-arham-coder/Pak-Turk-sub001/internal/errors"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/i18n"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/mocks/localemocks"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/mocks/portsmocks"
)

func testTables() map[string]i18n.Table {
	return map[string]i18n.Table{
		"en": {
			"nav.dashboard": "Dashboard",
			"greeting":      "Welcome, {name}!",
		},
		"tr": {
			"nav.dashboard": "Panel",
			"greeting":      "Hoş geldin, {name}!",
		},
		"ur": {
			"nav.dashboard": "ڈیش بورڈ",
		},
		"fr": {
			"nav.dashboard": "Tableau de bord",
			"greeting":      "Bienvenue, {name} !",
		},
	}
}

func testRates() domainlocale.RateTable {
	return domainlocale.NewRateTable(map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.9"),
		"TRY": decimal.RequireFromString("32.5"),
		"PKR": decimal.RequireFromString("278"),
	}, time.Now())
}

type localeFixture struct {
	svc          *LocalizationService
	translations *localemocks.StubTranslationSource
	rates        *localemocks.StubRateSource
	prefs        *localemocks.MemoryPreferenceStore
}

func newLocaleFixture(t *testing.T) *localeFixture {
	t.Helper()

	translations := localemocks.NewStubTranslationSource(testTables())
	rates := &localemocks.StubRateSource{Table: testRates()}
	prefs := localemocks.NewMemoryPreferenceStore()

	svc := NewLocalizationService(LocalizationServiceOptions{
		Translations: translations,
		Rates:        rates,
		Preferences:  prefs,
	})

	return &localeFixture{svc: svc, translations: translations, rates: rates, prefs: prefs}
}

func TestLocalizationService_Initialize_FallbackDefaults(t *testing.T) {
	f := newLocaleFixture(t)

	require.NoError(t, f.svc.Initialize(context.Background(), nil))

	st := f.svc.Locale()
	assert.Equal(t, "en", st.Language)
	assert.Equal(t, "USD", st.Currency)
	assert.Equal(t, "Dashboard", f.svc.Translate("nav.dashboard", nil))
}

func TestLocalizationService_Initialize_BrowserHint(t *testing.T) {
	f := newLocaleFixture(t)

	require.NoError(t, f.svc.Initialize(context.Background(), []string{"ur-PK", "en-US"}))

	assert.Equal(t, "ur", f.svc.Locale().Language)
	assert.Equal(t, "ڈیش بورڈ", f.svc.Translate("nav.dashboard", nil))
}

func TestLocalizationService_Initialize_StoredPreferenceWins(t *testing.T) {
	f := newLocaleFixture(t)
	f.prefs.Seed(AnonymousPreferenceKey, domainlocale.State{Language: "tr", Currency: "TRY"})

	require.NoError(t, f.svc.Initialize(context.Background(), []string{"fr-FR"}))

	st := f.svc.Locale()
	assert.Equal(t, "tr", st.Language)
	assert.Equal(t, "TRY", st.Currency)
}

func TestLocalizationService_Initialize_SanitizesStoredPreference(t *testing.T) {
	f := newLocaleFixture(t)
	f.prefs.Seed(AnonymousPreferenceKey, domainlocale.State{Language: "xx", Currency: "XXX"})

	require.NoError(t, f.svc.Initialize(context.Background(), nil))

	st := f.svc.Locale()
	assert.Equal(t, domainlocale.FallbackLanguage, st.Language)
	assert.Equal(t, domainlocale.BaseCurrency, st.Currency)
}

func TestLocalizationService_Translate(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))

	tests := []struct {
		name   string
		key    string
		params map[string]string
		want   string
	}{
		{"plain key", "nav.dashboard", nil, "Dashboard"},
		{"placeholder substitution", "greeting", map[string]string{"name": "Ayesha"}, "Welcome, Ayesha!"},
		{"missing param left verbatim", "greeting", nil, "Welcome, {name}!"},
		{"missing key returns key", "no.such.key", nil, "no.such.key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.svc.Translate(tt.key, tt.params))
		})
	}
}

func TestLocalizationService_TranslateOr(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))

	assert.Equal(t, "Sign out", f.svc.TranslateOr("nav.signout", "Sign out", nil))
	assert.Equal(t, "Dashboard", f.svc.TranslateOr("nav.dashboard", "other", nil))
}

func TestLocalizationService_FormatCurrency(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))
	require.NoError(t, f.svc.RefreshRates(context.Background()))

	tests := []struct {
		name     string
		currency string
		amount   string
		from     string
		want     string
	}{
		{"base to base", "USD", "100", "", "$100.00"},
		{"base to euro", "EUR", "100", "", "€90.00"},
		{"base to rupee rounds to whole", "PKR", "10", "USD", "₨2780"},
		{"euro back to base", "USD", "90", "EUR", "$100.00"},
		{"unsupported source treated as base", "EUR", "100", "XYZ", "€90.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, f.svc.SetCurrency(context.Background(), tt.currency))
			got := f.svc.FormatCurrency(decimal.RequireFromString(tt.amount), tt.from)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalizationService_FormatCurrency_NoRatesYet(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))
	require.NoError(t, f.svc.SetCurrency(context.Background(), "EUR"))

	// Before the first refresh every unknown rate degrades to 1, so the
	// amount still renders instead of failing.
	got := f.svc.FormatCurrency(decimal.RequireFromString("100"), "")
	assert.Equal(t, "€100.00", got)
}

func TestLocalizationService_CurrencyInfo(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))
	require.NoError(t, f.svc.SetCurrency(context.Background(), "PKR"))

	info := f.svc.CurrencyInfo()
	assert.Equal(t, "PKR", info.Code)
	assert.Equal(t, "₨", info.Symbol)
	assert.EqualValues(t, 0, info.DecimalDigits)
}

func TestLocalizationService_SetCurrency_Unsupported(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))
	before := f.svc.Locale()

	err := f.svc.SetCurrency(context.Background(), "BTC")

	require.Error(t, err)
	assert.True(t, apperrors.IsUnsupportedLocale(err))
	assert.Equal(t, before, f.svc.Locale(), "state must be untouched on rejection")
}

func TestLocalizationService_SetCurrency_Persists(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))

	require.NoError(t, f.svc.SetCurrency(context.Background(), "TRY"))

	stored, ok := f.prefs.Stored(AnonymousPreferenceKey)
	require.True(t, ok)
	assert.Equal(t, "TRY", stored.Currency)
}

func TestLocalizationService_SetLanguage_Unsupported(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))

	err := f.svc.SetLanguage(context.Background(), "de")

	require.Error(t, err)
	assert.True(t, apperrors.IsUnsupportedLocale(err))
	assert.Equal(t, "en", f.svc.Locale().Language)
}

func TestLocalizationService_SetLanguage_SwitchesTable(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))

	require.NoError(t, f.svc.SetLanguage(context.Background(), "tr"))

	assert.Equal(t, "tr", f.svc.Locale().Language)
	assert.Eventually(t, func() bool {
		return f.svc.Translate("nav.dashboard", nil) == "Panel"
	}, time.Second, 5*time.Millisecond)
}

func TestLocalizationService_SetLanguage_StaleLoadDiscarded(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))

	// Hold the French load in flight while a second switch overtakes it.
	frGate := make(chan struct{})
	f.translations.Gate["fr"] = frGate

	require.NoError(t, f.svc.SetLanguage(context.Background(), "fr"))
	require.NoError(t, f.svc.SetLanguage(context.Background(), "tr"))

	assert.Eventually(t, func() bool {
		return f.svc.Translate("nav.dashboard", nil) == "Panel"
	}, time.Second, 5*time.Millisecond)

	// Now the slow French response arrives. It must be discarded.
	close(frGate)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, "tr", f.svc.Locale().Language)
	assert.Equal(t, "Panel", f.svc.Translate("nav.dashboard", nil))
}

func TestLocalizationService_SetLanguage_OldTableServesDuringLoad(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))

	trGate := make(chan struct{})
	f.translations.Gate["tr"] = trGate

	require.NoError(t, f.svc.SetLanguage(context.Background(), "tr"))

	// Lookups keep resolving against the previous table until the new one
	// lands; the UI never sees raw keys during a switch.
	assert.Equal(t, "Dashboard", f.svc.Translate("nav.dashboard", nil))

	close(trGate)
	assert.Eventually(t, func() bool {
		return f.svc.Translate("nav.dashboard", nil) == "Panel"
	}, time.Second, 5*time.Millisecond)
}

func TestLocalizationService_AttachUser_AdoptsCompanyDefaults(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))

	f.svc.AttachUser(context.Background(), "user:42", "tr", "TRY")

	st := f.svc.Locale()
	assert.Equal(t, "tr", st.Language)
	assert.Equal(t, "TRY", st.Currency)

	stored, ok := f.prefs.Stored("user:42")
	require.True(t, ok, "adopted defaults are persisted under the user key")
	assert.Equal(t, "TRY", stored.Currency)
}

func TestLocalizationService_AttachUser_LoadsCompanyLanguageTable(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))
	require.Equal(t, "Dashboard", f.svc.Translate("nav.dashboard", nil))

	f.svc.AttachUser(context.Background(), "user:42", "tr", "TRY")

	assert.Eventually(t, func() bool {
		return f.svc.Translate("nav.dashboard", nil) == "Panel"
	}, time.Second, 10*time.Millisecond, "company language table should replace the fallback one")
}

func TestLocalizationService_AttachUser_ExplicitPreferenceOutranksCompany(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))
	require.NoError(t, f.svc.SetCurrency(context.Background(), "EUR"))

	f.svc.AttachUser(context.Background(), "user:42", "tr", "TRY")

	st := f.svc.Locale()
	assert.Equal(t, "en", st.Language)
	assert.Equal(t, "EUR", st.Currency)
}

func TestLocalizationService_AttachUser_StoredUserPreferenceWins(t *testing.T) {
	f := newLocaleFixture(t)
	f.prefs.Seed("user:42", domainlocale.State{Language: "ur", Currency: "PKR"})
	require.NoError(t, f.svc.Initialize(context.Background(), nil))

	f.svc.AttachUser(context.Background(), "user:42", "tr", "TRY")

	st := f.svc.Locale()
	assert.Equal(t, "ur", st.Language)
	assert.Equal(t, "PKR", st.Currency)
}

func TestLocalizationService_AttachUser_IgnoresUnsupportedCompanyDefaults(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))

	f.svc.AttachUser(context.Background(), "user:42", "de", "BTC")

	st := f.svc.Locale()
	assert.Equal(t, "en", st.Language)
	assert.Equal(t, "USD", st.Currency)
}

func TestLocalizationService_RefreshRates_Failure(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))
	require.NoError(t, f.svc.RefreshRates(context.Background()))

	f.rates.Err = apperrors.Network("rate service unreachable")
	err := f.svc.RefreshRates(context.Background())

	require.Error(t, err)
	// The previous snapshot keeps serving.
	assert.False(t, f.svc.RatesSnapshot().Empty())
}

func TestLocalizationService_RefreshRates_SingleFetchPerCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rates := portsmocks.NewMockRateSource(ctrl)
	rates.EXPECT().LoadRates(gomock.Any()).Return(testRates(), nil).Times(1)

	svc := NewLocalizationService(LocalizationServiceOptions{
		Translations: localemocks.NewStubTranslationSource(testTables()),
		Rates:        rates,
		Preferences:  localemocks.NewMemoryPreferenceStore(),
	})

	require.NoError(t, svc.RefreshRates(context.Background()))
	assert.False(t, svc.RatesSnapshot().Empty())
}

func TestLocalizationService_Subscribe_NotifiesOnLocaleChange(t *testing.T) {
	f := newLocaleFixture(t)
	require.NoError(t, f.svc.Initialize(context.Background(), nil))

	ch, cancel := f.svc.Subscribe()
	defer cancel()

	require.NoError(t, f.svc.SetCurrency(context.Background(), "EUR"))

	select {
	case st := <-ch:
		assert.Equal(t, "EUR", st.Currency)
	case <-time.After(time.Second):
		t.Fatal("no locale state delivered after currency switch")
	}
}
