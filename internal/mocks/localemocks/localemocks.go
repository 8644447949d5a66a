package localemocks

// Package localemocks contains hand-written test doubles for the
// localization ports.

import (
	"context"
	"sync"

	domainlocale "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/locale"
	apperrors "github.com/syed-arham-coder/Pak-Turk-sub001/internal/errors"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/i18n"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TranslationSource = (*StubTranslationSource)(nil)
	_ ports.RateSource        = (*StubRateSource)(nil)
	_ ports.PreferenceStore   = (*MemoryPreferenceStore)(nil)
)

// StubTranslationSource serves fixed tables per language. An optional
// Gate channel makes LoadTable block until the test releases it, which is
// how slow loads are simulated for stale-response tests.
type StubTranslationSource struct {
	mu     sync.Mutex
	tables map[string]i18n.Table

	// Gate, when non-nil for a language, blocks that language's load
	// until a value is sent (or the channel is closed).
	Gate map[string]chan struct{}

	// Loads counts LoadTable calls per language.
	Loads map[string]int

	LoadTableFunc func(ctx context.Context, lang string) (i18n.Table, error)
}

// NewStubTranslationSource creates a source serving the given tables.
func NewStubTranslationSource(tables map[string]i18n.Table) *StubTranslationSource {
	return &StubTranslationSource{
		tables: tables,
		Gate:   make(map[string]chan struct{}),
		Loads:  make(map[string]int),
	}
}

func (s *StubTranslationSource) LoadTable(ctx context.Context, lang string) (i18n.Table, error) {
	s.mu.Lock()
	s.Loads[lang]++
	gate := s.Gate[lang]
	s.mu.Unlock()

	if s.LoadTableFunc != nil {
		return s.LoadTableFunc(ctx, lang)
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	table, ok := s.tables[lang]
	if !ok {
		return nil, apperrors.NotFoundf("no table for language %q", lang)
	}
	return table, nil
}

// StubRateSource serves a fixed rate table.
type StubRateSource struct {
	Table domainlocale.RateTable
	Err   error

	LoadRatesFunc func(ctx context.Context) (domainlocale.RateTable, error)
}

func (s *StubRateSource) LoadRates(ctx context.Context) (domainlocale.RateTable, error) {
	if s.LoadRatesFunc != nil {
		return s.LoadRatesFunc(ctx)
	}
	if s.Err != nil {
		return domainlocale.RateTable{}, s.Err
	}
	return s.Table, nil
}

// MemoryPreferenceStore is an in-memory locale preference store.
type MemoryPreferenceStore struct {
	mu     sync.Mutex
	prefs  map[string]domainlocale.State
	Saves  int
	Errors struct {
		Save error
		Load error
	}
}

// NewMemoryPreferenceStore creates an empty preference store.
func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{prefs: make(map[string]domainlocale.State)}
}

// Seed stores a preference directly.
func (m *MemoryPreferenceStore) Seed(key string, st domainlocale.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[key] = st
}

func (m *MemoryPreferenceStore) SaveLocale(_ context.Context, key string, st domainlocale.State) error {
	if m.Errors.Save != nil {
		return m.Errors.Save
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[key] = st
	m.Saves++
	return nil
}

func (m *MemoryPreferenceStore) LoadLocale(_ context.Context, key string) (domainlocale.State, error) {
	if m.Errors.Load != nil {
		return domainlocale.State{}, m.Errors.Load
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.prefs[key]
	if !ok {
		return domainlocale.State{}, apperrors.NotFoundf("no locale preference for %q", key)
	}
	return st, nil
}

// Stored returns the preference saved under key, if any.
func (m *MemoryPreferenceStore) Stored(key string) (domainlocale.State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.prefs[key]
	return st, ok
}
