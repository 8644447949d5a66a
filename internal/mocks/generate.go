// Package mocks provides mock implementations for testing the dashboard contexts.
//
// Hand-written fakes with call counters live in sessionmocks and localemocks;
// gomock-generated mocks for the locale ports live in portsmocks. To
// regenerate after interface changes, run:
//
//	go generate ./internal/mocks
package mocks

// Generate mocks for the locale ports. This creates MockTranslationSource,
// MockRateSource, and MockPreferenceStore with expectation recorders for
// every interface method.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=portsmocks -destination=portsmocks/locale_mocks.go github.com/syed-arham-coder/Pak-Turk-sub001/internal/ports TranslationSource,RateSource,PreferenceStore
