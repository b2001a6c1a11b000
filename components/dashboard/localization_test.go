package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizedStringFor(t *testing.T) {
	s := LocalizedString{"default": "Load More", "sw": "Pakia Zaidi", "fr": "Charger plus"}

	tests := []struct {
		name   string
		locale string
		want   string
	}{
		{name: "empty locale uses default", locale: "", want: "Load More"},
		{name: "exact match", locale: "sw", want: "Pakia Zaidi"},
		{name: "region falls back to language", locale: "sw-KE", want: "Pakia Zaidi"},
		{name: "case insensitive", locale: "SW", want: "Pakia Zaidi"},
		{name: "unknown locale uses default", locale: "de", want: "Load More"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.For(tc.locale, "fallback"))
		})
	}
}

func TestLocalizedStringFallback(t *testing.T) {
	assert.Equal(t, "fallback", LocalizedString(nil).For("sw", "fallback"))
	assert.Equal(t, "fallback", LocalizedString{"fr": "Oui"}.For("sw", "fallback"))
}

func TestDefaultStringsCarrySwahili(t *testing.T) {
	strings := DefaultStrings()

	assert.Equal(t, "Malipo Yamepokelewa", strings.ToastPaymentReceived.For("sw-KE", ""))
	assert.Equal(t, "Payment Received", strings.ToastPaymentReceived.For("en", ""))
	assert.Equal(t, "Tafuta:", strings.DataTable.Search.For("sw", ""))
	assert.Contains(t, strings.DataTable.Info.For("sw", ""), "_TOTAL_")
}
