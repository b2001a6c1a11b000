package dashboard

import "strings"

// LocalizedString maps locale codes to display text. Keys are matched
// case-insensitively and language-region pairs (`sw-ke`) fall back to their
// base language (`sw`), then to the "default" entry.
type LocalizedString map[string]string

// For resolves the best text for the locale, falling back to the supplied
// default when nothing matches.
func (s LocalizedString) For(locale, fallback string) string {
	if len(s) == 0 {
		return fallback
	}
	for _, candidate := range localeCandidates(locale) {
		if candidate == "" {
			continue
		}
		for key, value := range s {
			if strings.EqualFold(key, candidate) && value != "" {
				return value
			}
		}
	}
	return fallback
}

// UIStrings collects every translatable string the pipeline renders.
type UIStrings struct {
	ToastPaymentReceived LocalizedString
	ToastPaymentFailed   LocalizedString
	ToastNewNotification LocalizedString
	Copied               LocalizedString
	ConfirmDelete        LocalizedString
	LoadMore             LocalizedString
	Loading              LocalizedString
	LoadError            LocalizedString
	DataTable            DataTableStrings
}

// DataTableStrings are the localized labels handed to the data-table widget.
type DataTableStrings struct {
	Search     LocalizedString
	LengthMenu LocalizedString
	Info       LocalizedString
	InfoEmpty  LocalizedString
	First      LocalizedString
	Last       LocalizedString
	Next       LocalizedString
	Previous   LocalizedString
}

func localeCandidates(locale string) []string {
	locale = strings.TrimSpace(strings.ToLower(locale))
	if locale == "" {
		return []string{"default"}
	}
	candidates := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	return append(candidates, "default")
}
