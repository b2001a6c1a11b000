package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eKidenge/pesaflow/pkg/dom"
	"github.com/eKidenge/pesaflow/pkg/format"
)

// Selectors and classes the bootstrapper contracts with page markup.
const (
	TooltipSelector       = "[data-toggle=tooltip]"
	PopoverSelector       = "[data-toggle=popover]"
	AlertClass            = "alert"
	AlertPermanentClass   = "alert-permanent"
	ConfirmDeleteClass    = "confirm-delete"
	DataTableClass        = "datatable"
	NeedsValidationClass  = "needs-validation"
	WasValidatedClass     = "was-validated"
	CopyToClipboardClass  = "copy-to-clipboard"
	PasswordToggleClass   = "toggle-password"
	DatePickerClass       = "datepicker"
	SelectClass           = "select2"
	CurrencyInputClass    = "currency-input"
	tooltipEnabledClass   = "tooltip-enabled"
	popoverEnabledClass   = "popover-enabled"
	datatableReadyClass   = "datatable-initialized"
	datepickerReadyClass  = "datepicker-initialized"
	selectReadyClass      = "select2-initialized"
	fadeClass             = "fade"
	iconEyeClass          = "fa-eye"
	iconEyeSlashClass     = "fa-eye-slash"
	defaultAlertDismissMS = 5000
	defaultAlertFadeMS    = 300
	defaultTablePageSize  = 25
)

// Env is the environment handed to integration setups.
type Env struct {
	Document   *dom.Document
	Loop       *Loop
	Dispatcher *Dispatcher
	Prompter   Prompter
	Clipboard  Clipboard
	Telemetry  Telemetry
	Strings    UIStrings
	Locale     string
	App        *App
}

// App records the widget state the bootstrapper initialized, so callers and
// tests can inspect what a page ended up with.
type App struct {
	Tooltips    []*dom.Element
	Popovers    []*dom.Element
	DataTables  []*DataTableWidget
	DatePickers []*DatePickerWidget
	Selects     []*SelectWidget
}

// DataTableWidget is an initialized data-table.
type DataTableWidget struct {
	Element    *dom.Element
	PageLength int
	Responsive bool
	Language   DataTableLanguage
}

// DataTableLanguage is the resolved label set handed to one table.
type DataTableLanguage struct {
	Search     string
	LengthMenu string
	Info       string
	InfoEmpty  string
	First      string
	Last       string
	Next       string
	Previous   string
}

// DatePickerWidget is an initialized date picker.
type DatePickerWidget struct {
	Element   *dom.Element
	Format    string
	AutoClose bool
}

// SelectWidget is an initialized searchable select.
type SelectWidget struct {
	Element *dom.Element
	Theme   string
	Width   string
}

// BootstrapOptions configures Bootstrap.
type BootstrapOptions struct {
	Document   *dom.Document
	Loop       *Loop
	Dispatcher *Dispatcher
	Prompter   Prompter
	Clipboard  Clipboard
	Telemetry  Telemetry
	Registry   *Registry
	Validator  ConfigValidator
	Manifest   *ManifestDocument
	Strings    *UIStrings
	Locale     string
	// Scroll, when set, gets its handler bound to scroll events.
	Scroll *ScrollLoader
}

// Bootstrap runs exactly once per page: it walks the manifest's enabled
// integrations, validates each configuration, and runs each setup. The
// integrations are independent and order-insensitive; a failing one is
// recorded and the rest still run.
func Bootstrap(ctx context.Context, opts BootstrapOptions) (*App, error) {
	if opts.Document == nil {
		return nil, errors.New("dashboard: document is required")
	}
	if opts.Loop == nil {
		return nil, errors.New("dashboard: loop is required")
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = NewDispatcher(opts.Loop)
	}
	if opts.Prompter == nil {
		opts.Prompter = acceptAllPrompter{}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = discardClipboard{}
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.Manifest == nil {
		opts.Manifest = DefaultManifest()
	}
	strings := DefaultStrings()
	if opts.Strings != nil {
		strings = *opts.Strings
	}
	locale := opts.Locale
	if locale == "" {
		locale = opts.Manifest.Locale
	}
	telemetry := normalizeTelemetry(opts.Telemetry)

	env := &Env{
		Document:   opts.Document,
		Loop:       opts.Loop,
		Dispatcher: opts.Dispatcher,
		Prompter:   opts.Prompter,
		Clipboard:  opts.Clipboard,
		Telemetry:  telemetry,
		Strings:    strings,
		Locale:     locale,
		App:        &App{},
	}

	var setupErr error
	enabled := 0
	for _, entry := range opts.Manifest.Integrations {
		if !entry.On() {
			continue
		}
		def, ok := opts.Registry.Definition(entry.Code)
		if !ok {
			setupErr = errors.Join(setupErr, fmt.Errorf("dashboard: unknown integration %s", entry.Code))
			continue
		}
		if err := opts.Validator.Validate(def, entry.Config); err != nil {
			setupErr = errors.Join(setupErr, err)
			continue
		}
		setup, ok := opts.Registry.Setup(entry.Code)
		if !ok {
			setupErr = errors.Join(setupErr, fmt.Errorf("dashboard: integration %s has no setup", entry.Code))
			continue
		}
		if err := setup(ctx, env, entry.Config); err != nil {
			setupErr = errors.Join(setupErr, fmt.Errorf("dashboard: setup %s: %w", entry.Code, err))
			continue
		}
		enabled++
	}

	if opts.Scroll != nil {
		opts.Dispatcher.Bind(EventScroll, "", opts.Scroll.OnScroll)
	}

	telemetry.Record(ctx, "dashboard.bootstrap", map[string]any{
		"integrations": enabled,
		"locale":       locale,
	})
	return env.App, setupErr
}

// Tooltip and popover activation only covers elements present at bootstrap;
// elements inserted later are not picked up. That matches the page script
// this replaces.
func setupTooltips(_ context.Context, env *Env, _ map[string]any) error {
	for _, el := range env.Document.Select(TooltipSelector) {
		el.AddClass(tooltipEnabledClass)
		env.App.Tooltips = append(env.App.Tooltips, el)
	}
	return nil
}

func setupPopovers(_ context.Context, env *Env, _ map[string]any) error {
	for _, el := range env.Document.Select(PopoverSelector) {
		el.AddClass(popoverEnabledClass)
		env.App.Popovers = append(env.App.Popovers, el)
	}
	return nil
}

func setupAlertDismiss(_ context.Context, env *Env, cfg map[string]any) error {
	dismiss := time.Duration(intValue(cfg["dismiss_after_ms"], defaultAlertDismissMS)) * time.Millisecond
	fade := time.Duration(intValue(cfg["fade_ms"], defaultAlertFadeMS)) * time.Millisecond
	for _, el := range env.Document.Select("." + AlertClass) {
		if el.HasClass(AlertPermanentClass) || el.HasClass("toast") {
			continue
		}
		alert := el
		env.Loop.PostDelayed(dismiss, func() {
			alert.AddClass(fadeClass)
			env.Loop.PostDelayed(fade, func() { alert.Remove() })
		})
	}
	return nil
}

func setupConfirmDelete(_ context.Context, env *Env, cfg map[string]any) error {
	fallback := stringValue(cfg["message"], env.Strings.ConfirmDelete.For(env.Locale, "Are you sure you want to delete this item?"))
	env.Dispatcher.Bind(EventClick, "."+ConfirmDeleteClass, func(_ context.Context, ev *Event) {
		message := ev.CurrentTarget.Data("confirmMessage")
		if message == "" {
			message = fallback
		}
		if !env.Prompter.Confirm(message) {
			ev.PreventDefault()
		}
	})
	return nil
}

func setupDataTables(_ context.Context, env *Env, cfg map[string]any) error {
	pageLength := intValue(cfg["page_size"], defaultTablePageSize)
	responsive := boolValue(cfg["responsive"], true)
	language := DataTableLanguage{
		Search:     env.Strings.DataTable.Search.For(env.Locale, "Search:"),
		LengthMenu: env.Strings.DataTable.LengthMenu.For(env.Locale, "Show _MENU_ entries"),
		Info:       env.Strings.DataTable.Info.For(env.Locale, "Showing _START_ to _END_ of _TOTAL_ entries"),
		InfoEmpty:  env.Strings.DataTable.InfoEmpty.For(env.Locale, "No entries to show"),
		First:      env.Strings.DataTable.First.For(env.Locale, "First"),
		Last:       env.Strings.DataTable.Last.For(env.Locale, "Last"),
		Next:       env.Strings.DataTable.Next.For(env.Locale, "Next"),
		Previous:   env.Strings.DataTable.Previous.For(env.Locale, "Previous"),
	}
	for _, el := range env.Document.Select("." + DataTableClass) {
		el.AddClass(datatableReadyClass)
		env.App.DataTables = append(env.App.DataTables, &DataTableWidget{
			Element:    el,
			PageLength: pageLength,
			Responsive: responsive,
			Language:   language,
		})
	}
	return nil
}

func setupFormValidation(_ context.Context, env *Env, _ map[string]any) error {
	env.Dispatcher.Bind(EventSubmit, "."+NeedsValidationClass, func(_ context.Context, ev *Event) {
		form := ev.CurrentTarget
		if !formValid(form) {
			ev.PreventDefault()
			form.AddClass(WasValidatedClass)
		}
	})
	return nil
}

func setupClipboardCopy(_ context.Context, env *Env, _ map[string]any) error {
	copied := env.Strings.Copied.For(env.Locale, "Copied to clipboard!")
	env.Dispatcher.Bind(EventClick, "."+CopyToClipboardClass, func(ctx context.Context, ev *Event) {
		text := ev.CurrentTarget.Data("text")
		env.Loop.Async(func() func() {
			// A rejected write is dropped; only fulfillment confirms.
			if err := env.Clipboard.WriteText(ctx, text); err != nil {
				return nil
			}
			return func() { env.Prompter.Alert(copied) }
		})
	})
	return nil
}

func setupPasswordToggle(_ context.Context, env *Env, _ map[string]any) error {
	env.Dispatcher.Bind(EventClick, "."+PasswordToggleClass, func(_ context.Context, ev *Event) {
		toggle := ev.CurrentTarget
		input := adjacentInput(toggle)
		if input == nil {
			return
		}
		if input.Attr("type") == "password" {
			input.SetAttr("type", "text")
		} else {
			input.SetAttr("type", "password")
		}
		if icon := toggle.First("." + iconEyeClass); icon != nil {
			icon.RemoveClass(iconEyeClass)
			icon.AddClass(iconEyeSlashClass)
		} else if icon := toggle.First("." + iconEyeSlashClass); icon != nil {
			icon.RemoveClass(iconEyeSlashClass)
			icon.AddClass(iconEyeClass)
		}
	})
	return nil
}

func setupDatePickers(_ context.Context, env *Env, cfg map[string]any) error {
	dateFormat := stringValue(cfg["format"], "yyyy-mm-dd")
	autoClose := boolValue(cfg["autoclose"], true)
	for _, el := range env.Document.Select("." + DatePickerClass) {
		el.AddClass(datepickerReadyClass)
		env.App.DatePickers = append(env.App.DatePickers, &DatePickerWidget{
			Element:   el,
			Format:    dateFormat,
			AutoClose: autoClose,
		})
	}
	return nil
}

func setupSelects(_ context.Context, env *Env, cfg map[string]any) error {
	theme := stringValue(cfg["theme"], "bootstrap4")
	width := stringValue(cfg["width"], "100%")
	for _, el := range env.Document.Select("." + SelectClass) {
		el.AddClass(selectReadyClass)
		env.App.Selects = append(env.App.Selects, &SelectWidget{
			Element: el,
			Theme:   theme,
			Width:   width,
		})
	}
	return nil
}

// Currency fields are reformatted on every keystroke, which can move the
// caret and fight mid-typing decimal entry. Known UX defect in the page
// script this replaces; kept pending a product decision.
func setupCurrencyInputs(_ context.Context, env *Env, _ map[string]any) error {
	env.Dispatcher.Bind(EventInput, "."+CurrencyInputClass, func(_ context.Context, ev *Event) {
		raw := ev.Value
		if raw == "" {
			raw = ev.CurrentTarget.Attr("value")
		}
		ev.CurrentTarget.SetAttr("value", format.CleanAmount(raw))
	})
	return nil
}

func formValid(form *dom.Element) bool {
	for _, field := range form.Children() {
		if !fieldTreeValid(field) {
			return false
		}
	}
	return true
}

func fieldTreeValid(el *dom.Element) bool {
	if el.Attr("required") != "" && el.Attr("value") == "" {
		return false
	}
	for _, child := range el.Children() {
		if !fieldTreeValid(child) {
			return false
		}
	}
	return true
}

func adjacentInput(el *dom.Element) *dom.Element {
	if prev := el.PrevSibling(); prev != nil && prev.Tag == "input" {
		return prev
	}
	if next := el.NextSibling(); next != nil && next.Tag == "input" {
		return next
	}
	return nil
}

func intValue(raw any, fallback int) int {
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

func stringValue(raw any, fallback string) string {
	if v, ok := raw.(string); ok && v != "" {
		return v
	}
	return fallback
}

func boolValue(raw any, fallback bool) bool {
	if v, ok := raw.(bool); ok {
		return v
	}
	return fallback
}
