package dashboard

// Built-in integration codes.
const (
	IntegrationTooltip        = "ui.tooltip"
	IntegrationPopover        = "ui.popover"
	IntegrationAlertDismiss   = "ui.alert_dismiss"
	IntegrationConfirmDelete  = "ui.confirm_delete"
	IntegrationDataTable      = "ui.datatable"
	IntegrationFormValidation = "ui.form_validation"
	IntegrationClipboardCopy  = "ui.clipboard_copy"
	IntegrationPasswordToggle = "ui.password_toggle"
	IntegrationDatePicker     = "ui.datepicker"
	IntegrationSelect         = "ui.select2"
	IntegrationCurrencyInput  = "ui.currency_input"
)

var defaultIntegrationDefinitions = []IntegrationDefinition{
	{
		Code:        IntegrationTooltip,
		Name:        "Tooltips",
		Description: "Activates tooltip affordances on marked elements present at bootstrap.",
		Schema:      map[string]any{"type": "object", "properties": map[string]any{}},
	},
	{
		Code:        IntegrationPopover,
		Name:        "Popovers",
		Description: "Activates popover affordances on marked elements present at bootstrap.",
		Schema:      map[string]any{"type": "object", "properties": map[string]any{}},
	},
	{
		Code:        IntegrationAlertDismiss,
		Name:        "Alert Auto-Dismiss",
		Description: "Fades out non-permanent alert banners after a fixed delay.",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"dismiss_after_ms": map[string]any{"type": "integer", "minimum": 100, "default": 5000},
				"fade_ms":          map[string]any{"type": "integer", "minimum": 0, "default": 300},
			},
		},
	},
	{
		Code:        IntegrationConfirmDelete,
		Name:        "Delete Confirmation",
		Description: "Blocks delete actions behind a confirmation prompt.",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"message": map[string]any{"type": "string"},
			},
		},
	},
	{
		Code:        IntegrationDataTable,
		Name:        "Data Tables",
		Description: "Initializes the data-table widget with pagination and localized labels.",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"page_size":  map[string]any{"type": "integer", "minimum": 1, "maximum": 200, "default": 25},
				"responsive": map[string]any{"type": "boolean", "default": true},
			},
		},
	},
	{
		Code:        IntegrationFormValidation,
		Name:        "Form Validation",
		Description: "Cancels submission of invalid validation-marked forms and surfaces feedback.",
		Schema:      map[string]any{"type": "object", "properties": map[string]any{}},
	},
	{
		Code:        IntegrationClipboardCopy,
		Name:        "Copy to Clipboard",
		Description: "Copies a data-attribute-sourced string on click and confirms on fulfillment.",
		Schema:      map[string]any{"type": "object", "properties": map[string]any{}},
	},
	{
		Code:        IntegrationPasswordToggle,
		Name:        "Password Visibility Toggle",
		Description: "Flips adjacent password inputs between masked and plain text.",
		Schema:      map[string]any{"type": "object", "properties": map[string]any{}},
	},
	{
		Code:        IntegrationDatePicker,
		Name:        "Date Pickers",
		Description: "Initializes date-picker widgets with a fixed format.",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"format":    map[string]any{"type": "string", "default": "yyyy-mm-dd"},
				"autoclose": map[string]any{"type": "boolean", "default": true},
			},
		},
	},
	{
		Code:        IntegrationSelect,
		Name:        "Searchable Selects",
		Description: "Initializes searchable select widgets with fixed theme and width.",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"theme": map[string]any{"type": "string", "default": "bootstrap4"},
				"width": map[string]any{"type": "string", "default": "100%"},
			},
		},
	},
	{
		Code:        IntegrationCurrencyInput,
		Name:        "Currency Inputs",
		Description: "Reformats currency fields as grouped two-decimal amounts on input.",
		Schema:      map[string]any{"type": "object", "properties": map[string]any{}},
	},
}

var defaultSetups = map[string]SetupFunc{
	IntegrationTooltip:        setupTooltips,
	IntegrationPopover:        setupPopovers,
	IntegrationAlertDismiss:   setupAlertDismiss,
	IntegrationConfirmDelete:  setupConfirmDelete,
	IntegrationDataTable:      setupDataTables,
	IntegrationFormValidation: setupFormValidation,
	IntegrationClipboardCopy:  setupClipboardCopy,
	IntegrationPasswordToggle: setupPasswordToggle,
	IntegrationDatePicker:     setupDatePickers,
	IntegrationSelect:         setupSelects,
	IntegrationCurrencyInput:  setupCurrencyInputs,
}

// DefaultIntegrationDefinitions returns the built-in integrations.
func DefaultIntegrationDefinitions() []IntegrationDefinition {
	defs := make([]IntegrationDefinition, len(defaultIntegrationDefinitions))
	copy(defs, defaultIntegrationDefinitions)
	return defs
}

// DefaultStrings returns the UI strings in English with Swahili
// translations where the product ships them.
func DefaultStrings() UIStrings {
	return UIStrings{
		ToastPaymentReceived: LocalizedString{
			"default": "Payment Received",
			"sw":      "Malipo Yamepokelewa",
		},
		ToastPaymentFailed: LocalizedString{
			"default": "Payment Failed",
			"sw":      "Malipo Yameshindikana",
		},
		ToastNewNotification: LocalizedString{
			"default": "New Notification",
			"sw":      "Arifa Mpya",
		},
		Copied: LocalizedString{
			"default": "Copied to clipboard!",
			"sw":      "Imenakiliwa!",
		},
		ConfirmDelete: LocalizedString{
			"default": "Are you sure you want to delete this item?",
			"sw":      "Una uhakika unataka kufuta kipengee hiki?",
		},
		LoadMore: LocalizedString{
			"default": "Load More",
			"sw":      "Pakia Zaidi",
		},
		Loading: LocalizedString{
			"default": "Loading...",
			"sw":      "Inapakia...",
		},
		LoadError: LocalizedString{
			"default": "Error loading content",
			"sw":      "Hitilafu wakati wa kupakia",
		},
		DataTable: DataTableStrings{
			Search:     LocalizedString{"default": "Search:", "sw": "Tafuta:"},
			LengthMenu: LocalizedString{"default": "Show _MENU_ entries", "sw": "Onyesha _MENU_ kati ya rekodi"},
			Info:       LocalizedString{"default": "Showing _START_ to _END_ of _TOTAL_ entries", "sw": "Inaonyesha _START_ hadi _END_ kati ya _TOTAL_"},
			InfoEmpty:  LocalizedString{"default": "No entries to show", "sw": "Hakuna rekodi"},
			First:      LocalizedString{"default": "First", "sw": "Mwanzo"},
			Last:       LocalizedString{"default": "Last", "sw": "Mwisho"},
			Next:       LocalizedString{"default": "Next", "sw": "Mbele"},
			Previous:   LocalizedString{"default": "Previous", "sw": "Nyuma"},
		},
	}
}
