package domain

const unknownDescription = "Unknown"

// ExportTemplate names a text layout for exported annotations.
type ExportTemplate string

// Available export templates.
const (
	// ExportPlain is "N) Annotated Text:" followed by the text.
	ExportPlain ExportTemplate = "plain"

	// ExportPlainPage is ExportPlain with the page number in the heading.
	ExportPlainPage ExportTemplate = "plain-page"

	// ExportQuoted is the text in double quotes.
	ExportQuoted ExportTemplate = "quoted"

	// ExportQuotedPage is ExportQuoted prefixed with the page number.
	ExportQuotedPage ExportTemplate = "quoted-page"

	// ExportEllipsis is the quoted text wrapped in ellipses.
	ExportEllipsis ExportTemplate = "ellipsis"

	// ExportEllipsisPage is ExportEllipsis prefixed with the page number.
	ExportEllipsisPage ExportTemplate = "ellipsis-page"
)

// ExportTemplates lists every template in chooser order.
func ExportTemplates() []ExportTemplate {
	return []ExportTemplate{
		ExportPlain, ExportPlainPage,
		ExportQuoted, ExportQuotedPage,
		ExportEllipsis, ExportEllipsisPage,
	}
}

// IsValid returns true if the template is recognised.
func (t ExportTemplate) IsValid() bool {
	switch t {
	case ExportPlain, ExportPlainPage, ExportQuoted, ExportQuotedPage, ExportEllipsis, ExportEllipsisPage:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t ExportTemplate) String() string {
	return string(t)
}

// Description returns a human-readable description of the template.
func (t ExportTemplate) Description() string {
	switch t {
	case ExportPlain:
		return "Plain text"
	case ExportPlainPage:
		return "Plain text with page numbers"
	case ExportQuoted:
		return "Quoted"
	case ExportQuotedPage:
		return "Quoted with page numbers"
	case ExportEllipsis:
		return "Quoted excerpt (...text...)"
	case ExportEllipsisPage:
		return "Quoted excerpt with page numbers"
	default:
		return unknownDescription
	}
}

// RenderSettings controls page rasterisation.
type RenderSettings struct {
	// MaxScale caps the fit-to-width scale.
	MaxScale float64

	// ContainerWidth is the viewport width pages are fitted to, in pixels.
	ContainerWidth float64

	// Concurrency bounds parallel page rasterisation.
	Concurrency int
}

// LayoutSettings controls the page container.
type LayoutSettings struct {
	// DebounceMillis is the resize debounce window.
	DebounceMillis int

	// PageGap is the vertical gap between pages in pixels.
	PageGap float64
}

// StorageSettings controls local persistence.
type StorageSettings struct {
	// QuotaBytes caps the total stored bytes. Zero means unlimited.
	QuotaBytes int64

	// ChunkSize is the maximum size of one stored PDF chunk.
	ChunkSize int
}

// ExportSettings controls annotation export.
type ExportSettings struct {
	// DefaultTemplate is used when the caller does not choose.
	DefaultTemplate ExportTemplate
}

// HighlightSettings controls highlight colours.
type HighlightSettings struct {
	// Color is the resting highlight colour as a hex string.
	Color string

	// PulseColor is the jump-to pulse colour as a hex string.
	PulseColor string

	// PulseMillis is how long the pulse takes to fade.
	PulseMillis int
}

// IsoSettings controls the isometric image utility.
type IsoSettings struct {
	// Scales are the width factors generated for each direction.
	Scales []float64
}

// AppSettings holds all application settings.
type AppSettings struct {
	Render    RenderSettings
	Layout    LayoutSettings
	Storage   StorageSettings
	Export    ExportSettings
	Highlight HighlightSettings
	Iso       IsoSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The render scale caps at 1.5 and the container fits a US Letter page at that scale.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Render: RenderSettings{
			MaxScale:       1.5,
			ContainerWidth: 918,
			Concurrency:    4,
		},
		Layout: LayoutSettings{
			DebounceMillis: 250,
			PageGap:        16,
		},
		Storage: StorageSettings{
			QuotaBytes: 5 << 20,
			ChunkSize:  512 << 10,
		},
		Export: ExportSettings{
			DefaultTemplate: ExportPlain,
		},
		Highlight: HighlightSettings{
			Color:       "#FDE68A",
			PulseColor:  "#F59E0B",
			PulseMillis: 1200,
		},
		Iso: IsoSettings{
			Scales: []float64{0.25, 0.5, 0.75, 1.0},
		},
	}
}
