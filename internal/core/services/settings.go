package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyRenderMaxScale       = "render.max_scale"
	keyRenderContainerWidth = "render.container_width"
	keyRenderConcurrency    = "render.concurrency"
	keyLayoutDebounceMS     = "layout.debounce_ms"
	keyLayoutPageGap        = "layout.page_gap"
	keyStorageQuotaBytes    = "storage.quota_bytes"
	keyStorageChunkSize     = "storage.chunk_size"
	keyExportTemplate       = "export.default_template"
	keyHighlightColor       = "highlight.color"
	keyHighlightPulseColor  = "highlight.pulse_color"
	keyHighlightPulseMS     = "highlight.pulse_ms"
	keyIsoScales            = "iso.scales"
)

type settingKind int

const (
	kindFloat settingKind = iota
	kindInt
	kindString
	kindTemplate
	kindColor
	kindFloatList
)

var settingKinds = map[string]settingKind{
	keyRenderMaxScale:       kindFloat,
	keyRenderContainerWidth: kindFloat,
	keyRenderConcurrency:    kindInt,
	keyLayoutDebounceMS:     kindInt,
	keyLayoutPageGap:        kindFloat,
	keyStorageQuotaBytes:    kindInt,
	keyStorageChunkSize:     kindInt,
	keyExportTemplate:       kindTemplate,
	keyHighlightColor:       kindColor,
	keyHighlightPulseColor:  kindColor,
	keyHighlightPulseMS:     kindInt,
	keyIsoScales:            kindFloatList,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Render: domain.RenderSettings{
			MaxScale:       s.getFloat(keyRenderMaxScale, defaults.Render.MaxScale),
			ContainerWidth: s.getFloat(keyRenderContainerWidth, defaults.Render.ContainerWidth),
			Concurrency:    s.getInt(keyRenderConcurrency, defaults.Render.Concurrency),
		},
		Layout: domain.LayoutSettings{
			DebounceMillis: s.getInt(keyLayoutDebounceMS, defaults.Layout.DebounceMillis),
			PageGap:        s.getFloat(keyLayoutPageGap, defaults.Layout.PageGap),
		},
		Storage: domain.StorageSettings{
			QuotaBytes: int64(s.getInt(keyStorageQuotaBytes, int(defaults.Storage.QuotaBytes))),
			ChunkSize:  s.getInt(keyStorageChunkSize, defaults.Storage.ChunkSize),
		},
		Export: domain.ExportSettings{
			DefaultTemplate: s.getTemplate(defaults.Export.DefaultTemplate),
		},
		Highlight: domain.HighlightSettings{
			Color:       s.getColor(keyHighlightColor, defaults.Highlight.Color),
			PulseColor:  s.getColor(keyHighlightPulseColor, defaults.Highlight.PulseColor),
			PulseMillis: s.getInt(keyHighlightPulseMS, defaults.Highlight.PulseMillis),
		},
		Iso: domain.IsoSettings{
			Scales: s.getFloatList(keyIsoScales, defaults.Iso.Scales),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyRenderMaxScale, settings.Render.MaxScale},
		{keyRenderContainerWidth, settings.Render.ContainerWidth},
		{keyRenderConcurrency, settings.Render.Concurrency},
		{keyLayoutDebounceMS, settings.Layout.DebounceMillis},
		{keyLayoutPageGap, settings.Layout.PageGap},
		{keyStorageQuotaBytes, settings.Storage.QuotaBytes},
		{keyStorageChunkSize, settings.Storage.ChunkSize},
		{keyExportTemplate, settings.Export.DefaultTemplate.String()},
		{keyHighlightColor, settings.Highlight.Color},
		{keyHighlightPulseColor, settings.Highlight.PulseColor},
		{keyHighlightPulseMS, settings.Highlight.PulseMillis},
		{keyIsoScales, settings.Iso.Scales},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set updates one setting by key, parsing value for the key's type.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	var parsed any
	switch kind {
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%s must be a positive number: %w", key, domain.ErrInvalidInput)
		}
		parsed = f
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer: %w", key, domain.ErrInvalidInput)
		}
		parsed = n
	case kindTemplate:
		if !domain.ExportTemplate(value).IsValid() {
			return fmt.Errorf("%s: %q: %w", key, value, domain.ErrUnknownTemplate)
		}
		parsed = value
	case kindColor:
		if _, err := ParseColor(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		parsed = value
	case kindFloatList:
		scales, err := parseFloatList(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		parsed = scales
	default:
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the recognised config keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getColor(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if _, err := ParseColor(val); err != nil {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getTemplate(defaultVal domain.ExportTemplate) domain.ExportTemplate {
	tmpl := domain.ExportTemplate(s.configStore.GetString(keyExportTemplate))
	if !tmpl.IsValid() {
		return defaultVal
	}
	return tmpl
}

func (s *SettingsService) getFloatList(key string, defaultVal []float64) []float64 {
	raw, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	items, ok := raw.([]any)
	if !ok {
		if floats, isFloats := raw.([]float64); isFloats && len(floats) > 0 {
			return floats
		}
		return defaultVal
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case float64:
			out = append(out, v)
		case int64:
			out = append(out, float64(v))
		case int:
			out = append(out, float64(v))
		default:
			return defaultVal
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

func parseFloatList(value string) ([]float64, error) {
	parts := strings.Split(value, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("%q is not a positive number: %w", p, domain.ErrInvalidInput)
		}
		out = append(out, f)
	}
	return out, nil
}
