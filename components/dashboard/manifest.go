package dashboard

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version.
	ManifestVersion = manifestVersionV1
)

// ManifestDocument is a YAML manifest enumerating which UI integrations a
// page enables and how each is configured. This replaces the original
// script's habit of feature-detecting libraries at runtime: what runs is
// exactly what the manifest says.
type ManifestDocument struct {
	Version      string                `yaml:"version"`
	Name         string                `yaml:"name,omitempty"`
	Locale       string                `yaml:"locale,omitempty"`
	Integrations []ManifestIntegration `yaml:"integrations"`
	Source       string                `yaml:"-"`
}

// ManifestIntegration enables one integration. Enabled defaults to true so
// listing a code is enough to turn it on.
type ManifestIntegration struct {
	Code    string         `yaml:"code"`
	Enabled *bool          `yaml:"enabled,omitempty"`
	Config  map[string]any `yaml:"config,omitempty"`
}

// On reports whether the entry is enabled.
func (m ManifestIntegration) On() bool {
	return m.Enabled == nil || *m.Enabled
}

// ReadManifest loads a manifest file from disk.
func ReadManifest(path string) (*ManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest parses a manifest document from a reader.
func DecodeManifest(r io.Reader) (*ManifestDocument, error) {
	var doc ManifestDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Version == "" {
		doc.Version = ManifestVersion
	}
	if doc.Version != manifestVersionV1 {
		return nil, fmt.Errorf("unsupported manifest version %q", doc.Version)
	}
	for i, integration := range doc.Integrations {
		if integration.Code == "" {
			return nil, fmt.Errorf("integration %d is missing a code", i)
		}
	}
	return &doc, nil
}

// DefaultManifest enables every built-in integration with its defaults.
func DefaultManifest() *ManifestDocument {
	doc := &ManifestDocument{Version: ManifestVersion, Name: "pesaflow-defaults"}
	for _, def := range DefaultIntegrationDefinitions() {
		doc.Integrations = append(doc.Integrations, ManifestIntegration{Code: def.Code})
	}
	return doc
}
