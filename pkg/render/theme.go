package render

import (
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// StylesheetAsset is the asset key renderers use for the page stylesheet.
const StylesheetAsset = "stylesheet"

// ThemeConfig is a manifest resolved against a variant: merged tokens, the
// CSS custom properties derived from them, and asset URLs.
type ThemeConfig struct {
	Theme   string
	Variant string
	Tokens  map[string]string
	CSSVars map[string]string

	assetPrefix string
	assets      map[string]string
}

// CSSVar is a single custom property declaration.
type CSSVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ThemeView is the template-facing form of a ThemeConfig.
type ThemeView struct {
	Name       string   `json:"name"`
	Variant    string   `json:"variant,omitempty"`
	CSSVars    []CSSVar `json:"cssVars,omitempty"`
	Stylesheet string   `json:"stylesheet,omitempty"`
}

// DefaultManifest is the built-in theme used when no manifest is configured.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "orderform",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":   "#b3261e",
			"surface": "#fffaf3",
			"text":    "#1f1b16",
			"error":   "#c62828",
			"success": "#2e7d32",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				StylesheetAsset: "orderform.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface": "#1f1b16",
					"text":    "#fffaf3",
				},
			},
		},
	}
}

// ResolveTheme registers the manifest (rejecting invalid ones) and merges the
// requested variant over the base tokens and assets. An empty variant selects
// the base manifest.
func ResolveTheme(manifest *theme.Manifest, variant string) (*ThemeConfig, error) {
	if manifest == nil {
		manifest = DefaultManifest()
	}

	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
	}

	cfg := &ThemeConfig{
		Theme:       manifest.Name,
		Variant:     strings.TrimSpace(variant),
		Tokens:      make(map[string]string, len(manifest.Tokens)),
		CSSVars:     make(map[string]string, len(manifest.Tokens)),
		assetPrefix: manifest.Assets.Prefix,
		assets:      make(map[string]string, len(manifest.Assets.Files)),
	}
	for k, v := range manifest.Tokens {
		cfg.Tokens[k] = v
	}
	for k, v := range manifest.Assets.Files {
		cfg.assets[k] = v
	}

	if cfg.Variant != "" {
		v, ok := manifest.Variants[cfg.Variant]
		if !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", manifest.Name, cfg.Variant)
		}
		for k, val := range v.Tokens {
			cfg.Tokens[k] = val
		}
		if v.Assets.Prefix != "" {
			cfg.assetPrefix = v.Assets.Prefix
		}
		for k, val := range v.Assets.Files {
			cfg.assets[k] = val
		}
	}

	for k, v := range cfg.Tokens {
		cfg.CSSVars["--"+k] = v
	}
	return cfg, nil
}

// AssetURL resolves an asset key to a URL, or "" when the key is unknown.
func (c *ThemeConfig) AssetURL(key string) string {
	if c == nil {
		return ""
	}
	file, ok := c.assets[key]
	if !ok || file == "" {
		return ""
	}
	if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
		return file
	}
	prefix := c.assetPrefix
	if prefix == "" {
		prefix = "/"
	}
	if strings.Contains(prefix, "://") {
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
	return path.Join(prefix, file)
}

// RebaseAssets returns a copy whose root-relative asset prefix is replaced
// with prefix, for callers serving theme assets under a mount point.
// Prefixes naming another host or scheme are kept.
func (c *ThemeConfig) RebaseAssets(prefix string) *ThemeConfig {
	if c == nil {
		return nil
	}
	out := *c
	out.assets = make(map[string]string, len(c.assets))
	for k, v := range c.assets {
		out.assets[k] = v
	}
	if c.assetPrefix == "" || (strings.HasPrefix(c.assetPrefix, "/") && !strings.HasPrefix(c.assetPrefix, "//")) {
		out.assetPrefix = prefix
	}
	return &out
}

// View converts the config into its template-facing form with CSS variables
// sorted by name.
func (c *ThemeConfig) View() *ThemeView {
	if c == nil {
		return nil
	}
	vars := make([]CSSVar, 0, len(c.CSSVars))
	for name, value := range c.CSSVars {
		vars = append(vars, CSSVar{Name: name, Value: value})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return &ThemeView{
		Name:       c.Theme,
		Variant:    c.Variant,
		CSSVars:    vars,
		Stylesheet: c.AssetURL(StylesheetAsset),
	}
}
