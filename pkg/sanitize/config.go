// Package sanitize strips non-content markup from raw HTML before it
// reaches the tree builder. All phases work at the string level: on
// multi-megabyte inputs a full tree build before filtering would be
// wasted work.
package sanitize

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxBytes is the size guard threshold: inputs larger than this
// are truncated before any phase runs.
const DefaultMaxBytes = 5 << 20

// TruncationMarker is appended to truncated content. It is plain text
// so later phases cannot strip it.
const TruncationMarker = "\n[content truncated]"

// Config selects which cleanup phases run and how the ad filter and
// size guard behave.
type Config struct {
	// StripBlocks removes script/style/link/meta/head blocks and HTML
	// comments by smallest-enclosing-pair matching.
	StripBlocks bool `json:"strip_blocks" yaml:"strip_blocks"`

	// StripAds removes iframe/container elements whose attributes match
	// the deny token list (unless an allow token also matches).
	StripAds bool `json:"strip_ads" yaml:"strip_ads"`

	// StripInlineStyles removes style="" attributes. Class and id
	// attributes are kept; the scorer and selector patterns need them.
	StripInlineStyles bool `json:"strip_inline_styles" yaml:"strip_inline_styles"`

	// CollapseWhitespace collapses whitespace runs to one space and
	// removes whitespace directly between tags.
	CollapseWhitespace bool `json:"collapse_whitespace" yaml:"collapse_whitespace"`

	// AdDenyTokens mark an element as advertising when found in its
	// src/class/id attribute text.
	AdDenyTokens []string `json:"ad_deny_tokens" yaml:"ad_deny_tokens"`

	// AdAllowTokens override a deny match, keeping the element.
	AdAllowTokens []string `json:"ad_allow_tokens" yaml:"ad_allow_tokens"`

	// MaxBytes is the size guard threshold. Oversized input is cut to
	// 80% of this value plus a truncation marker; it is never rejected.
	MaxBytes int `json:"max_bytes" yaml:"max_bytes" validate:"gt=0"`
}

// DefaultConfig returns the configuration used by the extraction
// pipeline: every phase on, stock ad token lists, 5 MiB guard.
func DefaultConfig() *Config {
	return &Config{
		StripBlocks:        true,
		StripAds:           true,
		StripInlineStyles:  true,
		CollapseWhitespace: true,
		AdDenyTokens: []string{
			"adsbygoogle",
			"doubleclick",
			"googlesyndication",
			"google_ads",
			"ad-container",
			"ad-wrapper",
			"ad-slot",
			"ad-banner",
			"advert",
			"sponsored",
			"taboola",
			"outbrain",
		},
		AdAllowTokens: []string{
			"article",
			"content",
			"main",
		},
		MaxBytes: DefaultMaxBytes,
	}
}

// PresetMinimal only strips blocks and normalizes whitespace. Use it
// when maximum content preservation matters more than noise.
func PresetMinimal() *Config {
	return &Config{
		StripBlocks:        true,
		CollapseWhitespace: true,
		MaxBytes:           DefaultMaxBytes,
	}
}

// PresetAggressive runs every phase with a wider deny list and no
// allow overrides. Expect some collateral removal on pages that reuse
// advertising vocabulary for real content.
func PresetAggressive() *Config {
	cfg := DefaultConfig()
	cfg.AdAllowTokens = nil
	cfg.AdDenyTokens = append(cfg.AdDenyTokens,
		"promo",
		"banner",
		"popup",
		"newsletter",
		"paywall",
		"recommend",
	)
	return cfg
}

var validate = validator.New()

// Validate checks the configuration for impossible values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("sanitize config: %w", err)
	}
	return nil
}

// Merge overlays other onto c: boolean phases turn on if set in
// either, token lists append with deduplication, a positive MaxBytes
// in other wins.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}
	merged := *c
	if other.StripBlocks {
		merged.StripBlocks = true
	}
	if other.StripAds {
		merged.StripAds = true
	}
	if other.StripInlineStyles {
		merged.StripInlineStyles = true
	}
	if other.CollapseWhitespace {
		merged.CollapseWhitespace = true
	}
	if other.MaxBytes > 0 {
		merged.MaxBytes = other.MaxBytes
	}
	merged.AdDenyTokens = appendUnique(merged.AdDenyTokens, other.AdDenyTokens)
	merged.AdAllowTokens = appendUnique(merged.AdAllowTokens, other.AdAllowTokens)
	return &merged
}

func appendUnique(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		if !seen[s] {
			dst = append(dst, s)
			seen[s] = true
		}
	}
	return dst
}
