// Package score assigns a content-quality score to markup fragments.
// The scorer is a pure function over its input and a weight table, so
// identical input always yields identical scores.
package score

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// WeightsVersion is the current weight table schema version.
const WeightsVersion = 1

// Weights is the tuning table for the scorer. The numbers are
// empirically tuned rather than derived; they are versioned and
// loadable from YAML so alternative tables can coexist in one process.
type Weights struct {
	Version int `yaml:"version" json:"version" validate:"gte=1"`

	// Structural tag bonuses, applied once per tag family present.
	// Headings outweigh paragraphs, paragraphs outweigh emphasis.
	Paragraph int `yaml:"paragraph" json:"paragraph" validate:"gte=0"`
	Heading   int `yaml:"heading" json:"heading" validate:"gte=0"`
	List      int `yaml:"list" json:"list" validate:"gte=0"`
	Quote     int `yaml:"quote" json:"quote" validate:"gte=0"`
	Emphasis  int `yaml:"emphasis" json:"emphasis" validate:"gte=0"`

	// ScriptBonus is added once per non-Latin script family found
	// (CJK, Cyrillic, Hebrew, Arabic). Latin-centric length heuristics
	// undercount the information density of those scripts.
	ScriptBonus int `yaml:"script_bonus" json:"script_bonus" validate:"gte=0"`

	// SentenceBonus is added once when the fragment contains at least
	// MinSentences sentence terminators (。！？.!?).
	SentenceBonus int `yaml:"sentence_bonus" json:"sentence_bonus" validate:"gte=0"`
	MinSentences  int `yaml:"min_sentences" json:"min_sentences" validate:"gte=1"`

	// NoisePenalty is subtracted per noise vocabulary hit.
	NoisePenalty int      `yaml:"noise_penalty" json:"noise_penalty" validate:"gte=0"`
	NoiseWords   []string `yaml:"noise_words" json:"noise_words"`
}

// DefaultWeights returns the stock table.
func DefaultWeights() *Weights {
	return &Weights{
		Version:       WeightsVersion,
		Paragraph:     500,
		Heading:       700,
		List:          200,
		Quote:         200,
		Emphasis:      100,
		ScriptBonus:   300,
		SentenceBonus: 250,
		MinSentences:  3,
		NoisePenalty:  150,
		NoiseWords: []string{
			"advertisement",
			"sponsored",
			"navigation",
			"cookie policy",
			"subscribe to our newsletter",
			"copyright",
			"all rights reserved",
			"footer",
		},
	}
}

var validate = validator.New()

// Validate checks the table for impossible values.
func (w *Weights) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	return nil
}

// ParseWeights reads a YAML weight table. Fields left out keep the
// default value, so partial tables tune single weights.
func ParseWeights(data []byte) (*Weights, error) {
	w := DefaultWeights()
	if err := yaml.Unmarshal(data, w); err != nil {
		return nil, fmt.Errorf("weights: parse: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// LoadWeights reads a YAML weight table from a file.
func LoadWeights(path string) (*Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("weights: read %s: %w", path, err)
	}
	return ParseWeights(data)
}
