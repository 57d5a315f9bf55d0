package nomenclature

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"exmuzzy/pdf-spec/internal/fileutils"

	"github.com/cloudflare/ahocorasick"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PE100Density is the density of PE100 polyethylene in g/cm3.
const PE100Density = 0.96

// Rules decide which rows are kept and how pipe mass is computed.
type Rules struct {
	PipeKeywords    []string `yaml:"pipe_keywords"`
	FittingKeywords []string `yaml:"fitting_keywords"`
	// Density of the pipe material in g/cm3.
	Density float64 `yaml:"density"`
}

// DefaultRules keeps pipes, casings and the four listed fittings of PE100 pipe.
func DefaultRules() Rules {
	return Rules{
		PipeKeywords:    []string{"труба", "футляр"},
		FittingKeywords: []string{"муфта", "отвод", "втулка", "фланец"},
		Density:         PE100Density,
	}
}

// LoadRules reads rules from a YAML file. Keys missing from the file keep their defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	if !fileutils.FileExists(path) {
		return rules, fmt.Errorf("rules file not found: %s", path)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return rules, fmt.Errorf("error reading rules file: %w", err)
	}

	var fromFile Rules
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return rules, fmt.Errorf("error parsing rules file %s: %w", path, err)
	}

	if len(fromFile.PipeKeywords) > 0 {
		rules.PipeKeywords = fromFile.PipeKeywords
	}
	if len(fromFile.FittingKeywords) > 0 {
		rules.FittingKeywords = fromFile.FittingKeywords
	}
	if fromFile.Density != 0 {
		if fromFile.Density < 0 {
			return rules, fmt.Errorf("density must be positive, got %v", fromFile.Density)
		}
		rules.Density = fromFile.Density
	}

	return rules, nil
}

// Classifier matches nomenclatures against the keyword sets of a Rules value.
// Keywords are compiled once into Aho-Corasick automata and matched case-insensitively.
type Classifier struct {
	density  float64
	pipes    *ahocorasick.Matcher
	fittings *ahocorasick.Matcher
}

// Classifier compiles r. Later changes to r do not affect the result.
func (r Rules) Classifier() *Classifier {
	return &Classifier{
		density:  r.Density,
		pipes:    newMatcher(r.PipeKeywords),
		fittings: newMatcher(r.FittingKeywords),
	}
}

// IsPipe reports whether the nomenclature names a pipe or a casing.
func (c *Classifier) IsPipe(nomenclature string) bool {
	return matches(c.pipes, strings.ToLower(nomenclature))
}

// IsPipeOrFitting reports whether the row belongs in the output.
func (c *Classifier) IsPipeOrFitting(nomenclature string) bool {
	lower := strings.ToLower(nomenclature)
	return matches(c.pipes, lower) || matches(c.fittings, lower)
}

// PipeMass returns the mass of one metre of pipe for the nomenclature,
// or an invalid NullDecimal when it is not a pipe or has no D x e parameters.
func (c *Classifier) PipeMass(nomenclature string) decimal.NullDecimal {
	if !c.IsPipe(nomenclature) {
		return decimal.NullDecimal{}
	}
	diameter, wall, ok := PipeParameters(nomenclature)
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(MassPerMeter(diameter, wall, c.density))
}

func newMatcher(keywords []string) *ahocorasick.Matcher {
	var patterns [][]byte
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			patterns = append(patterns, []byte(kw))
		}
	}
	if len(patterns) == 0 {
		return nil
	}
	return ahocorasick.NewMatcher(patterns)
}

func matches(m *ahocorasick.Matcher, lower string) bool {
	return m != nil && len(m.Match([]byte(lower))) > 0
}

var (
	// "SDR17 - 160 х9,50"
	dimensionPattern = regexp.MustCompile(`(\d+)\s*[хx×]\s*(\d+[,.]?\d*)`)
	// "∅160х23,7"
	diameterSignPattern = regexp.MustCompile(`[∅Ø](\d+)[хx×](\d+[,.]?\d*)`)
)

// PipeParameters extracts the outer diameter and wall thickness in mm from a nomenclature.
// Both Latin x, Cyrillic х and × are accepted as separator, and comma as decimal mark.
func PipeParameters(nomenclature string) (diameter, wall float64, ok bool) {
	m := dimensionPattern.FindStringSubmatch(nomenclature)
	if m == nil {
		m = diameterSignPattern.FindStringSubmatch(nomenclature)
	}
	if m == nil {
		return 0, 0, false
	}

	d, err := decimal.NewFromString(m[1])
	if err != nil {
		return 0, 0, false
	}
	e, err := decimal.NewFromString(normalizeDecimal(m[2]))
	if err != nil {
		return 0, 0, false
	}
	return d.InexactFloat64(), e.InexactFloat64(), true
}

// MassPerMeter computes GOST 18599-2001 pipe mass in kg/m:
// m = π · (D − e) · e · ρ / 1000, rounded to two decimals.
func MassPerMeter(diameter, wall, density float64) decimal.Decimal {
	mass := math.Pi * (diameter - wall) * wall * density / 1000
	return decimal.NewFromFloat(mass).Round(2)
}

var quantityPattern = regexp.MustCompile(`(\d+[.,]?\d*)`)

// ParseQuantity reads the first number of a quantity cell such as "12,5 м" or "1 200".
func ParseQuantity(raw string) decimal.NullDecimal {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return decimal.NullDecimal{}
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "\u00a0", "")

	m := quantityPattern.FindString(cleaned)
	if m == "" {
		return decimal.NullDecimal{}
	}
	q, err := decimal.NewFromString(normalizeDecimal(m))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(q)
}

func normalizeDecimal(s string) string {
	s = strings.ReplaceAll(s, ",", ".")
	return strings.TrimSuffix(s, ".")
}
