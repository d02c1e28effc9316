// Package lexicon holds the pattern tables used to classify exchanges and
// extract behavioral markers. Tables are plain data: the built-in set can be
// replaced or extended from a YAML file without touching analysis code.
package lexicon

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kohljary/driftwatch/internal/model"
)

// Lexicon is the uncompiled, serializable form of the pattern tables.
// Every pattern is an RE2 expression matched against lower-cased text.
type Lexicon struct {
	Contexts map[model.ContextCategory][]string `yaml:"contexts" json:"contexts"`
	Markers  Markers                            `yaml:"markers" json:"markers"`
}

// Markers holds the phrase families behind each behavioral marker.
type Markers struct {
	IThink      []string `yaml:"i_think" json:"i_think"`
	IFeel       []string `yaml:"i_feel" json:"i_feel"`
	INotice     []string `yaml:"i_notice" json:"i_notice"`
	Experience  []string `yaml:"experience" json:"experience"`
	Hedging     []string `yaml:"hedging" json:"hedging"`
	Certainty   []string `yaml:"certainty" json:"certainty"`
	Compassion  []string `yaml:"compassion" json:"compassion"`
	Witness     []string `yaml:"witness" json:"witness"`
	Nuance      []string `yaml:"nuance" json:"nuance"`
	Examples    []string `yaml:"examples" json:"examples"`
	Elaboration []string `yaml:"elaboration" json:"elaboration"`
}

// Pattern is a single compiled signal.
type Pattern struct {
	Source string
	re     *regexp.Regexp
}

// Count returns the number of non-overlapping matches in text.
func (p Pattern) Count(text string) int {
	return len(p.re.FindAllStringIndex(text, -1))
}

// Family is a group of patterns counted together.
type Family []Pattern

// Count sums the matches of every pattern in the family.
func (f Family) Count(text string) int {
	n := 0
	for _, p := range f {
		n += p.Count(text)
	}
	return n
}

// Any reports whether any pattern in the family matches.
func (f Family) Any(text string) bool {
	for _, p := range f {
		if p.re.MatchString(text) {
			return true
		}
	}
	return false
}

// CategorySignals is the signal family owned by one context category.
type CategorySignals struct {
	Context  model.ContextCategory
	Patterns Family
}

// Compiled is the ready-to-match form of a Lexicon. It is never mutated
// after Compile returns.
type Compiled struct {
	// Contexts is ordered like model.Categories.
	Contexts []CategorySignals

	IThink      Family
	IFeel       Family
	INotice     Family
	Experience  Family
	Hedging     Family
	Certainty   Family
	Compassion  Family
	Witness     Family
	Nuance      Family
	Examples    Family
	Elaboration Family
}

// Compile validates and compiles every pattern.
func (l Lexicon) Compile() (*Compiled, error) {
	c := &Compiled{}
	for ctx := range l.Contexts {
		if ctx == model.ContextUnknown || !ctx.Valid() {
			return nil, fmt.Errorf("lexicon: %q is not a classifiable context", ctx)
		}
	}
	for _, ctx := range model.Categories {
		fam, err := compileFamily(string(ctx), l.Contexts[ctx])
		if err != nil {
			return nil, err
		}
		c.Contexts = append(c.Contexts, CategorySignals{Context: ctx, Patterns: fam})
	}

	families := []struct {
		name string
		src  []string
		dst  *Family
	}{
		{"i_think", l.Markers.IThink, &c.IThink},
		{"i_feel", l.Markers.IFeel, &c.IFeel},
		{"i_notice", l.Markers.INotice, &c.INotice},
		{"experience", l.Markers.Experience, &c.Experience},
		{"hedging", l.Markers.Hedging, &c.Hedging},
		{"certainty", l.Markers.Certainty, &c.Certainty},
		{"compassion", l.Markers.Compassion, &c.Compassion},
		{"witness", l.Markers.Witness, &c.Witness},
		{"nuance", l.Markers.Nuance, &c.Nuance},
		{"examples", l.Markers.Examples, &c.Examples},
		{"elaboration", l.Markers.Elaboration, &c.Elaboration},
	}
	for _, f := range families {
		fam, err := compileFamily(f.name, f.src)
		if err != nil {
			return nil, err
		}
		*f.dst = fam
	}
	return c, nil
}

func compileFamily(name string, src []string) (Family, error) {
	fam := make(Family, 0, len(src))
	for _, s := range src {
		re, err := regexp.Compile(s)
		if err != nil {
			return nil, fmt.Errorf("lexicon: %s pattern %q: %w", name, s, err)
		}
		fam = append(fam, Pattern{Source: s, re: re})
	}
	return fam, nil
}

// Merge returns a copy of l where every non-empty table in o replaces the
// corresponding table of l.
func (l Lexicon) Merge(o Lexicon) Lexicon {
	out := Lexicon{Contexts: make(map[model.ContextCategory][]string, len(l.Contexts)), Markers: l.Markers}
	for k, v := range l.Contexts {
		out.Contexts[k] = v
	}
	for k, v := range o.Contexts {
		if len(v) > 0 {
			out.Contexts[k] = v
		}
	}
	pick := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	pick(&out.Markers.IThink, o.Markers.IThink)
	pick(&out.Markers.IFeel, o.Markers.IFeel)
	pick(&out.Markers.INotice, o.Markers.INotice)
	pick(&out.Markers.Experience, o.Markers.Experience)
	pick(&out.Markers.Hedging, o.Markers.Hedging)
	pick(&out.Markers.Certainty, o.Markers.Certainty)
	pick(&out.Markers.Compassion, o.Markers.Compassion)
	pick(&out.Markers.Witness, o.Markers.Witness)
	pick(&out.Markers.Nuance, o.Markers.Nuance)
	pick(&out.Markers.Examples, o.Markers.Examples)
	pick(&out.Markers.Elaboration, o.Markers.Elaboration)
	return out
}

// Parse decodes a YAML lexicon and overlays it on the built-in tables.
func Parse(data []byte) (Lexicon, error) {
	var over Lexicon
	if err := yaml.Unmarshal(data, &over); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon: %w", err)
	}
	return Default().Merge(over), nil
}

// Load reads a YAML lexicon override. An empty path yields Default().
func Load(path string) (Lexicon, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon: %w", err)
	}
	return Parse(data)
}

// LoadFile loads and compiles a lexicon override. An empty path yields Standard().
func LoadFile(path string) (*Compiled, error) {
	if path == "" {
		return Standard(), nil
	}
	l, err := Load(path)
	if err != nil {
		return nil, err
	}
	return l.Compile()
}

// Encode renders l as YAML.
func (l Lexicon) Encode() ([]byte, error) {
	return yaml.Marshal(l)
}

var standard = sync.OnceValue(func() *Compiled {
	c, err := Default().Compile()
	if err != nil {
		panic(err)
	}
	return c
})

// Standard returns the compiled built-in lexicon.
func Standard() *Compiled {
	return standard()
}
