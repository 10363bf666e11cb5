package enrich

import (
	"embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/rules.yaml
var rulesYAML embed.FS

// HostRule maps a URL-host test to a jurisdiction. Exactly one of Contains
// or Suffix should be set.
type HostRule struct {
	Contains     string `yaml:"contains,omitempty"`
	Suffix       string `yaml:"suffix,omitempty"`
	Jurisdiction string `yaml:"jurisdiction"`
}

// Matches tests a lowercased URL host against the rule.
func (r HostRule) Matches(host string) bool {
	if r.Contains != "" && strings.Contains(host, r.Contains) {
		return true
	}
	if r.Suffix != "" && strings.HasSuffix(host, r.Suffix) {
		return true
	}
	return false
}

// TagRule adds Tag to a tag set when Pattern matches the listing text.
type TagRule struct {
	Tag     string `yaml:"tag"`
	Pattern string `yaml:"pattern"`

	re *regexp.Regexp
}

// Ruleset is the classifier's configuration surface: ordered jurisdiction
// rules, tender detection patterns, council host list, and the audience and
// discipline tag tables. Rules are data; Classify only dispatches them.
type Ruleset struct {
	Jurisdictions     []HostRule `yaml:"jurisdictions"`
	TenderURLPattern  string     `yaml:"tender_url_pattern"`
	TenderTextPattern string     `yaml:"tender_text_pattern"`
	CouncilHosts      []string   `yaml:"council_hosts"`
	Audience          []TagRule  `yaml:"audience"`
	Discipline        []TagRule  `yaml:"discipline"`
	ExtractAmounts    bool       `yaml:"extract_amounts"`

	tenderURLRe  *regexp.Regexp
	tenderTextRe *regexp.Regexp
}

// Compile builds the case-insensitive matchers for every pattern in the set.
func (r *Ruleset) Compile() error {
	var err error
	if r.TenderURLPattern != "" {
		if r.tenderURLRe, err = regexp.Compile("(?i)" + r.TenderURLPattern); err != nil {
			return fmt.Errorf("tender_url_pattern: %w", err)
		}
	}
	if r.TenderTextPattern != "" {
		if r.tenderTextRe, err = regexp.Compile("(?i)" + r.TenderTextPattern); err != nil {
			return fmt.Errorf("tender_text_pattern: %w", err)
		}
	}
	for i := range r.Audience {
		if r.Audience[i].re, err = regexp.Compile("(?i)" + r.Audience[i].Pattern); err != nil {
			return fmt.Errorf("audience rule %q: %w", r.Audience[i].Tag, err)
		}
	}
	for i := range r.Discipline {
		if r.Discipline[i].re, err = regexp.Compile("(?i)" + r.Discipline[i].Pattern); err != nil {
			return fmt.Errorf("discipline rule %q: %w", r.Discipline[i].Tag, err)
		}
	}
	return nil
}

// DefaultRules returns the embedded rule tables.
func DefaultRules() *Ruleset {
	data, err := rulesYAML.ReadFile("config/rules.yaml")
	if err != nil {
		panic("embedded rules.yaml missing: " + err.Error())
	}
	rules, err := parseRules(data)
	if err != nil {
		panic("embedded rules.yaml invalid: " + err.Error())
	}
	return rules
}

// LoadRules reads a rule table file, falling back to the embedded defaults
// when path is empty.
func LoadRules(path string) (*Ruleset, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	return parseRules(data)
}

func parseRules(data []byte) (*Ruleset, error) {
	var rules Ruleset
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	if err := rules.Compile(); err != nil {
		return nil, err
	}
	return &rules, nil
}
