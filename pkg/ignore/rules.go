// Package ignore holds the ignore rules consulted while walking a repository:
// substring patterns from the config file and command line, plus the
// gitignore-style matcher used for a root's .gitignore.
package ignore

import (
	"strings"
)

// Origin records where an ignore rule came from.
type Origin int

const (
	Builtin Origin = iota
	Config
	CommandLine
)

// String returns the lowercase origin name used in logs.
func (o Origin) String() string {
	switch o {
	case Builtin:
		return "builtin"
	case Config:
		return "config"
	case CommandLine:
		return "command-line"
	default:
		return "unknown"
	}
}

// Rule is a single ignore pattern and its origin.
type Rule struct {
	Pattern string
	Origin  Origin
}

// RuleSet is an immutable, ordered collection of rules. It is built once
// before traversal and shared read-only by every worker.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet copies rules into a new set, dropping blank patterns and
// duplicates (first occurrence wins).
func NewRuleSet(rules ...Rule) RuleSet {
	seen := make(map[string]bool, len(rules))
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		p := strings.TrimSpace(r.Pattern)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		kept = append(kept, Rule{Pattern: p, Origin: r.Origin})
	}
	return RuleSet{rules: kept}
}

// Merge builds a rule set from config-file patterns followed by command-line
// patterns.
func Merge(configPatterns, cliPatterns []string) RuleSet {
	rules := make([]Rule, 0, len(configPatterns)+len(cliPatterns))
	for _, p := range configPatterns {
		rules = append(rules, Rule{Pattern: p, Origin: Config})
	}
	for _, p := range cliPatterns {
		rules = append(rules, Rule{Pattern: p, Origin: CommandLine})
	}
	return NewRuleSet(rules...)
}

// Rules returns a copy of the rules in the set.
func (s RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len reports the number of rules.
func (s RuleSet) Len() int { return len(s.rules) }

// MatchUser reports the first Config or CommandLine rule whose pattern is a
// substring of relPath.
func (s RuleSet) MatchUser(relPath string) (Rule, bool) {
	relPath = normalizePath(relPath)
	for _, r := range s.rules {
		if r.Origin == Builtin {
			continue
		}
		if strings.Contains(relPath, r.Pattern) {
			return r, true
		}
	}
	return Rule{}, false
}
