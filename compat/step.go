package compat

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Step is a single rewrite applied during translation. Steps run in the
// order declared on the Operation and operate on the working copy of the
// parameter mapping; the caller's original Bag is never mutated.
type Step interface {
	// Apply runs the step against the in-progress translation.
	Apply(t *Translation) error

	// Describe returns a one-line human description, used by tooling.
	Describe() string
}

// Rename moves a parameter's value from the legacy name to the replacement
// name. A no-op when the legacy name was not supplied.
func Rename(old, new string) Step {
	return &renameStep{old: old, new: new}
}

type renameStep struct{ old, new string }

func (s *renameStep) Apply(t *Translation) error {
	v, ok := t.Bag.Get(s.old)
	if !ok {
		return nil
	}
	t.Bag = t.Bag.Without(s.old).With(s.new, v)

	return nil
}

func (s *renameStep) Describe() string {
	return fmt.Sprintf("rename %s to %s", s.old, s.new)
}

// Invert replaces a supplied boolean parameter with its negation under a new
// name. An absent parameter stays absent: inverting an explicit false is not
// the same as inverting "not supplied".
func Invert(old, new string) Step {
	return &invertStep{old: old, new: new}
}

type invertStep struct{ old, new string }

func (s *invertStep) Apply(t *Translation) error {
	if !t.Bag.Has(s.old) {
		return nil
	}
	v, ok := t.Bag.Bool(s.old)
	if !ok {
		return &ContractViolationError{
			Operation: t.Op.Name,
			Param:     s.old,
			Rule:      "value must be a boolean",
			Value:     suppliedValue(t.Bag, s.old),
		}
	}
	t.Bag = t.Bag.Without(s.old).With(s.new, !v)

	return nil
}

func (s *invertStep) Describe() string {
	return fmt.Sprintf("invert %s into %s", s.old, s.new)
}

// Split replaces a supplied delimited string with a list of its non-empty
// elements under a new name.
func Split(old, new, sep string) Step {
	return &splitStep{old: old, new: new, sep: sep}
}

type splitStep struct{ old, new, sep string }

func (s *splitStep) Apply(t *Translation) error {
	if !t.Bag.Has(s.old) {
		return nil
	}
	v, ok := t.Bag.String(s.old)
	if !ok {
		return &ContractViolationError{
			Operation: t.Op.Name,
			Param:     s.old,
			Rule:      "value must be a string",
			Value:     suppliedValue(t.Bag, s.old),
		}
	}

	parts := make([]string, 0)
	for _, p := range strings.Split(v, s.sep) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	t.Bag = t.Bag.Without(s.old).With(s.new, parts)

	return nil
}

func (s *splitStep) Describe() string {
	return fmt.Sprintf("split %s on %q into %s", s.old, s.sep, s.new)
}

// MapValues replaces a supplied enum-style string value with its mapped
// equivalent under a new name. A supplied value missing from the mapping
// violates the operation's contract.
func MapValues(old, new string, mapping map[string]string) Step {
	return &mapValuesStep{old: old, new: new, mapping: mapping}
}

type mapValuesStep struct {
	old, new string
	mapping  map[string]string
}

func (s *mapValuesStep) Apply(t *Translation) error {
	if !t.Bag.Has(s.old) {
		return nil
	}
	v, ok := t.Bag.String(s.old)
	if !ok {
		return &ContractViolationError{
			Operation: t.Op.Name,
			Param:     s.old,
			Rule:      "value must be a string",
			Value:     suppliedValue(t.Bag, s.old),
		}
	}
	mapped, ok := s.mapping[v]
	if !ok {
		return &ContractViolationError{
			Operation: t.Op.Name,
			Param:     s.old,
			Rule:      fmt.Sprintf("value must be one of %v", mapKeys(s.mapping)),
			Value:     v,
		}
	}
	t.Bag = t.Bag.Without(s.old).With(s.new, mapped)

	return nil
}

func (s *mapValuesStep) Describe() string {
	return fmt.Sprintf("map %s values into %s", s.old, s.new)
}

// Synthesize derives a new parameter from a supplied legacy one via fn,
// dropping the legacy parameter. fn errors surface as
// TranslationImpossibleError. A no-op when the legacy name was not supplied.
func Synthesize(old, new string, fn func(value any) (any, error)) Step {
	return &synthesizeStep{old: old, new: new, fn: fn}
}

type synthesizeStep struct {
	old, new string
	fn       func(value any) (any, error)
}

func (s *synthesizeStep) Apply(t *Translation) error {
	v, ok := t.Bag.Get(s.old)
	if !ok {
		return nil
	}
	nv, err := s.fn(v)
	if err != nil {
		return &TranslationImpossibleError{
			Operation: t.Op.Name,
			Params:    []string{s.old},
			Reason:    err.Error(),
		}
	}
	t.Bag = t.Bag.Without(s.old).With(s.new, nv)

	return nil
}

func (s *synthesizeStep) Describe() string {
	return fmt.Sprintf("synthesize %s from %s", s.new, s.old)
}

// Drop discards a supplied parameter that no longer has any effect and
// records a dead-parameter notice. The notice is emitted regardless of the
// supplied value.
func Drop(name, reason string) Step {
	return &dropStep{name: name, reason: reason}
}

type dropStep struct{ name, reason string }

func (s *dropStep) Apply(t *Translation) error {
	if !t.Bag.Has(s.name) {
		return nil
	}
	t.Bag = t.Bag.Without(s.name)
	t.DeadNotices = append(t.DeadNotices, deadParamNotice(t.Op, s.name, s.reason))

	return nil
}

func (s *dropStep) Describe() string {
	return fmt.Sprintf("drop discontinued parameter %s", s.name)
}

// RequireFile fails the call when the named parameter is supplied and its
// value does not point at an existing file.
func RequireFile(name string) Step {
	return &requireFileStep{name: name}
}

type requireFileStep struct{ name string }

func (s *requireFileStep) Apply(t *Translation) error {
	if !t.Bag.Has(s.name) {
		return nil
	}
	path, ok := t.Bag.String(s.name)
	if !ok {
		return &ContractViolationError{
			Operation: t.Op.Name,
			Param:     s.name,
			Rule:      "value must be a string path",
			Value:     suppliedValue(t.Bag, s.name),
		}
	}
	if _, err := os.Stat(path); err != nil {
		return &ContractViolationError{
			Operation: t.Op.Name,
			Param:     s.name,
			Rule:      "file must exist",
			Value:     path,
		}
	}

	return nil
}

func (s *requireFileStep) Describe() string {
	return fmt.Sprintf("require %s to be an existing file", s.name)
}

// RequirePattern fails the call when the named parameter is supplied and its
// value does not match pattern.
func RequirePattern(name string, pattern *regexp.Regexp) Step {
	return &requirePatternStep{name: name, pattern: pattern}
}

type requirePatternStep struct {
	name    string
	pattern *regexp.Regexp
}

func (s *requirePatternStep) Apply(t *Translation) error {
	if !t.Bag.Has(s.name) {
		return nil
	}
	v, ok := t.Bag.String(s.name)
	if !ok || !s.pattern.MatchString(v) {
		return &ContractViolationError{
			Operation: t.Op.Name,
			Param:     s.name,
			Rule:      fmt.Sprintf("value must match pattern %s", s.pattern),
			Value:     suppliedValue(t.Bag, s.name),
		}
	}

	return nil
}

func (s *requirePatternStep) Describe() string {
	return fmt.Sprintf("require %s to match %s", s.name, s.pattern)
}

// MutuallyExclusive fails the call when both named legacy parameters were
// supplied.
func MutuallyExclusive(a, b string) Step {
	return &mutuallyExclusiveStep{a: a, b: b}
}

type mutuallyExclusiveStep struct{ a, b string }

func (s *mutuallyExclusiveStep) Apply(t *Translation) error {
	if t.Bag.Has(s.a) && t.Bag.Has(s.b) {
		return &TranslationImpossibleError{
			Operation: t.Op.Name,
			Params:    []string{s.a, s.b},
			Reason:    "parameters are mutually exclusive",
		}
	}

	return nil
}

func (s *mutuallyExclusiveStep) Describe() string {
	return fmt.Sprintf("reject %s combined with %s", s.a, s.b)
}

// Custom wraps an arbitrary rewrite function as a Step for translations the
// fixed step vocabulary cannot express.
func Custom(description string, fn func(t *Translation) error) Step {
	return &customStep{description: description, fn: fn}
}

type customStep struct {
	description string
	fn          func(t *Translation) error
}

func (s *customStep) Apply(t *Translation) error { return s.fn(t) }
func (s *customStep) Describe() string           { return s.description }

func suppliedValue(b interface{ Get(string) (any, bool) }, name string) any {
	v, _ := b.Get(name)
	return v
}

func mapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
