// Package classify decides whether a raw tagged element plausibly
// represents a repair-capable business. The tag data is noisy, so the
// decision is a fixed, ordered list of named heuristic rules; the first
// matching rule accepts the element.
package classify

import (
	"strings"

	"github.com/UnknownOlympus/beacon/internal/overpass"
)

// repairKeywords are the name and tag-value substrings that suggest a
// business does repair work.
var repairKeywords = []string{
	"repair", "service", "clinic", "fix", "workshop",
	"station", "center", "servicecenter", "service center",
}

// allowedShops are primary tag values for shop kinds that routinely do
// repairs even when they never spell it out in their tags.
var allowedShops = map[string]struct{}{
	"mobile_phone":           {},
	"computer":               {},
	"appliance":              {},
	"bicycle":                {},
	"bicycle_repair_station": {},
	"watchmaker":             {},
	"hardware":               {},
}

// Rule is a single named repair-relevance predicate. Naming each rule keeps
// the policy auditable and lets rules be tested one by one.
type Rule struct {
	Name  string
	Match func(el overpass.Element) bool
}

// Rules is the classification policy, evaluated in priority order with
// first match winning. Order matters: explicit repair tags outrank shop
// kinds, which outrank keyword guesses.
var Rules = []Rule{
	{Name: "craft-repair", Match: tagContains("craft", "repair")},
	{Name: "amenity-repair", Match: tagContains("amenity", "repair")},
	{Name: "service-repair", Match: tagContains("service", "repair")},
	{Name: "allowed-shop", Match: func(el overpass.Element) bool {
		_, ok := allowedShops[strings.ToLower(el.PrimaryType())]
		return ok
	}},
	{Name: "name-keyword", Match: func(el overpass.Element) bool {
		return containsAnyKeyword(el.Name())
	}},
	{Name: "tag-keyword", Match: func(el overpass.Element) bool {
		for _, value := range el.Tags {
			if containsAnyKeyword(value) {
				return true
			}
		}
		return false
	}},
}

// Match evaluates the rules in order and reports the name of the first
// rule that accepted the element. ok is false when every rule rejects it.
func Match(el overpass.Element) (string, bool) {
	for _, rule := range Rules {
		if rule.Match(el) {
			return rule.Name, true
		}
	}

	return "", false
}

// Filter keeps the elements accepted by the rule set, preserving order.
// Callers own the fall-back-to-unfiltered policy when nothing passes.
func Filter(elements []overpass.Element) []overpass.Element {
	accepted := make([]overpass.Element, 0, len(elements))
	for _, el := range elements {
		if _, ok := Match(el); ok {
			accepted = append(accepted, el)
		}
	}

	return accepted
}

// tagContains builds a predicate matching a case-insensitive substring of
// one tag value.
func tagContains(key, substr string) func(overpass.Element) bool {
	return func(el overpass.Element) bool {
		value, ok := el.Tags[key]
		return ok && strings.Contains(strings.ToLower(value), substr)
	}
}

// containsAnyKeyword reports whether the value contains any repair keyword,
// case-insensitively.
func containsAnyKeyword(value string) bool {
	lower := strings.ToLower(value)
	for _, kw := range repairKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	return false
}
