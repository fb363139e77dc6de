package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// The extraction rules below are a heuristic chain, not a parser. The
// contract is "always return a non-crashing best guess"; irregular phrasing
// is allowed to produce a wrong but harmless search term.
var (
	// "kunde"/"kunden <name>" where the name stops before a connector word.
	reCustomerName = regexp.MustCompile(`(?i)kunden?\s+([A-Za-z0-9ÆØÅæøå][A-Za-z0-9ÆØÅæøå_-]*(?:\s+[A-Za-z0-9ÆØÅæøå][A-Za-z0-9ÆØÅæøå_-]*)*?)\s+(?:i\s+monday|og|hvor|som|der)`)

	// Same pattern without the connector requirement; truncated manually.
	reCustomerNameLoose = regexp.MustCompile(`(?i)kunden?\s+([A-Za-z0-9ÆØÅæøå][A-Za-z0-9ÆØÅæøå ._-]+)`)

	// "find X" where X looks like a company name.
	reFindName = regexp.MustCompile(`(?i)find\s+([A-Z][A-Za-z0-9ÆØÅæøå]+)`)

	// Standalone capitalized word, the usual shape of a company name.
	reCapitalizedWord = regexp.MustCompile(`\b([A-Z][A-Za-z0-9ÆØÅæøå]+)\b`)

	reLeadingFind = regexp.MustCompile(`(?i)^find\s+`)
)

const nameTrimCutset = " ?!.:,;"

// ExtractCustomerName pulls a candidate customer/lead name out of a
// CRM-directed sentence. Rules are attempted in order; the first success
// wins and the trimmed input itself is the absolute fallback.
func ExtractCustomerName(text string) string {
	t := strings.TrimSpace(text)
	t = strings.TrimSpace(strings.TrimLeft(t, "-–— "))
	lower := strings.ToLower(t)

	// 1) "kunden <name>" stopping at a connector
	if m := reCustomerName.FindStringSubmatch(t); m != nil {
		return strings.Trim(m[1], nameTrimCutset)
	}

	// 2) "kunden <name>" without connector check, then manually stop
	if m := reCustomerNameLoose.FindStringSubmatch(t); m != nil {
		name := m[1]
		for _, stopWord := range []string{" i monday", " i ", " og ", " hvor ", " som ", " der "} {
			if idx := strings.Index(strings.ToLower(name), stopWord); idx != -1 {
				name = strings.TrimSpace(name[:idx])
				break
			}
		}
		return strings.Trim(name, nameTrimCutset)
	}

	// 3) "find X"
	if m := reFindName.FindStringSubmatch(t); m != nil {
		name := m[1]
		for _, stopWord := range []string{" i ", " og ", " hvor ", " som ", " der "} {
			if idx := strings.Index(strings.ToLower(name), stopWord); idx != -1 {
				name = name[:idx]
			}
		}
		return strings.Trim(name, nameTrimCutset)
	}

	// 4) Text before the earliest connector phrase
	connectors := []string{" i monday", " og ", " hvor ", " som ", " der "}
	earliestIdx := len(t)
	for _, connector := range connectors {
		if idx := strings.Index(lower, connector); idx != -1 && idx < earliestIdx {
			earliestIdx = idx
		}
	}
	if earliestIdx < len(t) {
		before := strings.TrimSpace(t[:earliestIdx])
		before = reLeadingFind.ReplaceAllString(before, "")
		parts := strings.Fields(before)
		var name string
		if len(parts) > 0 {
			// Prefer the capitalized words if any exist
			var capitalized []string
			for _, p := range parts {
				if firstRuneIsUpper(p) {
					capitalized = append(capitalized, p)
				}
			}
			if len(capitalized) > 0 {
				name = strings.Join(capitalized, " ")
			} else {
				name = parts[len(parts)-1]
			}
		} else {
			name = before
		}
		return strings.Trim(name, nameTrimCutset)
	}

	// 5) First standalone capitalized word anywhere
	if m := reCapitalizedWord.FindStringSubmatch(t); m != nil {
		return strings.Trim(m[1], nameTrimCutset)
	}

	// 6) First meaningful token
	for _, part := range strings.Fields(t) {
		if utf8.RuneCountInString(part) > 2 && firstRuneIsAlnum(part) {
			return strings.Trim(part, nameTrimCutset)
		}
	}

	// 7) Absolute fallback
	return strings.Trim(t, nameTrimCutset)
}

func firstRuneIsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

func firstRuneIsAlnum(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
