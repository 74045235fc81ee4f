package compiler

import (
	"strconv"
	"strings"

	"github.com/golangsnmp/mibtext/mib"
)

// Base types whose bracketed qualifier is a named-integer enumeration.
var enumBases = map[string]bool{
	"INTEGER":   true,
	"BITS":      true,
	"Integer32": true,
}

// Base types whose parenthesized qualifier is a value or size range.
var rangeBases = map[string]bool{
	"INTEGER":       true,
	"Integer32":     true,
	"Unsigned32":    true,
	"Gauge32":       true,
	"OCTET STRING":  true,
	"DisplayString": true,
}

// buildObject synthesizes an object from the tokens between a macro
// invocation and its declaration boundary, pulling the key/value pairs
// the macro's TYPE NOTATION declares. Tokens matching no known key are
// ignored, not stored.
func (c *Compiler) buildObject(mod *mib.Module, name string, m *mib.Macro, tokens []token, from, to int) *mib.Object {
	obj := &mib.Object{Name: name, Macro: m.Name}

	for i := from; i < to && i < len(tokens); i++ {
		key := tokens[i].text
		if key != "DESCRIPTION" && !m.HasKey(key) {
			continue
		}
		if i+1 >= to || i+1 >= len(tokens) {
			break
		}

		switch key {
		case "SYNTAX":
			i = c.parseSyntax(obj, tokens, i+1, to)
		case "DESCRIPTION":
			value := tokens[i+1].text
			if obj.Description == "" {
				obj.Description = value
			}
			obj.Revisions = append(obj.Revisions, mib.RevisionEntry{Kind: mib.RevisionDescription, Value: value})
			i++
		case "REVISION":
			obj.Revisions = append(obj.Revisions, mib.RevisionEntry{Kind: mib.RevisionRevision, Value: tokens[i+1].text})
			i++
		case "ACCESS", "MAX-ACCESS":
			obj.MaxAccess = tokens[i+1].text
			i++
		case "STATUS":
			obj.Status = tokens[i+1].text
			i++
		case "UNITS":
			obj.Units = tokens[i+1].text
			i++
		case "INDEX":
			obj.Index = braceInner(tokens[i+1].text)
			i++
		case "AUGMENTS":
			obj.Augments = braceInner(tokens[i+1].text)
			i++
		default:
			obj.SetExtra(key, tokens[i+1].text)
			i++
		}
	}

	// A lone DESCRIPTION entry is redundant with the description field.
	if len(obj.Revisions) == 1 && obj.Revisions[0].Kind == mib.RevisionDescription {
		obj.Revisions = nil
	}
	return obj
}

// parseSyntax consumes a SYNTAX value starting at index k and returns the
// index of the last consumed token. Handles the SEQUENCE OF double token,
// the OCTET STRING double token, enumeration qualifiers, and range/size
// qualifiers.
func (c *Compiler) parseSyntax(obj *mib.Object, tokens []token, k, to int) int {
	base := tokens[k].text

	if base == "SEQUENCE" && k+2 < to && tokens[k+1].text == "OF" {
		obj.Syntax = "SEQUENCE OF " + tokens[k+2].text
		return k + 2
	}
	if base == "OCTET" && k+1 < to && tokens[k+1].text == "STRING" {
		base = "OCTET STRING"
		k++
	}
	if base == "OBJECT" && k+1 < to && tokens[k+1].text == "IDENTIFIER" {
		base = "OBJECT IDENTIFIER"
		k++
	}
	obj.Syntax = base

	if k+1 >= to || k+1 >= len(tokens) {
		return k
	}
	qual := tokens[k+1].text

	switch {
	case strings.HasPrefix(qual, "{") && enumBases[base]:
		obj.Enums = parseNamedNumbers(braceInner(qual))
		return k + 1
	case strings.HasPrefix(qual, "(") && rangeBases[base]:
		obj.Ranges = parseRanges(braceInner(qual))
		return k + 1
	}
	return k
}

// parseNamedNumbers parses an enumeration body like "up(1), down(2)".
// Malformed members are skipped.
func parseNamedNumbers(body string) []mib.NamedNumber {
	var out []mib.NamedNumber
	for _, member := range strings.Split(body, ",") {
		member = strings.TrimSpace(member)
		open := strings.IndexByte(member, '(')
		closing := strings.LastIndexByte(member, ')')
		if open <= 0 || closing <= open {
			continue
		}
		v, err := strconv.ParseInt(strings.TrimSpace(member[open+1:closing]), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, mib.NamedNumber{Name: strings.TrimSpace(member[:open]), Value: v})
	}
	return out
}

// parseRanges parses a range qualifier body like "0..255", "SIZE (0..32)",
// or "1..10 | 20..30". Singletons become ranges with Min == Max.
func parseRanges(body string) []mib.Range {
	body = strings.TrimSpace(body)
	if rest, ok := strings.CutPrefix(body, "SIZE"); ok {
		rest = strings.TrimSpace(rest)
		if strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")") {
			body = strings.TrimSpace(rest[1 : len(rest)-1])
		}
	}

	var out []mib.Range
	for _, part := range strings.Split(body, "|") {
		part = strings.TrimSpace(part)
		lo, hi, found := strings.Cut(part, "..")
		min, err := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
		if err != nil {
			continue
		}
		max := min
		if found {
			max, err = strconv.ParseInt(strings.TrimSpace(hi), 10, 64)
			if err != nil {
				continue
			}
		}
		out = append(out, mib.Range{Min: min, Max: max})
	}
	return out
}
