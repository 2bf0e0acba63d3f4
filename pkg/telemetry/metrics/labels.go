package metrics

import (
	"sort"
	"strings"
)

// Label canonicalization.
//
// A metric series is identified by its instrument name plus its label set.
// Two calls supplying the same labels in different insertion order must
// resolve to the same series, so the key is built with label keys sorted.
// This ordering is a correctness requirement, not a cosmetic choice:
// order-sensitive keys silently split one logical series in two.

// canonicalKey builds the stable series key for a name and label set:
//
//	name{a="1",b="2"}
//
// Keys are sorted; an empty label set yields the bare name.
func canonicalKey(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(labelString(labels))
	return b.String()
}

// labelString renders a sorted, escaped label block including the braces,
// or the empty string for an empty set.
func labelString(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(escapeLabelValue(labels[k]))
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}

// escapeLabelValue escapes a label value per the Prometheus text format:
// backslash, double quote, and newline.
func escapeLabelValue(v string) string {
	if !strings.ContainsAny(v, "\\\"\n") {
		return v
	}
	var b strings.Builder
	for _, r := range v {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// copyLabels returns a defensive copy of a label set.
func copyLabels(labels map[string]string) map[string]string {
	if len(labels) == 0 {
		return nil
	}
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		out[k] = v
	}
	return out
}
