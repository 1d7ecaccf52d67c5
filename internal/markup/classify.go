// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup translates a constrained Markdown dialect into Google Docs
// batch update requests.
//
// The dialect is line-oriented: `# `, `## `, and `### ` headings at column
// zero, `*` or `-` bullets indented two spaces per nesting level, `- [ ]`
// checklist entries, `@name` mentions, and a `---` separator after which
// every line belongs to the footer. Anything that matches none of these is
// plain text; malformed markup is never an error.
package markup

import (
	"regexp"
	"strings"
)

// Kind classifies a source line.
type Kind string

const (
	KindText      Kind = "text"
	KindHeading1  Kind = "heading1"
	KindHeading2  Kind = "heading2"
	KindHeading3  Kind = "heading3"
	KindChecklist Kind = "checklist"
	KindBullet    Kind = "bullet"
)

// Line classification patterns. Evaluation order matters: heading checks
// run shallowest first, and the checklist marker takes precedence over a
// plain `-` bullet. Headings must start at column zero; list markers may
// be indented.
var (
	heading1Re  = regexp.MustCompile(`^#\s+\w+`)
	heading2Re  = regexp.MustCompile(`^##\s+\w+`)
	heading3Re  = regexp.MustCompile(`^###\s+\w+`)
	checklistRe = regexp.MustCompile(`^\s*\-\s+\[ \]\s+.+`)
	bulletRe    = regexp.MustCompile(`^\s*[\*\-]\s+.+`)
)

// Marker strip patterns, applied after classification.
var (
	heading1Strip  = regexp.MustCompile(`^#\s+`)
	heading2Strip  = regexp.MustCompile(`^##\s+`)
	heading3Strip  = regexp.MustCompile(`^###\s+`)
	checklistStrip = regexp.MustCompile(`^\s*\-\s+\[ \]\s+`)
	bulletStrip    = regexp.MustCompile(`^\s*[\*\-]\s+`)
	leadingSpace   = regexp.MustCompile(`^\s*`)
)

// Line is one classified input line with its markup stripped.
type Line struct {
	// Kind is the rendering class.
	Kind Kind

	// Indent is the nesting depth for bullet and checklist lines,
	// one level per two leading whitespace characters.
	Indent int

	// Content is the text to insert: markup markers removed and the
	// indent expanded to leading tabs. The line terminator is not
	// included.
	Content string
}

// Classify determines how a raw input line renders. Heading markers are
// only recognized at column zero, so an indented `# x` or a `####` line
// falls through to plain text.
func Classify(raw string) Line {
	switch {
	case heading1Re.MatchString(raw):
		return Line{Kind: KindHeading1, Content: heading1Strip.ReplaceAllString(raw, "")}
	case heading2Re.MatchString(raw):
		return Line{Kind: KindHeading2, Content: heading2Strip.ReplaceAllString(raw, "")}
	case heading3Re.MatchString(raw):
		return Line{Kind: KindHeading3, Content: heading3Strip.ReplaceAllString(raw, "")}
	case checklistRe.MatchString(raw):
		n := indentLevel(raw)
		return Line{Kind: KindChecklist, Indent: n, Content: checklistStrip.ReplaceAllString(raw, strings.Repeat("\t", n))}
	case bulletRe.MatchString(raw):
		n := indentLevel(raw)
		return Line{Kind: KindBullet, Indent: n, Content: bulletStrip.ReplaceAllString(raw, strings.Repeat("\t", n))}
	default:
		return Line{Kind: KindText, Content: raw}
	}
}

// indentLevel counts leading whitespace characters; every two make one
// nesting level, rounding down.
func indentLevel(raw string) int {
	return len(leadingSpace.FindString(raw)) / 2
}

// NamedStyle returns the Docs paragraph style for the line's kind.
func (l Line) NamedStyle() HeadingStyle {
	switch l.Kind {
	case KindHeading1:
		return StyleHeading1
	case KindHeading2:
		return StyleHeading2
	case KindHeading3:
		return StyleHeading3
	default:
		return StyleNormalText
	}
}

// DeriveTitle returns the text of the first top-level heading in the
// input, or "" when there is none. Callers fall back to their own title
// when the markup does not provide one.
func DeriveTitle(text string) string {
	for _, raw := range strings.Split(text, "\n") {
		if line := Classify(raw); line.Kind == KindHeading1 {
			return line.Content
		}
	}
	return ""
}
