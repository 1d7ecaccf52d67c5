// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"google.golang.org/api/docs/v1"
)

// anchorIndex is the document position where every line is inserted. The
// input is processed back to front, so inserting each line at the same
// index reproduces reading order without recomputing offsets for text
// already in the document.
const anchorIndex = 1

// footerSeparator is the body/footer boundary once markup is stripped and
// the line terminator appended.
const footerSeparator = "---\n"

// mentionRe matches @name mentions in a finished line.
var mentionRe = regexp.MustCompile(`@\w+`)

// Stats summarizes one translation.
type Stats struct {
	// Lines is the number of input lines, including empty ones.
	Lines int `json:"lines" yaml:"lines"`

	// Headings counts heading lines of any level.
	Headings int `json:"headings" yaml:"headings"`

	// Bullets counts bullet lines; BulletRuns counts maximal runs of
	// consecutive bullet lines, each styled by one combined operation.
	Bullets    int `json:"bullets" yaml:"bullets"`
	BulletRuns int `json:"bullet_runs" yaml:"bullet_runs"`

	// Checklists counts checklist lines.
	Checklists int `json:"checklists" yaml:"checklists"`

	// Mentions counts @name occurrences across all lines.
	Mentions int `json:"mentions" yaml:"mentions"`

	// Requests is the total number of generated requests.
	Requests int `json:"requests" yaml:"requests"`
}

// Batch is an ordered set of Docs API requests ready for one batch
// update call.
type Batch struct {
	Requests []*docs.Request
	Stats    Stats
}

// Translate converts markup text into the request batch that reconstructs
// it in a fresh document. It is pure: no input is malformed, and the
// resulting requests depend only on the text.
//
// Lines are walked in reverse. Each line is inserted at the anchor with a
// trailing newline, styled with its paragraph style, and then decorated:
// bold for each mention, italic while the walk has not yet crossed the
// footer separator, and list or clear-list formatting last. Consecutive
// bullet lines accumulate into a run whose character span is styled by a
// single combined list operation once a non-bullet line closes it; the
// combined span is what keeps nested indentation intact.
func Translate(text string) Batch {
	lines := strings.Split(text, "\n")

	var (
		reqs       []*docs.Request
		stats      Stats
		runLength  int64
		footerDone bool
	)

	for i := len(lines) - 1; i >= 0; i-- {
		line := Classify(lines[i])
		final := line.Content + "\n"
		length := charLen(final)

		switch line.Kind {
		case KindHeading1, KindHeading2, KindHeading3:
			stats.Headings++
		case KindBullet:
			stats.Bullets++
			runLength += length
		case KindChecklist:
			stats.Checklists++
		}

		// This line sits above the open bullet run, so the run is
		// complete; style its whole span with one operation.
		if line.Kind != KindBullet && runLength > 0 {
			reqs = append(reqs, listStyle(anchorIndex, runLength, false))
			stats.BulletRuns++
			runLength = 0
		}

		reqs = append(reqs, insertText(final))
		// Paragraph style before character styles so the latter
		// override it.
		reqs = append(reqs, paragraphStyle(line.NamedStyle(), anchorIndex, length))

		for _, span := range mentionSpans(final) {
			reqs = append(reqs, textStyle(span[0]+anchorIndex, span[1]+anchorIndex, StyleBold))
			stats.Mentions++
		}

		// Walking backwards, everything below the separator is footer.
		if !footerDone {
			if final == footerSeparator {
				footerDone = true
			} else {
				reqs = append(reqs, textStyle(anchorIndex, length, StyleItalic))
			}
		}

		switch {
		case line.Kind == KindChecklist:
			reqs = append(reqs, listStyle(anchorIndex, length, true))
		case line.Kind != KindBullet:
			reqs = append(reqs, clearListStyle(anchorIndex, length))
		}
	}

	// A run that reaches the first line has no line above to close it.
	if runLength > 0 {
		reqs = append(reqs, listStyle(anchorIndex, runLength, false))
		stats.BulletRuns++
	}

	stats.Lines = len(lines)
	stats.Requests = len(reqs)
	return Batch{Requests: reqs, Stats: stats}
}

// charLen returns the length of s in characters. Docs API ranges count
// characters, not bytes.
func charLen(s string) int64 {
	return int64(utf8.RuneCountInString(s))
}

// mentionSpans returns the character offset ranges of each @name mention
// in s.
func mentionSpans(s string) [][2]int64 {
	matches := mentionRe.FindAllStringIndex(s, -1)
	if matches == nil {
		return nil
	}
	spans := make([][2]int64, 0, len(matches))
	for _, m := range matches {
		start := int64(utf8.RuneCountInString(s[:m[0]]))
		width := int64(utf8.RuneCountInString(s[m[0]:m[1]]))
		spans = append(spans, [2]int64{start, start + width})
	}
	return spans
}
