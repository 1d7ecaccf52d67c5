package markup

import (
	"strings"

	"google.golang.org/api/docs/v1"
)

// HeadingStyle is a Docs named paragraph style.
type HeadingStyle string

const (
	StyleNormalText HeadingStyle = "NORMAL_TEXT"
	StyleHeading1   HeadingStyle = "HEADING_1"
	StyleHeading2   HeadingStyle = "HEADING_2"
	StyleHeading3   HeadingStyle = "HEADING_3"
)

// TextStyle is a character-level style toggle.
type TextStyle string

const (
	StyleBold   TextStyle = "bold"
	StyleItalic TextStyle = "italic"
)

// List rendering presets.
const (
	presetBullets  = "BULLET_DISC_CIRCLE_SQUARE"
	presetCheckbox = "BULLET_CHECKBOX"
)

// insertText builds the request that inserts text at the fixed anchor.
func insertText(text string) *docs.Request {
	return &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: anchorIndex},
			Text:     text,
		},
	}
}

// paragraphStyle builds the request that applies a named paragraph style
// over [start, end).
func paragraphStyle(style HeadingStyle, start, end int64) *docs.Request {
	return &docs.Request{
		UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			Range:          &docs.Range{StartIndex: start, EndIndex: end},
			ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: string(style)},
			Fields:         "namedStyleType",
		},
	}
}

// listStyle builds the request that renders [start, end) as a bulleted
// list, or as a checklist when checklist is true.
func listStyle(start, end int64, checklist bool) *docs.Request {
	preset := presetBullets
	if checklist {
		preset = presetCheckbox
	}
	return &docs.Request{
		CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
			Range:        &docs.Range{StartIndex: start, EndIndex: end},
			BulletPreset: preset,
		},
	}
}

// clearListStyle builds the request that removes list formatting from
// [start, end) so it does not bleed into neighboring paragraphs.
func clearListStyle(start, end int64) *docs.Request {
	return &docs.Request{
		DeleteParagraphBullets: &docs.DeleteParagraphBulletsRequest{
			Range: &docs.Range{StartIndex: start, EndIndex: end},
		},
	}
}

// textStyle builds the request that applies character styles over
// [start, end). The fields mask lists each toggled style.
func textStyle(start, end int64, styles ...TextStyle) *docs.Request {
	ts := &docs.TextStyle{}
	fields := make([]string, 0, len(styles))
	for _, s := range styles {
		switch s {
		case StyleBold:
			ts.Bold = true
		case StyleItalic:
			ts.Italic = true
		}
		fields = append(fields, string(s))
	}
	return &docs.Request{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     &docs.Range{StartIndex: start, EndIndex: end},
			TextStyle: ts,
			Fields:    strings.Join(fields, ","),
		},
	}
}
