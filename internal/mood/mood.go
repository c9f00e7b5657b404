// Package mood classifies mood emoji into a fixed set of categories.
package mood

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Category is the tag stored on a mood entry when it is created.
type Category string

const (
	Excellent Category = "excellent"
	Good      Category = "good"
	Neutral   Category = "neutral"
	Bad       Category = "bad"
	Terrible  Category = "terrible"
)

// Categories lists every category from best to worst.
var Categories = []Category{Excellent, Good, Neutral, Bad, Terrible}

// Palette is the set of emoji offered when logging a mood.
var Palette = []string{
	"😊", "😃", "😄", "😁", "🥰",
	"😌", "😔", "😢", "😭", "😡",
	"😤", "😰", "😱", "🤗", "🤔",
	"😴", "🤒", "🤕", "😷", "🥳",
}

var table = map[string]Category{
	// excellent
	"😊": Excellent, "🤩": Excellent, "😍": Excellent, "🥰": Excellent, "😄": Excellent,
	"😃": Excellent, "😁": Excellent, "🥳": Excellent,
	// good
	"🙂": Good, "😌": Good, "👍": Good, "✨": Good, "💪": Good,
	"🤗": Good,
	// neutral
	"😐": Neutral, "😑": Neutral, "🤷": Neutral, "😶": Neutral, "🙄": Neutral,
	"🤔": Neutral, "😴": Neutral,
	// bad
	"😔": Bad, "😞": Bad, "😟": Bad, "😕": Bad, "🙁": Bad,
	"😰": Bad, "🤒": Bad, "🤕": Bad, "😷": Bad,
	// terrible
	"😢": Terrible, "😭": Terrible, "😡": Terrible, "😤": Terrible, "💔": Terrible,
	"😱": Terrible,
}

// variation selectors and skin-tone modifiers do not change the mood
var stripper = strings.NewReplacer(
	"\uFE0F", "", "\uFE0E", "",
	"\U0001F3FB", "", "\U0001F3FC", "", "\U0001F3FD", "", "\U0001F3FE", "", "\U0001F3FF", "",
)

// Normalize returns the canonical form used for lookups: NFC, trimmed, with
// variation selectors and skin tones removed.
func Normalize(emoji string) string {
	return stripper.Replace(norm.NFC.String(strings.TrimSpace(emoji)))
}

// CategoryFor classifies an emoji. Anything not in the table is Neutral.
func CategoryFor(emoji string) Category {
	if c, ok := table[Normalize(emoji)]; ok {
		return c
	}
	return Neutral
}

// Known reports whether the emoji has an explicit category.
func Known(emoji string) bool {
	_, ok := table[Normalize(emoji)]
	return ok
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label is the display name, e.g. "Excellent".
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Score ranks a category from 5 (excellent) to 1 (terrible); unknown is 0.
func (c Category) Score() int {
	for i, known := range Categories {
		if c == known {
			return len(Categories) - i
		}
	}
	return 0
}
