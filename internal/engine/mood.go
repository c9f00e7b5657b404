package engine

import (
	"time"

	"github.com/julianstephens/brightwell/internal/models"
)

// EmojiCount is one slice of a mood distribution.
type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// MoodDistribution counts entries per emoji, most frequent first. Entries are
// expected newest first; equal counts keep the emoji seen first, i.e. the most recent.
func MoodDistribution(entries []models.MoodEntry) []EmojiCount {
	var dist []EmojiCount
	index := make(map[string]int)
	for _, e := range entries {
		if i, ok := index[e.Emoji]; ok {
			dist[i].Count++
			continue
		}
		index[e.Emoji] = len(dist)
		dist = append(dist, EmojiCount{Emoji: e.Emoji, Count: 1})
	}

	// insertion sort keeps ties in first-seen order
	for i := 1; i < len(dist); i++ {
		for j := i; j > 0 && dist[j].Count > dist[j-1].Count; j-- {
			dist[j], dist[j-1] = dist[j-1], dist[j]
		}
	}
	return dist
}

// MostCommonMood returns the most frequent emoji, or false for an empty journal.
func MostCommonMood(entries []models.MoodEntry) (string, bool) {
	dist := MoodDistribution(entries)
	if len(dist) == 0 {
		return "", false
	}
	return dist[0].Emoji, true
}

// MoodCountSince counts entries at or after since.
func MoodCountSince(entries []models.MoodEntry, since time.Time) int {
	n := 0
	for _, e := range entries {
		if !e.Timestamp.Before(since) {
			n++
		}
	}
	return n
}

// CategoryCounts tallies entries by their stored category tag.
func CategoryCounts(entries []models.MoodEntry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Category]++
	}
	return counts
}
