package journal

import (
	"slices"
	"strings"
	"time"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
)

// UnknownMood is the bucket for entries without a mood.
const UnknownMood = "unknown"

type TrendPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Rating    int       `json:"rating"`
	Mood      string    `json:"mood"`
}

type Summary struct {
	TotalEntries int            `json:"total_entries"`
	MoodCounts   map[string]int `json:"mood_counts"`
	Trend        []TrendPoint   `json:"trend"` // oldest first
}

// Summarize counts moods and builds the rating trend.
func Summarize(entries []domain.JournalEntry) Summary {
	sum := Summary{
		TotalEntries: len(entries),
		MoodCounts:   make(map[string]int),
		Trend:        make([]TrendPoint, 0, len(entries)),
	}

	for _, e := range entries {
		mood := strings.TrimSpace(e.Mood)
		if mood == "" {
			mood = UnknownMood
		}
		sum.MoodCounts[mood]++
		sum.Trend = append(sum.Trend, TrendPoint{Timestamp: e.Timestamp, Rating: e.Rating, Mood: e.Mood})
	}

	slices.SortStableFunc(sum.Trend, func(a, b TrendPoint) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return sum
}

// MoodSuggestions returns the distinct non-blank moods in collection order.
func MoodSuggestions(entries []domain.JournalEntry) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, e := range entries {
		mood := strings.TrimSpace(e.Mood)
		if mood == "" {
			continue
		}
		if _, ok := seen[mood]; ok {
			continue
		}
		seen[mood] = struct{}{}
		out = append(out, mood)
	}
	return out
}
