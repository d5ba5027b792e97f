package memory

import "github.com/PabloGalante/cbt-notebook/internal/domain"

// sampleEntries is the demo data cycled through by SeedSampleEntries.
var sampleEntries = []domain.JournalEntry{
	{
		Situation:       "My manager asked to see me at the end of the day without saying why.",
		Mood:            "anxious",
		Rating:          2,
		NegativeThought: "I must have done something wrong and I'm going to be let go.",
		EvidenceFor:     "The meeting was scheduled at short notice.",
		EvidenceAgainst: "My last review was positive and nobody has raised a problem.",
		BalancedThought: "There are many reasons for a short meeting; I'll find out what it is before assuming the worst.",
	},
	{
		Situation:       "A friend didn't reply to my message for two days.",
		Mood:            "sad",
		Rating:          2,
		NegativeThought: "They don't care about our friendship anymore.",
		EvidenceAgainst: "They mentioned being swamped with a deadline this week.",
		BalancedThought: "They are probably busy; I can check in again at the weekend.",
		CustomFields:    map[string]string{"sleep": "5h"},
	},
	{
		Situation:       "I made a small mistake during the team presentation.",
		Mood:            "embarrassed",
		Rating:          1,
		NegativeThought: "Everyone thinks I'm incompetent now.",
		EvidenceFor:     "One person asked me to repeat a figure.",
		EvidenceAgainst: "Two colleagues complimented the slides afterwards.",
		BalancedThought: "One slip doesn't undo the rest of a good presentation.",
	},
	{
		Situation:       "I skipped my evening run because it was raining.",
		Mood:            "frustrated",
		Rating:          3,
		NegativeThought: "I never stick to anything.",
		EvidenceAgainst: "I ran three times last week.",
		BalancedThought: "Missing one run is normal; I can do a short workout indoors instead.",
		CustomFields:    map[string]string{"weather": "rain"},
	},
	{
		Situation:       "Lunch with my family went well and we laughed a lot.",
		Mood:            "content",
		Rating:          5,
		NegativeThought: "This won't last; something bad always follows.",
		BalancedThought: "I can enjoy good moments without predicting what comes next.",
	},
	{
		Situation:       "The bank app showed an unexpected charge.",
		Mood:            "worried",
		Rating:          2,
		NegativeThought: "Someone has stolen my card details.",
		EvidenceAgainst: "It could be a subscription renewal I forgot about.",
		BalancedThought: "I'll check the merchant name and call the bank if I don't recognise it.",
	},
	{
		Situation:       "I finished a book I had been putting off for months.",
		Mood:            "proud",
		Rating:          4,
		NegativeThought: "It took me far too long, other people read much faster.",
		BalancedThought: "I finished it at my own pace, and that still counts.",
		CustomFields:    map[string]string{"sleep": "8h"},
	},
}
