package analysis

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
)

// MaxAnalysisEntries is how many entries, from the front of the given
// slice, go into an analysis prompt.
const MaxAnalysisEntries = 10

type Language string

const (
	LangEnglish  Language = "en"
	LangJapanese Language = "ja"
)

// BalancedThoughtInput is the part of a draft entry sent for a suggestion.
type BalancedThoughtInput struct {
	Situation       string
	Mood            string
	Rating          int
	NegativeThought string
}

type templates struct {
	balancedThought string
	analysis        string
	entryLine       string
	formatDate      func(time.Time) string
}

var englishTemplates = templates{
	balancedThought: `Based on the situation and mood below, suggest a more balanced and constructive way of looking at the negative thought.
Situation: %s
Mood: %s (rating %d of 5)
Negative thought: %s
`,
	analysis: `Analyze the following self-care journal records and summarize the user's emotional tendencies and recurring negative thought patterns.
Then, based on cognitive behavioral therapy (CBT), suggest short, constructive advice for improving the current situation. Format the answer as readable Markdown.
Records:
%s`,
	entryLine: "Date: %s, Mood: %s (%d pts), Negative thought: %s",
	formatDate: func(t time.Time) string {
		return t.Format("Mon, January 2, 2006")
	},
}

var japaneseWeekdays = [...]string{"日", "月", "火", "水", "木", "金", "土"}

var japaneseTemplates = templates{
	balancedThought: `以下の状況と気分に基づいて、ネガティブな思考に対するよりバランスの取れた、建設的な考え方を提案してください。
状況: %s
気分: %s (5段階評価: %d)
ネガティブ思考: %s
`,
	analysis: `以下の自己管理ノートの記録を分析し、ユーザーの感情の傾向や繰り返されるネガティブ思考のパターンを要約してください。
そして、認知行動療法（CBT）の考え方に基づき、現状を改善するための短く建設的なアドバイスを提案してください。Markdown形式で見やすく整形してください。
記録:
%s`,
	entryLine: "日付: %s, 気分: %s (%d点), ネガティブ思考: %s",
	formatDate: func(t time.Time) string {
		return fmt.Sprintf("%d年%d月%d日(%s)", t.Year(), int(t.Month()), t.Day(), japaneseWeekdays[t.Weekday()])
	},
}

// PromptBuilder renders prompts for the text-generation model. It is a value
// type with no state beyond its settings and is safe for concurrent use.
type PromptBuilder struct {
	tpl templates
	loc *time.Location
}

// NewPromptBuilder returns a builder for lang that renders dates in loc.
// Unknown languages fall back to English; a nil loc means UTC.
func NewPromptBuilder(lang Language, loc *time.Location) PromptBuilder {
	tpl := englishTemplates
	if lang == LangJapanese {
		tpl = japaneseTemplates
	}
	if loc == nil {
		loc = time.UTC
	}
	return PromptBuilder{tpl: tpl, loc: loc}
}

// BalancedThought embeds the four draft fields verbatim.
func (b PromptBuilder) BalancedThought(in BalancedThoughtInput) string {
	return fmt.Sprintf(b.tpl.balancedThought, in.Situation, in.Mood, in.Rating, in.NegativeThought)
}

// EntriesAnalysis renders at most MaxAnalysisEntries entries, in the order
// given, one per line. An empty slice still produces the full template.
func (b PromptBuilder) EntriesAnalysis(entries []domain.JournalEntry) string {
	if len(entries) > MaxAnalysisEntries {
		entries = entries[:MaxAnalysisEntries]
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, b.entryLine(e))
	}
	return fmt.Sprintf(b.tpl.analysis, strings.Join(lines, "\n"))
}

func (b PromptBuilder) entryLine(e domain.JournalEntry) string {
	line := fmt.Sprintf(b.tpl.entryLine,
		b.tpl.formatDate(e.Timestamp.In(b.loc)), e.Mood, e.Rating, e.NegativeThought)

	if custom := customFieldsText(e.CustomFields); custom != "" {
		line += ", " + custom
	}
	return line
}

// customFieldsText renders "name: value" pairs sorted by name.
func customFieldsText(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}
	return strings.Join(parts, ", ")
}

var defaultBuilder = NewPromptBuilder(LangEnglish, time.UTC)

// BuildBalancedThoughtPrompt renders the English balanced-thought prompt.
func BuildBalancedThoughtPrompt(situation, mood string, rating int, negativeThought string) string {
	return defaultBuilder.BalancedThought(BalancedThoughtInput{
		Situation:       situation,
		Mood:            mood,
		Rating:          rating,
		NegativeThought: negativeThought,
	})
}

// BuildAnalysisPrompt renders the English analysis prompt with UTC dates.
func BuildAnalysisPrompt(entries []domain.JournalEntry) string {
	return defaultBuilder.EntriesAnalysis(entries)
}
