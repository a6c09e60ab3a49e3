package tokenizer

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"survey-insights-go/internal/logger"
	"survey-insights-go/internal/types"
)

// DefaultMaxWords caps the word-frequency table.
const DefaultMaxWords = 80

// DefaultStopwords holds English function words plus a few survey words.
// There are no Kazakh or Russian entries, so those answers keep their
// function words.
var DefaultStopwords = []string{
	"the", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
	"this", "that", "these", "those", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "do", "does", "did", "will", "would", "could", "should",
	"a", "an", "some", "any", "my", "your", "his", "her", "our", "their",
	"system", "process", "please", "agree",
}

var tokenRe = regexp.MustCompile(`[\p{L}\p{M}\p{N}_][\p{L}\p{M}\p{N}_']+`)

// Source is one open-ended column; empty answers count as missing.
type Source struct {
	Header  string
	Answers []string
}

// Sources picks the two free-text answers from every response. A column
// absent from the header is left out.
func Sources(rows []types.Response, fairnessPresent, featurePresent bool) []Source {
	var out []Source
	if fairnessPresent {
		s := Source{Header: types.FairnessTextHeader}
		for _, r := range rows {
			s.Answers = append(s.Answers, r.Fairness)
		}
		out = append(out, s)
	}
	if featurePresent {
		s := Source{Header: types.FeatureTextHeader}
		for _, r := range rows {
			s.Answers = append(s.Answers, r.Feature)
		}
		out = append(out, s)
	}
	return out
}

// Blob joins the non-missing answers of every source, each source followed by a space.
func Blob(sources []Source, log *logger.Logger) string {
	var b strings.Builder
	for _, src := range sources {
		present := make([]string, 0, len(src.Answers))
		for _, a := range src.Answers {
			if a != "" {
				present = append(present, a)
			}
		}
		log.WithField("column", preview(src.Header)).WithField("responses", len(present)).Info("collected text responses")
		b.WriteString(strings.Join(present, " "))
		b.WriteString(" ")
	}
	return b.String()
}

// HasText reports whether the blob holds anything beyond whitespace.
func HasText(blob string) bool {
	return strings.TrimSpace(blob) != ""
}

// Filter is a case-insensitive stopword set.
type Filter struct {
	words map[string]bool
	lower cases.Caser
}

func NewFilter(words ...string) *Filter {
	f := &Filter{words: make(map[string]bool, len(words)), lower: cases.Lower(language.Und)}
	for _, w := range words {
		f.words[f.lower.String(w)] = true
	}
	return f
}

func (f *Filter) IsFiltered(token string) bool {
	return f.words[f.lower.String(token)]
}

func (f *Filter) Len() int { return len(f.words) }

// Tokens splits NFC-normalized text into lowercased words of two or more
// characters, dropping a trailing 's, pure numbers and filtered words.
func Tokens(text string, f *Filter) []string {
	lower := cases.Lower(language.Und)
	raw := tokenRe.FindAllString(norm.NFC.String(text), -1)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		tok = lower.String(tok)
		tok = strings.TrimSuffix(tok, "'s")
		if len([]rune(tok)) < 2 || isNumber(tok) {
			continue
		}
		if f != nil && f.IsFiltered(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Frequencies counts tokens, most frequent first, ties alphabetical, capped at limit.
// An empty blob yields nil.
func Frequencies(blob string, f *Filter, limit int) []types.WordCount {
	if !HasText(blob) {
		return nil
	}
	counts := map[string]int{}
	for _, tok := range Tokens(blob, f) {
		counts[tok]++
	}
	out := make([]types.WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, types.WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func isNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func preview(h string) string {
	r := []rune(h)
	if len(r) > 30 {
		return string(r[:30]) + "..."
	}
	return h
}
