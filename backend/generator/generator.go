// Package generator turns plain text into fill-in-the-blank quiz questions.
// Keywords are ranked by frequency, the sentence containing a keyword
// becomes the prompt with the keyword blanked out, and distractors are drawn
// from the other ranked keywords.
package generator

import (
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

const (
	optionsPerQuestion = 4
	fallbackOption     = "None of the above"
	minSentenceWords   = 5
	maxSentenceWords   = 80
)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"of": true, "in": true, "on": true, "at": true, "to": true, "for": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"it": true, "its": true, "this": true, "that": true, "these": true,
	"those": true, "he": true, "she": true, "they": true, "them": true,
	"his": true, "her": true, "their": true, "which": true, "who": true,
	"what": true, "where": true, "when": true, "how": true, "not": true,
	"no": true, "so": true, "if": true, "than": true, "then": true,
	"also": true, "into": true, "over": true, "after": true, "before": true,
	"between": true, "through": true, "during": true, "about": true,
	"can": true, "could": true, "will": true, "would": true, "may": true,
	"might": true, "must": true, "shall": true, "should": true, "has": true,
	"have": true, "had": true, "do": true, "does": true, "did": true,
	"more": true, "most": true, "some": true, "such": true, "only": true,
	"other": true, "there": true, "all": true, "each": true, "one": true,
	"two": true, "many": true, "any": true, "both": true, "own": true,
	"same": true, "very": true, "just": true, "while": true, "because": true,
}

var citationRe = regexp.MustCompile(`\[\d+\]`)

type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Generate produces up to count cloze questions from text. Difficulty shifts
// the keyword pool away from the most frequent terms: Hard skips the top
// third, Expert the top half. Returns nil when the text yields nothing.
func Generate(text string, count int, difficulty string, r *rand.Rand) []Question {
	if count <= 0 {
		return nil
	}
	text = citationRe.ReplaceAllString(text, "")

	sentences := splitSentences(text)
	keywords := rankKeywords(text)
	if len(keywords) == 0 {
		return nil
	}

	start := 0
	switch difficulty {
	case "Hard":
		start = len(keywords) / 3
	case "Expert":
		start = len(keywords) / 2
	}
	candidates := keywords[start:]
	if len(candidates) < count {
		candidates = keywords
	}
	shuffleStrings(candidates, r)

	var questions []Question
	usedSentences := map[string]bool{}

	for _, keyword := range candidates {
		if len(questions) >= count {
			break
		}

		sentence := findSentence(sentences, keyword, usedSentences)
		if sentence == "" {
			continue
		}
		usedSentences[sentence] = true

		prompt := blankKeyword(sentence, keyword)
		options := buildOptions(keyword, keywords, r)

		questions = append(questions, Question{
			Question: prompt,
			Options:  options,
			Answer:   keyword,
		})
	}

	return questions
}

// splitSentences is a naive splitter on terminal punctuation. Good enough
// for prose; abbreviations produce the occasional short fragment, which the
// word-count filter discards.
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			s := strings.TrimSpace(current.String())
			if s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// rankKeywords returns candidate answer words, most frequent first. Words
// are lowercased, stripped of punctuation and filtered against stopwords.
func rankKeywords(text string) []string {
	counts := map[string]int{}
	for _, raw := range strings.Fields(text) {
		word := normalizeWord(raw)
		if len(word) < 4 || stopwords[word] {
			continue
		}
		counts[word]++
	}

	keywords := make([]string, 0, len(counts))
	for word := range counts {
		keywords = append(keywords, word)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] == counts[keywords[j]] {
			return keywords[i] < keywords[j]
		}
		return counts[keywords[i]] > counts[keywords[j]]
	})
	return keywords
}

func normalizeWord(raw string) string {
	return strings.TrimFunc(strings.ToLower(raw), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func findSentence(sentences []string, keyword string, used map[string]bool) string {
	for _, s := range sentences {
		words := len(strings.Fields(s))
		if words <= minSentenceWords || words >= maxSentenceWords {
			continue
		}
		if used[s] {
			continue
		}
		if containsWord(s, keyword) {
			return s
		}
	}
	return ""
}

func containsWord(sentence, keyword string) bool {
	for _, raw := range strings.Fields(sentence) {
		if normalizeWord(raw) == keyword {
			return true
		}
	}
	return false
}

// blankKeyword replaces every occurrence of the keyword, case-insensitively,
// with a blank.
func blankKeyword(sentence, keyword string) string {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	return re.ReplaceAllString(sentence, "______")
}

// buildOptions assembles the answer plus distractors from the other ranked
// keywords, padded with a fallback option, then shuffles.
func buildOptions(answer string, keywords []string, r *rand.Rand) []string {
	options := []string{answer}
	for _, k := range keywords {
		if len(options) >= optionsPerQuestion {
			break
		}
		if k == answer {
			continue
		}
		options = append(options, k)
	}
	// Pad with a single fallback rather than duplicate distractors.
	if len(options) < optionsPerQuestion {
		options = append(options, fallbackOption)
	}

	shuffleStrings(options, r)
	return options
}

// shuffleStrings перемешивает срез алгоритмом Фишера-Йейтса.
func shuffleStrings(items []string, r *rand.Rand) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
