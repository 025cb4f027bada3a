package services

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	maxPricePattern = regexp.MustCompile(`(\d+)\s*reais`)

	// Filler words stripped before the remaining terms become keyword
	// constraints for corpus scans.
	promptStopwords = map[string]bool{
		"de": true, "da": true, "do": true, "para": true, "com": true,
		"e": true, "ou": true, "um": true, "uma": true, "por": true,
		"até": true, "reais": true, "a": true, "o": true, "os": true,
		"as": true, "the": true, "for": true, "and": true, "with": true,
	}
)

// ParsedPrompt holds the constraints extracted from a free-text prompt.
type ParsedPrompt struct {
	Keywords []string
	MaxPrice float64
}

// ParsePrompt extracts a price ceiling ("ate 50 reais") and significant
// keywords from a search prompt. Extraction is best-effort; an empty
// result simply means no constraint.
func ParsePrompt(prompt string) ParsedPrompt {
	lowered := strings.ToLower(prompt)
	parsed := ParsedPrompt{}

	if match := maxPricePattern.FindStringSubmatch(lowered); match != nil {
		if value, err := strconv.Atoi(match[1]); err == nil {
			parsed.MaxPrice = float64(value)
		}
	}

	withoutPrice := maxPricePattern.ReplaceAllString(lowered, " ")
	for _, word := range strings.Fields(withoutPrice) {
		word = strings.Trim(word, ".,!?\"'")
		if word == "" || promptStopwords[word] {
			continue
		}
		parsed.Keywords = append(parsed.Keywords, word)
	}
	return parsed
}
