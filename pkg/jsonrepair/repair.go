// Package jsonrepair extracts and decodes JSON arrays from untrusted model
// output. Generative models regularly emit unescaped double quotes inside
// string values; the repair pass here recovers those payloads instead of
// discarding the whole response.
package jsonrepair

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoArray is returned when the input contains no JSON array at all.
var ErrNoArray = errors.New("jsonrepair: input contains no JSON array")

// structuralTokens are quote sequences that belong to the JSON structure
// itself. They are shielded with placeholders before the repair pass so
// that only stray quotes inside string values get rewritten. Order matters:
// longer tokens must be shielded before their prefixes.
var structuralTokens = []string{
	`": "`,
	`": `,
	`":`,
	`{"`,
	`"}`,
	`["`,
	`"]`,
	`", "`,
	`",`,
	`, "`,
	`,"`,
}

// ExtractArray locates the outermost JSON array substring in raw text,
// trimming any surrounding prose or markdown fences.
func ExtractArray(text string) (string, error) {
	cleaned := stripFences(strings.TrimSpace(text))

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoArray
	}
	return cleaned[start : end+1], nil
}

// DecodeArray parses a JSON array into out. It first attempts a strict
// parse; on failure it applies the quote-repair heuristic and parses again.
// The error from the strict parse is returned when both attempts fail.
func DecodeArray(text string, out interface{}) error {
	arr, err := ExtractArray(text)
	if err != nil {
		return err
	}

	strictErr := json.Unmarshal([]byte(arr), out)
	if strictErr == nil {
		return nil
	}

	if err := json.Unmarshal([]byte(RepairQuotes(arr)), out); err != nil {
		return strictErr
	}
	return nil
}

// RepairQuotes neutralizes unescaped double quotes inside string values.
// Key-delimiter and other structural quote sequences are protected with
// placeholders, every remaining double quote becomes a single quote, then
// the placeholders are restored. Crude, but effective against the common
// failure mode of generated product descriptions quoting a phrase.
func RepairQuotes(arr string) string {
	repaired := arr
	for i, token := range structuralTokens {
		repaired = strings.ReplaceAll(repaired, token, placeholder(i))
	}

	repaired = strings.ReplaceAll(repaired, `"`, `'`)

	for i, token := range structuralTokens {
		repaired = strings.ReplaceAll(repaired, placeholder(i), token)
	}
	return repaired
}

func placeholder(i int) string {
	return fmt.Sprintf("\x00%d\x00", i)
}

func stripFences(text string) string {
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
