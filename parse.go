package laborcrawl

import (
	"encoding/json"
	"regexp"
	"strings"
)

// jsonSpanRE matches the first '{' through the last '}' in a string,
// spanning newlines. Models often wrap the JSON object in prose or
// markdown fencing; the greedy span recovers it.
var jsonSpanRE = regexp.MustCompile(`(?s)\{.*\}`)

// snippetLen bounds the raw-output prefix carried in parse errors.
const snippetLen = 200

// ParseRecord parses raw extraction-backend output into a record.
//
// It attempts a strict JSON parse of the full string first, then falls
// back to parsing the first {...} span. If the parsed value is a
// non-empty array, its first element is taken. Failures return an
// EUNPROCESSABLE error carrying a truncated prefix of the raw output
// for diagnosis.
func ParseRecord(raw string) (*ExtractedRecord, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, Errorf(EUNPROCESSABLE, "empty extraction output")
	}

	if rec, ok := decodeRecord(trimmed); ok {
		return rec, nil
	}

	if span := jsonSpanRE.FindString(trimmed); span != "" && span != trimmed {
		if rec, ok := decodeRecord(span); ok {
			return rec, nil
		}
	}

	return nil, Errorf(EUNPROCESSABLE, "unparsable extraction output: %q", TruncateRunes(trimmed, snippetLen))
}

// decodeRecord decodes a JSON object or array-of-objects into a record,
// applying the default currency.
func decodeRecord(s string) (*ExtractedRecord, bool) {
	var rec ExtractedRecord

	switch firstByte(s) {
	case '[':
		var recs []ExtractedRecord
		if err := json.Unmarshal([]byte(s), &recs); err != nil || len(recs) == 0 {
			return nil, false
		}
		rec = recs[0]
	case '{':
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, false
		}
	default:
		return nil, false
	}

	if rec.Currency == "" {
		rec.Currency = DefaultCurrency
	}
	return &rec, true
}

// firstByte returns the first non-whitespace byte of s, or 0.
func firstByte(s string) byte {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return s[i]
	}
	return 0
}
