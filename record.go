package laborcrawl

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DefaultCurrency is assumed when the model omits the currency field.
const DefaultCurrency = "TWD"

// ExtractedRecord is the structured output of one extraction call.
// Nil fields mean "not found", not an error; downstream consumers must
// tolerate fully-null records.
type ExtractedRecord struct {
	JobTitle      *string  `json:"job_title"`
	MonthlySalary *float64 `json:"monthly_salary"`
	Currency      string   `json:"currency"`
}

// UnmarshalJSON decodes a record while tolerating the formatting noise
// models produce for salary values: bare numbers, quoted numbers, and
// comma-grouped or currency-prefixed strings like "NT$50,000".
func (r *ExtractedRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		JobTitle      *string         `json:"job_title"`
		MonthlySalary json.RawMessage `json:"monthly_salary"`
		Currency      string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.JobTitle = raw.JobTitle
	r.Currency = raw.Currency
	r.MonthlySalary = parseSalary(raw.MonthlySalary)
	return nil
}

// parseSalary extracts a numeric salary from a raw JSON value.
// Unparsable values decode as nil rather than failing the record.
func parseSalary(raw json.RawMessage) *float64 {
	// A bare null token must stay nil: unmarshaling "null" into a
	// float64 is a no-op that reports no error, so the numeric branch
	// below would return a pointer to zero.
	if t := strings.TrimSpace(string(raw)); t == "" || t == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}

	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "NT$")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &n
}
