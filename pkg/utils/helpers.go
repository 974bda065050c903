package utils

import (
	"strconv"
	"strings"

	"go-data-quality/internal/model"
)

// Tokens treated as missing values, matched case-insensitively after
// trimming. Mirrors the usual CSV NA markers.
var missingTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"nan":  true,
	"none": true,
}

// ParseCell converts a raw text cell to a typed value: int, then float,
// then bool, falling back to string. Missing-value tokens become null, and
// so do non-finite floats, which keeps reports free of NaN and Infinity
// from the very first step.
func ParseCell(s string) model.Value {
	s = strings.TrimSpace(s)
	if missingTokens[strings.ToLower(s)] {
		return model.Null()
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return model.IntValue(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return model.FloatValue(f) // collapses NaN/Inf to null
	}
	switch s {
	case "true", "True", "TRUE":
		return model.BoolValue(true)
	case "false", "False", "FALSE":
		return model.BoolValue(false)
	}
	return model.StringValue(s)
}

// CleanHeader normalizes a column header: trims whitespace and strips any
// stray quotes left over from lenient CSV parsing.
func CleanHeader(h string) string {
	return strings.ReplaceAll(strings.TrimSpace(h), `"`, "")
}
