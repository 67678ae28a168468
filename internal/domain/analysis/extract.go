package analysis

import (
	"encoding/json"
	"strings"
)

// Strategy identifies which recovery step produced a payload.
type Strategy string

const (
	StrategyDirect      Strategy = "direct"
	StrategyCleaned     Strategy = "cleaned"
	StrategyBraceScan   Strategy = "brace_scan"
	StrategyPrefixSlice Strategy = "prefix_slice"
	StrategyNone        Strategy = "none"
)

// Payload is the JSON object recovered from a raw completion, or nothing.
type Payload struct {
	Fields   map[string]any
	Strategy Strategy
}

// Introductory phrases models prepend despite being told not to.
var knownPrefixes = []string{
	"Here is the detailed analysis in the requested JSON format:",
	"Here's the analysis in JSON format:",
	"Here is the result:",
	"Analysis result:",
	"JSON Response:",
}

// Extract tries recovery strategies in fixed order and stops at the first
// whose output parses as a JSON object. Every strategy is pure; a failed
// attempt leaves nothing behind for the next one.
func Extract(raw string) Payload {
	if fields, ok := parseObject(raw); ok {
		return Payload{Fields: fields, Strategy: StrategyDirect}
	}
	if cleaned, changed := stripFences(raw); changed {
		if fields, ok := parseObject(cleaned); ok {
			return Payload{Fields: fields, Strategy: StrategyCleaned}
		}
	}
	if fields, ok := braceScan(raw); ok {
		return Payload{Fields: fields, Strategy: StrategyBraceScan}
	}
	for _, prefix := range knownPrefixes {
		idx := strings.Index(raw, prefix)
		if idx < 0 {
			continue
		}
		if fields, ok := braceScan(raw[idx+len(prefix):]); ok {
			return Payload{Fields: fields, Strategy: StrategyPrefixSlice}
		}
	}
	return Payload{Strategy: StrategyNone}
}

func parseObject(s string) (map[string]any, bool) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(s), &fields); err != nil {
		return nil, false
	}
	if fields == nil {
		// the literal "null" round-trips but carries nothing
		return nil, false
	}
	return fields, true
}

// stripFences removes a wrapping markdown code block. Only applies when the
// text actually starts fenced; anything else is left to the later strategies
// so strategy attribution stays meaningful.
func stripFences(raw string) (string, bool) {
	t := strings.TrimSpace(raw)
	if !strings.HasPrefix(t, "```") {
		return raw, false
	}
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimLeft(t, "\r\n")
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t), true
}

func braceScan(s string) (map[string]any, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	return parseObject(s[start : end+1])
}
