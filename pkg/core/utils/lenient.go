package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes common defects in hand-written or model-written JSON:
// unquoted keys, single quotes, trailing commas, comments, unclosed brackets.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("repair json: %w", err)
	}
	return repaired, nil
}

// HJSONToJSON converts Hjson (comments, unquoted keys and strings, optional
// commas) into standard JSON.
func HJSONToJSON(data string) (string, error) {
	var generic interface{}
	if err := hjson.Unmarshal([]byte(data), &generic); err != nil {
		return "", fmt.Errorf("parse hjson: %w", err)
	}
	out, err := json.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("marshal hjson: %w", err)
	}
	return string(out), nil
}

// StripCodeFence removes a surrounding ``` or ```json fence.
func StripCodeFence(input string) string {
	s := strings.TrimSpace(input)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(s[:i], "{[") {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

// DecodeLenient decodes input into v, trying in order:
//  1. standard JSON
//  2. Hjson
//  3. repaired JSON
//
// The final decode always goes through encoding/json so json tags and
// custom unmarshalers on v apply.
func DecodeLenient(input string, v interface{}) error {
	input = StripCodeFence(input)
	err := json.Unmarshal([]byte(input), v)
	if err == nil {
		return nil
	}
	if converted, hErr := HJSONToJSON(input); hErr == nil {
		if err = json.Unmarshal([]byte(converted), v); err == nil {
			return nil
		}
	}
	repaired, rErr := RepairJSON(input)
	if rErr != nil {
		return fmt.Errorf("decode lenient: %w", rErr)
	}
	if err = json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("decode lenient: %w", err)
	}
	return nil
}
