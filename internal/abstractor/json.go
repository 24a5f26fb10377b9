package abstractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	trailingCommaObj = regexp.MustCompile(`,\s*}`)
	trailingCommaArr = regexp.MustCompile(`,\s*]`)
	adjacentObjects  = regexp.MustCompile(`}\s*{`)
)

// decodeModelJSON parses a model response into out, recovering from the
// common failure shapes: markdown code fences, prose around the object,
// trailing commas, and responses truncated mid-object.
func decodeModelJSON(text string, out any) error {
	text = stripCodeFences(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return errors.New("no JSON object found in response")
	}
	jsonStr := text[start : end+1]

	if err := json.Unmarshal([]byte(jsonStr), out); err == nil {
		return nil
	}

	fixed := trailingCommaObj.ReplaceAllString(jsonStr, "}")
	fixed = trailingCommaArr.ReplaceAllString(fixed, "]")
	fixed = adjacentObjects.ReplaceAllString(fixed, "},{")
	parseErr := json.Unmarshal([]byte(fixed), out)
	if parseErr == nil {
		return nil
	}

	// Truncated output: walk back in steps, close any open braces, and take
	// the largest prefix that parses.
	errorPos := len(jsonStr)
	var syntaxErr *json.SyntaxError
	if errors.As(parseErr, &syntaxErr) && int(syntaxErr.Offset) < errorPos {
		errorPos = int(syntaxErr.Offset)
	}
	for attemptEnd := errorPos; attemptEnd > 0; attemptEnd -= 100 {
		test := jsonStr[:attemptEnd]
		if open := strings.Count(test, "{") - strings.Count(test, "}"); open > 0 {
			test += strings.Repeat("}", open)
		}
		if err := json.Unmarshal([]byte(test), out); err == nil {
			return nil
		}
	}

	return fmt.Errorf("invalid JSON in response: %w", parseErr)
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
