package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSONObject pulls a JSON object out of a model reply that may be
// wrapped in markdown fences or surrounding prose.
func extractJSONObject(response string) (string, error) {
	trimmed := strings.TrimSpace(response)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed, nil
	}

	start := strings.Index(response, "{")
	if start == -1 {
		return "", fmt.Errorf("no JSON object found in response")
	}

	// Find the matching closing brace
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		c := response[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return response[start : i+1], nil
				}
			}
		}
	}
	return "", fmt.Errorf("no matching closing brace found")
}

// parseMapping parses a model reply into a FieldMapping.
func parseMapping(response string) (FieldMapping, error) {
	var mapping FieldMapping
	if err := json.Unmarshal([]byte(response), &mapping); err == nil {
		return mapping, nil
	}

	jsonStr, err := extractJSONObject(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}
	if err := json.Unmarshal([]byte(jsonStr), &mapping); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}
	return mapping, nil
}

// parseReview parses a model reply into a Review.
func parseReview(response string) (*Review, error) {
	var review Review
	if err := json.Unmarshal([]byte(response), &review); err == nil && review.Verdict != "" {
		return &review, nil
	}

	jsonStr, err := extractJSONObject(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}
	if err := json.Unmarshal([]byte(jsonStr), &review); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}
	if review.Verdict == "" {
		return nil, fmt.Errorf("%w: review verdict missing", ErrUnparsableResponse)
	}
	return &review, nil
}
