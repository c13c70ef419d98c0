package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// ValidateIDs checks every entry of an id list is non-blank
func ValidateIDs(fieldName string, ids []string) error {
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			return &ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("%s[%d] is blank", formatFieldName(fieldName), i),
			}
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "parentID" -> "parent ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"id":        "ID",
		"nodeID":    "node ID",
		"parentID":  "parent ID",
		"parentIDs": "parent IDs",
		"childID":   "child ID",
		"currentID": "current ID",
		"name":      "name",
		"contextID": "context ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}
