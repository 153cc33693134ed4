package service

import (
	"encoding/json"
	"regexp"
	"sort"
)

// Field shapes shared by both registries. The email check is the loose
// local@domain.tld shape, not a full RFC 5322 parse.
var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]+$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern  = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

func validPhoneNumbers(numbers []string) bool {
	for _, n := range numbers {
		if !phonePattern.MatchString(n) {
			return false
		}
	}
	return true
}

// unknownFields returns the keys of body that are not in allowed, sorted
// for stable error messages.
func unknownFields(body map[string]json.RawMessage, allowed ...string) []string {
	allowedSet := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		allowedSet[f] = true
	}
	var unknown []string
	for k := range body {
		if !allowedSet[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// The field helpers below read one key out of a partial-update body.
// A nil result means the key was absent; a ValidationError means it was
// present with the wrong JSON type.

func fieldString(body map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := body[key]
	if !ok {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, validationErrorf("field %q must be a string", key)
	}
	return &s, nil
}

func fieldInt(body map[string]json.RawMessage, key string) (*int, error) {
	raw, ok := body[key]
	if !ok {
		return nil, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, validationErrorf("field %q must be a number", key)
	}
	return &n, nil
}

func fieldBool(body map[string]json.RawMessage, key string) (*bool, error) {
	raw, ok := body[key]
	if !ok {
		return nil, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, validationErrorf("field %q must be a boolean", key)
	}
	return &b, nil
}

func fieldStringSlice(body map[string]json.RawMessage, key string) ([]string, bool, error) {
	raw, ok := body[key]
	if !ok {
		return nil, false, nil
	}
	var ss []string
	if err := json.Unmarshal(raw, &ss); err != nil {
		return nil, true, validationErrorf("field %q must be a list of strings", key)
	}
	return ss, true, nil
}
