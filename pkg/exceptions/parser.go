package exceptions

import (
	"fmt"
	"strings"
)

// Record is one accepted-risk entry from the exception list, as raw
// key→value pairs. Required-field and type validation happens in pkg/policy,
// not here.
type Record map[string]string

// Parse reads the exception-list dialect: a `version:`/`exceptions:` wrapper
// around a sequence of flat mappings, with `#` line comments and optional
// single/double quoting. The parser is tolerant — lines it cannot place are
// skipped rather than failing the document — except for a list-item line
// whose remainder is not a key:value pair, which aborts the parse.
func Parse(raw string) ([]Record, error) {
	var records []Record
	var current Record

	for _, rawLine := range strings.Split(raw, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "version:") || strings.HasPrefix(line, "exceptions:") {
			continue
		}
		if strings.HasPrefix(line, "- ") {
			if len(current) > 0 {
				records = append(records, current)
			}
			current = Record{}
			rest := strings.TrimSpace(line[2:])
			if rest != "" {
				key, value, err := splitKV(rest)
				if err != nil {
					return nil, err
				}
				current[key] = value
			}
			continue
		}
		if current != nil && strings.Contains(line, ":") {
			key, value, _ := splitKV(line)
			current[key] = value
		}
	}
	if len(current) > 0 {
		records = append(records, current)
	}
	return records, nil
}

// splitKV splits a "key: value" line and strips one pair of matching quotes
// from the value. Quote stripping is the only value transformation performed
// at this layer.
func splitKV(line string) (string, string, error) {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", fmt.Errorf("exception list: line %q is not a key:value pair", line)
	}
	return strings.TrimSpace(key), unquote(strings.TrimSpace(value)), nil
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
