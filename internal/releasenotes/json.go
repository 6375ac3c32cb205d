package releasenotes

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var isoDayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// looksLikeJSON reports whether trimmed input should go through the
// structural path first.
func looksLikeJSON(trimmed string) bool {
	return strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{")
}

// ParseJSON maps a JSON release object, or an array of them, onto parsed
// releases. Field names are matched loosely (camelCase or snake_case).
// Releases without a resolvable date are dropped. An error is returned
// only when the input is not valid JSON. No cutoff is applied here.
func ParseJSON(text string) ([]ParsedRelease, error) {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("decoding release JSON: %w", err)
	}

	var raw []any
	switch v := doc.(type) {
	case []any:
		raw = v
	default:
		raw = []any{v}
	}

	releases := make([]ParsedRelease, 0, len(raw))
	for _, r := range raw {
		obj, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if rel, ok := releaseFromJSON(obj); ok {
			releases = append(releases, rel)
		}
	}
	return releases, nil
}

func releaseFromJSON(obj map[string]any) (ParsedRelease, bool) {
	rel := ParsedRelease{Items: itemsFromJSON(obj["items"])}

	token := firstTruthy(obj["version"], obj["releaseDate"])
	if token != "" {
		if tok, ok := ParseDateToken(token); ok {
			rel.Version = tok.Version
			rel.ReleaseDate = tok.ISO()
		}
	}

	if rel.ReleaseDate == "" {
		day, ok := obj["release_date"].(string)
		if !ok || !isoDayPattern.MatchString(day) {
			return ParsedRelease{}, false
		}
		t, err := time.Parse(time.DateOnly, day)
		if err != nil {
			return ParsedRelease{}, false
		}
		rel.ReleaseDate = formatISO(t)
		rel.Version = joinVersion(day[8:10], day[5:7], day[2:4])
	}

	return rel, true
}

func itemsFromJSON(v any) []ParsedItem {
	list, ok := v.([]any)
	if !ok {
		return []ParsedItem{}
	}
	items := make([]ParsedItem, 0, len(list))
	for _, entry := range list {
		it, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		item := ParsedItem{
			Title:       looseString(it["title"]),
			Description: looseString(it["description"]),
		}
		if id, ok := jsonInt(it["azureDevopsId"]); ok {
			item.AzureDevopsID = &id
		} else if id, ok := jsonInt(it["azure_devops_id"]); ok {
			item.AzureDevopsID = &id
		}
		if s, ok := it["component"].(string); ok {
			c := Component(s)
			item.Component = &c
		}
		if s, ok := it["category"].(string); ok {
			c := Category(s)
			item.Category = &c
		}
		items = append(items, item)
	}
	return items
}

// firstTruthy returns the string form of the first value that is set,
// non-empty and non-zero.
func firstTruthy(values ...any) string {
	for _, v := range values {
		switch x := v.(type) {
		case string:
			if x != "" {
				return x
			}
		case float64:
			if x != 0 && !math.IsNaN(x) {
				return strconv.FormatFloat(x, 'f', -1, 64)
			}
		}
	}
	return ""
}

func jsonInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return int(f), true
}

func looseString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
