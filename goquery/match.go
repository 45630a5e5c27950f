package goquery

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SelectorText matches the first element for selector with non-empty text.
func SelectorText(selector string) Rule[string] {
	return func(p *Page) (string, bool) {
		var value string
		p.Document().Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			value = strings.TrimSpace(s.Text())
			return value == ""
		})
		return value, value != ""
	}
}

// SelectorAttr matches the first element for selector with a non-empty attr.
func SelectorAttr(selector, attr string) Rule[string] {
	return func(p *Page) (string, bool) {
		var value string
		p.Document().Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			v, _ := s.Attr(attr)
			value = strings.TrimSpace(v)
			return value == ""
		})
		return value, value != ""
	}
}

// Pattern matches the first occurrence of re in the raw HTML and yields its
// first capture group, trimmed.
func Pattern(re *regexp.Regexp) Rule[string] {
	return func(p *Page) (string, bool) {
		return submatch(re, p.HTML)
	}
}

// URLPattern is like Pattern but matches against the source URL.
func URLPattern(re *regexp.Regexp) Rule[string] {
	return func(p *Page) (string, bool) {
		return submatch(re, p.URL)
	}
}

func submatch(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}

// JSONString matches an embedded `"key": "value"` fragment. JSON escapes in
// the value are decoded when they are well formed.
func JSONString(key string) Rule[string] {
	re := regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `":\s*"((?:[^"\\]|\\.)+)"`)
	return Map(Pattern(re), unescapeJSON)
}

// JSONNumber matches an embedded `"key": 123` fragment and yields the digits.
func JSONNumber(key string) Rule[string] {
	return Pattern(regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `":\s*(\d+)`))
}

func unescapeJSON(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}

// Map transforms the value of rule with fn. Values that become empty after
// trimming are rejected.
func Map(rule Rule[string], fn func(string) string) Rule[string] {
	return func(p *Page) (string, bool) {
		v, ok := rule(p)
		if !ok {
			return "", false
		}
		v = strings.TrimSpace(fn(v))
		return v, v != ""
	}
}

// PositiveInt parses the value of rule as a base-10 integer and accepts it
// only when it is strictly positive.
func PositiveInt(rule Rule[string]) Rule[int] {
	return func(p *Page) (int, bool) {
		v, ok := rule(p)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return 0, false
		}
		return n, true
	}
}
