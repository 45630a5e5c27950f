package goquery_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/docmeta/goquery"
	"github.com/stretchr/testify/assert"
)

func TestFirst(t *testing.T) {
	t.Parallel()

	var miss goquery.Rule[string] = func(*goquery.Page) (string, bool) { return "", false }
	hit := func(v string) goquery.Rule[string] {
		return func(*goquery.Page) (string, bool) { return v, true }
	}

	t.Run("returns first match in order", func(t *testing.T) {
		t.Parallel()

		v, ok := goquery.First(miss, hit("a"), hit("b"))(goquery.NewPage("", ""))

		assert.True(t, ok)
		assert.Equal(t, "a", v)
	})

	t.Run("reports no match when all rules miss", func(t *testing.T) {
		t.Parallel()

		v, ok := goquery.First(miss, miss)(goquery.NewPage("", ""))

		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("stops at the first match", func(t *testing.T) {
		t.Parallel()

		called := false
		var later goquery.Rule[string] = func(*goquery.Page) (string, bool) {
			called = true
			return "later", true
		}

		_, _ = goquery.First(hit("a"), later)(goquery.NewPage("", ""))

		assert.False(t, called)
	})
}

func TestAttempt(t *testing.T) {
	t.Parallel()

	t.Run("returns rule value", func(t *testing.T) {
		t.Parallel()

		rule := goquery.Pattern(regexp.MustCompile(`id=(\d+)`))
		assert.Equal(t, "7", goquery.Attempt(rule, "none", goquery.NewPage("id=7", "")))
	})

	t.Run("returns fallback on no match", func(t *testing.T) {
		t.Parallel()

		rule := goquery.Pattern(regexp.MustCompile(`id=(\d+)`))
		assert.Equal(t, "none", goquery.Attempt(rule, "none", goquery.NewPage("nothing", "")))
	})

	t.Run("returns fallback when rule panics", func(t *testing.T) {
		t.Parallel()

		var rule goquery.Rule[int] = func(*goquery.Page) (int, bool) { panic("broken rule") }
		assert.Equal(t, -1, goquery.Attempt(rule, -1, goquery.NewPage("", "")))
	})
}

func TestOptional(t *testing.T) {
	t.Parallel()

	rule := goquery.Optional(goquery.PositiveInt(goquery.JSONNumber("n")))

	got := goquery.Attempt(rule, (*int)(nil), goquery.NewPage(`{"n": 3}`, ""))
	if assert.NotNil(t, got) {
		assert.Equal(t, 3, *got)
	}

	assert.Nil(t, goquery.Attempt(rule, (*int)(nil), goquery.NewPage(`{"n": 0}`, "")))
}

func TestSelectorAttr(t *testing.T) {
	t.Parallel()

	page := goquery.NewPage(`<meta name="author" content=""><meta name="author" content="Second">`, "")

	v, ok := goquery.SelectorAttr(`meta[name="author"]`, "content")(page)

	assert.True(t, ok)
	assert.Equal(t, "Second", v)
}
