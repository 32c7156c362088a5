package handlers

import (
	"bytes"
	"strings"
	"testing"

	"launderette-finder/src/types"
)

func renderCard(t *testing.T, card Card) string {
	t.Helper()

	tmpl, err := LoadTemplates("../templates")
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "card", card); err != nil {
		t.Fatalf("render card: %v", err)
	}
	return buf.String()
}

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		miles float64
		want  string
	}{
		{2.567, "2.6 miles"},
		{0.04, "0.0 miles"},
		{10, "10.0 miles"},
	}
	for _, tc := range cases {
		if got := FormatDistance(tc.miles); got != tc.want {
			t.Errorf("FormatDistance(%v): got %q, want %q", tc.miles, got, tc.want)
		}
	}
}

func TestCardRendersFeatureBadgesInOrder(t *testing.T) {
	card := NewCard(types.Listing{
		ID:       "l1",
		Name:     "Bubbles",
		Address:  "1 High St",
		Features: []string{"Service wash", "Dry cleaning", "Wi-Fi"},
	})

	html := renderCard(t, card)

	first := strings.Index(html, "Service wash")
	second := strings.Index(html, "Dry cleaning")
	third := strings.Index(html, "Wi-Fi")
	if first < 0 || second < 0 || third < 0 {
		t.Fatalf("badges missing from output:\n%s", html)
	}
	if !(first < second && second < third) {
		t.Error("badge order not preserved")
	}
}

func TestCardEmptyFeaturesRendersNoBadges(t *testing.T) {
	card := NewCard(types.Listing{ID: "l1", Name: "Bubbles", Address: "1 High St"})

	html := renderCard(t, card)
	if strings.Contains(html, `class="badge"`) {
		t.Errorf("no badges expected for an empty features list:\n%s", html)
	}
}

func TestCardPremiumEmphasis(t *testing.T) {
	plain := renderCard(t, NewCard(types.Listing{ID: "l1", Name: "Bubbles"}))
	if strings.Contains(plain, "listing-card--premium") || strings.Contains(plain, "premium-icon") {
		t.Error("premium markers rendered for a non-premium listing")
	}

	premium := renderCard(t, NewCard(types.Listing{ID: "l2", Name: "Soap Star", IsPremium: true}))
	if !strings.Contains(premium, "listing-card--premium") {
		t.Error("premium border class missing")
	}
	if !strings.Contains(premium, "premium-icon") {
		t.Error("premium icon missing")
	}
}

func TestCardDistance(t *testing.T) {
	card := NewCardWithDistance(types.Listing{ID: "l1", Name: "Bubbles"}, 2.567)

	html := renderCard(t, card)
	if !strings.Contains(html, "2.6 miles") {
		t.Errorf("distance not rendered as 2.6 miles:\n%s", html)
	}

	noDistance := renderCard(t, NewCard(types.Listing{ID: "l1", Name: "Bubbles"}))
	if strings.Contains(noDistance, "miles") {
		t.Error("distance rendered without a supplied distance")
	}
}

func TestCardRegionLookup(t *testing.T) {
	card := NewCard(types.Listing{ID: "l1", Name: "Bubbles", City: "Leeds"})
	if card.Region != "Yorkshire and the Humber" {
		t.Errorf("region: got %q", card.Region)
	}

	card = NewCard(types.Listing{ID: "l2", Name: "Suds", City: "Gotham"})
	if card.Region != "Unknown" {
		t.Errorf("unknown city region: got %q", card.Region)
	}
}
