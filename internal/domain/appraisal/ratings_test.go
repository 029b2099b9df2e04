package appraisal

import (
	"errors"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestNormalizeRatingsCanonicalShape(t *testing.T) {
	tmpl := fiveScaleTemplate()
	inputs := []RatingInput{
		{Key: "quality", RatingValue: floatPtr(4), Comments: "solid"},
	}

	ratings, err := NormalizeRatings(inputs, tmpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ratings) != 1 {
		t.Fatalf("expected 1 rating, got %d", len(ratings))
	}
	r := ratings[0]
	if r.Key != "quality" || r.Title != "Quality of Work" {
		t.Fatalf("unexpected key/title: %q/%q", r.Key, r.Title)
	}
	if r.RatingValue != 4 || r.Comments != "solid" {
		t.Fatalf("unexpected value/comments: %v/%q", r.RatingValue, r.Comments)
	}
	// 4/5 = 80%, weighted by 60 -> 48.
	if r.WeightedScore == nil || *r.WeightedScore != 48 {
		t.Fatalf("expected weighted score 48, got %v", r.WeightedScore)
	}
}

func TestNormalizeRatingsAlternateShape(t *testing.T) {
	tmpl := fiveScaleTemplate()
	inputs := []RatingInput{
		{CriterionKey: "teamwork", Score: floatPtr(3), Comment: "plays well"},
	}

	ratings, err := NormalizeRatings(inputs, tmpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := ratings[0]
	if r.Key != "teamwork" || r.Title != "Teamwork" {
		t.Fatalf("unexpected key/title: %q/%q", r.Key, r.Title)
	}
	if r.RatingValue != 3 || r.Comments != "plays well" {
		t.Fatalf("unexpected value/comments: %v/%q", r.RatingValue, r.Comments)
	}
	// 3/5 = 60%, weighted by 40 -> 24.
	if r.WeightedScore == nil || *r.WeightedScore != 24 {
		t.Fatalf("expected weighted score 24, got %v", r.WeightedScore)
	}
}

func TestNormalizeRatingsCanonicalWinsOverAlternate(t *testing.T) {
	tmpl := fiveScaleTemplate()
	inputs := []RatingInput{
		{Key: "quality", CriterionKey: "teamwork", RatingValue: floatPtr(5), Score: floatPtr(1)},
	}

	ratings, err := NormalizeRatings(inputs, tmpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ratings[0].Key != "quality" || ratings[0].RatingValue != 5 {
		t.Fatalf("canonical fields should win: %+v", ratings[0])
	}
}

func TestNormalizeRatingsUnknownCriterionKeepsKey(t *testing.T) {
	tmpl := fiveScaleTemplate()
	ratings, err := NormalizeRatings([]RatingInput{
		{Key: "initiative", RatingValue: floatPtr(5)},
	}, tmpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := ratings[0]
	if r.Title != "initiative" {
		t.Fatalf("expected key reused as title, got %q", r.Title)
	}
	if r.WeightedScore == nil || *r.WeightedScore != 100 {
		t.Fatalf("expected full-weight score 100, got %v", r.WeightedScore)
	}
}

func TestNormalizeRatingsMissingKey(t *testing.T) {
	_, err := NormalizeRatings([]RatingInput{{RatingValue: floatPtr(3)}}, fiveScaleTemplate())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
