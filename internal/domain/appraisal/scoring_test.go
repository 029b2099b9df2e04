package appraisal

import "testing"

func fiveScaleTemplate() *Template {
	return &Template{
		ID:   "tpl-1",
		Name: "Annual Review",
		RatingScale: RatingScale{
			Type: "numeric",
			Min:  0,
			Max:  5,
		},
		Criteria: []Criterion{
			{Key: "quality", Title: "Quality of Work", Weight: 60, MaxScore: 5},
			{Key: "teamwork", Title: "Teamwork", Weight: 40, MaxScore: 5},
		},
	}
}

func TestScoreWeightedSum(t *testing.T) {
	tmpl := fiveScaleTemplate()
	ratings := []Rating{
		{Key: "quality", RatingValue: 5},
		{Key: "teamwork", RatingValue: 3},
	}

	result := Score(ratings, tmpl)
	if result.TotalScore != 84.0 {
		t.Fatalf("expected total 84.0, got %v", result.TotalScore)
	}
	if result.RatingLabel != LabelGood {
		t.Fatalf("expected label %q, got %q", LabelGood, result.RatingLabel)
	}
}

func TestScoreRenormalizesPartialWeights(t *testing.T) {
	tmpl := fiveScaleTemplate()
	ratings := []Rating{{Key: "quality", RatingValue: 5}}

	result := Score(ratings, tmpl)
	if result.TotalScore != 100.0 {
		t.Fatalf("expected renormalized total 100.0, got %v", result.TotalScore)
	}
	if result.RatingLabel != LabelExcellent {
		t.Fatalf("expected label %q, got %q", LabelExcellent, result.RatingLabel)
	}
}

func TestScoreRenormalizesOverweight(t *testing.T) {
	tmpl := fiveScaleTemplate()
	tmpl.Criteria = []Criterion{
		{Key: "a", Title: "A", Weight: 80},
		{Key: "b", Title: "B", Weight: 80},
	}
	ratings := []Rating{
		{Key: "a", RatingValue: 5},
		{Key: "b", RatingValue: 0},
	}

	// raw = 100*0.8 + 0 = 80, totalWeight 160 -> 80/160*100 = 50.
	result := Score(ratings, tmpl)
	if result.TotalScore != 50.0 {
		t.Fatalf("expected total 50.0, got %v", result.TotalScore)
	}
	if result.RatingLabel != LabelNeedsImprovement {
		t.Fatalf("expected label %q, got %q", LabelNeedsImprovement, result.RatingLabel)
	}
}

func TestScoreClampsOutOfRangeInputs(t *testing.T) {
	tmpl := fiveScaleTemplate()

	high := Score([]Rating{
		{Key: "quality", RatingValue: 12},
		{Key: "teamwork", RatingValue: 12},
	}, tmpl)
	if high.TotalScore != 100.0 {
		t.Fatalf("expected clamp to 100, got %v", high.TotalScore)
	}

	low := Score([]Rating{
		{Key: "quality", RatingValue: -3},
		{Key: "teamwork", RatingValue: -3},
	}, tmpl)
	if low.TotalScore != 0.0 {
		t.Fatalf("expected clamp to 0, got %v", low.TotalScore)
	}
}

func TestScoreUnmatchedCriterionCountsFullWeight(t *testing.T) {
	tmpl := fiveScaleTemplate()
	ratings := []Rating{
		{Key: "quality", RatingValue: 5},
		{Key: "mystery", RatingValue: 0},
	}

	// quality: 100*0.6 = 60, mystery: 0 at weight 100, totalWeight 160.
	result := Score(ratings, tmpl)
	if result.TotalScore != 37.5 {
		t.Fatalf("expected total 37.5, got %v", result.TotalScore)
	}
}

func TestScoreEmptyRatings(t *testing.T) {
	result := Score(nil, fiveScaleTemplate())
	if result.TotalScore != 0 {
		t.Fatalf("expected zero total, got %v", result.TotalScore)
	}
	if result.RatingLabel != LabelUnsatisfactory {
		t.Fatalf("expected label %q, got %q", LabelUnsatisfactory, result.RatingLabel)
	}
}

func TestRatingLabelBandBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{90.0, LabelExcellent},
		{89.99, LabelGood},
		{75.0, LabelGood},
		{74.99, LabelSatisfactory},
		{60.0, LabelSatisfactory},
		{59.99, LabelNeedsImprovement},
		{50.0, LabelNeedsImprovement},
		{49.99, LabelUnsatisfactory},
		{0, LabelUnsatisfactory},
		{100, LabelExcellent},
	}
	for _, tc := range cases {
		if got := ratingLabel(tc.score, nil); got != tc.want {
			t.Fatalf("score %v: expected %q, got %q", tc.score, tc.want, got)
		}
	}
}

func TestRatingLabelExplicitScaleLabels(t *testing.T) {
	labels := []string{"Poor", "Fair", "Great"}
	cases := []struct {
		score float64
		want  string
	}{
		{0, "Poor"},
		{33.0, "Poor"},
		{33.34, "Fair"},
		{66.0, "Fair"},
		{67.0, "Great"},
		{100, "Great"},
	}
	for _, tc := range cases {
		if got := ratingLabel(tc.score, labels); got != tc.want {
			t.Fatalf("score %v: expected %q, got %q", tc.score, tc.want, got)
		}
	}
}

func TestScoreDegenerateScale(t *testing.T) {
	tmpl := fiveScaleTemplate()
	tmpl.RatingScale.Min = 3
	tmpl.RatingScale.Max = 3

	result := Score([]Rating{{Key: "quality", RatingValue: 3}}, tmpl)
	if result.TotalScore != 0 {
		t.Fatalf("expected zero total on degenerate scale, got %v", result.TotalScore)
	}
}
