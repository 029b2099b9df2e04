package appraisal

import "math"

type ScoreResult struct {
	TotalScore  float64 `json:"totalScore"`
	RatingLabel string  `json:"ratingLabel"`
}

func (t *Template) CriterionByKey(key string) *Criterion {
	for i := range t.Criteria {
		if t.Criteria[i].Key == key {
			return &t.Criteria[i]
		}
	}
	return nil
}

// Score computes the weighted total for a set of ratings against a template.
// Each rating contributes its normalized value scaled by the criterion
// weight; a rating whose key matches no criterion counts at full weight.
// When the weights of the rated criteria do not sum to 100 the total is
// renormalized over the actual weight sum, so partially rated templates
// still land on the 0-100 scale.
func Score(ratings []Rating, tmpl *Template) ScoreResult {
	var raw, totalWeight float64
	for _, r := range ratings {
		weight := 100.0
		if c := tmpl.CriterionByKey(r.Key); c != nil {
			weight = c.Weight
		}
		raw += normalizedPct(tmpl.RatingScale, r.RatingValue) * weight / 100
		totalWeight += weight
	}

	total := raw
	if totalWeight == 0 {
		total = 0
	} else if totalWeight != 100 {
		total = raw / totalWeight * 100
	}
	total = round2(clampPct(total))

	return ScoreResult{
		TotalScore:  total,
		RatingLabel: ratingLabel(total, tmpl.RatingScale.Labels),
	}
}

// normalizedPct maps a raw value onto 0-100 within the scale. A degenerate
// scale (max <= min) normalizes everything to zero.
func normalizedPct(scale RatingScale, value float64) float64 {
	if scale.Max <= scale.Min {
		return 0
	}
	return clampPct((value - scale.Min) / (scale.Max - scale.Min) * 100)
}

// ratingLabel picks the label for a 0-100 score. Explicit scale labels
// partition the range evenly; without them the default bands apply.
func ratingLabel(score float64, labels []string) string {
	if n := len(labels); n > 0 {
		idx := int(math.Floor(score / 100 * float64(n)))
		if idx >= n {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		return labels[idx]
	}

	switch {
	case score >= 90:
		return LabelExcellent
	case score >= 75:
		return LabelGood
	case score >= 60:
		return LabelSatisfactory
	case score >= 50:
		return LabelNeedsImprovement
	default:
		return LabelUnsatisfactory
	}
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
