package appraisal

// RatingInput accepts both wire shapes clients send for a criterion rating:
// the canonical {key, ratingValue, comments} and the legacy
// {criterionKey, score, comment}. Canonical fields win when both are set.
type RatingInput struct {
	Key         string   `json:"key,omitempty"`
	RatingValue *float64 `json:"ratingValue,omitempty"`
	Comments    string   `json:"comments,omitempty"`

	CriterionKey string   `json:"criterionKey,omitempty"`
	Score        *float64 `json:"score,omitempty"`
	Comment      string   `json:"comment,omitempty"`
}

func (in RatingInput) key() string {
	if in.Key != "" {
		return in.Key
	}
	return in.CriterionKey
}

func (in RatingInput) value() float64 {
	if in.RatingValue != nil {
		return *in.RatingValue
	}
	if in.Score != nil {
		return *in.Score
	}
	return 0
}

func (in RatingInput) comments() string {
	if in.Comments != "" {
		return in.Comments
	}
	return in.Comment
}

// NormalizeRatings canonicalizes raw inputs against the template: every
// rating gets its criterion title and per-criterion weighted score resolved.
// A key that matches no criterion is kept, reusing the key as the title at
// full weight, so ad-hoc ratings survive template edits.
func NormalizeRatings(inputs []RatingInput, tmpl *Template) ([]Rating, error) {
	ratings := make([]Rating, 0, len(inputs))
	for _, in := range inputs {
		key := in.key()
		if key == "" {
			return nil, validationf("rating criterion key is required")
		}

		title := key
		weight := 100.0
		if c := tmpl.CriterionByKey(key); c != nil {
			weight = c.Weight
			if c.Title != "" {
				title = c.Title
			}
		}

		value := in.value()
		weighted := round2(normalizedPct(tmpl.RatingScale, value) * weight / 100)
		ratings = append(ratings, Rating{
			Key:           key,
			Title:         title,
			RatingValue:   value,
			WeightedScore: &weighted,
			Comments:      in.comments(),
		})
	}
	return ratings, nil
}
