package model

// AnalysisFromSuggestion folds a transient classifier suggestion into the
// analysis shape persisted on a complaint.
func AnalysisFromSuggestion(provider string, s *ClassificationSuggestion) *Analysis {
	if s == nil {
		return nil
	}
	confidence := s.Confidence
	a := &Analysis{
		Provider:             provider,
		SuggestedDescription: s.Description,
		Confidence:           &confidence,
	}
	if s.MainCategory != nil {
		main := *s.MainCategory
		a.SuggestedMainCategory = &main
		a.SuggestedCategory = main
	}
	if s.SubCategory != nil {
		sub := *s.SubCategory
		a.SuggestedSubCategory = &sub
	}
	return a
}
