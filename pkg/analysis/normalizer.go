// Package analysis turns the candidate JSON extracted from a model reply into
// a DiagnosisResult the rendering side can consume without nil checks.
package analysis

import (
	"encoding/json"

	"github.com/clinsight/cdss-gateway/pkg/domain"
)

// Decode unmarshals candidate and normalizes the result. A malformed payload
// yields a *domain.ParseError carrying the candidate text; there is no partial
// success.
func Decode(candidate string) (domain.DiagnosisResult, error) {
	var result domain.DiagnosisResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		return domain.DiagnosisResult{}, &domain.ParseError{Raw: candidate, Err: err}
	}
	return Normalize(result), nil
}

// Normalize makes a decoded result renderable: absent lists become empty
// slices at every level, and enumeration values outside the known sets clamp
// to safe defaults (urgency and diagnosis priority to moderate, test priority
// to routine); unknown evidence grades are cleared.
func Normalize(r domain.DiagnosisResult) domain.DiagnosisResult {
	if !r.Urgency.Known() {
		r.Urgency = domain.UrgencyModerate
	}

	r.DifferentialDiagnoses = orEmpty(r.DifferentialDiagnoses)
	for i, d := range r.DifferentialDiagnoses {
		if !d.Priority.Known() {
			d.Priority = domain.UrgencyModerate
		}
		d.KeyIndicators = orEmpty(d.KeyIndicators)
		d.DifferentialPoints = orEmpty(d.DifferentialPoints)
		r.DifferentialDiagnoses[i] = d
	}

	r.ClinicalReasoning = orEmpty(r.ClinicalReasoning)
	for i, step := range r.ClinicalReasoning {
		if step.EvidenceGrade != "" && !step.EvidenceGrade.Known() {
			step.EvidenceGrade = ""
		}
		r.ClinicalReasoning[i] = step
	}

	r.RecommendedTests = orEmpty(r.RecommendedTests)
	for i, test := range r.RecommendedTests {
		if !test.Priority.Known() {
			test.Priority = domain.TestPriorityRoutine
		}
		r.RecommendedTests[i] = test
	}

	r.TreatmentPathways = orEmpty(r.TreatmentPathways)
	for i, p := range r.TreatmentPathways {
		p.Recommendations = orEmpty(p.Recommendations)
		p.RedFlags = orEmpty(p.RedFlags)
		r.TreatmentPathways[i] = p
	}

	r.References = orEmpty(r.References)

	return r
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
