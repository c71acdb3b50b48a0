package analysis

import (
	"errors"
	"testing"

	"github.com/clinsight/cdss-gateway/pkg/domain"
)

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode("not json at all")

	var parseErr *domain.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *domain.ParseError, got %T: %v", err, err)
	}
	if parseErr.Raw != "not json at all" {
		t.Errorf("ParseError.Raw = %q, want the original text", parseErr.Raw)
	}
}

func TestDecodeDefaultsMissingLists(t *testing.T) {
	result, err := Decode(`{"urgency":"high","urgencyMessage":"act soon"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RecommendedTests == nil || len(result.RecommendedTests) != 0 {
		t.Errorf("RecommendedTests = %v, want empty non-nil slice", result.RecommendedTests)
	}
	if result.DifferentialDiagnoses == nil {
		t.Error("DifferentialDiagnoses is nil, want empty slice")
	}
	if result.ClinicalReasoning == nil {
		t.Error("ClinicalReasoning is nil, want empty slice")
	}
	if result.TreatmentPathways == nil {
		t.Error("TreatmentPathways is nil, want empty slice")
	}
	if result.References == nil {
		t.Error("References is nil, want empty slice")
	}
}

func TestDecodeClampsUnknownEnumerations(t *testing.T) {
	result, err := Decode(`{
		"urgency": "catastrophic",
		"differentialDiagnoses": [{"name": "X", "priority": "severe"}],
		"clinicalReasoning": [{"step": 1, "conclusion": "c", "evidenceGrade": "Z"}],
		"recommendedTests": [{"name": "CBC", "priority": "whenever"}]
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Urgency != domain.UrgencyModerate {
		t.Errorf("urgency = %q, want clamp to %q", result.Urgency, domain.UrgencyModerate)
	}
	if got := result.DifferentialDiagnoses[0].Priority; got != domain.UrgencyModerate {
		t.Errorf("diagnosis priority = %q, want clamp to %q", got, domain.UrgencyModerate)
	}
	if got := result.RecommendedTests[0].Priority; got != domain.TestPriorityRoutine {
		t.Errorf("test priority = %q, want clamp to %q", got, domain.TestPriorityRoutine)
	}
	if got := result.ClinicalReasoning[0].EvidenceGrade; got != "" {
		t.Errorf("evidence grade = %q, want cleared", got)
	}
}

func TestDecodeKeepsKnownValues(t *testing.T) {
	result, err := Decode(`{
		"urgency": "critical",
		"urgencyMessage": "immediate attention",
		"differentialDiagnoses": [{
			"name": "Pulmonary embolism",
			"confidence": 85,
			"priority": "critical",
			"icd10Code": "I26.9",
			"keyIndicators": [{"indicator": "D-dimer elevated", "present": true, "critical": true}],
			"differentialPoints": ["Sudden onset"]
		}],
		"recommendedTests": [{"name": "CT angiography", "rationale": "confirm PE", "priority": "immediate"}]
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Urgency != domain.UrgencyCritical {
		t.Errorf("urgency = %q, want critical", result.Urgency)
	}
	top, ok := result.TopDiagnosis()
	if !ok {
		t.Fatal("expected a top diagnosis")
	}
	if top.Name != "Pulmonary embolism" || top.Priority != domain.UrgencyCritical {
		t.Errorf("top diagnosis = %+v", top)
	}
	if len(top.KeyIndicators) != 1 || !top.KeyIndicators[0].Critical {
		t.Errorf("key indicators = %+v", top.KeyIndicators)
	}
	if result.RecommendedTests[0].Priority != domain.TestPriorityImmediate {
		t.Errorf("test priority = %q, want immediate", result.RecommendedTests[0].Priority)
	}
}

func TestNormalizeNestedNilLists(t *testing.T) {
	result := Normalize(domain.DiagnosisResult{
		Urgency:               domain.UrgencyLow,
		DifferentialDiagnoses: []domain.Diagnosis{{Name: "X", Priority: domain.UrgencyLow}},
		TreatmentPathways:     []domain.TreatmentPathway{{Category: "Initial"}},
	})

	if result.DifferentialDiagnoses[0].KeyIndicators == nil {
		t.Error("KeyIndicators is nil, want empty slice")
	}
	if result.DifferentialDiagnoses[0].DifferentialPoints == nil {
		t.Error("DifferentialPoints is nil, want empty slice")
	}
	if result.TreatmentPathways[0].Recommendations == nil {
		t.Error("Recommendations is nil, want empty slice")
	}
	if result.TreatmentPathways[0].RedFlags == nil {
		t.Error("RedFlags is nil, want empty slice")
	}
}
