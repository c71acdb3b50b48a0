package domain

type UrgencyLevel string

const (
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyModerate UrgencyLevel = "moderate"
	UrgencyLow      UrgencyLevel = "low"
)

func (u UrgencyLevel) Known() bool {
	switch u {
	case UrgencyCritical, UrgencyHigh, UrgencyModerate, UrgencyLow:
		return true
	}
	return false
}

type TestPriority string

const (
	TestPriorityImmediate TestPriority = "immediate"
	TestPriorityUrgent    TestPriority = "urgent"
	TestPriorityRoutine   TestPriority = "routine"
)

func (p TestPriority) Known() bool {
	switch p {
	case TestPriorityImmediate, TestPriorityUrgent, TestPriorityRoutine:
		return true
	}
	return false
}

type EvidenceGrade string

const (
	EvidenceGradeA EvidenceGrade = "A"
	EvidenceGradeB EvidenceGrade = "B"
	EvidenceGradeC EvidenceGrade = "C"
)

func (g EvidenceGrade) Known() bool {
	switch g {
	case EvidenceGradeA, EvidenceGradeB, EvidenceGradeC:
		return true
	}
	return false
}

type Diagnosis struct {
	Name               string         `json:"name"`
	Confidence         float64        `json:"confidence"`
	Priority           UrgencyLevel   `json:"priority"`
	ICD10Code          string         `json:"icd10Code,omitempty"`
	KeyIndicators      []KeyIndicator `json:"keyIndicators"`
	DifferentialPoints []string       `json:"differentialPoints"`
}

type KeyIndicator struct {
	Indicator string `json:"indicator"`
	Present   bool   `json:"present"`
	Critical  bool   `json:"critical,omitempty"`
}

type ReasoningStep struct {
	Step          int           `json:"step"`
	Title         string        `json:"title"`
	Input         string        `json:"input"`
	Conclusion    string        `json:"conclusion"`
	Source        string        `json:"source,omitempty"`
	EvidenceGrade EvidenceGrade `json:"evidenceGrade,omitempty"`
}

type RecommendedTest struct {
	Name      string       `json:"name"`
	Rationale string       `json:"rationale"`
	Priority  TestPriority `json:"priority"`
	Completed bool         `json:"completed,omitempty"`
}

type TreatmentPathway struct {
	Category        string   `json:"category"`
	Recommendations []string `json:"recommendations"`
	RedFlags        []string `json:"redFlags"`
	FollowUp        string   `json:"followUp"`
}

type Reference struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Source string `json:"source"`
	Year   int    `json:"year,omitempty"`
	URL    string `json:"url,omitempty"`
}

type DiagnosisResult struct {
	Urgency               UrgencyLevel       `json:"urgency"`
	UrgencyMessage        string             `json:"urgencyMessage"`
	DifferentialDiagnoses []Diagnosis        `json:"differentialDiagnoses"`
	ClinicalReasoning     []ReasoningStep    `json:"clinicalReasoning"`
	RecommendedTests      []RecommendedTest  `json:"recommendedTests"`
	TreatmentPathways     []TreatmentPathway `json:"treatmentPathways"`
	References            []Reference        `json:"references"`
}

// TopDiagnosis returns the highest-ranked candidate, which is the first entry
// by contract with the model prompt.
func (r DiagnosisResult) TopDiagnosis() (Diagnosis, bool) {
	if len(r.DifferentialDiagnoses) == 0 {
		return Diagnosis{}, false
	}
	return r.DifferentialDiagnoses[0], true
}
