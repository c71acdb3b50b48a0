package prompt

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/clinsight/cdss-gateway/pkg/domain"
)

type SegmentKind string

const (
	SegmentText  SegmentKind = "text"
	SegmentMedia SegmentKind = "media"
)

// Segment is one entry of a multimodal generation payload. Text segments carry
// prose; media segments carry a base64 payload (no data-URL header) plus its
// MIME type.
type Segment struct {
	Kind SegmentKind
	Text string
	MIME string
	Data string
}

func (s Segment) DataURL() string {
	return "data:" + s.MIME + ";base64," + s.Data
}

const missingField = "Not specified (extract from attached documents if available)"

// BuildPatientContext renders intake data as the prose block the model
// analyzes. Every field appears even when empty: the model is told explicitly
// what is missing so it can fall back to attached documents.
func BuildPatientContext(patient domain.PatientData) string {
	var b strings.Builder

	b.WriteString("PATIENT DATA:\n")
	b.WriteString("- Age: " + lo.Ternary(patient.Age > 0, fmt.Sprintf("%d years", patient.Age), missingField) + "\n")
	b.WriteString("- Sex: " + lo.Ternary(patient.Sex != "", patient.Sex.Display(), missingField) + "\n")
	b.WriteString("- Chief Complaint: " + lo.Ternary(patient.ChiefComplaint != "", patient.ChiefComplaint, "See attached documents") + "\n")
	b.WriteString("- Symptoms: " + lo.Ternary(len(patient.Symptoms) > 0, strings.Join(patient.Symptoms, ", "), "Refer to attached documents") + "\n")

	history := patient.MedicalHistory
	b.WriteString("- Medical History: " + joinOrNone(history.Conditions) + "\n")
	b.WriteString("- Medications: " + joinOrNone(history.Medications) + "\n")
	b.WriteString("- Allergies: " + joinOrNone(history.Allergies) + "\n")
	b.WriteString("- Surgeries: " + joinOrNone(history.Surgeries) + "\n")
	b.WriteString("- Family History: " + joinOrNone(history.FamilyHistory) + "\n")
	b.WriteString("- Smoking: " + smokingLine(history.SocialHistory.Smoking) + "\n")
	b.WriteString("- Alcohol: " + alcoholLine(history.SocialHistory.Alcohol) + "\n")
	b.WriteString("- Occupation: " + lo.Ternary(history.SocialHistory.Occupation != "", history.SocialHistory.Occupation, "Not specified") + "\n")

	b.WriteString("- Lab Results: " + labLine(patient.LabResults) + "\n")
	b.WriteString("- Vital Signs: " + vitalsLine(patient.VitalSigns) + "\n")
	b.WriteString("- Additional Notes: " + lo.Ternary(patient.AdditionalNotes != "", patient.AdditionalNotes, "None") + "\n")

	b.WriteString("\nINSTRUCTION: If patient demographics (Age, Sex) or symptoms are missing above, prioritize extracting them from the attached content/files to form your analysis.\n")

	return b.String()
}

// BuildSegments produces the ordered payload for an analysis request: the
// patient context block first, then the per-file segments in list order.
// Image and pdf files contribute one media segment plus one caption text
// segment; text files contribute a single delimited text segment. Files
// without a payload are skipped without error.
func BuildSegments(patient domain.PatientData, files []domain.UploadedFile) []Segment {
	segments := []Segment{{Kind: SegmentText, Text: BuildPatientContext(patient)}}

	for _, f := range files {
		switch f.Kind {
		case domain.FileKindImage:
			if f.Data == "" {
				continue
			}
			mime, payload := splitDataURL(f.Data)
			segments = append(segments,
				Segment{Kind: SegmentMedia, MIME: lo.Ternary(mime != "", mime, "image/jpeg"), Data: payload},
				Segment{Kind: SegmentText, Text: fmt.Sprintf("[Image: %s]", f.Name)},
			)
		case domain.FileKindPDF:
			if f.Data == "" {
				continue
			}
			mime, payload := splitDataURL(f.Data)
			segments = append(segments,
				Segment{Kind: SegmentMedia, MIME: lo.Ternary(mime != "", mime, "application/pdf"), Data: payload},
				Segment{Kind: SegmentText, Text: fmt.Sprintf("[PDF Document: %s]", f.Name)},
			)
		case domain.FileKindText:
			if f.Content == "" {
				continue
			}
			segments = append(segments, Segment{
				Kind: SegmentText,
				Text: fmt.Sprintf("\n--- FROM FILE: %s ---\n%s\n--- END FILE ---\n", f.Name, f.Content),
			})
		}
	}

	return segments
}

// BuildChatContext condenses a case into the priming block for follow-up
// conversations: patient summary, urgency, top diagnosis and the concatenated
// reasoning conclusions.
func BuildChatContext(patient domain.PatientData, result domain.DiagnosisResult) string {
	topDiagnosis, _ := result.TopDiagnosis()
	conclusions := lo.Map(result.ClinicalReasoning, func(step domain.ReasoningStep, _ int) string {
		return step.Conclusion
	})

	return fmt.Sprintf(`%s

CONTEXT:
Patient Data:
Age: %d, Sex: %s, Chief Complaint: %s
Symptoms: %s

Diagnosis Result:
Urgency: %s
Top Diagnosis: %s
Reasoning: %s

Please answer the user's questions about this analysis, the diagnosis, or general medical queries related to this case.
Be helpful, empathetic, but clear that you are an AI assistant.
`,
		ChatSystemInstruction,
		patient.Age,
		patient.Sex.Display(),
		patient.ChiefComplaint,
		strings.Join(patient.Symptoms, ", "),
		result.Urgency,
		topDiagnosis.Name,
		strings.Join(conclusions, " "),
	)
}

func splitDataURL(raw string) (mime, payload string) {
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return "", raw
	}
	header, data, found := strings.Cut(rest, ",")
	if !found {
		return "", raw
	}
	return strings.TrimSuffix(header, ";base64"), data
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None reported"
	}
	return strings.Join(items, ", ")
}

func smokingLine(s *domain.SmokingHistory) string {
	if s == nil || !s.Status {
		return "No"
	}
	return fmt.Sprintf("Yes, %g pack-years", s.PackYears)
}

func alcoholLine(a *domain.AlcoholHistory) string {
	if a == nil || !a.Status {
		return "No"
	}
	if a.Frequency != "" {
		return "Yes, " + a.Frequency
	}
	return "Yes"
}

func labLine(labs []domain.LabResult) string {
	if len(labs) == 0 {
		return "Not provided"
	}
	lines := lo.Map(labs, func(l domain.LabResult, _ int) string {
		return fmt.Sprintf("%s %g %s (normal %g-%g, %s)", l.Name, l.Value, l.Unit, l.NormalRange.Min, l.NormalRange.Max, l.Status)
	})
	return strings.Join(lines, "; ")
}

func vitalsLine(v *domain.VitalSigns) string {
	if v == nil {
		return "Not provided"
	}

	var parts []string
	if v.Temperature != nil {
		parts = append(parts, fmt.Sprintf("Temperature %g", *v.Temperature))
	}
	if v.HeartRate != nil {
		parts = append(parts, fmt.Sprintf("Heart Rate %d", *v.HeartRate))
	}
	if v.BloodPressure != nil {
		parts = append(parts, fmt.Sprintf("BP %d/%d", v.BloodPressure.Systolic, v.BloodPressure.Diastolic))
	}
	if v.RespiratoryRate != nil {
		parts = append(parts, fmt.Sprintf("Respiratory Rate %d", *v.RespiratoryRate))
	}
	if v.OxygenSaturation != nil {
		parts = append(parts, fmt.Sprintf("SpO2 %d%%", *v.OxygenSaturation))
	}

	if len(parts) == 0 {
		return "Not provided"
	}
	return strings.Join(parts, ", ")
}
