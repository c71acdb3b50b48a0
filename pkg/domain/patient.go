package domain

type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
	SexOther  Sex = "Other"
)

// Display returns the spelled-out form used in prompts.
func (s Sex) Display() string {
	switch s {
	case SexMale:
		return "Male"
	case SexFemale:
		return "Female"
	default:
		return "Other"
	}
}

type PatientData struct {
	Age             int            `json:"age"`
	Sex             Sex            `json:"sex"`
	ChiefComplaint  string         `json:"chiefComplaint"`
	Symptoms        []string       `json:"symptoms"`
	MedicalHistory  MedicalHistory `json:"medicalHistory"`
	LabResults      []LabResult    `json:"labResults,omitempty"`
	VitalSigns      *VitalSigns    `json:"vitalSigns,omitempty"`
	AdditionalNotes string         `json:"additionalNotes,omitempty"`
}

type MedicalHistory struct {
	Conditions    []string      `json:"conditions"`
	Medications   []string      `json:"medications"`
	Allergies     []string      `json:"allergies"`
	Surgeries     []string      `json:"surgeries"`
	FamilyHistory []string      `json:"familyHistory"`
	SocialHistory SocialHistory `json:"socialHistory"`
}

type SocialHistory struct {
	Smoking    *SmokingHistory `json:"smoking,omitempty"`
	Alcohol    *AlcoholHistory `json:"alcohol,omitempty"`
	Occupation string          `json:"occupation,omitempty"`
}

type SmokingHistory struct {
	Status    bool    `json:"status"`
	PackYears float64 `json:"packYears,omitempty"`
}

type AlcoholHistory struct {
	Status    bool   `json:"status"`
	Frequency string `json:"frequency,omitempty"`
}

type LabResult struct {
	Name        string     `json:"name"`
	Value       float64    `json:"value"`
	Unit        string     `json:"unit"`
	NormalRange ValueRange `json:"normalRange"`
	Status      string     `json:"status"`
}

type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type VitalSigns struct {
	Temperature      *float64       `json:"temperature,omitempty"`
	HeartRate        *int           `json:"heartRate,omitempty"`
	BloodPressure    *BloodPressure `json:"bloodPressure,omitempty"`
	RespiratoryRate  *int           `json:"respiratoryRate,omitempty"`
	OxygenSaturation *int           `json:"oxygenSaturation,omitempty"`
}

type BloodPressure struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}
