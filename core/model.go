package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/SamuelRCrider/amendment13-go/utils"
)

// Severity is the severity assigned to a violation by the scoring engine
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Category identifies the compliance area a violation belongs to
type Category string

const (
	CategoryDataSubjects       Category = "data_subjects"
	CategoryConsent            Category = "consent"
	CategoryAccessRights       Category = "access_rights"
	CategoryDataMinimization   Category = "data_minimization"
	CategoryPrivacyNotice      Category = "privacy_notice"
	CategoryThirdParty         Category = "third_party"
	CategoryDPO                Category = "dpo"
	CategoryRegistration       Category = "registration"
	CategorySecurity           Category = "security"
	CategoryDataRetention      Category = "data_retention"
	CategoryCrossBorder        Category = "cross_border_transfer"
	CategoryBreachNotification Category = "breach_notification"
)

// Answer keys the exporter reads from the questionnaire
const (
	AnswerOrgType           = "org_type"
	AnswerDataSubjectsCount = "data_subjects_count"
	AnswerSensitiveData     = "sensitive_data"
)

// RiskLevel is the overall risk rating of an assessment
type RiskLevel struct {
	Label string `json:"label"`
}

// Violation describes one failed compliance check
type Violation struct {
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Severity     Severity `json:"severity"`
	LawReference string   `json:"law_reference,omitempty"`
	Fine         float64  `json:"fine,omitempty"`
}

// Recommendation is a remediation step suggested by the scoring engine
type Recommendation struct {
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Timeline    string `json:"timeline"`
	Reference   string `json:"reference,omitempty"`
}

// AssessmentResult is the output of the questionnaire scoring engine
type AssessmentResult struct {
	Score            float64          `json:"score"`
	RiskLevel        RiskLevel        `json:"riskLevel"`
	Violations       []Violation      `json:"violations"`
	TotalFines       float64          `json:"totalFines"`
	Recommendations  []Recommendation `json:"recommendations"`
	ComplianceMatrix interface{}      `json:"complianceMatrix,omitempty"`
}

// Answers holds the raw questionnaire answers keyed by question id
type Answers map[string]interface{}

// OrgType returns the organization type answer or an empty string
func (a Answers) OrgType() string {
	return utils.StringValue(a, AnswerOrgType)
}

// DataSubjectsCount returns the data subject scale bucket or an empty string
func (a Answers) DataSubjectsCount() string {
	return utils.StringValue(a, AnswerDataSubjectsCount)
}

// SensitiveData returns the selected sensitive data tags
func (a Answers) SensitiveData() []string {
	return utils.StringSlice(a, AnswerSensitiveData)
}

// DecodeResults reads an assessment result encoded as JSON
func DecodeResults(r io.Reader) (*AssessmentResult, error) {
	var results AssessmentResult
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode assessment results: %w", err)
	}
	return &results, nil
}

// DecodeAnswers reads questionnaire answers encoded as a JSON object
func DecodeAnswers(r io.Reader) (Answers, error) {
	answers := Answers{}
	if err := json.NewDecoder(r).Decode(&answers); err != nil {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}
	return answers, nil
}
