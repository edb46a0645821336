package core

import (
	"math"

	"github.com/SamuelRCrider/amendment13-go/utils"
)

var severityIDs = map[Severity]int{
	SeverityCritical: 5,
	SeverityHigh:     4,
	SeverityMedium:   3,
	SeverityLow:      2,
	SeverityInfo:     1,
}

var severityNames = map[int]string{
	0: "Unknown",
	1: "Informational",
	2: "Low",
	3: "Medium",
	4: "High",
	5: "Critical",
}

var impactIDs = map[Severity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
	SeverityInfo:     0,
}

// impact and risk level share the same OCSF enumeration
var levelNames = map[int]string{
	0: "Info",
	1: "Low",
	2: "Medium",
	3: "High",
	4: "Critical",
}

// Disposition ids used for data security findings
const (
	DispositionTruePositive = 2
	DispositionOther        = 99
)

var dispositionNames = map[int]string{
	DispositionTruePositive: "True Positive",
	DispositionOther:        "Other",
}

// Confidentiality ids derived from the sensitive data answer
const (
	ConfidentialityPublic       = 1
	ConfidentialityInternal     = 2
	ConfidentialityConfidential = 3
	ConfidentialitySecret       = 4
)

var confidentialityNames = map[int]string{
	ConfidentialityPublic:       "Public",
	ConfidentialityInternal:     "Internal",
	ConfidentialityConfidential: "Confidential",
	ConfidentialitySecret:       "Secret",
}

// breachCategories are the violation categories treated as a suspected breach
var breachCategories = map[Category]bool{
	CategoryConsent:      true,
	CategoryDataSubjects: true,
}

// dataSecurityCategories are the categories exported as Data Security Findings
var dataSecurityCategories = map[Category]bool{
	CategoryDataSubjects:     true,
	CategoryConsent:          true,
	CategoryAccessRights:     true,
	CategoryDataMinimization: true,
	CategoryPrivacyNotice:    true,
	CategoryThirdParty:       true,
}

// dpoOrgTypes always require a Data Protection Officer
var dpoOrgTypes = map[string]bool{
	"public":     true,
	"databroker": true,
}

// largeScaleBuckets are the three largest data_subjects_count buckets
var largeScaleBuckets = map[string]bool{
	"100k_500k": true,
	"500k_1m":   true,
	"over_1m":   true,
}

// MapSeverity returns the OCSF severity_id of a violation severity
func MapSeverity(s Severity) int {
	return severityIDs[s]
}

// SeverityName returns the OCSF caption of a severity_id
func SeverityName(id int) string {
	if name, ok := severityNames[id]; ok {
		return name
	}
	return severityNames[0]
}

// MapImpact returns the OCSF impact_id of a violation severity
func MapImpact(s Severity) int {
	return impactIDs[s]
}

// LevelName returns the OCSF caption shared by impact_id and risk_level_id
func LevelName(id int) string {
	if name, ok := levelNames[id]; ok {
		return name
	}
	return levelNames[0]
}

// IsSuspectedBreach reports whether a violation category indicates a breach
func IsSuspectedBreach(c Category) bool {
	return breachCategories[c]
}

// IsDataSecurityCategory reports whether a category is exported as a
// Data Security Finding
func IsDataSecurityCategory(c Category) bool {
	return dataSecurityCategories[c]
}

// DispositionID returns the disposition for a breach suspicion flag
func DispositionID(suspectedBreach bool) int {
	if suspectedBreach {
		return DispositionTruePositive
	}
	return DispositionOther
}

// DispositionName returns the OCSF caption of a disposition_id
func DispositionName(id int) string {
	return dispositionNames[id]
}

// ConfidentialityLevel derives the confidentiality id from the sensitive
// data tags. Medical and biometric data take precedence over financial and
// criminal records.
func ConfidentialityLevel(sensitiveData []string) int {
	switch {
	case len(sensitiveData) == 0:
		return ConfidentialityPublic
	case utils.ContainsAny(sensitiveData, "medical", "biometric"):
		return ConfidentialitySecret
	case utils.ContainsAny(sensitiveData, "financial", "criminal"):
		return ConfidentialityConfidential
	default:
		return ConfidentialityInternal
	}
}

// ConfidentialityName returns the caption of a confidentiality id
func ConfidentialityName(id int) string {
	if name, ok := confidentialityNames[id]; ok {
		return name
	}
	return "Unknown"
}

// RequiresDPO reports whether the organization must appoint a Data
// Protection Officer
func RequiresDPO(answers Answers) bool {
	if dpoOrgTypes[answers.OrgType()] {
		return true
	}
	return len(answers.SensitiveData()) > 0 && largeScaleBuckets[answers.DataSubjectsCount()]
}

// HasSensitiveData reports whether any sensitive data category was selected
func HasSensitiveData(answers Answers) bool {
	return len(answers.SensitiveData()) > 0
}

// ImpactScore expresses a violation's fine as a share (0-100) of the total
// fine exposure. A missing fine yields 0; a total below the fine counts the
// fine as the whole exposure.
func ImpactScore(fine, totalFines float64) int {
	if fine <= 0 {
		return 0
	}
	if totalFines < fine {
		totalFines = fine
	}
	return int(math.Round(fine / totalFines * 100))
}

// RiskScore converts the assessment compliance score (0-100, higher is
// better) into an OCSF risk score (0-100, higher is riskier)
func RiskScore(complianceScore float64) int {
	risk := math.Round(100 - complianceScore)
	switch {
	case risk < 0:
		return 0
	case risk > 100:
		return 100
	default:
		return int(risk)
	}
}
