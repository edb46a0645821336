package core

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

type fixedIDs struct {
	suffix string
}

func (f fixedIDs) Suffix() string { return f.suffix }

type sequenceIDs struct {
	n int
}

func (s *sequenceIDs) Suffix() string {
	s.n++
	return strings.Repeat("x", s.n)
}

func newTestExporter(opts ...Option) *Exporter {
	base := []Option{WithClock(FixedClock{T: fixedTime}), WithIDSource(fixedIDs{suffix: "abcd1234"})}
	return NewExporter(append(base, opts...)...)
}

func sampleResults() *AssessmentResult {
	return &AssessmentResult{
		Score:     42,
		RiskLevel: RiskLevel{Label: RiskLabelHigh},
		Violations: []Violation{
			{Description: "No consent mechanism", Category: CategoryConsent, Severity: SeverityCritical, LawReference: "Section 11", Fine: 50000},
			{Description: "No DPO appointed", Category: CategoryDPO, Severity: SeverityHigh, LawReference: "Section 17B"},
			{Description: "Excess data collected", Category: CategoryDataMinimization, Severity: SeverityMedium, Fine: 25000},
			{Description: "Database not registered", Category: CategoryRegistration, Severity: "bogus"},
		},
		TotalFines: 100000,
		Recommendations: []Recommendation{
			{Priority: "high", Category: "consent", Action: "Add consent flow", Description: "Collect explicit consent", Timeline: "30 days", Reference: "Section 11"},
			{Priority: "low", Category: "dpo", Action: "Appoint a DPO", Description: "Appoint a privacy officer", Timeline: "90 days"},
		},
		ComplianceMatrix: map[string]interface{}{"consent": "fail", "dpo": "fail"},
	}
}

func sampleAnswers() Answers {
	return Answers{
		"org_type":            "private",
		"data_subjects_count": "over_1m",
		"sensitive_data":      []interface{}{"financial"},
		"organization_name":   "Acme Ltd",
		"contact_details":     "ceo@acme.example",
		"has_website":         true,
	}
}

func TestExportComplianceFindings(t *testing.T) {
	e := newTestExporter()
	doc := e.ExportComplianceFindings(sampleResults(), sampleAnswers())

	require.Len(t, doc.Findings, 4)
	require.NotNil(t, doc.Metadata)
	assert.Equal(t, OCSFVersion, doc.Version)
	assert.Equal(t, OCSFVersion, doc.Metadata.Version)
	assert.Equal(t, DefaultProduct(), doc.Metadata.Product)

	f := doc.Findings[0]
	assert.Equal(t, 2003, f.ClassUID)
	assert.Equal(t, 2, f.CategoryUID)
	assert.Equal(t, 1, f.ActivityID)
	assert.Equal(t, 200301, f.TypeUID)
	assert.Equal(t, fixedTime.UnixMilli(), f.Time)
	assert.Equal(t, 5, f.SeverityID)
	assert.Equal(t, 4, f.ImpactID)
	assert.Equal(t, 50, f.ImpactScore)
	assert.Equal(t, "Section 11", f.Compliance.Control)
	assert.Equal(t, ComplianceStatusIDFail, f.Compliance.StatusID)
	assert.Equal(t, []string{ComplianceStandard}, f.Compliance.Standards)
	assert.Equal(t, "Consent Management", f.FindingInfo.Title)
	assert.Equal(t, DefaultKBArticle+"/consent", f.Remediation.KBArticleList[0].SrcURL)

	assert.Equal(t, 0, doc.Findings[1].ImpactScore, "missing fine yields impact_score 0")
	assert.Equal(t, 0, doc.Findings[3].SeverityID)
	assert.Equal(t, 0, doc.Findings[3].ImpactID)

	ids := map[string]bool{}
	for _, f := range doc.Findings {
		assert.False(t, ids[f.FindingInfo.UID], "duplicate id %s", f.FindingInfo.UID)
		ids[f.FindingInfo.UID] = true
	}
	assert.Equal(t, "a13-cf-1741944413000-0", doc.Findings[0].FindingInfo.UID)
}

func TestExportComplianceFindingsEmpty(t *testing.T) {
	e := newTestExporter()
	doc := e.ExportComplianceFindings(&AssessmentResult{Violations: []Violation{}}, Answers{})

	assert.NotNil(t, doc.Findings)
	assert.Empty(t, doc.Findings)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"findings":[]`)
	assert.Contains(t, string(data), `"metadata"`)
}

func TestExportDataSecurityFindings(t *testing.T) {
	e := newTestExporter()
	doc := e.ExportDataSecurityFindings(sampleResults(), sampleAnswers())

	require.Len(t, doc.Findings, 2)
	require.NotNil(t, doc.Metadata)

	consent := doc.Findings[0]
	assert.Equal(t, 2006, consent.ClassUID)
	assert.Equal(t, 200601, consent.TypeUID)
	assert.True(t, consent.IsSuspectedBreach)
	assert.Equal(t, 2, consent.DispositionID)
	assert.Equal(t, "True Positive", consent.Disposition)
	assert.Equal(t, 3, consent.RiskLevelID)
	assert.Equal(t, 58, consent.RiskScore)
	assert.Equal(t, 3, consent.DataSecurity.ConfidentialityID)
	assert.Equal(t, "Consent Management", consent.DataSecurity.Category)

	minimization := doc.Findings[1]
	assert.Equal(t, CategoryDataMinimization, Category(minimization.Unmapped.ViolationCategory))
	assert.False(t, minimization.IsSuspectedBreach)
	assert.Equal(t, 99, minimization.DispositionID)
	assert.Equal(t, ComplianceStandard, minimization.DataSecurity.Policy.Name)
}

func TestExportDataSecurityFindingsNoMatchOmitsMetadata(t *testing.T) {
	e := newTestExporter()
	results := &AssessmentResult{Violations: []Violation{
		{Description: "No DPO", Category: CategoryDPO, Severity: SeverityHigh},
		{Description: "Weak passwords", Category: CategorySecurity, Severity: SeverityMedium},
	}}

	doc := e.ExportDataSecurityFindings(results, sampleAnswers())

	assert.Nil(t, doc.Metadata)
	assert.NotNil(t, doc.Findings)
	assert.Empty(t, doc.Findings)

	var raw map[string]interface{}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]interface{}{"version": OCSFVersion, "findings": []interface{}{}}, raw)
}

func TestSanitizationRemovesIdentifyingFields(t *testing.T) {
	e := newTestExporter(WithConfig(NewConfigBuilder().WithRedactedFields("national_id").Build()))
	answers := sampleAnswers()
	answers["national_id"] = "123456789"
	answers["contact_email"] = "dpo@acme.example"

	report := e.ExportCombinedReport(sampleResults(), answers)

	check := func(embedded map[string]interface{}) {
		for _, key := range []string{"organization_name", "contact_details", "contact_email", "national_id"} {
			assert.NotContains(t, embedded, key)
		}
		assert.Equal(t, "private", embedded["org_type"])
		assert.Equal(t, "over_1m", embedded["data_subjects_count"])
		assert.Equal(t, []interface{}{"financial"}, embedded["sensitive_data"])
		assert.Equal(t, true, embedded["has_website"])
	}

	for _, f := range report.ComplianceFindings.Findings {
		check(f.Unmapped.AssessmentAnswers)
	}
	for _, f := range report.DataSecurityFindings.Findings {
		check(f.Unmapped.AssessmentAnswers)
	}

	assert.Equal(t, "Acme Ltd", answers["organization_name"], "input answers must not be mutated")
	assert.Equal(t, "ceo@acme.example", answers["contact_details"])

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Acme Ltd")
	assert.NotContains(t, string(data), "ceo@acme.example")
}

func TestCriticalConsentExample(t *testing.T) {
	e := newTestExporter()
	results := &AssessmentResult{
		Violations: []Violation{{Description: "No consent", Category: CategoryConsent, Severity: SeverityCritical, Fine: 50000}},
		TotalFines: 50000,
	}
	answers := Answers{"org_type": "public"}

	compliance := e.ExportComplianceFindings(results, answers)
	require.Len(t, compliance.Findings, 1)
	assert.Equal(t, 5, compliance.Findings[0].SeverityID)
	assert.Equal(t, 4, compliance.Findings[0].ImpactID)
	assert.Equal(t, 100, compliance.Findings[0].ImpactScore)
	assert.True(t, compliance.Findings[0].Unmapped.RequiresDPO)
	assert.Equal(t, "Public Body", compliance.Findings[0].Unmapped.OrganizationType)

	dataSecurity := e.ExportDataSecurityFindings(results, answers)
	require.Len(t, dataSecurity.Findings, 1)
	assert.True(t, dataSecurity.Findings[0].IsSuspectedBreach)
	assert.Equal(t, 2, dataSecurity.Findings[0].DispositionID)
	assert.Equal(t, 1, dataSecurity.Findings[0].DataSecurity.ConfidentialityID)
	assert.Equal(t, 0, dataSecurity.Findings[0].RiskLevelID, "missing risk label maps to 0")
}

func TestExportCombinedReport(t *testing.T) {
	e := newTestExporter()
	results := sampleResults()
	report := e.ExportCombinedReport(results, sampleAnswers())

	assert.Equal(t, OCSFVersion, report.Version)
	assert.Equal(t, fixedTime.UnixMilli(), report.GeneratedAt)
	assert.Len(t, report.ComplianceFindings.Findings, 4)
	assert.Len(t, report.DataSecurityFindings.Findings, 2)
	assert.Len(t, report.Recommendations, 2)
	assert.Equal(t, results.ComplianceMatrix, report.ComplianceMatrix)

	s := report.Summary
	assert.Equal(t, 4, s.TotalFindings)
	assert.Equal(t, 2, s.DataSecurityFindings)
	assert.Equal(t, SeverityCounts{Critical: 1, High: 1, Medium: 1, Unknown: 1}, s.BySeverity)
	assert.True(t, s.RequiresDPO)
	assert.True(t, s.HasSensitiveData)
	assert.Equal(t, 3, s.ConfidentialityID)
	assert.Equal(t, 3, s.RiskLevelID)
	assert.Equal(t, RiskLabelHigh, s.RiskLevel)
	assert.Equal(t, float64(100000), s.TotalFines)
	assert.Equal(t, "Private Company", s.OrganizationType)
	assert.Equal(t, "Over 1,000,000 data subjects", s.DataSubjectsScale)
}

func TestExportCombinedReportNilResults(t *testing.T) {
	e := newTestExporter()

	assert.NotPanics(t, func() {
		report := e.ExportCombinedReport(nil, nil)
		assert.Empty(t, report.ComplianceFindings.Findings)
		assert.Empty(t, report.DataSecurityFindings.Findings)
		assert.NotNil(t, report.Recommendations)
		assert.False(t, report.Summary.RequiresDPO)
		assert.Equal(t, 1, report.Summary.ConfidentialityID)
		assert.Equal(t, DefaultOrgTypeLabel, report.Summary.OrganizationType)
	})
}

func TestExportCombinedReportIsDeterministic(t *testing.T) {
	e := newTestExporter()

	first := e.ExportCombinedReport(sampleResults(), sampleAnswers())
	second := e.ExportCombinedReport(sampleResults(), sampleAnswers())
	assert.Equal(t, first, second)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestExportRecommendations(t *testing.T) {
	e := newTestExporter(WithIDSource(&sequenceIDs{}))
	recs := sampleResults().Recommendations

	records := e.ExportRecommendations(recs)
	require.Len(t, records, 2)

	assert.Equal(t, "a13-rec-1741944413000-x", records[0].UID)
	assert.Equal(t, "a13-rec-1741944413000-xx", records[1].UID)
	assert.Equal(t, "Add consent flow", records[0].Title)
	assert.Equal(t, "Collect explicit consent", records[0].Desc)
	assert.Equal(t, 4, records[0].PriorityID)
	assert.Equal(t, "Consent Management", records[0].CategoryName)
	assert.Equal(t, []string{"Section 11"}, records[0].References)
	assert.Nil(t, records[1].References)
	assert.Equal(t, "Data Protection Officer", records[1].CategoryName)
	assert.Equal(t, "30 days", records[0].Timeline)
}

func TestExportRecommendationsUniqueWithRepeatingSource(t *testing.T) {
	e := newTestExporter()
	recs := make([]Recommendation, 5)
	for i := range recs {
		recs[i] = Recommendation{Priority: "medium", Category: "unknown", Action: "act"}
	}

	records := e.ExportRecommendations(recs)
	seen := map[string]bool{}
	for _, r := range records {
		assert.False(t, seen[r.UID], "duplicate id %s", r.UID)
		seen[r.UID] = true
		assert.Equal(t, DefaultCategoryLabel, r.CategoryName)
		assert.Equal(t, DefaultKBArticle, r.KBArticleList[0].SrcURL)
	}
}

func TestExportRecommendationsEmpty(t *testing.T) {
	e := NewExporter()
	records := e.ExportRecommendations(nil)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestUUIDSourceSuffix(t *testing.T) {
	s := UUIDSource{}
	a, b := s.Suffix(), s.Suffix()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}

func TestWithConfigMergesPartialLabels(t *testing.T) {
	cfg := &Config{Labels: &LabelTables{
		OrgTypes:   map[string]string{"municipality": "Local Authority"},
		RiskLevels: map[string]int{"  חמור ": 4},
	}}
	e := newTestExporter(WithConfig(cfg))

	results := &AssessmentResult{
		Score:     20,
		RiskLevel: RiskLevel{Label: RiskLabelCritical},
		Violations: []Violation{
			{Description: "No consent", Category: CategoryConsent, Severity: SeverityCritical},
		},
	}
	doc := e.ExportDataSecurityFindings(results, Answers{"org_type": "municipality"})

	require.Len(t, doc.Findings, 1)
	finding := doc.Findings[0]
	assert.Equal(t, "Consent Management", finding.DataSecurity.Category)
	assert.Equal(t, 4, finding.RiskLevelID)
	assert.Equal(t, "Local Authority", finding.Unmapped.OrganizationType)
	assert.Equal(t, 4, e.Labels().RiskLevelID("חמור"))
}

func TestExporterIsolatedFromLaterConfigChanges(t *testing.T) {
	b := NewConfigBuilder().WithCategoryLabel(CategoryConsent, "Consent")
	cfg := b.Build()
	e := newTestExporter(WithConfig(cfg))

	b.WithCategoryLabel(CategoryConsent, "Mutated later").WithRedactedFields("passport")
	assert.Equal(t, "Consent", cfg.Labels.CategoryLabel(CategoryConsent), "built config is detached from the builder")
	assert.Empty(t, cfg.RedactFields)

	cfg.Labels.Categories[string(CategoryConsent)] = "Mutated config"
	cfg.RedactFields = append(cfg.RedactFields, "national_id")

	assert.Equal(t, "Consent", e.Labels().CategoryLabel(CategoryConsent))

	doc := e.ExportComplianceFindings(
		&AssessmentResult{Violations: []Violation{{Description: "No consent", Category: CategoryConsent, Severity: SeverityHigh}}},
		Answers{"national_id": "1", "passport": "2"},
	)
	require.Len(t, doc.Findings, 1)
	assert.Equal(t, "Consent", doc.Findings[0].FindingInfo.Title)
	assert.Contains(t, doc.Findings[0].Unmapped.AssessmentAnswers, "national_id")
	assert.Contains(t, doc.Findings[0].Unmapped.AssessmentAnswers, "passport")
}
