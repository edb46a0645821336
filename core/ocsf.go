package core

// OCSF schema constants
const (
	OCSFVersion = "1.6.0"

	CategoryUIDFindings  = 2
	CategoryNameFindings = "Findings"

	ClassUIDComplianceFinding    = 2003
	ClassNameComplianceFinding   = "Compliance Finding"
	ClassUIDDataSecurityFinding  = 2006
	ClassNameDataSecurityFinding = "Data Security Finding"

	ActivityIDCreate   = 1
	ActivityNameCreate = "Create"

	StatusIDNew   = 1
	StatusNameNew = "New"

	ComplianceStatusIDFail   = 3
	ComplianceStatusNameFail = "Fail"

	DetectionSystemIDOther = 99
	DetectionSystemName    = "Privacy Self-Assessment Questionnaire"

	// ComplianceStandard names the regulation every finding is checked against
	ComplianceStandard = "Israel Privacy Protection Law, Amendment 13"
)

// TypeUID computes the OCSF type_uid of a class and activity
func TypeUID(classUID, activityID int) int {
	return classUID*100 + activityID
}

// Product describes the product emitting the findings
type Product struct {
	Name       string `json:"name" yaml:"name"`
	VendorName string `json:"vendor_name" yaml:"vendor_name"`
	Version    string `json:"version" yaml:"version"`
}

// Metadata is the OCSF metadata object
type Metadata struct {
	Version string  `json:"version"`
	Product Product `json:"product"`
	LogName string  `json:"log_name,omitempty"`
}

// KBArticle is a knowledge base reference attached to a remediation
type KBArticle struct {
	Title  string `json:"title"`
	SrcURL string `json:"src_url"`
}

// Remediation is the OCSF remediation object
type Remediation struct {
	Desc          string      `json:"desc"`
	KBArticleList []KBArticle `json:"kb_article_list,omitempty"`
	References    []string    `json:"references,omitempty"`
}

// FindingInfo is the OCSF finding_info object
type FindingInfo struct {
	UID         string   `json:"uid"`
	Title       string   `json:"title"`
	Desc        string   `json:"desc,omitempty"`
	Types       []string `json:"types,omitempty"`
	CreatedTime int64    `json:"created_time"`
}

// Compliance is the OCSF compliance object of a Compliance Finding
type Compliance struct {
	Standards    []string `json:"standards"`
	Control      string   `json:"control,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	StatusID     int      `json:"status_id"`
	Status       string   `json:"status"`
}

// Policy is the OCSF policy object referenced by a data security finding
type Policy struct {
	Name string `json:"name"`
	Desc string `json:"desc,omitempty"`
}

// DataSecurity is the OCSF data_security object
type DataSecurity struct {
	Category           string `json:"category"`
	ConfidentialityID  int    `json:"confidentiality_id"`
	Confidentiality    string `json:"confidentiality"`
	DetectionSystemID  int    `json:"detection_system_id"`
	DetectionSystem    string `json:"detection_system"`
	DataLifecycleState string `json:"data_lifecycle_state,omitempty"`
	Policy             Policy `json:"policy"`
}

// Unmapped carries assessment context that has no OCSF attribute
type Unmapped struct {
	AssessmentAnswers map[string]interface{} `json:"assessment_answers"`
	ViolationCategory string                 `json:"violation_category"`
	OrganizationType  string                 `json:"organization_type"`
	DataSubjectsScale string                 `json:"data_subjects_scale"`
	Fine              float64                `json:"fine"`
	RequiresDPO       bool                   `json:"requires_dpo"`
}

// findingBase holds the attributes shared by every finding class
type findingBase struct {
	ActivityID   int         `json:"activity_id"`
	ActivityName string      `json:"activity_name"`
	CategoryUID  int         `json:"category_uid"`
	CategoryName string      `json:"category_name"`
	ClassUID     int         `json:"class_uid"`
	ClassName    string      `json:"class_name"`
	TypeUID      int         `json:"type_uid"`
	Time         int64       `json:"time"`
	SeverityID   int         `json:"severity_id"`
	Severity     string      `json:"severity"`
	StatusID     int         `json:"status_id"`
	Status       string      `json:"status"`
	Message      string      `json:"message"`
	Metadata     Metadata    `json:"metadata"`
	FindingInfo  FindingInfo `json:"finding_info"`
	Unmapped     Unmapped    `json:"unmapped"`
}

// ComplianceFinding is an OCSF class 2003 record
type ComplianceFinding struct {
	findingBase
	ImpactID    int         `json:"impact_id"`
	Impact      string      `json:"impact"`
	ImpactScore int         `json:"impact_score"`
	Compliance  Compliance  `json:"compliance"`
	Remediation Remediation `json:"remediation"`
}

// DataSecurityFinding is an OCSF class 2006 record
type DataSecurityFinding struct {
	findingBase
	ImpactID          int          `json:"impact_id"`
	Impact            string       `json:"impact"`
	ImpactScore       int          `json:"impact_score"`
	RiskLevelID       int          `json:"risk_level_id"`
	RiskLevel         string       `json:"risk_level"`
	RiskScore         int          `json:"risk_score"`
	IsSuspectedBreach bool         `json:"is_suspected_breach"`
	DispositionID     int          `json:"disposition_id"`
	Disposition       string       `json:"disposition"`
	DataSecurity      DataSecurity `json:"data_security"`
	Remediation       Remediation  `json:"remediation"`
}

// ComplianceDocument is the export of class 2003 findings
type ComplianceDocument struct {
	Version  string              `json:"version"`
	Metadata *Metadata           `json:"metadata,omitempty"`
	Findings []ComplianceFinding `json:"findings"`
}

// DataSecurityDocument is the export of class 2006 findings. Metadata is
// omitted when no violation falls in a data security category.
type DataSecurityDocument struct {
	Version  string                `json:"version"`
	Metadata *Metadata             `json:"metadata,omitempty"`
	Findings []DataSecurityFinding `json:"findings"`
}

// RecommendationRecord is an OCSF shaped remediation entry
type RecommendationRecord struct {
	UID           string      `json:"uid"`
	Title         string      `json:"title"`
	Desc          string      `json:"desc"`
	Priority      string      `json:"priority"`
	PriorityID    int         `json:"priority_id"`
	Category      string      `json:"category"`
	CategoryName  string      `json:"category_name"`
	Timeline      string      `json:"timeline"`
	References    []string    `json:"references,omitempty"`
	KBArticleList []KBArticle `json:"kb_article_list"`
	Time          int64       `json:"time"`
}

// SeverityCounts counts violations per severity
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Info     int `json:"info"`
	Unknown  int `json:"unknown"`
}

// Summary is the headline block of a combined report
type Summary struct {
	TotalFindings        int            `json:"total_findings"`
	DataSecurityFindings int            `json:"data_security_findings"`
	BySeverity           SeverityCounts `json:"by_severity"`
	Score                float64        `json:"score"`
	RiskLevel            string         `json:"risk_level"`
	RiskLevelID          int            `json:"risk_level_id"`
	TotalFines           float64        `json:"total_fines"`
	RequiresDPO          bool           `json:"requires_dpo"`
	HasSensitiveData     bool           `json:"has_sensitive_data"`
	ConfidentialityID    int            `json:"confidentiality_id"`
	OrganizationType     string         `json:"organization_type"`
	DataSubjectsScale    string         `json:"data_subjects_scale"`
}

// CombinedReport aggregates every export of one assessment
type CombinedReport struct {
	Version              string                 `json:"version"`
	Metadata             Metadata               `json:"metadata"`
	GeneratedAt          int64                  `json:"generated_at"`
	Summary              Summary                `json:"summary"`
	ComplianceFindings   ComplianceDocument     `json:"compliance_findings"`
	DataSecurityFindings DataSecurityDocument   `json:"data_security_findings"`
	Recommendations      []RecommendationRecord `json:"recommendations"`
	ComplianceMatrix     interface{}            `json:"compliance_matrix"`
}
