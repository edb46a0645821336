package core

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fallback values for keys missing from the label tables
const (
	DefaultOrgTypeLabel   = "Other Organization"
	DefaultDataScaleLabel = "Unknown Scale"
	DefaultCategoryLabel  = "Privacy Compliance"
	DefaultKBArticle      = "https://www.gov.il/he/departments/the_privacy_protection_authority"
)

// LabelTables holds the lookup tables used to produce human readable values.
// Tables are data: the defaults below can be extended or replaced from a
// configuration file without touching the mapping code.
type LabelTables struct {
	// RiskLevels maps localized risk labels to OCSF risk_level_id
	RiskLevels map[string]int `yaml:"risk_levels,omitempty"`

	// OrgTypes maps org_type answers to display names
	OrgTypes map[string]string `yaml:"org_types,omitempty"`

	// DataScales maps data_subjects_count buckets to display names
	DataScales map[string]string `yaml:"data_scales,omitempty"`

	// Categories maps violation categories to data security category names
	Categories map[string]string `yaml:"categories,omitempty"`

	// KBArticles maps violation categories to guidance URLs
	KBArticles map[string]string `yaml:"kb_articles,omitempty"`
}

// Risk labels as produced by the Hebrew questionnaire, highest first
const (
	RiskLabelCritical = "קריטי"
	RiskLabelVeryHigh = "גבוה מאוד"
	RiskLabelHigh     = "גבוה"
	RiskLabelMedium   = "בינוני"
	RiskLabelLow      = "נמוך"
	RiskLabelMinimal  = "תקין"
)

// DefaultLabels returns a fresh copy of the built-in label tables
func DefaultLabels() *LabelTables {
	return &LabelTables{
		RiskLevels: map[string]int{
			RiskLabelCritical: 4,
			RiskLabelVeryHigh: 4,
			RiskLabelHigh:     3,
			RiskLabelMedium:   2,
			RiskLabelLow:      1,
			RiskLabelMinimal:  0,
		},
		OrgTypes: map[string]string{
			"public":     "Public Body",
			"databroker": "Data Broker",
			"private":    "Private Company",
			"nonprofit":  "Non-Profit Organization",
			"health":     "Healthcare Provider",
			"education":  "Educational Institution",
		},
		DataScales: map[string]string{
			"under_1k":  "Fewer than 1,000 data subjects",
			"1k_10k":    "1,000 to 10,000 data subjects",
			"10k_100k":  "10,000 to 100,000 data subjects",
			"100k_500k": "100,000 to 500,000 data subjects",
			"500k_1m":   "500,000 to 1,000,000 data subjects",
			"over_1m":   "Over 1,000,000 data subjects",
		},
		Categories: map[string]string{
			string(CategoryDataSubjects):       "Data Subject Rights",
			string(CategoryConsent):            "Consent Management",
			string(CategoryAccessRights):       "Access and Correction Rights",
			string(CategoryDataMinimization):   "Data Minimization",
			string(CategoryPrivacyNotice):      "Privacy Notice",
			string(CategoryThirdParty):         "Third-Party Processing",
			string(CategoryDPO):                "Data Protection Officer",
			string(CategoryRegistration):       "Database Registration",
			string(CategorySecurity):           "Information Security",
			string(CategoryDataRetention):      "Data Retention",
			string(CategoryCrossBorder):        "Cross-Border Transfer",
			string(CategoryBreachNotification): "Breach Notification",
		},
		KBArticles: map[string]string{
			string(CategoryDataSubjects):       DefaultKBArticle + "/data-subject-rights",
			string(CategoryConsent):            DefaultKBArticle + "/consent",
			string(CategoryAccessRights):       DefaultKBArticle + "/right-of-access",
			string(CategoryDataMinimization):   DefaultKBArticle + "/data-minimization",
			string(CategoryPrivacyNotice):      DefaultKBArticle + "/duty-to-inform",
			string(CategoryThirdParty):         DefaultKBArticle + "/outsourcing",
			string(CategoryDPO):                DefaultKBArticle + "/privacy-protection-officer",
			string(CategoryRegistration):       DefaultKBArticle + "/database-registration",
			string(CategorySecurity):           DefaultKBArticle + "/data-security-regulations",
			string(CategoryDataRetention):      DefaultKBArticle + "/retention",
			string(CategoryCrossBorder):        DefaultKBArticle + "/transfer-abroad",
			string(CategoryBreachNotification): DefaultKBArticle + "/security-incidents",
		},
	}
}

// Merge overlays every entry of other onto t
func (t *LabelTables) Merge(other *LabelTables) {
	if other == nil {
		return
	}
	if t.RiskLevels == nil {
		t.RiskLevels = map[string]int{}
	}
	for k, v := range other.RiskLevels {
		t.RiskLevels[normalizeLabel(k)] = v
	}
	t.OrgTypes = mergeStrings(t.OrgTypes, other.OrgTypes)
	t.DataScales = mergeStrings(t.DataScales, other.DataScales)
	t.Categories = mergeStrings(t.Categories, other.Categories)
	t.KBArticles = mergeStrings(t.KBArticles, other.KBArticles)
}

// Clone returns a copy of t that shares no maps with it
func (t *LabelTables) Clone() *LabelTables {
	clone := &LabelTables{}
	clone.Merge(t)
	return clone
}

// RiskLevelID returns the OCSF risk level for a localized label.
// Unrecognized labels map to 0, the same id as the lowest label.
func (t *LabelTables) RiskLevelID(label string) int {
	if id, ok := t.RiskLevels[normalizeLabel(label)]; ok {
		return id
	}
	return 0
}

// OrgTypeLabel returns the display name of an organization type
func (t *LabelTables) OrgTypeLabel(orgType string) string {
	return lookup(t.OrgTypes, orgType, DefaultOrgTypeLabel)
}

// DataScaleLabel returns the display name of a data subject scale bucket
func (t *LabelTables) DataScaleLabel(bucket string) string {
	return lookup(t.DataScales, bucket, DefaultDataScaleLabel)
}

// CategoryLabel returns the data security category name of a violation category
func (t *LabelTables) CategoryLabel(category Category) string {
	return lookup(t.Categories, string(category), DefaultCategoryLabel)
}

// KBArticle returns the guidance URL of a violation category
func (t *LabelTables) KBArticle(category Category) string {
	return lookup(t.KBArticles, string(category), DefaultKBArticle)
}

func lookup(table map[string]string, key, fallback string) string {
	if v, ok := table[key]; ok && v != "" {
		return v
	}
	return fallback
}

func mergeStrings(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// normalizeLabel trims whitespace and applies NFC so that labels typed with
// combining marks match the table keys
func normalizeLabel(label string) string {
	return norm.NFC.String(strings.TrimSpace(label))
}
