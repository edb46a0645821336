package core

import "strconv"

// Exporter converts assessment results into OCSF documents. It holds only
// immutable configuration, so one value may be shared between goroutines.
type Exporter struct {
	clock        Clock
	ids          IDSource
	product      Product
	prefix       string
	redactFields []string
	labels       *LabelTables
}

// Option configures an Exporter
type Option func(*Exporter)

// WithClock sets the clock used for timestamps
func WithClock(c Clock) Option {
	return func(e *Exporter) { e.clock = c }
}

// WithIDSource sets the source of random id suffixes
func WithIDSource(s IDSource) Option {
	return func(e *Exporter) { e.ids = s }
}

// WithConfig applies a configuration. Label overrides are merged over
// DefaultLabels into tables owned by the exporter.
func WithConfig(cfg *Config) Option {
	return func(e *Exporter) {
		if cfg == nil {
			return
		}
		if cfg.Product.Name != "" {
			e.product = cfg.Product
		}
		if cfg.IDPrefix != "" {
			e.prefix = cfg.IDPrefix
		}
		e.redactFields = append([]string(nil), cfg.RedactFields...)
		labels := DefaultLabels()
		labels.Merge(cfg.Labels)
		e.labels = labels
	}
}

// NewExporter creates an exporter with the default configuration, the
// system clock and UUID based id suffixes
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		clock:   SystemClock{},
		ids:     UUIDSource{},
		product: DefaultProduct(),
		prefix:  DefaultIDPrefix,
		labels:  DefaultLabels(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Labels returns the label tables in use
func (e *Exporter) Labels() *LabelTables {
	return e.labels
}

// exportContext holds the values computed once per export call
type exportContext struct {
	now        int64
	answers    Answers
	results    *AssessmentResult
	orgLabel   string
	scaleLabel string
	dpo        bool
}

func (e *Exporter) newContext(results *AssessmentResult, answers Answers) *exportContext {
	if results == nil {
		results = &AssessmentResult{}
	}
	return &exportContext{
		now:        e.clock.Now().UnixMilli(),
		answers:    answers,
		results:    results,
		orgLabel:   e.labels.OrgTypeLabel(answers.OrgType()),
		scaleLabel: e.labels.DataScaleLabel(answers.DataSubjectsCount()),
		dpo:        RequiresDPO(answers),
	}
}

func (e *Exporter) metadata() Metadata {
	return Metadata{
		Version: OCSFVersion,
		Product: e.product,
	}
}

// ExportComplianceFindings maps every violation to a Compliance Finding
func (e *Exporter) ExportComplianceFindings(results *AssessmentResult, answers Answers) ComplianceDocument {
	return e.complianceDocument(e.newContext(results, answers))
}

// ExportDataSecurityFindings maps the violations in data security categories
// to Data Security Findings. When none match the document carries no metadata.
func (e *Exporter) ExportDataSecurityFindings(results *AssessmentResult, answers Answers) DataSecurityDocument {
	return e.dataSecurityDocument(e.newContext(results, answers))
}

// ExportRecommendations maps recommendations 1:1 to OCSF shaped records
func (e *Exporter) ExportRecommendations(recommendations []Recommendation) []RecommendationRecord {
	return e.recommendationRecords(e.clock.Now().UnixMilli(), recommendations)
}

// ExportCombinedReport aggregates both finding sets, a summary, the
// reformatted recommendations and the untouched compliance matrix
func (e *Exporter) ExportCombinedReport(results *AssessmentResult, answers Answers) CombinedReport {
	ctx := e.newContext(results, answers)

	compliance := e.complianceDocument(ctx)
	dataSecurity := e.dataSecurityDocument(ctx)

	return CombinedReport{
		Version:              OCSFVersion,
		Metadata:             e.metadata(),
		GeneratedAt:          ctx.now,
		Summary:              e.summary(ctx, len(dataSecurity.Findings)),
		ComplianceFindings:   compliance,
		DataSecurityFindings: dataSecurity,
		Recommendations:      e.recommendationRecords(ctx.now, ctx.results.Recommendations),
		ComplianceMatrix:     ctx.results.ComplianceMatrix,
	}
}

func (e *Exporter) complianceDocument(ctx *exportContext) ComplianceDocument {
	meta := e.metadata()
	doc := ComplianceDocument{
		Version:  OCSFVersion,
		Metadata: &meta,
		Findings: make([]ComplianceFinding, 0, len(ctx.results.Violations)),
	}

	for i, v := range ctx.results.Violations {
		doc.Findings = append(doc.Findings, e.complianceFinding(ctx, i, v))
	}

	return doc
}

func (e *Exporter) dataSecurityDocument(ctx *exportContext) DataSecurityDocument {
	var matched []Violation
	for _, v := range ctx.results.Violations {
		if IsDataSecurityCategory(v.Category) {
			matched = append(matched, v)
		}
	}

	if len(matched) == 0 {
		return DataSecurityDocument{
			Version:  OCSFVersion,
			Findings: []DataSecurityFinding{},
		}
	}

	meta := e.metadata()
	doc := DataSecurityDocument{
		Version:  OCSFVersion,
		Metadata: &meta,
		Findings: make([]DataSecurityFinding, 0, len(matched)),
	}

	for i, v := range matched {
		doc.Findings = append(doc.Findings, e.dataSecurityFinding(ctx, i, v))
	}

	return doc
}

func (e *Exporter) base(ctx *exportContext, classUID int, className, kind string, index int, v Violation) findingBase {
	severityID := MapSeverity(v.Severity)
	categoryLabel := e.labels.CategoryLabel(v.Category)

	return findingBase{
		ActivityID:   ActivityIDCreate,
		ActivityName: ActivityNameCreate,
		CategoryUID:  CategoryUIDFindings,
		CategoryName: CategoryNameFindings,
		ClassUID:     classUID,
		ClassName:    className,
		TypeUID:      TypeUID(classUID, ActivityIDCreate),
		Time:         ctx.now,
		SeverityID:   severityID,
		Severity:     SeverityName(severityID),
		StatusID:     StatusIDNew,
		Status:       StatusNameNew,
		Message:      v.Description,
		Metadata:     e.metadata(),
		FindingInfo: FindingInfo{
			UID:         findingID(e.prefix, kind, ctx.now, index),
			Title:       categoryLabel,
			Desc:        v.Description,
			Types:       []string{categoryLabel},
			CreatedTime: ctx.now,
		},
		Unmapped: Unmapped{
			AssessmentAnswers: SanitizeAnswers(ctx.answers, e.redactFields...),
			ViolationCategory: string(v.Category),
			OrganizationType:  ctx.orgLabel,
			DataSubjectsScale: ctx.scaleLabel,
			Fine:              v.Fine,
			RequiresDPO:       ctx.dpo,
		},
	}
}

func (e *Exporter) complianceFinding(ctx *exportContext, index int, v Violation) ComplianceFinding {
	impactID := MapImpact(v.Severity)

	compliance := Compliance{
		Standards: []string{ComplianceStandard},
		Control:   v.LawReference,
		StatusID:  ComplianceStatusIDFail,
		Status:    ComplianceStatusNameFail,
	}
	if v.LawReference != "" {
		compliance.Requirements = []string{v.LawReference}
	}

	return ComplianceFinding{
		findingBase: e.base(ctx, ClassUIDComplianceFinding, ClassNameComplianceFinding, "cf", index, v),
		ImpactID:    impactID,
		Impact:      LevelName(impactID),
		ImpactScore: ImpactScore(v.Fine, ctx.results.TotalFines),
		Compliance:  compliance,
		Remediation: e.remediation(v),
	}
}

func (e *Exporter) dataSecurityFinding(ctx *exportContext, index int, v Violation) DataSecurityFinding {
	impactID := MapImpact(v.Severity)
	riskLevelID := e.labels.RiskLevelID(ctx.results.RiskLevel.Label)
	breach := IsSuspectedBreach(v.Category)
	dispositionID := DispositionID(breach)
	confidentialityID := ConfidentialityLevel(ctx.answers.SensitiveData())

	policyName := v.LawReference
	if policyName == "" {
		policyName = ComplianceStandard
	}

	return DataSecurityFinding{
		findingBase:       e.base(ctx, ClassUIDDataSecurityFinding, ClassNameDataSecurityFinding, "dsf", index, v),
		ImpactID:          impactID,
		Impact:            LevelName(impactID),
		ImpactScore:       ImpactScore(v.Fine, ctx.results.TotalFines),
		RiskLevelID:       riskLevelID,
		RiskLevel:         LevelName(riskLevelID),
		RiskScore:         RiskScore(ctx.results.Score),
		IsSuspectedBreach: breach,
		DispositionID:     dispositionID,
		Disposition:       DispositionName(dispositionID),
		DataSecurity: DataSecurity{
			Category:          e.labels.CategoryLabel(v.Category),
			ConfidentialityID: confidentialityID,
			Confidentiality:   ConfidentialityName(confidentialityID),
			DetectionSystemID: DetectionSystemIDOther,
			DetectionSystem:   DetectionSystemName,
			Policy: Policy{
				Name: policyName,
				Desc: v.Description,
			},
		},
		Remediation: e.remediation(v),
	}
}

func (e *Exporter) remediation(v Violation) Remediation {
	r := Remediation{
		Desc: v.Description,
		KBArticleList: []KBArticle{{
			Title:  e.labels.CategoryLabel(v.Category),
			SrcURL: e.labels.KBArticle(v.Category),
		}},
	}
	if v.LawReference != "" {
		r.References = []string{v.LawReference}
	}
	return r
}

func (e *Exporter) recommendationRecords(now int64, recommendations []Recommendation) []RecommendationRecord {
	records := make([]RecommendationRecord, 0, len(recommendations))
	seen := make(map[string]bool, len(recommendations))

	for _, rec := range recommendations {
		base := recommendationID(e.prefix, now, e.ids.Suffix())
		// ids stay unique within one call even if the source repeats itself
		uid := base
		for n := 1; seen[uid]; n++ {
			uid = base + "-" + strconv.Itoa(n)
		}
		seen[uid] = true

		category := Category(rec.Category)
		record := RecommendationRecord{
			UID:          uid,
			Title:        rec.Action,
			Desc:         rec.Description,
			Priority:     rec.Priority,
			PriorityID:   MapSeverity(Severity(rec.Priority)),
			Category:     rec.Category,
			CategoryName: e.labels.CategoryLabel(category),
			Timeline:     rec.Timeline,
			KBArticleList: []KBArticle{{
				Title:  e.labels.CategoryLabel(category),
				SrcURL: e.labels.KBArticle(category),
			}},
			Time: now,
		}
		if rec.Reference != "" {
			record.References = []string{rec.Reference}
		}
		records = append(records, record)
	}

	return records
}

func (e *Exporter) summary(ctx *exportContext, dataSecurityCount int) Summary {
	var counts SeverityCounts
	for _, v := range ctx.results.Violations {
		switch v.Severity {
		case SeverityCritical:
			counts.Critical++
		case SeverityHigh:
			counts.High++
		case SeverityMedium:
			counts.Medium++
		case SeverityLow:
			counts.Low++
		case SeverityInfo:
			counts.Info++
		default:
			counts.Unknown++
		}
	}

	sensitive := ctx.answers.SensitiveData()

	return Summary{
		TotalFindings:        len(ctx.results.Violations),
		DataSecurityFindings: dataSecurityCount,
		BySeverity:           counts,
		Score:                ctx.results.Score,
		RiskLevel:            ctx.results.RiskLevel.Label,
		RiskLevelID:          e.labels.RiskLevelID(ctx.results.RiskLevel.Label),
		TotalFines:           ctx.results.TotalFines,
		RequiresDPO:          ctx.dpo,
		HasSensitiveData:     HasSensitiveData(ctx.answers),
		ConfidentialityID:    ConfidentialityLevel(sensitive),
		OrganizationType:     ctx.orgLabel,
		DataSubjectsScale:    ctx.scaleLabel,
	}
}
