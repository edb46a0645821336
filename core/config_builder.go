package core

// ConfigBuilder provides a fluent interface for creating export configurations
type ConfigBuilder struct {
	config *Config
}

// NewConfigBuilder creates a builder seeded with DefaultConfig
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{config: DefaultConfig()}
}

// WithMetadata sets the configuration metadata
func (b *ConfigBuilder) WithMetadata(version, description, author string) *ConfigBuilder {
	b.config.Metadata.Version = version
	b.config.Metadata.Description = description
	b.config.Metadata.Author = author
	return b
}

// WithProduct sets the product descriptor
func (b *ConfigBuilder) WithProduct(name, vendor, version string) *ConfigBuilder {
	b.config.Product = Product{Name: name, VendorName: vendor, Version: version}
	return b
}

// WithIDPrefix sets the id prefix
func (b *ConfigBuilder) WithIDPrefix(prefix string) *ConfigBuilder {
	b.config.IDPrefix = prefix
	return b
}

// WithRedactedFields adds answer keys to strip before embedding answers
func (b *ConfigBuilder) WithRedactedFields(fields ...string) *ConfigBuilder {
	b.config.RedactFields = append(b.config.RedactFields, fields...)
	return b
}

// WithRiskLabel maps a localized risk label to a risk_level_id
func (b *ConfigBuilder) WithRiskLabel(label string, id int) *ConfigBuilder {
	b.config.Labels.Merge(&LabelTables{RiskLevels: map[string]int{label: id}})
	return b
}

// WithOrgTypeLabel sets the display name of an organization type
func (b *ConfigBuilder) WithOrgTypeLabel(orgType, label string) *ConfigBuilder {
	b.config.Labels.Merge(&LabelTables{OrgTypes: map[string]string{orgType: label}})
	return b
}

// WithCategoryLabel sets the data security category name of a violation category
func (b *ConfigBuilder) WithCategoryLabel(category Category, label string) *ConfigBuilder {
	b.config.Labels.Merge(&LabelTables{Categories: map[string]string{string(category): label}})
	return b
}

// WithKBArticle sets the guidance URL of a violation category
func (b *ConfigBuilder) WithKBArticle(category Category, url string) *ConfigBuilder {
	b.config.Labels.Merge(&LabelTables{KBArticles: map[string]string{string(category): url}})
	return b
}

// Build returns a copy of the configuration. Later builder calls do not
// affect configurations already built.
func (b *ConfigBuilder) Build() *Config {
	cfg := *b.config
	cfg.RedactFields = append([]string(nil), b.config.RedactFields...)
	if b.config.Labels != nil {
		cfg.Labels = b.config.Labels.Clone()
	}
	return &cfg
}
