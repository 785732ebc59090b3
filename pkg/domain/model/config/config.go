package config

import "slices"

// AppConfig holds the tunable vocabularies of the record-keeping forms.
// Deployments can override them via the TOML configuration file; the
// defaults match the standard ministry vocabulary.
type AppConfig struct {
	RiskCategories        []string
	RiskCauseSources      []string
	MonitoringFrequencies []string
}

// Default returns the built-in vocabulary
func Default() *AppConfig {
	return &AppConfig{
		RiskCategories: []string{
			"Kebijakan",
			"Hukum",
			"Reputasi",
			"Kepatuhan",
			"Keuangan",
			"Fraud",
			"Operasional",
		},
		RiskCauseSources: []string{
			"Internal",
			"Eksternal",
		},
		MonitoringFrequencies: []string{
			"Bulanan",
			"Triwulanan",
			"Semesteran",
			"Tahunan",
		},
	}
}

// ValidRiskCategory reports whether v is an allowed potential risk category
func (c *AppConfig) ValidRiskCategory(v string) bool {
	return slices.Contains(c.RiskCategories, v)
}

// ValidRiskCauseSource reports whether v is an allowed risk cause source
func (c *AppConfig) ValidRiskCauseSource(v string) bool {
	return slices.Contains(c.RiskCauseSources, v)
}

// ValidMonitoringFrequency reports whether v is an allowed monitoring frequency
func (c *AppConfig) ValidMonitoringFrequency(v string) bool {
	return slices.Contains(c.MonitoringFrequencies, v)
}
