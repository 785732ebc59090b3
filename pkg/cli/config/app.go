package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/upr-lab/riskwise/pkg/domain/model/config"
	"github.com/upr-lab/riskwise/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// App holds CLI flags for the form vocabulary configuration
type App struct {
	path string
}

// Flags returns CLI flags for application configuration
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "app-config",
			Usage:       "Path to TOML file overriding the form vocabularies",
			Sources:     cli.EnvVars("RISKWISE_APP_CONFIG"),
			Destination: &a.path,
		},
	}
}

// appConfigFile is the TOML shape of the vocabulary override file
type appConfigFile struct {
	RiskCategories        []string `toml:"risk_categories"`
	RiskCauseSources      []string `toml:"risk_cause_sources"`
	MonitoringFrequencies []string `toml:"monitoring_frequencies"`
}

func (f *appConfigFile) validate() error {
	if len(f.RiskCategories) == 0 {
		return goerr.New("risk_categories must not be empty")
	}
	if len(f.RiskCauseSources) == 0 {
		return goerr.New("risk_cause_sources must not be empty")
	}
	if len(f.MonitoringFrequencies) == 0 {
		return goerr.New("monitoring_frequencies must not be empty")
	}
	return nil
}

// Configure loads the form vocabularies. Without an override file the
// built-in defaults are used.
func (a *App) Configure() (*domainConfig.AppConfig, error) {
	if a.path == "" {
		return domainConfig.Default(), nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", a.path))
	}

	var file appConfigFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", a.path))
	}

	if err := file.validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", a.path))
	}

	logging.Default().Info("Loaded form vocabularies from file",
		"path", a.path,
		"risk_categories", len(file.RiskCategories),
		"risk_cause_sources", len(file.RiskCauseSources),
		"monitoring_frequencies", len(file.MonitoringFrequencies),
	)

	return &domainConfig.AppConfig{
		RiskCategories:        file.RiskCategories,
		RiskCauseSources:      file.RiskCauseSources,
		MonitoringFrequencies: file.MonitoringFrequencies,
	}, nil
}
