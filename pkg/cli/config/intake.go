package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	domainConfig "github.com/opsintake/incident-wizard/pkg/domain/model/config"
	"github.com/opsintake/incident-wizard/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Intake holds the intake pipeline settings, combining CLI flags with
// an optional TOML file for the longer lists.
type Intake struct {
	configPath string
	variant    string
	threshold  float64
	limit      int
}

// IntakeFile is the TOML shape of the intake configuration file
type IntakeFile struct {
	Variant        string   `toml:"schema_variant"`
	Threshold      *float64 `toml:"duplicate_threshold"`
	CandidateLimit *int     `toml:"candidate_limit"`
	TriggerPhrases []string `toml:"trigger_phrases"`
	Applications   []string `toml:"applications"`
}

// Flags returns CLI flags for intake configuration
func (i *Intake) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "intake-config",
			Usage:       "Path to intake configuration TOML file",
			Category:    "Intake",
			Sources:     cli.EnvVars("INCIDENT_WIZARD_INTAKE_CONFIG"),
			Destination: &i.configPath,
		},
		&cli.StringFlag{
			Name:        "schema-variant",
			Usage:       "Incident field-set variant (classic, clickstream)",
			Value:       string(types.SchemaVariantClassic),
			Category:    "Intake",
			Sources:     cli.EnvVars("INCIDENT_WIZARD_SCHEMA_VARIANT"),
			Destination: &i.variant,
		},
		&cli.FloatFlag{
			Name:        "duplicate-threshold",
			Usage:       "Similarity score above which a draft is linked to an existing incident",
			Value:       domainConfig.DefaultDuplicateThreshold,
			Category:    "Intake",
			Sources:     cli.EnvVars("INCIDENT_WIZARD_DUPLICATE_THRESHOLD"),
			Destination: &i.threshold,
		},
		&cli.IntFlag{
			Name:        "candidate-limit",
			Usage:       "Maximum number of recent incidents pulled for duplicate comparison",
			Value:       domainConfig.DefaultCandidateLimit,
			Category:    "Intake",
			Sources:     cli.EnvVars("INCIDENT_WIZARD_CANDIDATE_LIMIT"),
			Destination: &i.limit,
		},
	}
}

// LogAttrs returns log attributes for the intake configuration
func (i *Intake) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("config_path", i.configPath),
		slog.String("variant", i.variant),
		slog.Float64("threshold", i.threshold),
		slog.Int("candidate_limit", i.limit),
	}
}

// Configure builds the domain intake configuration. File values
// override flag defaults; flags set explicitly still lose to the file
// for list-shaped settings that have no flag form.
func (i *Intake) Configure() (*domainConfig.IntakeConfig, error) {
	cfg := domainConfig.NewIntakeConfig()

	variant, err := types.ParseSchemaVariant(i.variant)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "unknown schema variant", goerr.V("variant", i.variant))
	}
	cfg.Variant = variant
	cfg.DuplicateThreshold = i.threshold
	cfg.CandidateLimit = i.limit

	if i.configPath != "" {
		file, err := loadIntakeFile(i.configPath)
		if err != nil {
			return nil, err
		}
		if file.Variant != "" {
			variant, err := types.ParseSchemaVariant(file.Variant)
			if err != nil {
				return nil, goerr.Wrap(ErrInvalidConfig, "unknown schema variant in config file",
					goerr.V("variant", file.Variant),
					goerr.V(ConfigPathKey, i.configPath),
				)
			}
			cfg.Variant = variant
		}
		if file.Threshold != nil {
			cfg.DuplicateThreshold = *file.Threshold
		}
		if file.CandidateLimit != nil {
			cfg.CandidateLimit = *file.CandidateLimit
		}
		if len(file.TriggerPhrases) > 0 {
			cfg.TriggerPhrases = file.TriggerPhrases
		}
		cfg.Applications = file.Applications
	}

	if cfg.DuplicateThreshold < 0 || cfg.DuplicateThreshold > 1 {
		return nil, goerr.Wrap(ErrInvalidConfig, "duplicate threshold must be within [0,1]",
			goerr.V("threshold", cfg.DuplicateThreshold),
		)
	}
	if cfg.CandidateLimit < 1 {
		return nil, goerr.Wrap(ErrInvalidConfig, "candidate limit must be positive",
			goerr.V("limit", cfg.CandidateLimit),
		)
	}

	return cfg, nil
}

// loadIntakeFile reads and parses the intake configuration TOML file
func loadIntakeFile(path string) (*IntakeFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "intake config file does not exist",
				goerr.V(ConfigPathKey, path),
			)
		}
		return nil, goerr.Wrap(err, "failed to read intake config file", goerr.V(ConfigPathKey, path))
	}

	var file IntakeFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	return &file, nil
}
