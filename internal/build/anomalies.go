package build

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
	"github.com/openreceptor/receptordb/pkg/logger"
)

type anomalyRule struct {
	GenericNumber string `yaml:"generic_number"`
	AminoAcid     string `yaml:"amino_acid"`
	Negative      bool   `yaml:"negative"`
}

type anomalyRuleSet struct {
	Exclusive bool          `yaml:"exclusive"`
	Rules     []anomalyRule `yaml:"rules"`
}

type anomalyFile struct {
	AnomalyType    string           `yaml:"anomaly_type"`
	ProteinSegment string           `yaml:"protein_segment"`
	GenericNumber  string           `yaml:"generic_number"`
	RuleSets       []anomalyRuleSet `yaml:"rule_sets"`
}

// loadAnomalies ingests structure_data/anomalies/*.yaml, one anomaly per
// file. Generic numbers are created against the default numbering
// scheme, so that scheme must already exist.
func (l *CommonLoader) loadAnomalies(ctx context.Context) *Report {
	rep := newReport("anomalies")

	scheme, err := l.schemes.GetBySlug(ctx, l.defaultScheme)
	if err != nil {
		rep.Err = appErr.Wrap(err, appErr.CodeDependency,
			"default numbering scheme "+l.defaultScheme+" not loaded")
		return rep
	}

	files, err := yamlFiles(l.path("structure_data", "anomalies"), false)
	if err != nil {
		rep.Err = err
		return rep
	}

	title := cases.Title(language.English)
	for _, name := range files {
		var ano anomalyFile
		if err := readYAML(l.path("structure_data", "anomalies", name), &ano); err != nil {
			rep.failedErr(name, err)
			continue
		}
		l.loadAnomaly(ctx, name, ano, scheme.ID, title, rep)
	}
	return rep
}

func (l *CommonLoader) loadAnomaly(ctx context.Context, file string, ano anomalyFile,
	schemeID uuid.UUID, title cases.Caser, rep *Report) {

	if ano.AnomalyType == "" {
		rep.failed(file, "anomaly type not specified")
		return
	}
	at, _, err := l.anomalies.GetOrCreateType(ctx, ano.AnomalyType, title.String(ano.AnomalyType))
	if err != nil {
		rep.failedErr(file, err)
		return
	}

	var segmentID *uuid.UUID
	if ano.ProteinSegment != "" {
		seg, err := l.segments.GetBySlug(ctx, ano.ProteinSegment)
		if err != nil {
			rep.skipped(file, "protein segment "+ano.ProteinSegment+" not found")
			return
		}
		segmentID = &seg.ID
	}

	if ano.GenericNumber == "" {
		rep.failed(file, "generic number not specified")
		return
	}
	gn, _, err := l.schemes.GetOrCreateGenericNumber(ctx, ano.GenericNumber, schemeID, segmentID)
	if err != nil {
		rep.failedErr(file, err)
		return
	}

	pa, created, err := l.anomalies.GetOrCreateAnomaly(ctx, at.ID, gn.ID)
	if err != nil {
		rep.failedErr(file, err)
		return
	}
	if created {
		logger.L().Info("created anomaly",
			zap.String("type", at.Slug), zap.String("generic_number", gn.Label))
	}

	if len(ano.RuleSets) == 0 {
		rep.skipped(file, "no rule sets specified")
		return
	}
	if !created {
		// Rule sets belong to the anomaly and were attached when it was
		// first created; re-running must not duplicate them.
		rep.exists(file)
		return
	}
	for i, rs := range ano.RuleSets {
		if len(rs.Rules) == 0 {
			continue
		}
		set, err := l.anomalies.CreateRuleSet(ctx, pa.ID, rs.Exclusive)
		if err != nil {
			rep.failedErr(file, err)
			return
		}
		for _, rule := range rs.Rules {
			if rule.GenericNumber == "" || rule.AminoAcid == "" {
				rep.failed(file, fmt.Sprintf("missing values for a rule in set %d", i+1))
				continue
			}
			rgn, _, err := l.schemes.GetOrCreateGenericNumber(ctx, rule.GenericNumber, schemeID, segmentID)
			if err != nil {
				rep.failedErr(file, err)
				continue
			}
			if err := l.anomalies.CreateRule(ctx, &models.ProteinAnomalyRule{
				RuleSetID:       set.ID,
				GenericNumberID: rgn.ID,
				AminoAcid:       rule.AminoAcid,
				Negative:        rule.Negative,
			}); err != nil {
				rep.failedErr(file, err)
			}
		}
	}

	if created {
		rep.created(file)
	} else {
		rep.exists(file)
	}
}
