package models

import "github.com/google/uuid"

// ProteinAnomalyType classifies structural irregularities (bulge,
// constriction, ...).
type ProteinAnomalyType struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Slug string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name string    `gorm:"not null" json:"name"`
}

// ProteinAnomaly anchors an anomaly type at a generic-number position.
type ProteinAnomaly struct {
	ID              uuid.UUID            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AnomalyTypeID   uuid.UUID            `gorm:"type:uuid;not null;index:idx_anomalies_type_gn,unique" json:"anomaly_type_id"`
	AnomalyType     ProteinAnomalyType   `json:"anomaly_type"`
	GenericNumberID uuid.UUID            `gorm:"type:uuid;not null;index:idx_anomalies_type_gn,unique" json:"generic_number_id"`
	GenericNumber   ResidueGenericNumber `json:"generic_number"`
	RuleSets        []ProteinAnomalyRuleSet `gorm:"constraint:OnDelete:CASCADE" json:"rule_sets,omitempty"`
}

// ProteinAnomalyRuleSet groups rules; Exclusive selects "all rules must
// hold" over "any one rule suffices". Evaluation against structures is
// the consumer's concern.
type ProteinAnomalyRuleSet struct {
	ID               uuid.UUID            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProteinAnomalyID uuid.UUID            `gorm:"type:uuid;not null;index" json:"protein_anomaly_id"`
	Exclusive        bool                 `gorm:"not null;default:false" json:"exclusive"`
	Rules            []ProteinAnomalyRule `gorm:"foreignKey:RuleSetID;constraint:OnDelete:CASCADE" json:"rules,omitempty"`
}

// ProteinAnomalyRule expresses generic_number ==/!= amino_acid.
type ProteinAnomalyRule struct {
	ID              uuid.UUID            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RuleSetID       uuid.UUID            `gorm:"type:uuid;not null;index" json:"rule_set_id"`
	GenericNumberID uuid.UUID            `gorm:"type:uuid;not null" json:"generic_number_id"`
	GenericNumber   ResidueGenericNumber `json:"generic_number"`
	AminoAcid       string               `gorm:"type:varchar(1);not null" json:"amino_acid"`
	Negative        bool                 `gorm:"not null;default:false" json:"negative"`
}
