package build

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/openreceptor/receptordb/internal/models"
	"github.com/openreceptor/receptordb/internal/repository"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
	"github.com/openreceptor/receptordb/pkg/logger"
)

const (
	// SequenceTypeModified tags constructs; purge deletes by it.
	SequenceTypeModified = "mod"
	sourceOther          = "OTHER"
)

// FusionDefinition describes one foreign protein inserted into the
// construct between two parent sequence positions.
type FusionDefinition struct {
	Name      string `yaml:"name" json:"name" validate:"required"`
	Sequence  string `yaml:"sequence" json:"sequence" validate:"required"`
	Positions []int  `yaml:"positions" json:"positions" validate:"required,len=2"`
}

// ConstructDefinition is one structure_data/constructs/*.yaml file.
type ConstructDefinition struct {
	Name           string             `yaml:"name" json:"name" validate:"required"`
	Protein        string             `yaml:"protein" json:"protein" validate:"required"`
	Truncations    [][]int            `yaml:"truncations" json:"truncations,omitempty" validate:"dive,len=2"`
	Mutations      []string           `yaml:"mutations" json:"mutations,omitempty"`
	FusionProteins []FusionDefinition `yaml:"fusion_proteins" json:"fusion_proteins,omitempty" validate:"dive"`
}

// ConstructBuilder derives engineered constructs from reference
// proteins: clone the parent, apply truncations, point mutations and
// fusion insertions, and persist the resulting residue set.
type ConstructBuilder struct {
	dataDir      string
	defaultState string
	validate     *validator.Validate
	strip        *bluemonday.Policy

	proteins repository.ProteinRepository
	residues repository.ResidueRepository
	segments repository.SegmentRepository
	fusions  repository.FusionRepository
}

type ConstructBuilderDeps struct {
	Proteins repository.ProteinRepository
	Residues repository.ResidueRepository
	Segments repository.SegmentRepository
	Fusions  repository.FusionRepository
}

func NewConstructBuilder(dataDir, defaultState string, deps ConstructBuilderDeps) *ConstructBuilder {
	return &ConstructBuilder{
		dataDir:      dataDir,
		defaultState: defaultState,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		strip:        bluemonday.StrictPolicy(),
		proteins:     deps.Proteins,
		residues:     deps.Residues,
		segments:     deps.Segments,
		fusions:      deps.Fusions,
	}
}

// Purge deletes every construct (proteins of sequence type "mod");
// conformations, residues and fusion placements go with them through
// cascades. A database that never saw a construct purges zero rows.
func (b *ConstructBuilder) Purge(ctx context.Context) (int64, error) {
	n, err := b.proteins.DeleteBySequenceType(ctx, SequenceTypeModified)
	if err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			logger.L().Warn("sequence type mod not found, nothing to purge")
			return 0, nil
		}
		return 0, err
	}
	logger.L().Info("purged constructs", zap.Int64("count", n))
	return n, nil
}

// Run builds the constructs defined under structure_data/constructs,
// or only the named files when filenames is non-empty. Each file is an
// isolated unit: a bad definition fails its own outcome and the run
// moves on.
func (b *ConstructBuilder) Run(ctx context.Context, filenames []string) *Report {
	rep := newReport("constructs")

	if len(filenames) == 0 {
		var err error
		filenames, err = yamlFiles(b.path(), false)
		if err != nil {
			rep.Err = err
			return rep
		}
	}

	for _, name := range filenames {
		b.buildConstruct(ctx, name, rep)
	}
	return rep
}

func (b *ConstructBuilder) path(parts ...string) string {
	all := append([]string{b.dataDir, "structure_data", "constructs"}, parts...)
	return filepath.Join(all...)
}

func (b *ConstructBuilder) buildConstruct(ctx context.Context, file string, rep *Report) {
	var def ConstructDefinition
	if err := readYAML(b.path(file), &def); err != nil {
		rep.failedErr(file, err)
		return
	}
	if err := b.validate.Struct(&def); err != nil {
		rep.failed(file, "invalid construct definition: "+err.Error())
		return
	}

	// Parent lookup happens before anything is written: a construct
	// without its parent must not exist partially.
	ppc, err := b.proteins.ConformationByEntryName(ctx, def.Protein, b.defaultState)
	if err != nil {
		rep.failed(file, "parent protein "+def.Protein+" not found")
		return
	}

	entryName := slug.Make(b.strip.Sanitize(def.Name))
	meta, err := json.Marshal(def)
	if err != nil {
		rep.failedErr(file, err)
		return
	}

	p := models.Protein{
		EntryName:                entryName,
		Name:                     def.Name,
		ParentID:                 &ppc.Protein.ID,
		Family:                   ppc.Protein.Family,
		Species:                  ppc.Protein.Species,
		ResidueNumberingSchemeID: ppc.Protein.ResidueNumberingSchemeID,
		Sequence:                 ppc.Protein.Sequence,
		ConstructMeta:            meta,
	}

	st, _, err := b.proteins.GetOrCreateSequenceType(ctx, SequenceTypeModified, "Modified")
	if err != nil {
		rep.failedErr(file, err)
		return
	}
	p.SequenceTypeID = st.ID
	src, _, err := b.proteins.GetOrCreateSource(ctx, sourceOther)
	if err != nil {
		rep.failedErr(file, err)
		return
	}
	p.SourceID = src.ID

	if err := b.proteins.Create(ctx, &p); err != nil {
		rep.failedErr(entryName, err)
		return
	}
	logger.L().Info("created construct",
		zap.String("entry_name", entryName), zap.String("parent", def.Protein))

	pc := models.ProteinConformation{ProteinID: p.ID, StateID: ppc.StateID}
	if err := b.proteins.CreateConformation(ctx, &pc); err != nil {
		rep.failedErr(entryName, err)
		return
	}

	truncated := truncationSet(def.Truncations)
	mutations := parseMutations(def.Mutations, entryName, rep)

	splits, err := b.planFusions(ctx, &p, ppc, def.FusionProteins, entryName, rep)
	if err != nil {
		rep.failedErr(entryName, err)
		return
	}

	parentResidues, err := b.residues.ListByConformation(ctx, ppc.ID)
	if err != nil {
		rep.failedErr(entryName, err)
		return
	}

	sequence := make([]byte, 0, len(parentResidues))
	for i := range parentResidues {
		pr := &parentResidues[i]
		if truncated[pr.SequenceNumber] {
			continue
		}

		r := models.Residue{
			ProteinConformationID:  pc.ID,
			SequenceNumber:         pr.SequenceNumber,
			GenericNumberID:        pr.GenericNumberID,
			DisplayGenericNumberID: pr.DisplayGenericNumberID,
		}
		r.ProteinSegmentID = constructSegment(pr, splits)
		r.AminoAcid = constructAminoAcid(pr, mutations, entryName, rep)
		sequence = append(sequence, r.AminoAcid[0])

		if err := b.residues.Create(ctx, &r); err != nil {
			rep.failedErr(entryName, err)
			return
		}
		if err := b.residues.AddAlternativeGenericNumbers(ctx, &r, pr.AlternativeGenericNumbers); err != nil {
			rep.failedErr(entryName, err)
			return
		}
	}

	p.Sequence = string(sequence)
	if err := b.proteins.Update(ctx, &p); err != nil {
		rep.failedErr(entryName, err)
		return
	}
	rep.created(entryName)
}

// segmentSplit records that a fusion insertion cut one parent segment
// in two at [start, end]; parent positions strictly inside the cut were
// replaced by the insert and keep no segment.
type segmentSplit struct {
	start, end int
	before     *models.ProteinSegment
	after      *models.ProteinSegment
}

// planFusions resolves each fusion entry against the parent residues
// and prepares segment splits. Placements are created here; the residue
// loop later consumes the split map.
func (b *ConstructBuilder) planFusions(ctx context.Context, p *models.Protein,
	ppc *models.ProteinConformation, defs []FusionDefinition,
	key string, rep *Report) (map[string]segmentSplit, error) {

	splits := make(map[string]segmentSplit)
	for _, fp := range defs {
		start, err := b.residues.GetByNumber(ctx, ppc.ID, fp.Positions[0])
		if err != nil {
			rep.failed(key, fmt.Sprintf("fusion %s: position %d not in parent", fp.Name, fp.Positions[0]))
			continue
		}
		end, err := b.residues.GetByNumber(ctx, ppc.ID, fp.Positions[1])
		if err != nil {
			rep.failed(key, fmt.Sprintf("fusion %s: position %d not in parent", fp.Name, fp.Positions[1]))
			continue
		}
		if start.ProteinSegment == nil || end.ProteinSegment == nil {
			rep.failed(key, fmt.Sprintf("fusion %s: boundary residues carry no segment", fp.Name))
			continue
		}

		var before, after *models.ProteinSegment
		if start.ProteinSegment.ID == end.ProteinSegment.ID {
			orig := start.ProteinSegment
			if _, dup := splits[orig.Slug]; dup {
				rep.failed(key, fmt.Sprintf("fusion %s: segment %s already split by an earlier fusion", fp.Name, orig.Slug))
				continue
			}
			defaults := models.ProteinSegment{Name: orig.Name, Category: orig.Category}
			before, _, err = b.segments.GetOrCreate(ctx, orig.Slug+"_1", defaults)
			if err != nil {
				return nil, err
			}
			after, _, err = b.segments.GetOrCreate(ctx, orig.Slug+"_2", defaults)
			if err != nil {
				return nil, err
			}
			splits[orig.Slug] = segmentSplit{
				start:  fp.Positions[0],
				end:    fp.Positions[1],
				before: before,
				after:  after,
			}
		} else {
			// Insertion spanning two segments: nothing to split, the
			// placement just records the boundary segments.
			rep.skipped(key, fmt.Sprintf("fusion %s spans segments %s and %s, no split",
				fp.Name, start.ProteinSegment.Slug, end.ProteinSegment.Slug))
			before = start.ProteinSegment
			after = end.ProteinSegment
		}

		fusion, _, err := b.fusions.GetOrCreate(ctx, fp.Name, fp.Sequence)
		if err != nil {
			return nil, err
		}
		if err := b.fusions.CreatePlacement(ctx, &models.ProteinFusionProtein{
			ProteinID:       p.ID,
			ProteinFusionID: fusion.ID,
			SegmentBeforeID: before.ID,
			SegmentAfterID:  after.ID,
		}); err != nil {
			return nil, err
		}
	}
	return splits, nil
}

// constructSegment maps a parent residue onto the construct's segment:
// split segments resolve to their _1/_2 halves by position, positions
// strictly inside the cut get no segment, unsplit segments carry over.
func constructSegment(pr *models.Residue, splits map[string]segmentSplit) *uuid.UUID {
	if pr.ProteinSegment == nil {
		return pr.ProteinSegmentID
	}
	sp, ok := splits[pr.ProteinSegment.Slug]
	if !ok {
		return pr.ProteinSegmentID
	}
	switch {
	case pr.SequenceNumber <= sp.start:
		return &sp.before.ID
	case pr.SequenceNumber >= sp.end:
		return &sp.after.ID
	default:
		return nil
	}
}

// constructAminoAcid applies a declared mutation when its wild-type
// letter matches the parent residue; a mismatch keeps the parent's
// amino acid and fails the outcome.
func constructAminoAcid(pr *models.Residue, mutations map[int]mutation, key string, rep *Report) string {
	m, ok := mutations[pr.SequenceNumber]
	if !ok {
		return pr.AminoAcid
	}
	if m.wildType != pr.AminoAcid {
		rep.failed(key, fmt.Sprintf("mutation %s does not match wild-type residue %s at %d",
			m.token, pr.AminoAcid, pr.SequenceNumber))
		return pr.AminoAcid
	}
	return m.mutant
}

var mutationRe = regexp.MustCompile(`^([A-Z])(\d+)([A-Z])$`)

type mutation struct {
	wildType string
	mutant   string
	token    string
}

// parseMutations turns tokens like A123V into position-keyed mutations;
// tokens the notation can't express become failed outcomes.
func parseMutations(tokens []string, key string, rep *Report) map[int]mutation {
	out := make(map[int]mutation, len(tokens))
	for _, t := range tokens {
		m := mutationRe.FindStringSubmatch(t)
		if m == nil {
			rep.failed(key, "unparseable mutation "+t)
			continue
		}
		pos, err := strconv.Atoi(m[2])
		if err != nil {
			rep.failed(key, "unparseable mutation "+t)
			continue
		}
		out[pos] = mutation{wildType: m[1], mutant: m[3], token: t}
	}
	return out
}

// truncationSet expands inclusive [start, end] ranges into the set of
// excluded sequence numbers.
func truncationSet(ranges [][]int) map[int]bool {
	out := make(map[int]bool)
	for _, r := range ranges {
		if len(r) != 2 {
			continue
		}
		for i := r[0]; i <= r[1]; i++ {
			out[i] = true
		}
	}
	return out
}
