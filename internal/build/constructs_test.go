package build

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/openreceptor/receptordb/internal/models"
	"github.com/openreceptor/receptordb/internal/repository"
	"github.com/openreceptor/receptordb/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "console"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type constructFixture struct {
	dir      string
	proteins *repository.MemoryProteinRepo
	residues *repository.MemoryResidueRepo
	segments *repository.MemorySegmentRepo
	fusions  *repository.MemoryFusionRepo
	builder  *ConstructBuilder
	parent   models.Protein
	parentPC models.ProteinConformation
}

// newConstructFixture seeds a parent protein with the given sequence in
// the inactive state; segmentFor assigns each 1-based position to a
// segment slug.
func newConstructFixture(t *testing.T, sequence string, segmentFor func(pos int) string) *constructFixture {
	t.Helper()
	ctx := context.Background()

	f := &constructFixture{
		dir:      t.TempDir(),
		proteins: repository.NewMemoryProteinRepo(),
		residues: repository.NewMemoryResidueRepo(),
		segments: repository.NewMemorySegmentRepo(),
		fusions:  repository.NewMemoryFusionRepo(),
	}
	f.proteins.Residues = f.residues
	f.builder = NewConstructBuilder(f.dir, "inactive", ConstructBuilderDeps{
		Proteins: f.proteins,
		Residues: f.residues,
		Segments: f.segments,
		Fusions:  f.fusions,
	})

	state, _, err := f.proteins.GetOrCreateState(ctx, "inactive", "Inactive")
	require.NoError(t, err)
	wt, _, err := f.proteins.GetOrCreateSequenceType(ctx, "wt", "Wild-type")
	require.NoError(t, err)
	src, _, err := f.proteins.GetOrCreateSource(ctx, "SWISSPROT")
	require.NoError(t, err)

	f.parent = models.Protein{
		EntryName:                "adrb2_human",
		Name:                     "Beta-2 adrenergic receptor",
		Family:                   "001_001_003",
		Species:                  "Homo sapiens",
		SequenceTypeID:           wt.ID,
		SourceID:                 src.ID,
		ResidueNumberingSchemeID: uuid.New(),
		Sequence:                 sequence,
	}
	require.NoError(t, f.proteins.Create(ctx, &f.parent))

	f.parentPC = models.ProteinConformation{ProteinID: f.parent.ID, StateID: state.ID}
	require.NoError(t, f.proteins.CreateConformation(ctx, &f.parentPC))

	for i, aa := range sequence {
		pos := i + 1
		seg, _, err := f.segments.GetOrCreate(ctx, segmentFor(pos), models.ProteinSegment{
			Name:     strings.ToUpper(segmentFor(pos)),
			Category: "helix",
		})
		require.NoError(t, err)
		require.NoError(t, f.residues.Create(ctx, &models.Residue{
			ProteinConformationID: f.parentPC.ID,
			SequenceNumber:        pos,
			AminoAcid:             string(aa),
			ProteinSegmentID:      &seg.ID,
			ProteinSegment:        seg,
		}))
	}
	return f
}

func (f *constructFixture) writeConstruct(t *testing.T, name, content string) {
	t.Helper()
	dir := filepath.Join(f.dir, "structure_data", "constructs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// constructResidues loads the residues of the construct's conformation.
func (f *constructFixture) constructResidues(t *testing.T, entryName string) []models.Residue {
	t.Helper()
	ctx := context.Background()
	pc, err := f.proteins.ConformationByEntryName(ctx, entryName, "inactive")
	require.NoError(t, err)
	out, err := f.residues.ListByConformation(ctx, pc.ID)
	require.NoError(t, err)
	return out
}

func outcomesWithStatus(rep *Report, status Status) []Outcome {
	var out []Outcome
	for _, o := range rep.Outcomes {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

func TestConstructTruncationAndMutation(t *testing.T) {
	f := newConstructFixture(t, "MAVQK", func(int) string { return "tm1" })
	f.writeConstruct(t, "one.yaml", `
name: Construct One
protein: adrb2_human
truncations:
- [1, 1]
mutations:
- A2V
`)

	rep := f.builder.Run(context.Background(), nil)
	require.NoError(t, rep.Err)
	require.Equal(t, 1, rep.Count(StatusCreated))
	require.Equal(t, 0, rep.Count(StatusFailed))

	p, err := f.proteins.GetByEntryName(context.Background(), "construct-one")
	require.NoError(t, err)
	require.Equal(t, "VVQK", p.Sequence)
	require.Equal(t, &f.parent.ID, p.ParentID)
	require.Equal(t, f.parent.Family, p.Family)
	require.NotEmpty(t, p.ConstructMeta)

	residues := f.constructResidues(t, "construct-one")
	require.Len(t, residues, 4)
	require.Equal(t, 2, residues[0].SequenceNumber)
	require.Equal(t, "V", residues[0].AminoAcid)
	require.Equal(t, len(p.Sequence), len(residues))
}

func TestConstructMutationMismatchKeepsParentResidue(t *testing.T) {
	f := newConstructFixture(t, "MAVQK", func(int) string { return "tm1" })
	f.writeConstruct(t, "one.yaml", `
name: Mismatch
protein: adrb2_human
mutations:
- G3S
`)

	rep := f.builder.Run(context.Background(), nil)
	require.NoError(t, rep.Err)

	failures := rep.Failures()
	require.Len(t, failures, 1)
	require.Contains(t, failures[0].Reason, "G3S")

	// The construct still exists, with the wild-type residue in place.
	p, err := f.proteins.GetByEntryName(context.Background(), "mismatch")
	require.NoError(t, err)
	require.Equal(t, "MAVQK", p.Sequence)
	residues := f.constructResidues(t, "mismatch")
	require.Equal(t, "V", residues[2].AminoAcid)
}

func TestConstructUnparseableMutation(t *testing.T) {
	f := newConstructFixture(t, "MAVQK", func(int) string { return "tm1" })
	f.writeConstruct(t, "one.yaml", `
name: Bad Token
protein: adrb2_human
mutations:
- notamutation
`)

	rep := f.builder.Run(context.Background(), nil)
	failures := rep.Failures()
	require.Len(t, failures, 1)
	require.Contains(t, failures[0].Reason, "notamutation")

	p, err := f.proteins.GetByEntryName(context.Background(), "bad-token")
	require.NoError(t, err)
	require.Equal(t, "MAVQK", p.Sequence)
}

func TestConstructFusionSplitsSegment(t *testing.T) {
	f := newConstructFixture(t, "MAVQK", func(int) string { return "tm1" })
	f.writeConstruct(t, "one.yaml", `
name: Fused
protein: adrb2_human
fusion_proteins:
- name: T4 Lysozyme
  sequence: MNIFEMLRIDEGLRLKIY
  positions: [2, 4]
`)

	ctx := context.Background()
	rep := f.builder.Run(ctx, nil)
	require.NoError(t, rep.Err)
	require.Equal(t, 1, rep.Count(StatusCreated))
	require.Equal(t, 0, rep.Count(StatusFailed))

	before, err := f.segments.GetBySlug(ctx, "tm1_1")
	require.NoError(t, err)
	after, err := f.segments.GetBySlug(ctx, "tm1_2")
	require.NoError(t, err)
	require.Equal(t, "TM1", before.Name)
	require.Equal(t, before.Category, after.Category)

	residues := f.constructResidues(t, "fused")
	require.Len(t, residues, 5)
	for _, r := range residues {
		switch {
		case r.SequenceNumber <= 2:
			require.Equal(t, &before.ID, r.ProteinSegmentID, "position %d", r.SequenceNumber)
		case r.SequenceNumber >= 4:
			require.Equal(t, &after.ID, r.ProteinSegmentID, "position %d", r.SequenceNumber)
		default:
			require.Nil(t, r.ProteinSegmentID, "position %d should lose its segment", r.SequenceNumber)
		}
	}

	// Replaced positions still count: sequence keeps full length.
	p, err := f.proteins.GetByEntryName(ctx, "fused")
	require.NoError(t, err)
	require.Equal(t, "MAVQK", p.Sequence)

	require.Len(t, f.fusions.Placements, 1)
	require.Equal(t, before.ID, f.fusions.Placements[0].SegmentBeforeID)
	require.Equal(t, after.ID, f.fusions.Placements[0].SegmentAfterID)
}

func TestConstructFusionAcrossSegmentsNoSplit(t *testing.T) {
	f := newConstructFixture(t, "MAVQK", func(pos int) string {
		if pos <= 2 {
			return "tm1"
		}
		return "tm2"
	})
	f.writeConstruct(t, "one.yaml", `
name: Spanning
protein: adrb2_human
fusion_proteins:
- name: BRIL
  sequence: ADLEDN
  positions: [2, 4]
`)

	ctx := context.Background()
	rep := f.builder.Run(ctx, nil)
	require.NoError(t, rep.Err)
	require.Equal(t, 1, rep.Count(StatusCreated))

	skips := outcomesWithStatus(rep, StatusSkipped)
	require.Len(t, skips, 1)
	require.Contains(t, skips[0].Reason, "spans segments")

	// No split segments appear and every residue keeps its original one.
	_, err := f.segments.GetBySlug(ctx, "tm1_1")
	require.Error(t, err)
	tm1, err := f.segments.GetBySlug(ctx, "tm1")
	require.NoError(t, err)
	tm2, err := f.segments.GetBySlug(ctx, "tm2")
	require.NoError(t, err)

	for _, r := range f.constructResidues(t, "spanning") {
		if r.SequenceNumber <= 2 {
			require.Equal(t, &tm1.ID, r.ProteinSegmentID)
		} else {
			require.Equal(t, &tm2.ID, r.ProteinSegmentID)
		}
	}

	require.Len(t, f.fusions.Placements, 1)
	require.Equal(t, tm1.ID, f.fusions.Placements[0].SegmentBeforeID)
	require.Equal(t, tm2.ID, f.fusions.Placements[0].SegmentAfterID)
}

func TestConstructSecondFusionIntoSplitSegmentRejected(t *testing.T) {
	f := newConstructFixture(t, "MAVQKLL", func(int) string { return "tm1" })
	f.writeConstruct(t, "one.yaml", `
name: Twice Fused
protein: adrb2_human
fusion_proteins:
- name: T4 Lysozyme
  sequence: MNIFEML
  positions: [2, 4]
- name: BRIL
  sequence: ADLEDN
  positions: [5, 6]
`)

	rep := f.builder.Run(context.Background(), nil)
	failures := rep.Failures()
	require.Len(t, failures, 1)
	require.Contains(t, failures[0].Reason, "already split")

	// Only the first fusion got a placement; its split stands.
	require.Len(t, f.fusions.Placements, 1)
	for _, r := range f.constructResidues(t, "twice-fused") {
		if r.SequenceNumber == 3 {
			require.Nil(t, r.ProteinSegmentID)
		}
	}
}

func TestConstructMissingParent(t *testing.T) {
	f := newConstructFixture(t, "MAVQK", func(int) string { return "tm1" })
	f.writeConstruct(t, "one.yaml", `
name: Orphan
protein: no_such_protein
`)

	rep := f.builder.Run(context.Background(), nil)
	failures := rep.Failures()
	require.Len(t, failures, 1)
	require.Contains(t, failures[0].Reason, "no_such_protein")

	_, err := f.proteins.GetByEntryName(context.Background(), "orphan")
	require.Error(t, err)
}

func TestConstructInvalidDefinition(t *testing.T) {
	f := newConstructFixture(t, "MAVQK", func(int) string { return "tm1" })
	f.writeConstruct(t, "one.yaml", `
name: No Parent Field
`)

	rep := f.builder.Run(context.Background(), nil)
	require.Equal(t, 1, rep.Count(StatusFailed))
	require.Equal(t, 0, rep.Count(StatusCreated))
}

func TestConstructFilenameFilter(t *testing.T) {
	f := newConstructFixture(t, "MAVQK", func(int) string { return "tm1" })
	f.writeConstruct(t, "one.yaml", "name: First\nprotein: adrb2_human\n")
	f.writeConstruct(t, "two.yaml", "name: Second\nprotein: adrb2_human\n")

	rep := f.builder.Run(context.Background(), []string{"one.yaml"})
	require.Equal(t, 1, rep.Count(StatusCreated))

	_, err := f.proteins.GetByEntryName(context.Background(), "first")
	require.NoError(t, err)
	_, err = f.proteins.GetByEntryName(context.Background(), "second")
	require.Error(t, err)
}

func TestConstructEntryNameStripsTags(t *testing.T) {
	f := newConstructFixture(t, "MAVQK", func(int) string { return "tm1" })
	f.writeConstruct(t, "one.yaml", `
name: <i>Fancy</i> Construct
protein: adrb2_human
`)

	rep := f.builder.Run(context.Background(), nil)
	require.Equal(t, 1, rep.Count(StatusCreated))

	p, err := f.proteins.GetByEntryName(context.Background(), "fancy-construct")
	require.NoError(t, err)
	require.Equal(t, "<i>Fancy</i> Construct", p.Name)
}

func TestPurgeRemovesConstructsAndResidues(t *testing.T) {
	f := newConstructFixture(t, "MAVQK", func(int) string { return "tm1" })
	f.writeConstruct(t, "one.yaml", "name: Doomed\nprotein: adrb2_human\n")

	ctx := context.Background()
	rep := f.builder.Run(ctx, nil)
	require.Equal(t, 1, rep.Count(StatusCreated))

	first, err := f.proteins.GetByEntryName(ctx, "doomed")
	require.NoError(t, err)

	n, err := f.builder.Purge(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = f.proteins.GetByEntryName(ctx, "doomed")
	require.Error(t, err)
	// Parent survives the purge.
	_, err = f.proteins.GetByEntryName(ctx, "adrb2_human")
	require.NoError(t, err)

	// A rebuild produces a fresh record.
	rep = f.builder.Run(ctx, nil)
	require.Equal(t, 1, rep.Count(StatusCreated))
	second, err := f.proteins.GetByEntryName(ctx, "doomed")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestPurgeWithoutConstructs(t *testing.T) {
	f := newConstructFixture(t, "MAVQK", func(int) string { return "tm1" })
	n, err := f.builder.Purge(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestParseMutations(t *testing.T) {
	rep := newReport("constructs")
	out := parseMutations([]string{"A123V", "G7S", "bogus", "a2v"}, "key", rep)

	require.Len(t, out, 2)
	require.Equal(t, mutation{wildType: "A", mutant: "V", token: "A123V"}, out[123])
	require.Equal(t, mutation{wildType: "G", mutant: "S", token: "G7S"}, out[7])
	require.Equal(t, 2, rep.Count(StatusFailed))
}

func TestTruncationSet(t *testing.T) {
	set := truncationSet([][]int{{1, 3}, {10, 10}})
	require.Len(t, set, 4)
	require.True(t, set[1])
	require.True(t, set[3])
	require.True(t, set[10])
	require.False(t, set[4])
}
