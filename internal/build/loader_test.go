package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openreceptor/receptordb/internal/repository"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

type loaderFixture struct {
	dir          string
	resources    *repository.MemoryWebResourceRepo
	ligands      *repository.MemoryLigandRepo
	content      *repository.MemoryContentRepo
	publications *repository.MemoryPublicationRepo
	segments     *repository.MemorySegmentRepo
	schemes      *repository.MemorySchemeRepo
	anomalies    *repository.MemoryAnomalyRepo
	loader       *CommonLoader
}

func newLoaderFixture(t *testing.T) *loaderFixture {
	t.Helper()
	f := &loaderFixture{
		dir:          t.TempDir(),
		resources:    repository.NewMemoryWebResourceRepo(),
		ligands:      repository.NewMemoryLigandRepo(),
		content:      repository.NewMemoryContentRepo(),
		publications: repository.NewMemoryPublicationRepo(),
		segments:     repository.NewMemorySegmentRepo(),
		schemes:      repository.NewMemorySchemeRepo(),
		anomalies:    repository.NewMemoryAnomalyRepo(),
	}
	f.loader = NewCommonLoader(f.dir, "bw", CommonLoaderDeps{
		Resources:    f.resources,
		Ligands:      f.ligands,
		Content:      f.content,
		Publications: f.publications,
		Segments:     f.segments,
		Schemes:      f.schemes,
		Anomalies:    f.anomalies,
	})
	return f
}

func (f *loaderFixture) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(f.dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func (f *loaderFixture) seedAll(t *testing.T) {
	t.Helper()
	f.write(t, "common_data/resources.txt", `
pubchem PubChem "http://pubchem.ncbi.nlm.nih.gov/summary/summary.cgi?cid=$index"
pdb "Protein Data Bank" "http://www.rcsb.org/pdb/explore.do?structureId=$index"
`)
	f.write(t, "ligand_data/ligands.yaml", `
- name: Adrenaline
  canonical: true
  smiles: CNC[C@@H](O)c1ccc(O)c(O)c1
  inchikey: UCTWMZQNUQWSLP-VIFPVBQESA-N
  ligand_type_slug: small_molecule
  ligand_type_name: Small molecule
  weblinks:
  - ["5816", "pubchem"]
- name: Mystery peptide
  canonical: false
`)
	f.write(t, "documentation/intro.yaml", "title: Introduction\ndescription: Getting started\nimage: intro.png\n")
	f.write(t, "documentation/intro.html", "<p>Welcome</p>\n")
	f.write(t, "news/launch.yaml", "image: launch.png\ndate: 2015-01-15\n")
	f.write(t, "news/launch.html", "<p>We launched</p>\n")
	f.write(t, "pages/Zeta.yaml", "title: Zeta\n")
	f.write(t, "pages/Zeta.html", "<p>z</p>\n")
	f.write(t, "pages/alpha.yaml", "title: Alpha\n")
	f.write(t, "pages/alpha.html", "<p>a</p>\n")
	f.write(t, "publications_data/publications.yaml", `
- title: Structure of the receptor
  authors: Doe J, Roe R
  year: 2014
  reference: "Nature 2014"
  journal_slug: nature
  journal_name: Nature
  weblink_resource: pdb
  weblink_index: 4LDE
`)
	f.write(t, "protein_data/segments.txt", `
tm1 helix TM1
icl1 loop ICL1
`)
	f.write(t, "residue_data/generic_numbers/schemes.txt", `
bw "BW" "Ballesteros-Weinstein numbering"
bs "BS" "Child scheme" bw
broken "X" "Refers to nothing" no_such_scheme
`)
	f.write(t, "structure_data/anomalies/bulge_1x411.yaml", `
anomaly_type: bulge
protein_segment: tm1
generic_number: 1x411
rule_sets:
- exclusive: true
  rules:
  - generic_number: 1x46
    amino_acid: G
    negative: false
  - generic_number: ""
    amino_acid: ""
`)
}

func reportByStage(t *testing.T, reports []*Report, stage string) *Report {
	t.Helper()
	for _, r := range reports {
		if r.Stage == stage {
			return r
		}
	}
	t.Fatalf("no report for stage %s", stage)
	return nil
}

func TestCommonLoaderRun(t *testing.T) {
	f := newLoaderFixture(t)
	f.seedAll(t)
	ctx := context.Background()

	reports := f.loader.Run(ctx)
	require.Len(t, reports, 9)

	require.Equal(t, 2, reportByStage(t, reports, "resources").Count(StatusCreated))
	require.Equal(t, 2, reportByStage(t, reports, "ligands").Count(StatusCreated))
	require.Equal(t, 1, reportByStage(t, reports, "documentation").Count(StatusCreated))
	require.Equal(t, 1, reportByStage(t, reports, "news").Count(StatusCreated))
	require.Equal(t, 2, reportByStage(t, reports, "pages").Count(StatusCreated))
	require.Equal(t, 1, reportByStage(t, reports, "publications").Count(StatusCreated))
	require.Equal(t, 2, reportByStage(t, reports, "protein_segments").Count(StatusCreated))

	schemes := reportByStage(t, reports, "numbering_schemes")
	require.Equal(t, 2, schemes.Count(StatusCreated))
	require.Equal(t, 1, schemes.Count(StatusFailed))
	require.Contains(t, schemes.Failures()[0].Reason, "no_such_scheme")

	anomalies := reportByStage(t, reports, "anomalies")
	require.Equal(t, 1, anomalies.Count(StatusCreated))
	require.Equal(t, 1, anomalies.Count(StatusFailed))
	require.Len(t, f.anomalies.RuleSets, 1)
	require.True(t, f.anomalies.RuleSets[0].Exclusive)
	require.Len(t, f.anomalies.Rules, 1)
	require.Equal(t, "G", f.anomalies.Rules[0].AminoAcid)

	// Content records carry their HTML siblings.
	docs, err := f.content.ListDocumentation(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "<p>Welcome</p>\n", docs[0].HTML)

	news, err := f.content.ListNews(ctx)
	require.NoError(t, err)
	require.Len(t, news, 1)
	require.Equal(t, "launch.png", news[0].Image)
	require.Equal(t, 2015, news[0].Date.Year())

	// Pages processed in case-insensitive filename order.
	pages := reportByStage(t, reports, "pages")
	require.Equal(t, "Alpha", pages.Outcomes[0].Key)
	require.Equal(t, "Zeta", pages.Outcomes[1].Key)
}

func TestCommonLoaderIdempotent(t *testing.T) {
	f := newLoaderFixture(t)
	f.seedAll(t)
	ctx := context.Background()

	f.loader.Run(ctx)
	reports := f.loader.Run(ctx)

	for _, rep := range reports {
		require.Zero(t, rep.Count(StatusCreated), "stage %s created records on re-run", rep.Stage)
	}
	// The second pass must not duplicate anomaly rule sets either.
	require.Len(t, f.anomalies.RuleSets, 1)
	require.Len(t, f.anomalies.Rules, 1)
}

func TestLigandStageAbortsWithoutPubchem(t *testing.T) {
	f := newLoaderFixture(t)
	f.write(t, "common_data/resources.txt", `pdb "Protein Data Bank" "http://example.org/$index"`)
	f.write(t, "ligand_data/ligands.yaml", "- name: Adrenaline\n  canonical: true\n")

	reports := f.loader.Run(context.Background())
	lig := reportByStage(t, reports, "ligands")
	require.Error(t, lig.Err)
	require.True(t, appErr.IsCode(lig.Err, appErr.CodeDependency))
	require.Empty(t, lig.Outcomes)
}

func TestPublicationStageAbortsOnMissingResource(t *testing.T) {
	f := newLoaderFixture(t)
	f.write(t, "publications_data/publications.yaml", `
- title: Ghost paper
  authors: Doe J
  year: 2010
  journal_slug: nature
  journal_name: Nature
  weblink_resource: never_loaded
  weblink_index: XXXX
`)

	reports := f.loader.Run(context.Background())
	pubs := reportByStage(t, reports, "publications")
	require.Error(t, pubs.Err)
	require.True(t, appErr.IsCode(pubs.Err, appErr.CodeDependency))

	_, total, err := f.publications.List(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestAnomalyStageAbortsWithoutDefaultScheme(t *testing.T) {
	f := newLoaderFixture(t)
	f.write(t, "structure_data/anomalies/bulge.yaml", "anomaly_type: bulge\ngeneric_number: 1x411\n")

	reports := f.loader.Run(context.Background())
	ano := reportByStage(t, reports, "anomalies")
	require.Error(t, ano.Err)
	require.True(t, appErr.IsCode(ano.Err, appErr.CodeDependency))
}

func TestAnomalyUnknownSegmentSkipsRecord(t *testing.T) {
	f := newLoaderFixture(t)
	f.write(t, "residue_data/generic_numbers/schemes.txt", `bw "BW" "Ballesteros-Weinstein numbering"`)
	f.write(t, "structure_data/anomalies/bulge.yaml", `
anomaly_type: bulge
protein_segment: tm9
generic_number: 1x411
rule_sets:
- rules:
  - generic_number: 1x46
    amino_acid: G
`)

	reports := f.loader.Run(context.Background())
	ano := reportByStage(t, reports, "anomalies")
	require.NoError(t, ano.Err)
	require.Equal(t, 1, ano.Count(StatusSkipped))
	require.Empty(t, f.anomalies.RuleSets)
}

func TestStageFailureDoesNotBlockLaterStages(t *testing.T) {
	f := newLoaderFixture(t)
	// Only segments exist; everything before them aborts on missing
	// sources but the stage still runs.
	f.write(t, "protein_data/segments.txt", "tm1 helix TM1\n")

	reports := f.loader.Run(context.Background())
	require.Error(t, reportByStage(t, reports, "resources").Err)
	require.Equal(t, 1, reportByStage(t, reports, "protein_segments").Count(StatusCreated))
}
