package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

func TestTokenLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resources.txt")
	require.NoError(t, os.WriteFile(path, []byte(`
pubchem PubChem "http://example.org/cid=$index"

pdb "Protein Data Bank" http://example.org/pdb
`), 0o644))

	lines, err := tokenLines(path)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, []string{"pubchem", "PubChem", "http://example.org/cid=$index"}, lines[0])
	require.Equal(t, "Protein Data Bank", lines[1][1])
}

func TestTokenLinesMissingFile(t *testing.T) {
	_, err := tokenLines(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeUnavailable))
}

func TestYAMLFilesOrderingAndFiltering(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Zeta.yaml", "alpha.yaml", ".hidden.yaml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x: 1\n"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0o755))

	sensitive, err := yamlFiles(dir, false)
	require.NoError(t, err)
	require.Equal(t, []string{"Zeta.yaml", "alpha.yaml"}, sensitive)

	insensitive, err := yamlFiles(dir, true)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha.yaml", "Zeta.yaml"}, insensitive)
}

func TestHTMLSibling(t *testing.T) {
	require.Equal(t, filepath.Join("pages", "about.html"), htmlSibling(filepath.Join("pages", "about.yaml")))
}

func TestReadYAMLInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- broken"), 0o644))

	var out map[string]any
	err := readYAML(path, &out)
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}
