package build

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/shlex"
	"gopkg.in/yaml.v3"

	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

// tokenLines reads a line-oriented source file and splits each non-empty
// line with shell-style (whitespace and quote aware) tokenizing.
func tokenLines(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeUnavailable, "open source file failed").WithMeta("path", path)
	}
	defer f.Close()

	var out [][]string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tokens, err := shlex.Split(line)
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInvalid, "tokenize line failed").WithMeta("line", line)
		}
		if len(tokens) > 0 {
			out = append(out, tokens)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "read source file failed").WithMeta("path", path)
	}
	return out, nil
}

// readYAML unmarshals one YAML document into out.
func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeUnavailable, "open source file failed").WithMeta("path", path)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "parse yaml failed").WithMeta("path", path)
	}
	return nil
}

// yamlFiles lists the .yaml files of a directory in sorted order,
// skipping dotfiles. With caseInsensitive the sort folds case, matching
// the page catalog's ordering contract.
func yamlFiles(dir string, caseInsensitive bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeUnavailable, "read source directory failed").WithMeta("dir", dir)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		out = append(out, name)
	}
	if caseInsensitive {
		sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	} else {
		sort.Strings(out)
	}
	return out, nil
}

// htmlSibling maps metadata.yaml onto the metadata.html carrying the
// rendered body.
func htmlSibling(yamlPath string) string {
	return strings.TrimSuffix(yamlPath, filepath.Ext(yamlPath)) + ".html"
}

// readHTMLBody reads an HTML sibling file verbatim.
func readHTMLBody(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeUnavailable, "read html body failed").WithMeta("path", path)
	}
	return string(data), nil
}
