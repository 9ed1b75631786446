package request

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	patternerrors "github.com/platformeng/patternctl/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Parse decodes a multi-document YAML submission. Empty documents (bare
// `---` separators) are skipped; a submission with no documents at all is a
// parse error. Source is used for error reporting only.
func Parse(data []byte, source string) ([]Document, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var docs []Document
	for {
		var node yaml.Node
		err := decoder.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, patternerrors.NewParseError(source, extractLine(err), err)
		}

		if node.Kind == 0 || node.IsZero() {
			continue
		}
		if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
			continue
		}

		var doc Document
		if err := node.Decode(&doc); err != nil {
			return nil, patternerrors.NewParseError(source, extractLine(err), err)
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, patternerrors.NewParseError(source, 0, fmt.Errorf("no documents found"))
	}

	return docs, nil
}

// ParseFile loads a multi-document YAML request file from disk.
func ParseFile(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, patternerrors.NewParseError(path, 0, err)
	}
	return Parse(data, path)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
