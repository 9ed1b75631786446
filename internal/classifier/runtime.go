package classifier

import (
	"path"
	"strings"
)

// manifestRuntimes maps well-known manifest files to the worker runtime
// they imply. Checked in order; the first hit wins.
var manifestRuntimes = []struct {
	base    string
	runtime string
}{
	{"package.json", "node"},
	{"requirements.txt", "python"},
	{"pyproject.toml", "python"},
	{"Pipfile", "python"},
	{"pom.xml", "java"},
	{"build.gradle", "java"},
}

// inferRuntime refines the top recommendation's suggested config with a
// best-effort runtime guess. Only the single highest-ranked single-category
// pattern that actually hosts a runtime is touched, and only its runtime
// field is overridden.
func (c *Classifier) inferRuntime(results []Recommendation, files []File) {
	if len(results) == 0 {
		return
	}

	top := &results[0]
	def, err := c.catalog.Lookup(top.Pattern)
	if err != nil || def.Category != "single" || !def.HasOption("runtime") {
		return
	}

	runtime := detectRuntime(files)
	if runtime == "" {
		return
	}

	top.SuggestedConfig["runtime"] = runtime
}

func detectRuntime(files []File) string {
	for _, file := range files {
		base := path.Base(file.Path)
		for _, m := range manifestRuntimes {
			if base == m.base {
				return m.runtime
			}
		}
		if strings.HasSuffix(base, ".csproj") {
			return "dotnet"
		}
	}
	return ""
}
