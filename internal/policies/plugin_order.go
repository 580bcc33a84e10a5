package policies

import (
	"fmt"

	"flutter-buildcfg/internal/types"
)

// PluginOrderPolicy requires a plugin to be applied after the plugins it
// builds on. Each entry of Prerequisites is a set of alternative ids; one
// member of each set must be present and precede Subject.
type PluginOrderPolicy struct {
	Subject       string
	Prerequisites [][]string
}

// NewFlutterPluginOrderPolicy encodes the Flutter Gradle plugin's
// requirement to be applied after the Android application and Kotlin
// plugins.
func NewFlutterPluginOrderPolicy() PluginOrderPolicy {
	return PluginOrderPolicy{
		Subject: types.PluginFlutterGradle,
		Prerequisites: [][]string{
			{types.PluginAndroidApplication},
			{types.PluginKotlinAndroid, types.PluginKotlinAndroidFull},
		},
	}
}

// Check returns one message per violated ordering. Plugin lists without
// the subject plugin are not checked.
func (p PluginOrderPolicy) Check(pluginIDs []string) []string {
	subject := indexOf(pluginIDs, p.Subject)
	if subject < 0 {
		return nil
	}
	var problems []string
	for _, alternatives := range p.Prerequisites {
		found := -1
		for _, id := range alternatives {
			if idx := indexOf(pluginIDs, id); idx >= 0 && (found < 0 || idx < found) {
				found = idx
			}
		}
		switch {
		case found < 0:
			problems = append(problems, fmt.Sprintf("%s requires %s to be applied", p.Subject, alternatives[0]))
		case found > subject:
			problems = append(problems, fmt.Sprintf("%s must be applied after %s", p.Subject, pluginIDs[found]))
		}
	}
	if seen := duplicates(pluginIDs); len(seen) > 0 {
		for _, id := range seen {
			problems = append(problems, fmt.Sprintf("plugin %s is applied more than once", id))
		}
	}
	return problems
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}

func duplicates(values []string) []string {
	seen := map[string]int{}
	var out []string
	for _, v := range values {
		seen[v]++
		if seen[v] == 2 {
			out = append(out, v)
		}
	}
	return out
}
