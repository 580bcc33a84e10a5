package core

import (
	"fmt"
	"strconv"
	"strings"

	"flutter-buildcfg/internal/types"
)

// ParseJavaVersion normalizes the spellings Gradle scripts use for a
// language level: JavaVersion.VERSION_17, VERSION_1_8, JvmTarget.JVM_17,
// "17", 1.8. Java 8 and older normalize to the 1.x form.
func ParseJavaVersion(raw string) (types.JavaVersion, error) {
	text := strings.Trim(strings.TrimSpace(raw), `"'`)
	text = strings.TrimSuffix(text, ".toString()")
	for _, prefix := range []string{"JavaVersion.", "JvmTarget.", "VERSION_", "JVM_"} {
		text = strings.TrimPrefix(text, prefix)
	}
	text = strings.ReplaceAll(text, "_", ".")
	if text == "" {
		return types.JavaVersionUnset, fmt.Errorf("empty java version")
	}

	major := text
	if strings.HasPrefix(text, "1.") {
		major = strings.TrimPrefix(text, "1.")
	}
	n, err := strconv.Atoi(major)
	if err != nil || n <= 0 {
		return types.JavaVersionUnset, fmt.Errorf("unsupported java version %q", raw)
	}
	if n <= 8 {
		return types.JavaVersion(fmt.Sprintf("1.%d", n)), nil
	}
	if strings.HasPrefix(text, "1.") {
		return types.JavaVersionUnset, fmt.Errorf("unsupported java version %q", raw)
	}
	return types.JavaVersion(strconv.Itoa(n)), nil
}

// javaVersionConstant renders a language level as the JavaVersion enum
// constant used in Kotlin DSL scripts.
func javaVersionConstant(v types.JavaVersion) string {
	return "JavaVersion.VERSION_" + strings.ReplaceAll(string(v), ".", "_")
}
