package types

// ProjectLayout locates the files of a Flutter project that feed the
// Android app-module configuration. Empty paths are absent files.
type ProjectLayout struct {
	Root            string
	AppScript       string
	LocalProperties string
	Pubspec         string
}
