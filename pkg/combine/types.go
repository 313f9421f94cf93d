package combine

import "repodoc/pkg/filter"

// Candidate is a file that passed the path filter and waits to be read.
type Candidate struct {
	Entry      filter.Entry // RelativePath is relative to the candidate's root.
	RecordPath string       // Path in the exported document.
	Language   string
}

// CollectedFiles is the outcome of traversing every root.
type CollectedFiles struct {
	Candidates []Candidate
	Skipped    int // Entries excluded during traversal, directories included.
}
