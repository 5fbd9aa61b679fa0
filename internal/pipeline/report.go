package pipeline

import (
	"sort"
	"time"
)

// IssueKind classifies why a field was set to unknown.
type IssueKind string

const (
	// IssuePlaceholder means the source held a sentinel such as "ERROR".
	IssuePlaceholder IssueKind = "placeholder"
	// IssueOutOfVocabulary means a category label outside its vocabulary.
	IssueOutOfVocabulary IssueKind = "out_of_vocabulary"
	// IssueUnparseable means a number or date that could not be parsed.
	IssueUnparseable IssueKind = "unparseable"
)

// Issue records one field that was nulled.
type Issue struct {
	Column string
	Kind   IssueKind
}

// Report summarizes a cleaning run.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	InputRows  int
	OutputRows int

	DroppedIncomplete int
	DroppedMissingID  int
	DroppedDuplicate  int

	TotalsRecomputed int

	// Nulled counts nulled fields per column and kind.
	Nulled map[string]map[IssueKind]int
}

func newReport(runID string, inputRows int) *Report {
	return &Report{
		RunID:     runID,
		StartedAt: time.Now(),
		InputRows: inputRows,
		Nulled:    make(map[string]map[IssueKind]int),
	}
}

func (r *Report) addState(s *RecordState) {
	for _, is := range s.Issues {
		byKind, ok := r.Nulled[is.Column]
		if !ok {
			byKind = make(map[IssueKind]int)
			r.Nulled[is.Column] = byKind
		}
		byKind[is.Kind]++
	}
	if s.TotalRecomputed {
		r.TotalsRecomputed++
	}
}

// RowsRemoved is the number of input rows not present in the output.
func (r *Report) RowsRemoved() int {
	return r.InputRows - r.OutputRows
}

// NulledCount returns how many fields of column were nulled for kind.
func (r *Report) NulledCount(column string, kind IssueKind) int {
	return r.Nulled[column][kind]
}

// NulledColumns returns the columns with at least one nulled field, sorted.
func (r *Report) NulledColumns() []string {
	cols := make([]string, 0, len(r.Nulled))
	for c := range r.Nulled {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}
