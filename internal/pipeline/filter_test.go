package pipeline

import (
	"testing"

	"github.com/dvloznov/sales-cleaner/internal/domain"
)

func TestCompletenessFilter(t *testing.T) {
	records := []*domain.Record{
		{TransactionID: domain.String("A"), PaymentMethod: domain.String("Cash"), Location: domain.String("In-store")},
		{TransactionID: domain.String("B"), Item: domain.String("Coffee")},
		{TransactionID: domain.String("C"), TotalSpent: dec("4")},
		{TransactionID: domain.String("D")},
	}
	report := newReport("run", len(records))

	out := CompletenessFilter{}.Execute(records, report)

	if len(out) != 2 || *out[0].TransactionID != "B" || *out[1].TransactionID != "C" {
		t.Fatalf("Expected records B and C to survive, got %d records", len(out))
	}
	if report.DroppedIncomplete != 2 {
		t.Errorf("DroppedIncomplete = %d, want 2", report.DroppedIncomplete)
	}
}

func TestIdentityFilter(t *testing.T) {
	records := []*domain.Record{
		{TransactionID: domain.String("T3"), Item: domain.String("Cake")},
		{TransactionID: nil, Item: domain.String("Tea")},
		{TransactionID: domain.String("T3"), Item: domain.String("Juice")},
		{TransactionID: domain.String("T4"), Item: domain.String("Salad")},
		{TransactionID: domain.String("T4"), Item: domain.String("Cookie")},
	}
	report := newReport("run", len(records))

	out := IdentityFilter{}.Execute(records, report)

	if len(out) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(out))
	}
	if *out[0].TransactionID != "T3" || *out[0].Item != "Cake" {
		t.Errorf("Expected first T3 (Cake) to win, got %s/%s", *out[0].TransactionID, *out[0].Item)
	}
	if *out[1].TransactionID != "T4" || *out[1].Item != "Salad" {
		t.Errorf("Expected first T4 (Salad) to win, got %s/%s", *out[1].TransactionID, *out[1].Item)
	}
	if report.DroppedMissingID != 1 {
		t.Errorf("DroppedMissingID = %d, want 1", report.DroppedMissingID)
	}
	if report.DroppedDuplicate != 2 {
		t.Errorf("DroppedDuplicate = %d, want 2", report.DroppedDuplicate)
	}
}

func TestIdentityFilter_ExactIDs(t *testing.T) {
	records := []*domain.Record{
		{TransactionID: domain.String("  "), Item: domain.String("Coffee")},
		{TransactionID: domain.String(" T1"), Item: domain.String("Tea")},
		{TransactionID: domain.String("T1"), Item: domain.String("Cake")},
	}
	report := newReport("run", len(records))

	out := IdentityFilter{}.Execute(records, report)

	if len(out) != 3 {
		t.Fatalf("Expected all 3 records to survive, got %d", len(out))
	}
	for i, want := range []string{"  ", " T1", "T1"} {
		if *out[i].TransactionID != want {
			t.Errorf("record %d: TransactionID = %q, want %q", i, *out[i].TransactionID, want)
		}
	}
	if report.DroppedMissingID != 0 || report.DroppedDuplicate != 0 {
		t.Errorf("dropped missing/duplicate = %d/%d, want 0/0", report.DroppedMissingID, report.DroppedDuplicate)
	}
}

func TestFilters_DoNotAliasInput(t *testing.T) {
	records := []*domain.Record{
		{TransactionID: domain.String("X")},
		{TransactionID: domain.String("Y"), Item: domain.String("Tea")},
	}
	report := newReport("run", len(records))

	_ = CompletenessFilter{}.Execute(records, report)

	if *records[0].TransactionID != "X" || *records[1].TransactionID != "Y" {
		t.Error("Expected input slice to be left untouched")
	}
}

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		name   string
		id     *string
		want   string
		wantOK bool
	}{
		{"nil", nil, "", false},
		{"blank", domain.String("  "), "  ", true},
		{"plain", domain.String("TXN_1961373"), "TXN_1961373", true},
		{"padded", domain.String("\tTXN_1\n"), "\tTXN_1\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CanonicalID(tt.id)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("CanonicalID() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
