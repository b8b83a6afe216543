package diag

import (
	"testing"

	"github.com/Dobios/circt/internal/source"
)

func TestBag_Limit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(Diagnostic{Severity: SevError}) {
		t.Error("first Add rejected")
	}
	if !bag.Add(Diagnostic{Severity: SevError}) {
		t.Error("second Add rejected")
	}
	if bag.Add(Diagnostic{Severity: SevError}) {
		t.Error("Add beyond limit accepted")
	}
	if bag.Len() != 2 {
		t.Errorf("Len = %d, want 2", bag.Len())
	}
}

func TestBag_HasErrorsAndWarnings(t *testing.T) {
	bag := NewBag(4)
	bag.Add(Diagnostic{Severity: SevInfo})
	if bag.HasErrors() || bag.HasWarnings() {
		t.Error("info-only bag reports errors or warnings")
	}
	bag.Add(Diagnostic{Severity: SevWarning})
	if bag.HasErrors() {
		t.Error("warning counted as error")
	}
	if !bag.HasWarnings() {
		t.Error("warning not detected")
	}
	bag.Add(Diagnostic{Severity: SevError})
	if !bag.HasErrors() {
		t.Error("error not detected")
	}
}

func TestBag_MergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Code: 1})
	b := NewBag(2)
	b.Add(Diagnostic{Code: 2})
	b.Add(Diagnostic{Code: 3})

	a.Merge(b)
	if a.Len() != 3 {
		t.Errorf("Len = %d, want 3", a.Len())
	}
}

func TestBag_SortIsDeterministic(t *testing.T) {
	bag := NewBag(8)
	bag.Add(Diagnostic{Primary: source.Span{File: 2, Start: 5}, Code: 1})
	bag.Add(Diagnostic{Primary: source.Span{File: 1, Start: 9}, Code: 2})
	bag.Add(Diagnostic{Primary: source.Span{File: 1, Start: 3}, Code: 3})
	bag.Add(Diagnostic{Primary: source.Span{File: 1, Start: 3}, Code: 1, Severity: SevError})

	bag.Sort()
	items := bag.Items()

	if items[0].Primary.File != 1 || items[0].Primary.Start != 3 {
		t.Errorf("first item = %+v", items[0])
	}
	// Equal position: higher severity first.
	if items[0].Severity != SevError {
		t.Errorf("severity order wrong: %+v", items[:2])
	}
	if items[3].Primary.File != 2 {
		t.Errorf("last item = %+v", items[3])
	}
}

func TestBagReporter_NilSafe(t *testing.T) {
	var r *BagReporter
	r.Report(UnknownCode, SevError, source.Span{}, "boom", nil)

	ReportError(nil, UnknownCode, source.Span{}, "boom")
}
