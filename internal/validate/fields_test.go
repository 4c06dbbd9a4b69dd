package validate

import (
	"reflect"
	"testing"

	"github.com/ppiankov/provgate/internal/model"
)

func testRecord(pairs ...any) *model.Record {
	rec := model.NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		rec.Set(pairs[i].(string), pairs[i+1])
	}
	return rec
}

func TestFieldClassifier_Precedence(t *testing.T) {
	rec := testRecord(
		"_metadata", map[string]any{},
		"id", "doc-1",
		"fee", 25,
		"fee_source", "fee table",
		"fee_verified_at", "2025-01-15",
		"notes", "internal",
		"office", "Mitte",
	)

	classifier := NewFieldClassifier(model.FieldPolicy{
		IdentityFields: []string{"id"},
		NonFactFields:  []string{"notes"},
	})

	got := classifier.FactFields(rec)
	want := []string{"fee", "office"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected fact fields %v, got %v", want, got)
	}
}

func TestFieldClassifier_OrderFollowsRecord(t *testing.T) {
	rec := testRecord(
		"zebra", 1,
		"apple", 2,
		"middle", 3,
	)

	classifier := NewFieldClassifier(model.FieldPolicy{})

	got := classifier.FactFields(rec)
	want := []string{"zebra", "apple", "middle"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected record order %v, got %v", want, got)
	}
}

func TestFieldClassifier_CompanionSuffixesExcluded(t *testing.T) {
	rec := testRecord(
		"fee", 25,
		"fee_source", "x",
		"fee_verified_at", "2025-01-15",
		"opening_hours_source", "y",
	)

	classifier := NewFieldClassifier(model.FieldPolicy{})

	got := classifier.FactFields(rec)
	if !reflect.DeepEqual(got, []string{"fee"}) {
		t.Errorf("Expected only 'fee', got %v", got)
	}
}
