package artifact

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGetSetRoundTrip(t *testing.T) {
	a := &Artifact{}
	if !a.Set("title", "Aspirin Therapy") {
		t.Fatal("set title failed")
	}
	if !a.Set("experimental", true) {
		t.Fatal("set experimental failed")
	}
	if !a.Set("keywords", []string{"a", "b"}) {
		t.Fatal("set keywords failed")
	}
	if got, _ := a.Get("title"); got != "Aspirin Therapy" {
		t.Fatalf("title = %v", got)
	}
	if got, _ := a.Get("experimental"); got != true {
		t.Fatalf("experimental = %v", got)
	}
	got, _ := a.Get("keywords")
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("keywords (-want +got):\n%s", diff)
	}
}

func TestUnknownNamesAreSilent(t *testing.T) {
	a := &Artifact{}
	if _, ok := a.Get("no_such_field"); ok {
		t.Fatal("unknown get reported ok")
	}
	if a.Set("no_such_field", "x") {
		t.Fatal("unknown set reported ok")
	}
}

func TestSingletonCoercesScalar(t *testing.T) {
	a := &Artifact{}
	if !a.Set("status", "Active") {
		t.Fatal("set failed")
	}
	if diff := cmp.Diff([]string{"Active"}, a.Status); diff != "" {
		t.Fatalf("status (-want +got):\n%s", diff)
	}
	if !a.Set("artifact_type", []any{"Order Set"}) {
		t.Fatal("set list failed")
	}
	if diff := cmp.Diff([]string{"Order Set"}, a.ArtifactType); diff != "" {
		t.Fatalf("artifact_type (-want +got):\n%s", diff)
	}
}

func TestSetRejectsWrongShape(t *testing.T) {
	a := &Artifact{Title: "keep"}
	if a.Set("title", 7) {
		t.Fatal("numeric title accepted")
	}
	if a.Title != "keep" {
		t.Fatalf("title mutated to %q", a.Title)
	}
	if a.Set("keywords", []any{"ok", 3}) {
		t.Fatal("mixed list accepted")
	}
}

func TestStatementsFromDecodedJSON(t *testing.T) {
	a := &Artifact{}
	ok := a.Set("recommendation_statement", []any{
		map[string]any{"recommendation": "R", "quality_of_evidence": "High"},
	})
	if !ok {
		t.Fatal("set failed")
	}
	want := []RecommendationStatement{{Recommendation: "R", QualityOfEvidence: "High"}}
	if diff := cmp.Diff(want, a.RecommendationStatement); diff != "" {
		t.Fatalf("statements (-want +got):\n%s", diff)
	}
}

func TestNilClearsThroughSet(t *testing.T) {
	a := &Artifact{Description: "x", Keywords: []string{"k"}}
	if !a.Set("description", nil) {
		t.Fatal("nil description rejected")
	}
	if a.Description != "" {
		t.Fatalf("description = %q", a.Description)
	}
	if !a.Set("keywords", nil) {
		t.Fatal("nil keywords rejected")
	}
	if a.Keywords != nil {
		t.Fatalf("keywords = %v", a.Keywords)
	}
}

func TestFieldNamesCoverClassifierValueFields(t *testing.T) {
	names := map[string]bool{}
	for _, n := range FieldNames() {
		names[n] = true
	}
	for _, field := range []string{"title", "status", "logic_files", "recommendation_statement", "electronic_prescribing_code"} {
		if !names[field] {
			t.Fatalf("missing %s", field)
		}
	}
	if names["supporting_evidence"] {
		t.Fatal("section name listed as value field")
	}
}
