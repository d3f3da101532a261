package document

import (
	"strings"
	"testing"

	"cdscore/pkg/artifact"
)

func TestToExternalFlattensSingletons(t *testing.T) {
	a := &artifact.Artifact{
		Title:          "T",
		Status:         []string{"Draft"},
		ArtifactType:   []string{"Order Set"},
		License:        []string{"Apache-2.0"},
		KnowledgeLevel: []string{"3-Structured"},
	}
	d := ToExternal(a)
	if d.Status != "Draft" || d.ArtifactType != "Order Set" {
		t.Fatalf("status=%q artifact_type=%q", d.Status, d.ArtifactType)
	}
	if d.CreationAndUsage.License != "Apache-2.0" {
		t.Fatalf("license = %q", d.CreationAndUsage.License)
	}
	if d.Organization.KnowledgeLevel != "3-Structured" {
		t.Fatalf("knowledge_level = %q", d.Organization.KnowledgeLevel)
	}
	if d.Meta != nil {
		t.Fatalf("meta = %+v", d.Meta)
	}
}

func TestToExternalMetaLocator(t *testing.T) {
	d := ToExternal(&artifact.Artifact{NodeID: "42", Title: "T"})
	if d.Meta == nil || d.Meta.NodeID != "42" || d.Meta.Self != "/cds_api/42" {
		t.Fatalf("meta = %+v", d.Meta)
	}
}

func TestToExternalGroupsSections(t *testing.T) {
	a := &artifact.Artifact{
		Triggers:        "on admission",
		LogicFiles:      []string{"https://files/cql"},
		PreviewImage:    "https://files/preview.png",
		PilotExperience: "two sites",
		Payer:           "CMS",
		RecommendationStatement: []artifact.RecommendationStatement{
			{Recommendation: "R1"},
		},
	}
	d := ToExternal(a)
	if d.ArtifactRepresentation.Triggers != "on admission" {
		t.Fatalf("triggers = %q", d.ArtifactRepresentation.Triggers)
	}
	if len(d.ArtifactRepresentation.LogicFiles) != 1 {
		t.Fatalf("logic_files = %v", d.ArtifactRepresentation.LogicFiles)
	}
	if d.RepositoryInformation.PreviewImage != "https://files/preview.png" {
		t.Fatalf("preview_image = %q", d.RepositoryInformation.PreviewImage)
	}
	if d.TestingExperience.PilotExperience != "two sites" {
		t.Fatalf("pilot_experience = %q", d.TestingExperience.PilotExperience)
	}
	if d.CoverageRequirementsDiscovery.Payer != "CMS" {
		t.Fatalf("payer = %q", d.CoverageRequirementsDiscovery.Payer)
	}
	if len(d.SupportingEvidence.RecommendationStatement) != 1 {
		t.Fatalf("statements = %v", d.SupportingEvidence.RecommendationStatement)
	}
}

func TestEncodeFieldOrder(t *testing.T) {
	b, err := ToExternal(&artifact.Artifact{NodeID: "7", Title: "T"}).Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := string(b)
	order := []string{`"meta"`, `"title"`, `"description"`, `"identifier"`, `"version"`, `"status"`,
		`"experimental"`, `"artifact_type"`, `"creation_date"`, `"creation_and_usage"`,
		`"organization"`, `"artifact_representation"`, `"implementation_details"`,
		`"purpose_and_usage"`, `"supporting_evidence"`, `"repository_information"`,
		`"testing_experience"`, `"coverage_requirements_discovery"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, key)
		if idx < 0 {
			t.Fatalf("missing key %s", key)
		}
		if idx < last {
			t.Fatalf("key %s out of order", key)
		}
		last = idx
	}
}
