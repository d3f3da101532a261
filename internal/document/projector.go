package document

import (
	"encoding/json"

	"cdscore/pkg/artifact"
)

// Meta identifies a persisted record in external output.
type Meta struct {
	NodeID string `json:"node_id"`
	Self   string `json:"self"`
}

// Document is the external JSON shape of one artifact. Field order mirrors
// the API's historical output; single vocabulary references appear as bare
// scalars.
type Document struct {
	Meta         *Meta  `json:"meta,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Identifier   string `json:"identifier"`
	Version      string `json:"version"`
	Status       string `json:"status"`
	Experimental bool   `json:"experimental"`
	ArtifactType string `json:"artifact_type"`
	CreationDate string `json:"creation_date"`

	CreationAndUsage              CreationAndUsage              `json:"creation_and_usage"`
	Organization                  Organization                  `json:"organization"`
	ArtifactRepresentation        ArtifactRepresentation        `json:"artifact_representation"`
	ImplementationDetails         ImplementationDetails         `json:"implementation_details"`
	PurposeAndUsage               PurposeAndUsage               `json:"purpose_and_usage"`
	SupportingEvidence            SupportingEvidence            `json:"supporting_evidence"`
	RepositoryInformation         RepositoryInformation         `json:"repository_information"`
	TestingExperience             TestingExperience             `json:"testing_experience"`
	CoverageRequirementsDiscovery CoverageRequirementsDiscovery `json:"coverage_requirements_discovery"`
}

type CreationAndUsage struct {
	License       string   `json:"license"`
	Copyrights    string   `json:"copyrights"`
	Keywords      []string `json:"keywords"`
	Steward       []string `json:"steward"`
	Publisher     []string `json:"publisher"`
	Contributors  string   `json:"contributors"`
	IPAttestation bool     `json:"ip_attestation"`
}

type Organization struct {
	MeshTopics       []string `json:"mesh_topics"`
	KnowledgeLevel   string   `json:"knowledge_level"`
	RelatedArtifacts []string `json:"related_artifacts"`
}

type ArtifactRepresentation struct {
	Triggers                string   `json:"triggers"`
	Inclusions              string   `json:"inclusions"`
	Exclusions              string   `json:"exclusions"`
	InterventionsAndActions string   `json:"interventions_and_actions"`
	LogicFiles              []string `json:"logic_files"`
}

type ImplementationDetails struct {
	EngineeringDetails string   `json:"engineering_details"`
	TechnicalFiles     []string `json:"technical_files"`
	MiscellaneousFiles []string `json:"miscellaneous_files"`
}

type PurposeAndUsage struct {
	Purpose            string   `json:"purpose"`
	IntendedPopulation string   `json:"intended_population"`
	Usage              string   `json:"usage"`
	Cautions           string   `json:"cautions"`
	TestPatients       []string `json:"test_patients"`
}

type SupportingEvidence struct {
	SourceDescription       string                             `json:"source_description"`
	Source                  string                             `json:"source"`
	References              string                             `json:"references"`
	ArtifactDecisionNotes   string                             `json:"artifact_decision_notes"`
	RecommendationStatement []artifact.RecommendationStatement `json:"recommendation_statement"`
}

type RepositoryInformation struct {
	ApprovalDate    string `json:"approval_date"`
	ExpirationDate  string `json:"expiration_date"`
	LastReviewDate  string `json:"last_review_date"`
	PublicationDate string `json:"publication_date"`
	PreviewImage    string `json:"preview_image"`
}

type TestingExperience struct {
	PilotExperience string `json:"pilot_experience"`
}

type CoverageRequirementsDiscovery struct {
	Payer                     string `json:"payer"`
	CodeSystem                string `json:"code_system"`
	ElectronicPrescribingCode string `json:"electronic_prescribing_code"`
}

// ToExternal projects the record into the external document shape. The meta
// block is present only once the record has a persisted identity.
func ToExternal(a *artifact.Artifact) *Document {
	d := &Document{
		Title:        a.Title,
		Description:  a.Description,
		Identifier:   a.Identifier,
		Version:      a.Version,
		Status:       first(a.Status),
		Experimental: a.Experimental,
		ArtifactType: first(a.ArtifactType),
		CreationDate: a.CreationDate,
		CreationAndUsage: CreationAndUsage{
			License:       first(a.License),
			Copyrights:    a.Copyrights,
			Keywords:      a.Keywords,
			Steward:       a.Steward,
			Publisher:     a.Publisher,
			Contributors:  a.Contributors,
			IPAttestation: a.IPAttestation,
		},
		Organization: Organization{
			MeshTopics:       a.MeshTopics,
			KnowledgeLevel:   first(a.KnowledgeLevel),
			RelatedArtifacts: a.RelatedArtifacts,
		},
		ArtifactRepresentation: ArtifactRepresentation{
			Triggers:                a.Triggers,
			Inclusions:              a.Inclusions,
			Exclusions:              a.Exclusions,
			InterventionsAndActions: a.InterventionsAndActions,
			LogicFiles:              a.LogicFiles,
		},
		ImplementationDetails: ImplementationDetails{
			EngineeringDetails: a.EngineeringDetails,
			TechnicalFiles:     a.TechnicalFiles,
			MiscellaneousFiles: a.MiscellaneousFiles,
		},
		PurposeAndUsage: PurposeAndUsage{
			Purpose:            a.Purpose,
			IntendedPopulation: a.IntendedPopulation,
			Usage:              a.Usage,
			Cautions:           a.Cautions,
			TestPatients:       a.TestPatients,
		},
		SupportingEvidence: SupportingEvidence{
			SourceDescription:       a.SourceDescription,
			Source:                  a.Source,
			References:              a.References,
			ArtifactDecisionNotes:   a.ArtifactDecisionNotes,
			RecommendationStatement: a.RecommendationStatement,
		},
		RepositoryInformation: RepositoryInformation{
			ApprovalDate:    a.ApprovalDate,
			ExpirationDate:  a.ExpirationDate,
			LastReviewDate:  a.LastReviewDate,
			PublicationDate: a.PublicationDate,
			PreviewImage:    a.PreviewImage,
		},
		TestingExperience: TestingExperience{
			PilotExperience: a.PilotExperience,
		},
		CoverageRequirementsDiscovery: CoverageRequirementsDiscovery{
			Payer:                     a.Payer,
			CodeSystem:                a.CodeSystem,
			ElectronicPrescribingCode: a.ElectronicPrescribingCode,
		},
	}
	if a.NodeID != "" {
		d.Meta = &Meta{NodeID: a.NodeID, Self: "/cds_api/" + a.NodeID}
	}
	return d
}

// Encode renders the document as indented JSON.
func (d *Document) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

func first(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}
