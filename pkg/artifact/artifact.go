// Package artifact defines the canonical clinical-decision-support artifact
// record, its field classification tables, and the persistence contracts the
// mapping layers are built against.
package artifact

// RecommendationStatement is one repeating evidence statement nested inside
// the supporting_evidence section. Statements are replaced wholesale whenever
// their parent section is rewritten; they are never diffed.
type RecommendationStatement struct {
	Recommendation           string `json:"recommendation"`
	StrengthOfRecommendation string `json:"strength_of_recommendation"`
	QualityOfEvidence        string `json:"quality_of_evidence"`
	DecisionNotes            string `json:"decision_notes"`
}

// Artifact is the canonical in-memory record for one CDS artifact document.
// Single-valued vocabulary references (Status, ArtifactType, License,
// KnowledgeLevel) are held as singleton sequences; the projector flattens
// them back to bare scalars on output.
type Artifact struct {
	// NodeID is the persisted identity; empty until the record is stored.
	NodeID string

	Title        string
	Description  string
	Identifier   string
	Version      string
	Status       []string
	Experimental bool
	ArtifactType []string
	CreationDate string

	// creation_and_usage
	License       []string
	Copyrights    string
	Keywords      []string
	Steward       []string
	Publisher     []string
	Contributors  string
	IPAttestation bool

	// organization
	MeshTopics       []string
	KnowledgeLevel   []string
	RelatedArtifacts []string

	// artifact_representation
	Triggers                string
	Inclusions              string
	Exclusions              string
	InterventionsAndActions string
	LogicFiles              []string

	// implementation_details
	EngineeringDetails string
	TechnicalFiles     []string
	MiscellaneousFiles []string

	// purpose_and_usage
	Purpose            string
	IntendedPopulation string
	Usage              string
	Cautions           string
	TestPatients       []string

	// supporting_evidence
	SourceDescription       string
	Source                  string
	References              string
	ArtifactDecisionNotes   string
	RecommendationStatement []RecommendationStatement

	// repository_information
	ApprovalDate    string
	ExpirationDate  string
	LastReviewDate  string
	PublicationDate string
	PreviewImage    string

	// testing_experience
	PilotExperience string

	// coverage_requirements_discovery
	Payer                     string
	CodeSystem                string
	ElectronicPrescribingCode string
}

// Clone returns a deep copy of the record.
func (a *Artifact) Clone() *Artifact {
	cp := *a
	cp.Status = append([]string(nil), a.Status...)
	cp.ArtifactType = append([]string(nil), a.ArtifactType...)
	cp.License = append([]string(nil), a.License...)
	cp.Keywords = append([]string(nil), a.Keywords...)
	cp.Steward = append([]string(nil), a.Steward...)
	cp.Publisher = append([]string(nil), a.Publisher...)
	cp.MeshTopics = append([]string(nil), a.MeshTopics...)
	cp.KnowledgeLevel = append([]string(nil), a.KnowledgeLevel...)
	cp.RelatedArtifacts = append([]string(nil), a.RelatedArtifacts...)
	cp.LogicFiles = append([]string(nil), a.LogicFiles...)
	cp.TechnicalFiles = append([]string(nil), a.TechnicalFiles...)
	cp.MiscellaneousFiles = append([]string(nil), a.MiscellaneousFiles...)
	cp.TestPatients = append([]string(nil), a.TestPatients...)
	cp.RecommendationStatement = append([]RecommendationStatement(nil), a.RecommendationStatement...)
	return &cp
}
