package artifact

// Category classifies a canonical field for sanitization policy and output
// grouping. Every known field name belongs to exactly one category.
type Category int

// Field categories recognized by the classifier.
const (
	// CategoryScalar is a plain value sanitized strictly.
	CategoryScalar Category = iota
	// CategoryRichText is sanitized permissively (admin-safe HTML subset).
	CategoryRichText
	// CategorySingleReference resolves to at most one linked entity.
	CategorySingleReference
	// CategoryMultiReference resolves to an ordered sequence of entities.
	CategoryMultiReference
	// CategorySection is a named group of fields, not a value field itself.
	CategorySection
)

// RefKind identifies what a reference field points at.
type RefKind int

// Reference targets.
const (
	RefNone RefKind = iota
	// RefArtifact points at another root record by title.
	RefArtifact
	// RefTerm points at a controlled-vocabulary term by name.
	RefTerm
	// RefFile points at an attached file, projected as a URL.
	RefFile
)

// Class is the classification table entry for one field name.
type Class struct {
	Category   Category
	Ref        RefKind
	Vocabulary string // set for RefTerm entries
	Section    string // set for CategorySection entries (the section's own name)
}

// classTable is the immutable process-wide field classification. It is never
// mutated after package initialization.
var classTable = map[string]Class{
	"title":                       {Category: CategoryScalar},
	"identifier":                  {Category: CategoryScalar},
	"version":                     {Category: CategoryScalar},
	"experimental":                {Category: CategoryScalar},
	"creation_date":               {Category: CategoryScalar},
	"ip_attestation":              {Category: CategoryScalar},
	"approval_date":               {Category: CategoryScalar},
	"expiration_date":             {Category: CategoryScalar},
	"last_review_date":            {Category: CategoryScalar},
	"publication_date":            {Category: CategoryScalar},
	"payer":                       {Category: CategoryScalar},
	"code_system":                 {Category: CategoryScalar},
	"electronic_prescribing_code": {Category: CategoryScalar},

	"description":               {Category: CategoryRichText},
	"copyrights":                {Category: CategoryRichText},
	"contributors":              {Category: CategoryRichText},
	"triggers":                  {Category: CategoryRichText},
	"inclusions":                {Category: CategoryRichText},
	"exclusions":                {Category: CategoryRichText},
	"interventions_and_actions": {Category: CategoryRichText},
	"engineering_details":       {Category: CategoryRichText},
	"purpose":                   {Category: CategoryRichText},
	"intended_population":       {Category: CategoryRichText},
	"usage":                     {Category: CategoryRichText},
	"cautions":                  {Category: CategoryRichText},
	"source_description":        {Category: CategoryRichText},
	"references":                {Category: CategoryRichText},
	"artifact_decision_notes":   {Category: CategoryRichText},
	"recommendation_statement":  {Category: CategoryRichText},
	"pilot_experience":          {Category: CategoryRichText},

	"status":          {Category: CategorySingleReference, Ref: RefTerm, Vocabulary: "status"},
	"artifact_type":   {Category: CategorySingleReference, Ref: RefTerm, Vocabulary: "artifact_type"},
	"license":         {Category: CategorySingleReference, Ref: RefTerm, Vocabulary: "license"},
	"knowledge_level": {Category: CategorySingleReference, Ref: RefTerm, Vocabulary: "knowledge_level"},
	"keywords":        {Category: CategoryMultiReference, Ref: RefTerm, Vocabulary: "keywords"},
	"mesh_topics":     {Category: CategoryMultiReference, Ref: RefTerm, Vocabulary: "mesh"},

	"source":            {Category: CategorySingleReference, Ref: RefArtifact},
	"related_artifacts": {Category: CategoryMultiReference, Ref: RefArtifact},
	"steward":           {Category: CategoryMultiReference, Ref: RefArtifact},
	"publisher":         {Category: CategoryMultiReference, Ref: RefArtifact},

	"preview_image":       {Category: CategorySingleReference, Ref: RefFile},
	"logic_files":         {Category: CategoryMultiReference, Ref: RefFile},
	"technical_files":     {Category: CategoryMultiReference, Ref: RefFile},
	"miscellaneous_files": {Category: CategoryMultiReference, Ref: RefFile},
	"test_patients":       {Category: CategoryMultiReference, Ref: RefFile},

	"organization":                    {Category: CategorySection, Section: "organization"},
	"creation_and_usage":              {Category: CategorySection, Section: "creation_and_usage"},
	"artifact_representation":         {Category: CategorySection, Section: "artifact_representation"},
	"implementation_details":          {Category: CategorySection, Section: "implementation_details"},
	"purpose_and_usage":               {Category: CategorySection, Section: "purpose_and_usage"},
	"supporting_evidence":             {Category: CategorySection, Section: "supporting_evidence"},
	"repository_information":          {Category: CategorySection, Section: "repository_information"},
	"testing_experience":              {Category: CategorySection, Section: "testing_experience"},
	"coverage_requirements_discovery": {Category: CategorySection, Section: "coverage_requirements_discovery"},
}

// Classify looks up the classification for a field name. The second return
// reports whether the name is known at all.
func Classify(name string) (Class, bool) {
	c, ok := classTable[name]
	return c, ok
}

// IsRichText reports whether the named field takes permissive sanitization.
func IsRichText(name string) bool {
	c, ok := classTable[name]
	return ok && c.Category == CategoryRichText
}

// SectionFields maps each external document section to the canonical fields
// it groups, in output order. organization, creation_and_usage and
// coverage_requirements_discovery group direct root fields; the rest are
// persisted as independent child sub-records.
var SectionFields = map[string][]string{
	"creation_and_usage":              {"license", "copyrights", "keywords", "steward", "publisher", "contributors", "ip_attestation"},
	"organization":                    {"mesh_topics", "knowledge_level", "related_artifacts"},
	"artifact_representation":         {"triggers", "inclusions", "exclusions", "interventions_and_actions", "logic_files"},
	"implementation_details":          {"engineering_details", "technical_files", "miscellaneous_files"},
	"purpose_and_usage":               {"purpose", "intended_population", "usage", "cautions", "test_patients"},
	"supporting_evidence":             {"source_description", "source", "references", "artifact_decision_notes", "recommendation_statement"},
	"repository_information":          {"approval_date", "expiration_date", "last_review_date", "publication_date", "preview_image"},
	"testing_experience":              {"pilot_experience"},
	"coverage_requirements_discovery": {"payer", "code_system", "electronic_prescribing_code"},
}

// SubRecordTypes enumerates the section names persisted as child sub-records
// of the root, plus the nested recommendation_statement type. A request to
// materialize any other type is an UnknownSectionTypeError.
var SubRecordTypes = map[string]bool{
	"artifact_representation":  true,
	"recommendation_statement": true,
	"implementation_details":   true,
	"purpose_and_usage":        true,
	"supporting_evidence":      true,
	"repository_information":   true,
	"testing_experience":       true,
}

// SubRecordFields lists, per persisted section type, the canonical fields
// written to the child sub-record as plain values. Reference sub-fields
// (source, recommendation_statement) are attached separately after the plain
// fields, before the child is persisted.
var SubRecordFields = map[string][]string{
	"artifact_representation":  {"exclusions", "inclusions", "interventions_and_actions", "triggers", "logic_files"},
	"implementation_details":   {"engineering_details", "technical_files", "miscellaneous_files"},
	"purpose_and_usage":        {"cautions", "intended_population", "purpose", "usage", "test_patients"},
	"supporting_evidence":      {"source_description", "references", "artifact_decision_notes"},
	"repository_information":   {"approval_date", "expiration_date", "last_review_date", "publication_date"},
	"testing_experience":       {"pilot_experience"},
	"recommendation_statement": {"recommendation", "strength_of_recommendation", "quality_of_evidence", "decision_notes"},
}

// StorageField translates a canonical field name to its persisted-store
// field name. The root title and identity keep their bare names; the
// electronic prescribing code uses the store's historical short name.
func StorageField(name string) string {
	switch name {
	case "title":
		return "title"
	case "node_id":
		return "nid"
	case "electronic_prescribing_code":
		return "field_erx_code"
	default:
		return "field_" + name
	}
}
