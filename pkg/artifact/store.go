package artifact

import (
	"context"
	"time"
)

// Node type names used by the entity mapper. The root type carries the
// artifact record; the section types carry its child sub-records.
const (
	NodeTypeArtifact = "artifact"
)

// Node is a stored entity: a root artifact or a section sub-record. Values
// holds plain field values keyed by storage field name; Refs holds entity
// references (term IDs, node IDs, file keys) keyed the same way.
type Node struct {
	ID        string
	Type      string
	State     string
	Values    map[string]any
	Refs      map[string][]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy safe to mutate without affecting the stored
// snapshot.
func (n Node) Clone() Node {
	out := n
	if n.Values != nil {
		out.Values = make(map[string]any, len(n.Values))
		for k, v := range n.Values {
			out.Values[k] = cloneValue(v)
		}
	}
	if n.Refs != nil {
		out.Refs = make(map[string][]string, len(n.Refs))
		for k, v := range n.Refs {
			out.Refs[k] = append([]string(nil), v...)
		}
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Term is a controlled-vocabulary entry.
type Term struct {
	ID         string
	Vocabulary string
	Name       string
}

// Store is the transactional node store the entity mapper runs against.
// RunInTransaction applies fn atomically: if fn returns an error no writes
// are visible. View runs fn against a consistent read-only snapshot.
type Store interface {
	RunInTransaction(ctx context.Context, fn func(Tx) error) error
	View(ctx context.Context, fn func(View) error) error
}

// Tx is the mutable handle passed to RunInTransaction callbacks.
type Tx interface {
	View
	CreateNode(n Node) (Node, error)
	UpdateNode(n Node) (Node, error)
	CreateTerm(t Term) (Term, error)
}

// View is the read-only handle. QueryByTitle and ListTerms return matches
// ordered by ascending ID so name collisions resolve deterministically.
type View interface {
	GetNode(id string) (Node, bool)
	QueryByTitle(nodeType, title string) []Node
	ListTerms(vocabulary string) []Term
}

// Logger is the small logging surface the mapper needs. Implementations
// wrap whatever logging stack the host uses.
type Logger interface {
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// FileResolver turns a stored file key into a serving URL. The second
// return reports whether the key is known.
type FileResolver interface {
	URL(key string) (string, bool)
}

// nodeFields registers, per node type, the storage field names that type
// accepts. Writes to any other field are rejected by the mapper and
// reported through its logger.
var nodeFields = map[string]map[string]bool{
	NodeTypeArtifact: fieldSet(
		"title",
		"field_description",
		"field_identifier",
		"field_version",
		"field_creation_date",
		"field_experimental",
		"field_status",
		"field_artifact_type",
		"field_license",
		"field_knowledge_level",
		"field_copyrights",
		"field_contributors",
		"field_ip_attestation",
		"field_keywords",
		"field_steward",
		"field_publisher",
		"field_mesh_topics",
		"field_related_artifacts",
		"field_payer",
		"field_code_system",
		"field_erx_code",
		"field_artifact_representation",
		"field_implementation_details",
		"field_purpose_and_usage",
		"field_supporting_evidence",
		"field_repository_information",
		"field_testing_experience",
	),
	"artifact_representation": fieldSet(
		"field_triggers",
		"field_inclusions",
		"field_exclusions",
		"field_interventions_and_actions",
		"field_logic_files",
	),
	"implementation_details": fieldSet(
		"field_engineering_details",
		"field_technical_files",
		"field_miscellaneous_files",
	),
	"purpose_and_usage": fieldSet(
		"field_purpose",
		"field_intended_population",
		"field_usage",
		"field_cautions",
		"field_test_patients",
	),
	"supporting_evidence": fieldSet(
		"field_source_description",
		"field_source",
		"field_references",
		"field_artifact_decision_notes",
		"field_recommendation_statement",
	),
	"repository_information": fieldSet(
		"field_approval_date",
		"field_expiration_date",
		"field_last_review_date",
		"field_publication_date",
		"field_preview_image",
	),
	"testing_experience": fieldSet(
		"field_pilot_experience",
	),
	"recommendation_statement": fieldSet(
		"field_recommendation",
		"field_strength_of_recommendation",
		"field_quality_of_evidence",
		"field_decision_notes",
	),
}

func fieldSet(names ...string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// HasField reports whether the node type accepts the storage field name.
func HasField(nodeType, storageField string) bool {
	return nodeFields[nodeType][storageField]
}
