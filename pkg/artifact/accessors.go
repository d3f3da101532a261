package artifact

// The generic accessor layer exposes the closed field set by name. Unknown
// names yield (nil, false) / false rather than an error, preserving the
// silent-miss contract relied on by the document and entity mappers.

type accessor struct {
	get func(*Artifact) any
	set func(*Artifact, any) bool
}

func stringField(get func(*Artifact) *string) accessor {
	return accessor{
		get: func(a *Artifact) any { return *get(a) },
		set: func(a *Artifact, v any) bool {
			s, ok := asString(v)
			if !ok {
				return false
			}
			*get(a) = s
			return true
		},
	}
}

func boolField(get func(*Artifact) *bool) accessor {
	return accessor{
		get: func(a *Artifact) any { return *get(a) },
		set: func(a *Artifact, v any) bool {
			b, ok := asBool(v)
			if !ok {
				return false
			}
			*get(a) = b
			return true
		},
	}
}

func listField(get func(*Artifact) *[]string) accessor {
	return accessor{
		get: func(a *Artifact) any { return *get(a) },
		set: func(a *Artifact, v any) bool {
			l, ok := asStringList(v)
			if !ok {
				return false
			}
			*get(a) = l
			return true
		},
	}
}

// singletonField backs a single vocabulary reference stored internally as a
// singleton sequence; scalar assignments are wrapped.
func singletonField(get func(*Artifact) *[]string) accessor {
	return accessor{
		get: func(a *Artifact) any { return *get(a) },
		set: func(a *Artifact, v any) bool {
			if s, ok := asString(v); ok {
				*get(a) = []string{s}
				return true
			}
			l, ok := asStringList(v)
			if !ok {
				return false
			}
			*get(a) = l
			return true
		},
	}
}

func statementsField() accessor {
	return accessor{
		get: func(a *Artifact) any { return a.RecommendationStatement },
		set: func(a *Artifact, v any) bool {
			st, ok := asStatements(v)
			if !ok {
				return false
			}
			a.RecommendationStatement = st
			return true
		},
	}
}

func asString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	default:
		return "", false
	}
}

func asBool(v any) (bool, bool) {
	switch t := v.(type) {
	case nil:
		return false, true
	case bool:
		return t, true
	default:
		return false, false
	}
}

func asStringList(v any) ([]string, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case []string:
		return append([]string(nil), t...), true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func asStatements(v any) ([]RecommendationStatement, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case []RecommendationStatement:
		return append([]RecommendationStatement(nil), t...), true
	case []any:
		out := make([]RecommendationStatement, 0, len(t))
		for _, e := range t {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, false
			}
			var rs RecommendationStatement
			rs.Recommendation, _ = m["recommendation"].(string)
			rs.StrengthOfRecommendation, _ = m["strength_of_recommendation"].(string)
			rs.QualityOfEvidence, _ = m["quality_of_evidence"].(string)
			rs.DecisionNotes, _ = m["decision_notes"].(string)
			out = append(out, rs)
		}
		return out, true
	default:
		return nil, false
	}
}

var accessors = map[string]accessor{
	"node_id": stringField(func(a *Artifact) *string { return &a.NodeID }),

	"title":         stringField(func(a *Artifact) *string { return &a.Title }),
	"description":   stringField(func(a *Artifact) *string { return &a.Description }),
	"identifier":    stringField(func(a *Artifact) *string { return &a.Identifier }),
	"version":       stringField(func(a *Artifact) *string { return &a.Version }),
	"creation_date": stringField(func(a *Artifact) *string { return &a.CreationDate }),
	"experimental":  boolField(func(a *Artifact) *bool { return &a.Experimental }),

	"status":          singletonField(func(a *Artifact) *[]string { return &a.Status }),
	"artifact_type":   singletonField(func(a *Artifact) *[]string { return &a.ArtifactType }),
	"license":         singletonField(func(a *Artifact) *[]string { return &a.License }),
	"knowledge_level": singletonField(func(a *Artifact) *[]string { return &a.KnowledgeLevel }),

	"copyrights":     stringField(func(a *Artifact) *string { return &a.Copyrights }),
	"contributors":   stringField(func(a *Artifact) *string { return &a.Contributors }),
	"ip_attestation": boolField(func(a *Artifact) *bool { return &a.IPAttestation }),
	"keywords":       listField(func(a *Artifact) *[]string { return &a.Keywords }),
	"steward":        listField(func(a *Artifact) *[]string { return &a.Steward }),
	"publisher":      listField(func(a *Artifact) *[]string { return &a.Publisher }),

	"mesh_topics":       listField(func(a *Artifact) *[]string { return &a.MeshTopics }),
	"related_artifacts": listField(func(a *Artifact) *[]string { return &a.RelatedArtifacts }),

	"triggers":                  stringField(func(a *Artifact) *string { return &a.Triggers }),
	"inclusions":                stringField(func(a *Artifact) *string { return &a.Inclusions }),
	"exclusions":                stringField(func(a *Artifact) *string { return &a.Exclusions }),
	"interventions_and_actions": stringField(func(a *Artifact) *string { return &a.InterventionsAndActions }),
	"logic_files":               listField(func(a *Artifact) *[]string { return &a.LogicFiles }),

	"engineering_details": stringField(func(a *Artifact) *string { return &a.EngineeringDetails }),
	"technical_files":     listField(func(a *Artifact) *[]string { return &a.TechnicalFiles }),
	"miscellaneous_files": listField(func(a *Artifact) *[]string { return &a.MiscellaneousFiles }),

	"purpose":             stringField(func(a *Artifact) *string { return &a.Purpose }),
	"intended_population": stringField(func(a *Artifact) *string { return &a.IntendedPopulation }),
	"usage":               stringField(func(a *Artifact) *string { return &a.Usage }),
	"cautions":            stringField(func(a *Artifact) *string { return &a.Cautions }),
	"test_patients":       listField(func(a *Artifact) *[]string { return &a.TestPatients }),

	"source_description":       stringField(func(a *Artifact) *string { return &a.SourceDescription }),
	"source":                   stringField(func(a *Artifact) *string { return &a.Source }),
	"references":               stringField(func(a *Artifact) *string { return &a.References }),
	"artifact_decision_notes":  stringField(func(a *Artifact) *string { return &a.ArtifactDecisionNotes }),
	"recommendation_statement": statementsField(),

	"approval_date":    stringField(func(a *Artifact) *string { return &a.ApprovalDate }),
	"expiration_date":  stringField(func(a *Artifact) *string { return &a.ExpirationDate }),
	"last_review_date": stringField(func(a *Artifact) *string { return &a.LastReviewDate }),
	"publication_date": stringField(func(a *Artifact) *string { return &a.PublicationDate }),
	"preview_image":    stringField(func(a *Artifact) *string { return &a.PreviewImage }),

	"pilot_experience": stringField(func(a *Artifact) *string { return &a.PilotExperience }),

	"payer":                       stringField(func(a *Artifact) *string { return &a.Payer }),
	"code_system":                 stringField(func(a *Artifact) *string { return &a.CodeSystem }),
	"electronic_prescribing_code": stringField(func(a *Artifact) *string { return &a.ElectronicPrescribingCode }),
}

// Get returns the value of the named field. Unknown names return
// (nil, false); callers that do not care about the distinction may ignore
// the second return, matching the original silent-null behavior.
func (a *Artifact) Get(name string) (any, bool) {
	acc, ok := accessors[name]
	if !ok {
		return nil, false
	}
	return acc.get(a), true
}

// Set assigns the named field, coercing the loosely typed value to the
// field's canonical shape. It reports false for unknown names and for
// values the field cannot hold; the record is untouched in both cases.
func (a *Artifact) Set(name string, value any) bool {
	acc, ok := accessors[name]
	if !ok {
		return false
	}
	return acc.set(a, value)
}

// FieldNames returns every canonical value-field name in the accessor table.
// Section names are not value fields and are not included.
func FieldNames() []string {
	out := make([]string, 0, len(accessors))
	for name := range accessors {
		out = append(out, name)
	}
	return out
}
