// Package mapper moves canonical artifact records in and out of the node
// store. Writing materializes a root node, its taxonomy and cross-record
// references, and one child sub-record per persisted section; reading
// reverses the process, resolving references back to display names and file
// keys to serving URLs. Every write runs inside one store transaction.
package mapper

import (
	"context"
	"fmt"

	"cdscore/pkg/artifact"
)

// rootFields are the canonical fields stored directly on the root node, in
// write order.
var rootFields = []string{
	"title", "description", "identifier", "version", "creation_date",
	"experimental", "status", "artifact_type", "license", "knowledge_level",
	"copyrights", "contributors", "ip_attestation", "keywords", "steward",
	"publisher", "mesh_topics", "related_artifacts", "payer", "code_system",
	"electronic_prescribing_code",
}

// sectionOrder lists the persisted section sub-record types in
// materialization order.
var sectionOrder = []string{
	"artifact_representation",
	"implementation_details",
	"purpose_and_usage",
	"supporting_evidence",
	"repository_information",
	"testing_experience",
}

// Mapper binds the store, logger and file resolver the graph operations
// need. Files may be nil when no attachment backend is configured; file
// references then surface their stored keys unchanged.
type Mapper struct {
	store artifact.Store
	log   artifact.Logger
	files artifact.FileResolver
}

// New returns a Mapper over the given collaborators.
func New(store artifact.Store, log artifact.Logger, files artifact.FileResolver) *Mapper {
	return &Mapper{store: store, log: log, files: files}
}

// FromGraph loads the persisted record with the given node id.
func (m *Mapper) FromGraph(ctx context.Context, id string) (*artifact.Artifact, error) {
	var out *artifact.Artifact
	err := m.store.View(ctx, func(v artifact.View) error {
		root, ok := v.GetNode(id)
		if !ok {
			return fmt.Errorf("artifact %s not found", id)
		}
		if root.Type != artifact.NodeTypeArtifact {
			return fmt.Errorf("node %s is a %s, not an artifact", id, root.Type)
		}
		a, err := m.FromNode(v, root)
		if err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FromNode hydrates a record from an already loaded root node.
func (m *Mapper) FromNode(v artifact.View, root artifact.Node) (*artifact.Artifact, error) {
	a := &artifact.Artifact{NodeID: root.ID}
	for _, name := range rootFields {
		m.readField(v, root, a, name)
	}
	for _, section := range sectionOrder {
		childIDs := root.Refs[artifact.StorageField(section)]
		if len(childIDs) == 0 {
			continue
		}
		child, ok := v.GetNode(childIDs[0])
		if !ok {
			continue
		}
		m.readSection(v, child, a, section)
	}
	return a, nil
}

// readField copies one canonical field from a node onto the record,
// resolving references to display names.
func (m *Mapper) readField(v artifact.View, n artifact.Node, a *artifact.Artifact, name string) {
	class, ok := artifact.Classify(name)
	if !ok {
		return
	}
	storage := artifact.StorageField(name)
	switch class.Ref {
	case artifact.RefNone:
		if value, ok := n.Values[storage]; ok {
			a.Set(name, value)
		}
	case artifact.RefTerm:
		ids := n.Refs[storage]
		if len(ids) == 0 {
			return
		}
		a.Set(name, m.termNames(v, class.Vocabulary, ids))
	case artifact.RefArtifact:
		ids := n.Refs[storage]
		if len(ids) == 0 {
			return
		}
		titles := m.artifactTitles(v, ids)
		if class.Category == artifact.CategorySingleReference {
			// The evidence source is singular: only the first linked
			// artifact's title survives.
			if len(titles) > 0 {
				a.Set(name, titles[0])
			}
			return
		}
		a.Set(name, titles)
	case artifact.RefFile:
		keys, ok := n.Refs[storage]
		if !ok {
			return
		}
		urls := m.fileURLs(keys)
		if class.Category == artifact.CategorySingleReference {
			a.Set(name, urls[0])
			return
		}
		a.Set(name, urls)
	}
}

// readSection copies a section child's fields onto the record, recursing
// into recommendation-statement children.
func (m *Mapper) readSection(v artifact.View, child artifact.Node, a *artifact.Artifact, section string) {
	for _, name := range artifact.SubRecordFields[section] {
		m.readField(v, child, a, name)
	}
	if section != "supporting_evidence" {
		if section == "repository_information" {
			m.readField(v, child, a, "preview_image")
		}
		return
	}
	m.readField(v, child, a, "source")
	var statements []artifact.RecommendationStatement
	for _, id := range child.Refs[artifact.StorageField("recommendation_statement")] {
		stmt, ok := v.GetNode(id)
		if !ok {
			continue
		}
		statements = append(statements, artifact.RecommendationStatement{
			Recommendation:           stringValue(stmt, "recommendation"),
			StrengthOfRecommendation: stringValue(stmt, "strength_of_recommendation"),
			QualityOfEvidence:        stringValue(stmt, "quality_of_evidence"),
			DecisionNotes:            stringValue(stmt, "decision_notes"),
		})
	}
	a.RecommendationStatement = statements
}

func stringValue(n artifact.Node, name string) string {
	s, _ := n.Values[artifact.StorageField(name)].(string)
	return s
}

// termNames resolves term ids to names through the vocabulary listing.
func (m *Mapper) termNames(v artifact.View, vocabulary string, ids []string) []string {
	byID := make(map[string]string)
	for _, t := range v.ListTerms(vocabulary) {
		byID[t.ID] = t.Name
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			out = append(out, name)
		}
	}
	return out
}

func (m *Mapper) artifactTitles(v artifact.View, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		n, ok := v.GetNode(id)
		if !ok {
			continue
		}
		if title, ok := n.Values["title"].(string); ok {
			out = append(out, title)
		}
	}
	return out
}

// fileURLs resolves stored file keys to serving URLs. A field present with
// no attachments reads as a single empty entry.
func (m *Mapper) fileURLs(keys []string) []string {
	if len(keys) == 0 {
		return []string{""}
	}
	out := make([]string, len(keys))
	for i, key := range keys {
		if m.files != nil {
			if u, ok := m.files.URL(key); ok {
				out[i] = u
				continue
			}
			m.log.Debug("file key did not resolve", "key", key)
		}
		out[i] = key
	}
	return out
}
