package mapper

import (
	"context"
	"fmt"

	"cdscore/internal/metrics"
	"cdscore/pkg/artifact"
)

// Create materializes the record as a new root with moderation state
// "draft", one child per persisted section, and resolved references. On
// success the record's NodeID is set to the new root id.
func (m *Mapper) Create(ctx context.Context, a *artifact.Artifact) error {
	return m.store.RunInTransaction(ctx, func(tx artifact.Tx) error {
		root := artifact.Node{
			Type:   artifact.NodeTypeArtifact,
			State:  "draft",
			Values: map[string]any{},
			Refs:   map[string][]string{},
		}
		m.writeRootFields(tx, &root, a)
		for _, section := range sectionOrder {
			child, err := m.materializeSection(tx, a, section, artifact.Node{})
			if err != nil {
				return err
			}
			root.Refs[artifact.StorageField(section)] = []string{child.ID}
		}
		created, err := tx.CreateNode(root)
		if err != nil {
			return err
		}
		a.NodeID = created.ID
		metrics.RootsPersisted.WithLabelValues("create").Inc()
		return nil
	})
}

// Update rewrites the persisted graph of an existing record. Each section's
// child id is read from the root and the child updated in place, so repeated
// updates never duplicate sub-records. Recommendation statements are the
// exception: they are created fresh and the list replaced wholesale.
func (m *Mapper) Update(ctx context.Context, a *artifact.Artifact) error {
	if a.NodeID == "" {
		return fmt.Errorf("update requires a persisted record")
	}
	return m.store.RunInTransaction(ctx, func(tx artifact.Tx) error {
		root, ok := tx.GetNode(a.NodeID)
		if !ok {
			return fmt.Errorf("artifact %s not found", a.NodeID)
		}
		if root.Values == nil {
			root.Values = map[string]any{}
		}
		if root.Refs == nil {
			root.Refs = map[string][]string{}
		}
		m.writeRootFields(tx, &root, a)
		for _, section := range sectionOrder {
			storage := artifact.StorageField(section)
			var existing artifact.Node
			if ids := root.Refs[storage]; len(ids) > 0 {
				if child, ok := tx.GetNode(ids[0]); ok {
					existing = child
				}
			}
			child, err := m.materializeSection(tx, a, section, existing)
			if err != nil {
				return err
			}
			root.Refs[storage] = []string{child.ID}
		}
		if _, err := tx.UpdateNode(root); err != nil {
			return err
		}
		metrics.RootsPersisted.WithLabelValues("update").Inc()
		return nil
	})
}

// writeRootFields applies every root-stored canonical field to the node.
func (m *Mapper) writeRootFields(tx artifact.Tx, root *artifact.Node, a *artifact.Artifact) {
	for _, name := range rootFields {
		m.writeField(tx, root, a, name)
	}
}

// writeField applies one canonical field to a node, resolving reference
// names to stored ids. Empty values are no-ops; boolean false is not empty.
func (m *Mapper) writeField(tx artifact.Tx, n *artifact.Node, a *artifact.Artifact, name string) {
	class, ok := artifact.Classify(name)
	if !ok {
		return
	}
	value, ok := a.Get(name)
	if !ok {
		return
	}
	storage := artifact.StorageField(name)
	switch class.Ref {
	case artifact.RefNone:
		m.setValue(n, storage, value)
	case artifact.RefTerm:
		names, _ := value.([]string)
		m.setRef(n, storage, m.resolveTerms(tx, class.Vocabulary, names))
	case artifact.RefArtifact:
		names := asNameList(value)
		m.setRef(n, storage, m.resolveArtifacts(tx, names))
	case artifact.RefFile:
		keys := asNameList(value)
		m.setRef(n, storage, nonEmpty(keys))
	}
}

// setValue writes a plain value, skipping empty ones and fields the node
// type does not define.
func (m *Mapper) setValue(n *artifact.Node, storage string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		if v == "" {
			return
		}
	case []string:
		if len(v) == 0 {
			return
		}
	}
	if !m.checkField(n.Type, storage) {
		return
	}
	n.Values[storage] = value
}

func (m *Mapper) setRef(n *artifact.Node, storage string, ids []string) {
	if len(ids) == 0 {
		return
	}
	if !m.checkField(n.Type, storage) {
		return
	}
	n.Refs[storage] = ids
}

// checkField reports whether the node type defines the storage field. A miss
// is logged and counted but never fatal.
func (m *Mapper) checkField(nodeType, storage string) bool {
	if artifact.HasField(nodeType, storage) {
		return true
	}
	m.log.Error("storage field not defined on node type", "node_type", nodeType, "field", storage)
	metrics.FieldMismatches.Inc()
	return false
}

// materializeSection builds or rewrites one section child: simple fields
// first, then reference sub-fields, then the persist. An existing node with
// an ID is updated in place; otherwise a new child is created.
func (m *Mapper) materializeSection(tx artifact.Tx, a *artifact.Artifact, section string, existing artifact.Node) (artifact.Node, error) {
	if !artifact.SubRecordTypes[section] {
		return artifact.Node{}, &artifact.UnknownSectionTypeError{SectionType: section}
	}
	child := existing
	child.Type = section
	if child.Values == nil {
		child.Values = map[string]any{}
	}
	if child.Refs == nil {
		child.Refs = map[string][]string{}
	}
	for _, name := range artifact.SubRecordFields[section] {
		m.writeField(tx, &child, a, name)
	}
	switch section {
	case "supporting_evidence":
		if a.Source != "" {
			m.setRef(&child, artifact.StorageField("source"), m.resolveArtifacts(tx, []string{a.Source}))
		}
		ids, err := m.createStatements(tx, a.RecommendationStatement)
		if err != nil {
			return artifact.Node{}, err
		}
		if len(ids) > 0 {
			child.Refs[artifact.StorageField("recommendation_statement")] = ids
		} else {
			delete(child.Refs, artifact.StorageField("recommendation_statement"))
		}
	case "repository_information":
		m.writeField(tx, &child, a, "preview_image")
	}
	var (
		saved artifact.Node
		err   error
	)
	if child.ID != "" {
		saved, err = tx.UpdateNode(child)
	} else {
		saved, err = tx.CreateNode(child)
	}
	if err != nil {
		return artifact.Node{}, err
	}
	metrics.SectionsPersisted.Inc()
	return saved, nil
}

// createStatements persists fresh recommendation-statement children and
// returns their ids in input order.
func (m *Mapper) createStatements(tx artifact.Tx, statements []artifact.RecommendationStatement) ([]string, error) {
	if len(statements) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(statements))
	for _, s := range statements {
		values := map[string]any{}
		values[artifact.StorageField("recommendation")] = s.Recommendation
		values[artifact.StorageField("strength_of_recommendation")] = s.StrengthOfRecommendation
		values[artifact.StorageField("quality_of_evidence")] = s.QualityOfEvidence
		values[artifact.StorageField("decision_notes")] = s.DecisionNotes
		created, err := tx.CreateNode(artifact.Node{Type: "recommendation_statement", Values: values})
		if err != nil {
			return nil, err
		}
		ids = append(ids, created.ID)
		metrics.SectionsPersisted.Inc()
	}
	return ids, nil
}

// resolveTerms maps vocabulary term names to stored ids. The listing is in
// ascending-id order and the first name match wins; misses resolve to
// nothing.
func (m *Mapper) resolveTerms(v artifact.View, vocabulary string, names []string) []string {
	if len(names) == 0 {
		return nil
	}
	terms := v.ListTerms(vocabulary)
	ids := make([]string, 0, len(names))
	for _, name := range names {
		found := ""
		for _, t := range terms {
			if t.Name == name {
				found = t.ID
				break
			}
		}
		if found == "" {
			m.log.Debug("term name did not resolve", "vocabulary", vocabulary, "name", name)
			continue
		}
		m.log.Debug("resolved term reference", "vocabulary", vocabulary, "name", name, "term_id", found)
		ids = append(ids, found)
	}
	return ids
}

// resolveArtifacts maps artifact titles to stored root ids; the
// lowest-id match wins when titles collide.
func (m *Mapper) resolveArtifacts(v artifact.View, names []string) []string {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		matches := v.QueryByTitle(artifact.NodeTypeArtifact, name)
		if len(matches) == 0 {
			m.log.Debug("artifact title did not resolve", "title", name)
			continue
		}
		if len(matches) > 1 {
			m.log.Debug("ambiguous artifact title", "title", name, "matches", len(matches))
		}
		ids = append(ids, matches[0].ID)
	}
	return ids
}

func asNameList(value any) []string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	default:
		return nil
	}
}

func nonEmpty(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
