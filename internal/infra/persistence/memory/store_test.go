package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"cdscore/pkg/artifact"
)

func TestCreateAndGetNode(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	var created artifact.Node
	err := s.RunInTransaction(ctx, func(tx artifact.Tx) error {
		var err error
		created, err = tx.CreateNode(artifact.Node{
			Type:   artifact.NodeTypeArtifact,
			State:  "draft",
			Values: map[string]any{"title": "Aspirin Alert"},
		})
		return err
	})
	if err != nil {
		t.Fatalf("RunInTransaction: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created node has no ID")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("timestamps not set")
	}

	err = s.View(ctx, func(v artifact.View) error {
		got, ok := v.GetNode(created.ID)
		if !ok {
			t.Fatal("node not found after commit")
		}
		if got.Values["title"] != "Aspirin Alert" {
			t.Fatalf("title = %v", got.Values["title"])
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestRollbackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	sentinel := errors.New("boom")
	err := s.RunInTransaction(ctx, func(tx artifact.Tx) error {
		if _, err := tx.CreateNode(artifact.Node{Type: artifact.NodeTypeArtifact, Values: map[string]any{"title": "t"}}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v", err)
	}
	_ = s.View(ctx, func(v artifact.View) error {
		if nodes := v.QueryByTitle(artifact.NodeTypeArtifact, "t"); len(nodes) != 0 {
			t.Fatalf("write leaked past rollback: %v", nodes)
		}
		return nil
	})
}

func TestUpdateNodeKeepsTypeAndCreation(t *testing.T) {
	s := NewStore()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	now := base
	s.SetNowFunc(func() time.Time { return now })
	ctx := context.Background()

	var node artifact.Node
	_ = s.RunInTransaction(ctx, func(tx artifact.Tx) error {
		var err error
		node, err = tx.CreateNode(artifact.Node{Type: artifact.NodeTypeArtifact, Values: map[string]any{"title": "v1"}})
		return err
	})

	now = base.Add(time.Hour)
	err := s.RunInTransaction(ctx, func(tx artifact.Tx) error {
		node.Values["title"] = "v2"
		node.Type = "bogus"
		var err error
		node, err = tx.UpdateNode(node)
		return err
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if node.Type != artifact.NodeTypeArtifact {
		t.Fatalf("type rewritten to %q", node.Type)
	}
	if !node.CreatedAt.Equal(base) {
		t.Fatalf("CreatedAt = %v", node.CreatedAt)
	}
	if !node.UpdatedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("UpdatedAt = %v", node.UpdatedAt)
	}
}

func TestUpdateUnknownNode(t *testing.T) {
	s := NewStore()
	err := s.RunInTransaction(context.Background(), func(tx artifact.Tx) error {
		_, err := tx.UpdateNode(artifact.Node{ID: "missing"})
		return err
	})
	if err == nil {
		t.Fatal("expected error for unknown node")
	}
}

func TestQueryByTitleOrdersByID(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.RunInTransaction(ctx, func(tx artifact.Tx) error {
		for i := 0; i < 5; i++ {
			if _, err := tx.CreateNode(artifact.Node{Type: artifact.NodeTypeArtifact, Values: map[string]any{"title": "dup"}}); err != nil {
				return err
			}
		}
		return nil
	})
	_ = s.View(ctx, func(v artifact.View) error {
		nodes := v.QueryByTitle(artifact.NodeTypeArtifact, "dup")
		if len(nodes) != 5 {
			t.Fatalf("matches = %d", len(nodes))
		}
		for i := 1; i < len(nodes); i++ {
			if nodes[i-1].ID >= nodes[i].ID {
				t.Fatalf("unordered results: %s before %s", nodes[i-1].ID, nodes[i].ID)
			}
		}
		return nil
	})
}

func TestListTermsFiltersVocabulary(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.RunInTransaction(ctx, func(tx artifact.Tx) error {
		for _, tm := range []artifact.Term{
			{Vocabulary: "status", Name: "Active"},
			{Vocabulary: "status", Name: "Retired"},
			{Vocabulary: "keywords", Name: "cardiology"},
		} {
			if _, err := tx.CreateTerm(tm); err != nil {
				return err
			}
		}
		return nil
	})
	_ = s.View(ctx, func(v artifact.View) error {
		terms := v.ListTerms("status")
		if len(terms) != 2 {
			t.Fatalf("status terms = %d", len(terms))
		}
		for _, tm := range terms {
			if tm.Vocabulary != "status" {
				t.Fatalf("wrong vocabulary %q", tm.Vocabulary)
			}
		}
		return nil
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.RunInTransaction(ctx, func(tx artifact.Tx) error {
		if _, err := tx.CreateNode(artifact.Node{
			Type:   artifact.NodeTypeArtifact,
			Values: map[string]any{"title": "t", "field_keywords": []string{"a"}},
			Refs:   map[string][]string{"field_status": {"term-1"}},
		}); err != nil {
			return err
		}
		_, err := tx.CreateTerm(artifact.Term{Vocabulary: "status", Name: "Active"})
		return err
	})

	snap := s.ExportState()
	restored := NewStore()
	restored.ImportState(snap)
	if diff := cmp.Diff(snap, restored.ExportState()); diff != "" {
		t.Fatalf("state mismatch after import (-want +got):\n%s", diff)
	}
}

func TestViewIsolation(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	var id string
	_ = s.RunInTransaction(ctx, func(tx artifact.Tx) error {
		n, err := tx.CreateNode(artifact.Node{Type: artifact.NodeTypeArtifact, Values: map[string]any{"title": "t"}})
		id = n.ID
		return err
	})
	_ = s.View(ctx, func(v artifact.View) error {
		n, _ := v.GetNode(id)
		n.Values["title"] = "mutated"
		return nil
	})
	_ = s.View(ctx, func(v artifact.View) error {
		n, _ := v.GetNode(id)
		if n.Values["title"] != "t" {
			t.Fatalf("snapshot mutation leaked: %v", n.Values["title"])
		}
		return nil
	})
}
