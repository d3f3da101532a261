package document

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"cdscore/internal/infra/persistence/memory"
	"cdscore/internal/mapper"
)

// TestDocumentRoundTripThroughStore pushes a submitted document through the
// full pipeline: load, persist, reload and project. Rich text formatting
// must survive the trip unchanged while plain fields keep only their text.
func TestDocumentRoundTripThroughStore(t *testing.T) {
	raw := decodeDoc(t, `{
		"title": "Crohn's disease pathway",
		"identifier": "<h1>CDS-42</h1>",
		"description": "Summary with <em>emphasis</em> and <script>alert(1)</script> text",
		"purpose_and_usage": {
			"usage": "Use <em>only</em> with <span>care</span>"
		}
	}`)
	a, err := LoadDocument(raw, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := mapper.New(memory.NewStore(), log, nil)
	if err := m.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	reloaded, err := m.FromGraph(ctx, a.NodeID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	doc := ToExternal(reloaded)

	if doc.Title != "Crohn's disease pathway" {
		t.Fatalf("title = %q", doc.Title)
	}
	if doc.Identifier != "CDS-42" {
		t.Fatalf("identifier = %q", doc.Identifier)
	}
	if doc.Description != "Summary with <em>emphasis</em> and alert(1) text" {
		t.Fatalf("description = %q", doc.Description)
	}
	if doc.PurposeAndUsage.Usage != "Use <em>only</em> with <span>care</span>" {
		t.Fatalf("usage = %q", doc.PurposeAndUsage.Usage)
	}
}
