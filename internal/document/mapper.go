// Package document converts between external JSON documents and the
// canonical artifact record. Loading validates against the embedded schema,
// applies defaults, sanitizes every value by its field classification and
// unpacks section groupings; projecting reverses the grouping for output.
package document

import (
	"encoding/json"
	"io"
	"time"

	"cdscore/internal/metrics"
	"cdscore/internal/sanitize"
	"cdscore/internal/schema"
	"cdscore/pkg/artifact"
)

const titlePrefix = "CDS Artifact uploaded on "

// now is swapped in tests that pin the synthesized title.
var now = time.Now

// Decode reads one JSON document preserving number literals, so integer and
// floating-point values stay distinguishable during validation.
func Decode(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadDocument validates raw against the schema and maps it onto a fresh
// Artifact. With assignDefaults set, schema defaults are written into raw
// first and a missing title is synthesized from the upload date. An invalid
// document returns a SchemaViolationError carrying every violation in schema
// order; no partial record is produced.
func LoadDocument(raw map[string]any, assignDefaults bool) (*artifact.Artifact, error) {
	var synthesized string
	if assignDefaults {
		if _, ok := raw["title"]; !ok {
			synthesized = titlePrefix + now().Format("Mon, Jan 02, 2006")
		}
	}

	res, err := schema.ValidateDocument(raw, assignDefaults)
	if err != nil {
		return nil, err
	}
	if !res.Valid() {
		metrics.SchemaViolations.Add(float64(len(res.Violations)))
		return nil, res.Err()
	}
	metrics.DocumentsLoaded.Inc()

	a := &artifact.Artifact{}
	for key, value := range raw {
		class, known := artifact.Classify(key)
		if !known {
			continue
		}
		if class.Category == artifact.CategorySection {
			group, ok := value.(map[string]any)
			if !ok {
				continue
			}
			assignSection(a, class.Section, group)
			continue
		}
		a.Set(key, sanitize.Value(value, artifact.IsRichText(key)))
	}

	// Title resolution: an explicit title wins, then a bare name, then the
	// synthesized upload-date title.
	if a.Title == "" {
		if name, ok := raw["name"].(string); ok && name != "" {
			a.Title = sanitize.Strict(name)
		} else {
			a.Title = synthesized
		}
	}
	return a, nil
}

// assignSection unpacks one section grouping onto the record. Only the
// fields the section is declared to carry are considered; anything else in
// the group is ignored.
func assignSection(a *artifact.Artifact, section string, group map[string]any) {
	for _, field := range artifact.SectionFields[section] {
		value, ok := group[field]
		if !ok {
			continue
		}
		a.Set(field, sanitize.Value(value, artifact.IsRichText(field)))
	}
}
