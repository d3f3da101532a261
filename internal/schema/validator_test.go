package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"cdscore/pkg/artifact"
)

func decodeDoc(t *testing.T, raw string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return doc
}

func parseFragment(t *testing.T, raw string) *Node {
	t.Helper()
	n, _, err := parseSchema([]byte(raw))
	if err != nil {
		t.Fatalf("parse schema %q: %v", raw, err)
	}
	return n
}

func TestLoadEmbeddedSchema(t *testing.T) {
	root, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(root.Properties) == 0 {
		t.Fatal("embedded schema has no properties")
	}
	if got := Title(); got != "CDS Connect Schema v1 (draft)" {
		t.Fatalf("Title = %q", got)
	}
	var raw map[string]any
	if err := json.Unmarshal(Raw(), &raw); err != nil {
		t.Fatalf("Raw is not valid JSON: %v", err)
	}
}

func TestValidateTypeMatrix(t *testing.T) {
	arrayStrings := `{"properties":{"p1":{"type":"array","items":{"type":"string"}}}}`
	narrayStrings := `{"properties":{"p1":{"type":["array","null"],"items":{"type":"string"}}}}`
	arrayInts := `{"properties":{"p1":{"type":"array","items":{"type":"integer"}}}}`
	integer := `{"properties":{"p1":{"type":"integer"}}}`
	ninteger := `{"properties":{"p1":{"type":["integer","null"]}}}`
	boolean := `{"properties":{"p1":{"type":"boolean"}}}`
	nboolean := `{"properties":{"p1":{"type":["boolean","null"]}}}`
	str := `{"properties":{"p1":{"type":"string"}}}`
	nstr := `{"properties":{"p1":{"type":["string","null"]}}}`
	datetime := `{"properties":{"p1":{"type":"string","format":"date-time"}}}`
	ndatetime := `{"properties":{"p1":{"type":["string","null"],"format":"date-time"}}}`
	date := `{"properties":{"p1":{"type":"string","format":"date"}}}`
	clock := `{"properties":{"p1":{"type":"string","format":"time"}}}`
	email := `{"properties":{"p1":{"type":"string","format":"email"}}}`
	object := `{"properties":{"p1":{"type":"object","properties":{"a":{"type":"string"}}}}}`
	nobject := `{"properties":{"p1":{"type":["object","null"],"properties":{"a":{"type":"string"}}}}}`

	cases := []struct {
		name   string
		schema string
		doc    string
		valid  bool
	}{
		{"array of strings ok", arrayStrings, `{"p1":["1","2","3"]}`, true},
		{"array of ints against strings", arrayStrings, `{"p1":[1,2,3]}`, false},
		{"empty array ok", arrayStrings, `{"p1":[]}`, true},
		{"null is not an array", arrayStrings, `{"p1":null}`, false},
		{"nullable array takes null", narrayStrings, `{"p1":null}`, true},
		{"array of ints ok", arrayInts, `{"p1":[1,2,3]}`, true},
		{"array of strings against ints", arrayInts, `{"p1":["1","2","3"]}`, false},
		{"integer ok", integer, `{"p1":42}`, true},
		{"bool is not an integer", integer, `{"p1":true}`, false},
		{"nullable integer takes null", ninteger, `{"p1":null}`, true},
		{"boolean true", boolean, `{"p1":true}`, true},
		{"boolean false", boolean, `{"p1":false}`, true},
		{"null is not a boolean", boolean, `{"p1":null}`, false},
		{"nullable boolean takes null", nboolean, `{"p1":null}`, true},
		{"int is not a boolean", boolean, `{"p1":42}`, false},
		{"string is not a boolean", boolean, `{"p1":"false"}`, false},
		{"string ok", str, `{"p1":"abc"}`, true},
		{"bool is not a string", str, `{"p1":true}`, false},
		{"int is not a string", str, `{"p1":42}`, false},
		{"double is not a string", str, `{"p1":1.2}`, false},
		{"null is not a string", str, `{"p1":null}`, false},
		{"nullable string takes null", nstr, `{"p1":null}`, true},
		{"bare date is not a date-time", datetime, `{"p1":"2018-10-31"}`, false},
		{"date-time utc", datetime, `{"p1":"2018-10-31T23:19:50Z"}`, true},
		{"date-time offset", datetime, `{"p1":"2018-10-31T23:19:50+00:00"}`, true},
		{"compact iso is not a date-time", datetime, `{"p1":"20181031T231950Z"}`, false},
		{"null is not a date-time", datetime, `{"p1":null}`, false},
		{"nullable date-time takes null", ndatetime, `{"p1":null}`, true},
		{"date ok", date, `{"p1":"2018-10-31"}`, true},
		{"short hour is not a time", clock, `{"p1":"2:19:50"}`, false},
		{"time ok", clock, `{"p1":"02:19:50"}`, true},
		{"email ok", email, `{"p1":"abc@example.com"}`, true},
		{"bare word is not an email", email, `{"p1":"asdf"}`, false},
		{"domain only is not an email", email, `{"p1":"example.com"}`, false},
		{"null is not an object", object, `{"p1":null}`, false},
		{"nullable object takes null", nobject, `{"p1":null}`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := parseFragment(t, tc.schema)
			res := n.Validate(decodeDoc(t, tc.doc), false)
			if res.Valid() != tc.valid {
				t.Fatalf("valid = %v, want %v (violations %v)", res.Valid(), tc.valid, res.Violations)
			}
		})
	}
}

func TestValidateMessages(t *testing.T) {
	doc := decodeDoc(t, `{
		"title": 35,
		"version": 1.2,
		"status": "Activated",
		"experimental": "true",
		"creation_date": "2018-01",
		"creation_and_usage": {"keywords": {"a": "b"}},
		"testing_experience": ["not", "an", "object"],
		"artifact_type": "Bulletin"
	}`)
	res, err := ValidateDocument(doc, false)
	if err != nil {
		t.Fatalf("ValidateDocument: %v", err)
	}
	want := map[string]string{
		"title":                      "Integer value found, but a string is required",
		"version":                    "Double value found, but a string is required",
		"status":                     `Does not have a value in the enumeration ["Active","Retired","Draft","Unknown"]`,
		"experimental":               "String value found, but a boolean is required",
		"creation_and_usage.keywords": "Object value found, but an array is required",
		"testing_experience":         "Array value found, but an object is required",
		"artifact_type":              `Does not have a value in the enumeration ["Alert","Data Summary","Event-Condition-Action (ECA) rule","InfoButton","Order Set","Parameter Guidance","Reference Information","Reminder","Report","Risk Assessment","Smart Documentation Form","Warning"]`,
		"creation_date":              `Invalid date "2018-01", expected format YYYY-MM-DD`,
	}
	got := map[string]string{}
	for _, v := range res.Violations {
		got[v.Property] = v.Message
	}
	for prop, msg := range want {
		if got[prop] != msg {
			t.Errorf("violation[%s] = %q, want %q", prop, got[prop], msg)
		}
	}
	if len(got) != len(want) {
		t.Errorf("violation count = %d, want %d (%v)", len(got), len(want), got)
	}
}

func TestValidateViolationOrderMatchesSchema(t *testing.T) {
	doc := decodeDoc(t, `{"version": 1.2, "title": 35, "status": "Activated"}`)
	res, err := ValidateDocument(doc, false)
	if err != nil {
		t.Fatalf("ValidateDocument: %v", err)
	}
	var props []string
	for _, v := range res.Violations {
		props = append(props, v.Property)
	}
	want := []string{"title", "version", "status"}
	if len(props) != len(want) {
		t.Fatalf("violations = %v, want order %v", props, want)
	}
	for i := range want {
		if props[i] != want[i] {
			t.Fatalf("violations = %v, want order %v", props, want)
		}
	}
}

func TestValidateAppliesDefaults(t *testing.T) {
	doc := decodeDoc(t, `{"title": "t"}`)
	res, err := ValidateDocument(doc, true)
	if err != nil {
		t.Fatalf("ValidateDocument: %v", err)
	}
	if !res.Valid() {
		t.Fatalf("violations: %v", res.Violations)
	}
	if doc["version"] != "0.1" {
		t.Errorf("version default = %v", doc["version"])
	}
	if doc["status"] != "Active" {
		t.Errorf("status default = %v", doc["status"])
	}
	if doc["artifact_type"] != "Reference Information" {
		t.Errorf("artifact_type default = %v", doc["artifact_type"])
	}
}

func TestValidateEmptyDocumentWithoutDefaults(t *testing.T) {
	doc := decodeDoc(t, `{}`)
	res, err := ValidateDocument(doc, false)
	if err != nil {
		t.Fatalf("ValidateDocument: %v", err)
	}
	if !res.Valid() {
		t.Fatalf("empty document should validate, got %v", res.Violations)
	}
	if len(doc) != 0 {
		t.Fatalf("document mutated without defaults: %v", doc)
	}
}

func TestValidateIgnoresUnknownKeys(t *testing.T) {
	doc := decodeDoc(t, `{"title": "t", "unspecifiedKey": "does not notify"}`)
	res, err := ValidateDocument(doc, false)
	if err != nil {
		t.Fatalf("ValidateDocument: %v", err)
	}
	if !res.Valid() {
		t.Fatalf("violations: %v", res.Violations)
	}
}

func TestValidateNullableClears(t *testing.T) {
	doc := decodeDoc(t, `{"description": ""}`)
	if res, _ := ValidateDocument(doc, false); !res.Valid() {
		t.Fatalf("empty string should clear: %v", res.Violations)
	}
	doc = decodeDoc(t, `{"description": null}`)
	if res, _ := ValidateDocument(doc, false); !res.Valid() {
		t.Fatalf("null should clear: %v", res.Violations)
	}
	doc = decodeDoc(t, `{"version": null}`)
	res, _ := ValidateDocument(doc, false)
	if res.Valid() {
		t.Fatal("null version should be rejected")
	}
	if got := res.Violations[0].Message; got != "NULL value found, but a string is required" {
		t.Fatalf("message = %q", got)
	}
}

func TestValidateRequiredKeyword(t *testing.T) {
	n := parseFragment(t, `{"properties":{"p1":{"type":"string"}},"required":["p1"]}`)
	res := n.Validate(decodeDoc(t, `{}`), false)
	if res.Valid() {
		t.Fatal("missing required property should fail")
	}
	if got := res.Violations[0].Message; got != "The property p1 is required" {
		t.Fatalf("message = %q", got)
	}
}

func TestValidateArrayElementPaths(t *testing.T) {
	n := parseFragment(t, `{"properties":{"p1":{"type":"array","items":{"type":"string"}}}}`)
	res := n.Validate(decodeDoc(t, `{"p1":["ok", 2]}`), false)
	if res.Valid() {
		t.Fatal("mixed array should fail")
	}
	v := res.Violations[0]
	if v.Property != "p1[1]" {
		t.Fatalf("property = %q", v.Property)
	}
	if v.Message != "Integer value found, but a string is required" {
		t.Fatalf("message = %q", v.Message)
	}
}

func TestResultErr(t *testing.T) {
	res := &Result{}
	if res.Err() != nil {
		t.Fatal("valid result should have nil Err")
	}
	res.Violations = append(res.Violations, artifact.Violation{Property: "title", Message: "m"})
	var sve *artifact.SchemaViolationError
	if !errors.As(res.Err(), &sve) {
		t.Fatalf("Err type = %T", res.Err())
	}
	if !bytes.Contains([]byte(sve.Error()), []byte("[title] m")) {
		t.Fatalf("error text = %q", sve.Error())
	}
}
