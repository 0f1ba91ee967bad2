package matching_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/lvgroup/matching"
	"github.com/katalvlaran/lvgroup/partition"
	"github.com/katalvlaran/lvgroup/rules"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, name string) *matching.Document {
	t.Helper()
	doc, err := matching.LoadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return doc
}

func TestLoadFile_JSONAndYAMLAgree(t *testing.T) {
	fromJSON := load(t, "teams.json")
	fromYAML := load(t, "teams.yaml")
	require.Equal(t, fromJSON, fromYAML)

	require.Len(t, fromJSON.Elements, 6)
	require.Equal(t, partition.Quota{3: partition.Unlimited}, fromJSON.Outputs)
	require.Equal(t, []rules.Rule{
		{Severity: rules.ForceExclude, Field: "avoid", TargetField: "name", Operand: rules.Include},
		{Severity: rules.Prefer, Field: "lang", TargetField: "lang", Operand: rules.Match},
	}, fromJSON.Rules)
	require.Equal(t, "Language", fromJSON.Label("lang"))
	require.Equal(t, "size", fromJSON.Label("size"))
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]matching.Format{
		"a.json": matching.FormatJSON, "b.YAML": matching.FormatYAML, "c.yml": matching.FormatYAML,
	} {
		got, err := matching.FormatFromPath(path)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := matching.FormatFromPath("doc.toml")
	require.ErrorIs(t, err, matching.ErrUnknownFormat)

	_, err = matching.LoadFile("doc.txt")
	require.ErrorIs(t, err, matching.ErrUnknownFormat)
}

func TestDecode_Errors(t *testing.T) {
	_, err := matching.Decode(strings.NewReader(`{"elements": `), matching.FormatJSON)
	require.ErrorIs(t, err, matching.ErrDecode)

	_, err = matching.Decode(strings.NewReader(`{"elements": {}, "extra": 1}`), matching.FormatJSON)
	require.ErrorIs(t, err, matching.ErrDecode, "unknown fields are rejected")

	_, err = matching.Decode(strings.NewReader("elements: {a: {}}\noutput: {2: 1}\n"), matching.FormatYAML)
	require.ErrorIs(t, err, matching.ErrDecode, "misspelled keys are rejected")

	_, err = matching.Decode(strings.NewReader("outputs: [1, 2\n"), matching.FormatYAML)
	require.ErrorIs(t, err, matching.ErrDecode)

	_, err = matching.Decode(strings.NewReader(""), matching.FormatYAML)
	require.ErrorIs(t, err, matching.ErrDecode)

	_, err = matching.Decode(strings.NewReader(`{"rules":[{"severity":"Always","field":"a","target_field":"a","operand":"Match"}]}`), matching.FormatJSON)
	require.ErrorIs(t, err, matching.ErrDecode)
	require.ErrorIs(t, err, rules.ErrUnknownSeverity)

	_, err = matching.Decode(strings.NewReader("{}"), matching.Format(9))
	require.ErrorIs(t, err, matching.ErrUnknownFormat)
}

func TestDocument_Validate(t *testing.T) {
	valid := func() *matching.Document {
		return &matching.Document{
			Fields:   map[string]string{"team": "Team"},
			Elements: rules.Attributes{"a": {"team": "x"}, "b": {"team": "y"}},
			Rules:    []rules.Rule{{Severity: rules.Prefer, Field: "team", TargetField: "team", Operand: rules.Match}},
			Outputs:  partition.Quota{2: 1},
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(d *matching.Document){
		"no elements":      func(d *matching.Document) { d.Elements = nil },
		"no outputs":       func(d *matching.Document) { d.Outputs = partition.Quota{} },
		"bad output size":  func(d *matching.Document) { d.Outputs = partition.Quota{1: 1} },
		"zero count":       func(d *matching.Document) { d.Outputs = partition.Quota{2: 0} },
		"empty rule field": func(d *matching.Document) { d.Rules[0].Field = "" },
		"undeclared field": func(d *matching.Document) { d.Rules[0].TargetField = "room" },
		"bad severity":     func(d *matching.Document) { d.Rules[0].Severity = rules.Severity(42) },
		"bad operand":      func(d *matching.Document) { d.Rules[0].Operand = rules.Operand(-1) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := valid()
			mutate(d)
			require.ErrorIs(t, d.Validate(), matching.ErrInvalidDocument)
		})
	}

	// without declared fields any field id is accepted here
	d := valid()
	d.Fields = nil
	d.Rules[0].TargetField = "room"
	require.NoError(t, d.Validate())

	var nilDoc *matching.Document
	require.ErrorIs(t, nilDoc.Validate(), matching.ErrInvalidDocument)
}
