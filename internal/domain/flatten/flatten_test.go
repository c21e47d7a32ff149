package flatten

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlattenSimpleRecord(t *testing.T) {
	doc := []byte(`{"name": "John\nDoe", "age": 45, "notes": null}`)

	got, err := Flatten(doc)
	require.NoError(t, err)
	require.Equal(t, "name John Doe , age 45 , notes None", got)
}

func TestFlattenNestedObjectsDropSeparatorPerObject(t *testing.T) {
	doc := []byte(`{"patient": {"name": "Ann", "age": 30}, "active": true}`)

	got, err := Flatten(doc)
	require.NoError(t, err)
	require.Equal(t, "patient name Ann , age 30 , active true", got)
}

func TestFlattenArrayElementsKeepTheirOwnSeparators(t *testing.T) {
	doc := []byte(`{"meds": [{"name": "aspirin", "dose": "81mg"}, {"name": "statin"}]}`)

	got, err := Flatten(doc)
	require.NoError(t, err)
	require.Equal(t, "meds name aspirin , dose 81mg name statin", got)
}

func TestFlattenScalarDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{name: "string", doc: `"  hello\r\nworld  "`, want: "hello world"},
		{name: "number", doc: `4.5`, want: "4.5"},
		{name: "integer keeps source form", doc: `45`, want: "45"},
		{name: "bool", doc: `false`, want: "false"},
		{name: "null", doc: `null`, want: "None"},
		{name: "empty object", doc: `{}`, want: ""},
		{name: "empty array", doc: `[]`, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Flatten([]byte(tc.doc))
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFlattenNeverEndsWithSeparator(t *testing.T) {
	docs := []string{
		`{"a": 1}`,
		`{"a": 1, "b": 2}`,
		`{"a": {"b": {"c": null}}}`,
		`{"a": {}, "b": {"c": 1}}`,
		`[{"a": 1}, {"b": 2}]`,
	}
	for _, doc := range docs {
		got, err := Flatten([]byte(doc))
		require.NoError(t, err)
		require.NotRegexp(t, `,\s*$`, got, "doc %s", doc)
	}
}

func TestFlattenNullAtAnyDepth(t *testing.T) {
	doc := []byte(`{"a": [null, {"b": null}], "c": null}`)

	got, err := Flatten(doc)
	require.NoError(t, err)
	require.Equal(t, "a None b None , c None", got)
}

func TestCleanStringQuoteHandling(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "escaped double quote kept literal", in: `he said \"hi\"`, want: `he said "hi"`},
		{name: "escaped single quote kept literal", in: `it\'s fine`, want: `it's fine`},
		{name: "unescaped double quotes dropped", in: `a "quoted" word`, want: "a quoted word"},
		{name: "mixed", in: `\"x\" and "y"`, want: `"x" and y`},
		{name: "crlf collapsed", in: "line one\r\nline two", want: "line one line two"},
		{name: "whitespace runs collapsed", in: "  a \t b\n\n c  ", want: "a b c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, cleanString(tc.in))
		})
	}
}

func TestFlattenKeyCleaningIsNewlineOnly(t *testing.T) {
	// Keys intentionally skip quote stripping; only embedded newlines become spaces.
	doc := []byte("{\"first\\nname\": \"Ann\"}")

	got, err := Flatten(doc)
	require.NoError(t, err)
	require.Equal(t, "first name Ann", got)
}

func TestFlattenIsDeterministic(t *testing.T) {
	doc := []byte(`{"name": "John", "labs": [{"hdl": 52}, {"ldl": 110}], "notes": null}`)

	first, err := Flatten(doc)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Flatten(doc)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestFlattenRejectsMalformedInput(t *testing.T) {
	for _, doc := range []string{``, `{`, `{"a":}`, `{"a": 1} trailing`, `not json`} {
		_, err := Flatten([]byte(doc))
		require.Error(t, err, "doc %q", doc)
	}
}
