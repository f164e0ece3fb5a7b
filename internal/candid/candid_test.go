package candid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsRendersNestedValues(t *testing.T) {
	got := Args(Vec(
		Record(
			Field{Name: "name", Value: Text("0")},
			Field{Name: "thumbnail", Value: None()},
			Field{Name: "metadata", Value: Some(Record(
				Field{Name: "ctype", Value: Text("application/json")},
				Field{Name: "data", Value: Vec(Blob([]byte(`{"a":"\"é"}`)))},
			))},
			Field{Name: "payload", Value: Record(
				Field{Name: "ctype", Value: Text("")},
				Field{Name: "data", Value: Vec()},
			)},
		),
	))

	want := `(
  vec {
    record {
      name = "0";
      thumbnail = null;
      metadata = opt record {
        ctype = "application/json";
        data = vec {
          blob "{\22a\22:\22\5c\22\c3\a9\22}";
        };
      };
      payload = record {
        ctype = "";
        data = vec {};
      };
    };
  }
)
`
	assert.Equal(t, want, got)
}

func TestArgsEmpty(t *testing.T) {
	assert.Equal(t, "()\n", Args())
	assert.Equal(t, "(\n  record {}\n)\n", Args(Record()))
}

func TestQuoteTextEscapes(t *testing.T) {
	assert.Equal(t, `"a\"b\\c\nd\te\u{1}"`, quoteText("a\"b\\c\nd\te\x01"))
	assert.Equal(t, `"héllo"`, quoteText("héllo"))
}

func TestParsePairsPositional(t *testing.T) {
	reply := `(
  vec {
    record { 0 : nat32; "a3f1" };
    record { 1_024 : nat32; "b7c2" };
    record { 2 : nat32; "a3f1" };
  },
)
`
	pairs, err := ParsePairs([]byte(reply))
	require.NoError(t, err)
	assert.Equal(t, []Pair{{0, "a3f1"}, {1024, "b7c2"}, {2, "a3f1"}}, pairs)
}

func TestParsePairsFieldIDs(t *testing.T) {
	pairs, err := ParsePairs([]byte(`(vec { record { 0 = 7 : nat32; 1 = "x\"y" } })`))
	require.NoError(t, err)
	assert.Equal(t, []Pair{{7, `x"y`}}, pairs)
}

func TestParsePairsHolderTextContainingRecord(t *testing.T) {
	reply := `(vec { record { 0 : nat32; "record { 1 : nat32; \"x\" }" }; record { 1 : nat32; "my record" } })`
	pairs, err := ParsePairs([]byte(reply))
	require.NoError(t, err)
	assert.Equal(t, []Pair{{0, `record { 1 : nat32; "x" }`}, {1, "my record"}}, pairs)
}

func TestParsePairsEmpty(t *testing.T) {
	pairs, err := ParsePairs([]byte("(vec {})\n"))
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestParsePairsRejectsMalformed(t *testing.T) {
	for name, reply := range map[string]string{
		"not a tuple":   "vec {}",
		"no vec":        "(42 : nat)",
		"wrong records": `(vec { record { "a"; "b" } })`,
		"overflow":      `(vec { record { 99999999999 : nat32; "a" } })`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePairs([]byte(reply))
			require.Error(t, err)
		})
	}
}

func TestUnquoteText(t *testing.T) {
	got, err := unquoteText(`a\nb\u{e9}\41\\`)
	require.NoError(t, err)
	assert.Equal(t, "a\nbéA\\", got)

	_, err = unquoteText(`bad\`)
	require.Error(t, err)
	_, err = unquoteText(`\u{zz}`)
	require.Error(t, err)
}
