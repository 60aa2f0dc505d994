package datacontext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestReplace(t *testing.T) {
	ctx := New().
		Add("#Title#", &StringModel{Value: "Sales"}).
		Add("#IsFirst#", &BooleanModel{Value: true}).
		Add("#Total#", &DoubleModel{Value: 1234.5, RenderPattern: "N2"}).
		Add("#Ratio#", &DoubleModel{Value: 0.125, RenderPattern: "P1"}).
		Add("#Count#", &DoubleModel{Value: 3}).
		Add("#Day#", &DateModel{Value: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}).
		Add("#Tags#", &StringListModel{Values: []string{"a", "b"}}).
		Add("#Rows#", &DataSourceModel{})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "string", in: "Report: #Title#", want: "Report: Sales"},
		{name: "repeated token", in: "#Title#/#Title#", want: "Sales/Sales"},
		{name: "boolean", in: "#IsFirst#", want: "true"},
		{name: "grouped number", in: "#Total#", want: "1,234.50"},
		{name: "percent", in: "#Ratio#", want: "12.5%"},
		{name: "no pattern", in: "#Count# items", want: "3 items"},
		{name: "date default layout", in: "#Day#", want: "2024-03-01"},
		{name: "string list", in: "#Tags#", want: "a, b"},
		{name: "unbound token stays", in: "#Nope# and #Title#", want: "#Nope# and Sales"},
		{name: "collection token stays", in: "#Rows#", want: "#Rows#"},
		{name: "no token", in: "plain text", want: "plain text"},
		{name: "lone hashes", in: "issue #1 and #2", want: "issue #1 and #2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ctx.Replace(tt.in, nil))
		})
	}
}

func TestReplaceIsIdempotent(t *testing.T) {
	ctx := New().
		Add("#A#", &StringModel{Value: "see #B#"}).
		Add("#B#", &StringModel{Value: "bee"}).
		Add("#Ping#", &StringModel{Value: "#Pong#"}).
		Add("#Pong#", &StringModel{Value: "#Ping#"}).
		Add("#Self#", &StringModel{Value: "#Self#!"}).
		Add("#Loud#", &StringModel{Value: "#Self# #B#"}).
		Add("#Rows#", &DataSourceModel{})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "nested value", in: "#A#", want: "see bee"},
		{name: "unbound kept", in: "#A# #C#", want: "see bee #C#"},
		{name: "cycle kept", in: "#Pong# and #Ping#", want: "#Pong# and #Ping#"},
		{name: "self reference kept", in: "#Self#", want: "#Self#"},
		{name: "value reaching a cycle", in: "#Loud#", want: "#Self# bee"},
		{name: "collection kept", in: "#Rows# #B#", want: "#Rows# bee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := ctx.Replace(tt.in, nil)
			assert.Equal(t, tt.want, once)
			assert.Equal(t, once, ctx.Replace(once, nil))
		})
	}
}

func TestFormatterLocales(t *testing.T) {
	de := NewFormatter(language.German)
	assert.Equal(t, "1.234,50", de.FormatNumber(1234.5, "N2"))
	assert.Equal(t, "1234,50", de.FormatNumber(1234.5, "F2"))

	en, err := ParseFormatter("en-US")
	require.NoError(t, err)
	assert.Equal(t, "1234.50", en.FormatNumber(1234.5, "F2"))
	assert.Equal(t, "1234.5", en.FormatNumber(1234.5, "X9"))
	assert.Equal(t, "1234.5", en.FormatNumber(1234.5, "Nx"))

	_, err = ParseFormatter("not a tag!")
	require.Error(t, err)
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"#A#", "#B_C#"}, Tokens("x #A# y #B_C# #not a token#"))
	assert.Empty(t, Tokens("nothing"))
}
