package datacontext

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	ctx := New().
		Add("#Title#", &StringModel{Value: "Report"}).
		Add("#Rows#", &DataSourceModel{Items: []*Context{New()}})

	title, err := Get[*StringModel](ctx, "#Title#")
	require.NoError(t, err)
	assert.Equal(t, "Report", title.Value)

	_, err = Get[*StringModel](ctx, "#Missing#")
	require.ErrorIs(t, err, ErrItemNotFound)

	_, err = Get[*BooleanModel](ctx, "#Rows#")
	var kindErr *KindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, KindBoolean, kindErr.Want)
	assert.Equal(t, KindDataSource, kindErr.Got)
	assert.Equal(t, "#Rows#", kindErr.Key)
}

func TestCloneIsolation(t *testing.T) {
	source := New().Add("#A#", &StringModel{Value: "a"})

	clone := source.Clone()
	clone.Add("#B#", &BooleanModel{Value: true})
	clone.Add("#A#", &StringModel{Value: "changed"})

	assert.False(t, source.Exists("#B#"))
	a, err := Get[*StringModel](source, "#A#")
	require.NoError(t, err)
	assert.Equal(t, "a", a.Value)
	assert.Equal(t, []string{"#A#", "#B#"}, clone.Keys())
}

func TestNilContext(t *testing.T) {
	var ctx *Context

	assert.False(t, ctx.Exists("#A#"))
	assert.Equal(t, 0, ctx.Len())
	assert.Equal(t, "#A#", ctx.Replace("#A#", nil))
	assert.NotNil(t, ctx.Clone())
}

func TestUnmarshalPolymorphicItems(t *testing.T) {
	data := []byte(`{
		"#Title#": {"type": "String", "value": "Quarterly"},
		"#Show#": {"type": "Boolean", "value": false},
		"#Total#": {"type": "Double", "value": 1234.5, "renderPattern": "N2"},
		"#Day#": {"type": "Date", "value": "2024-03-01T00:00:00Z", "renderPattern": "02/01/2006"},
		"#Tags#": {"type": "StringList", "values": ["a", "b"]},
		"#Rows#": {"type": "DataSource", "items": [
			{"#Name#": {"type": "String", "value": "first"}},
			{"#Name#": {"type": "String", "value": "second"}}
		]},
		"#Empty#": {"type": "DataSource"},
		"#Chart#": {"type": "BarChart", "barChartContent": {
			"categories": [{"name": "Q1", "color": "#FF0000"}],
			"series": [{"name": "Sales", "values": [3]}]
		}}
	}`)

	ctx := New()
	require.NoError(t, json.Unmarshal(data, ctx))
	assert.Equal(t, 8, ctx.Len())

	rows, err := Get[*DataSourceModel](ctx, "#Rows#")
	require.NoError(t, err)
	require.Len(t, rows.Items, 2)
	name, err := Get[*StringModel](rows.Items[1], "#Name#")
	require.NoError(t, err)
	assert.Equal(t, "second", name.Value)

	empty, err := Get[*DataSourceModel](ctx, "#Empty#")
	require.NoError(t, err)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)

	day, err := Get[*DateModel](ctx, "#Day#")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), day.Value)

	chart, err := Get[*BarChartModel](ctx, "#Chart#")
	require.NoError(t, err)
	assert.Equal(t, "Q1", chart.BarChartContent.Categories[0].Name)
	assert.Equal(t, []float64{3}, chart.BarChartContent.Series[0].Values)
}

func TestUnmarshalDate(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    time.Time
		wantErr bool
	}{
		{
			name: "timestamp",
			data: `{"value": "2024-03-01T10:30:00+02:00"}`,
			want: time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			name: "date only",
			data: `{"value": "2024-03-01", "renderPattern": "02/01/2006"}`,
			want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "missing value",
			data: `{}`,
		},
		{
			name:    "not a date",
			data:    `{"value": "01/03/2024"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var day DateModel
			err := json.Unmarshal([]byte(tt.data), &day)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(day.Value), "got %s", day.Value)
		})
	}
}

func TestUnmarshalDateOnlyItem(t *testing.T) {
	ctx := New()
	require.NoError(t, json.Unmarshal([]byte(`{"#Day#": {"type": "Date", "value": "2024-03-01", "renderPattern": "2006"}}`), ctx))

	assert.Equal(t, "Due 2024", ctx.Replace("Due #Day#", nil))
}

func TestUnmarshalUnknownKind(t *testing.T) {
	err := json.Unmarshal([]byte(`{"#A#": {"type": "Matrix"}}`), New())
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestMarshalKeepsDiscriminator(t *testing.T) {
	ctx := New().
		Add("#Flag#", &BooleanModel{Value: true}).
		Add("#Rows#", &DataSourceModel{Items: []*Context{
			New().Add("#Name#", &StringModel{Value: "x"}),
		}})

	data, err := json.Marshal(ctx)
	require.NoError(t, err)

	decoded := New()
	require.NoError(t, json.Unmarshal(data, decoded))

	flag, err := Get[*BooleanModel](decoded, "#Flag#")
	require.NoError(t, err)
	assert.True(t, flag.Value)

	rows, err := Get[*DataSourceModel](decoded, "#Rows#")
	require.NoError(t, err)
	require.Len(t, rows.Items, 1)
	assert.True(t, rows.Items[0].Exists("#Name#"))
}
