package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postSchema struct {
	Title     string   `json:"title" label:"Title" validate:"required,notblank,max=20"`
	Excerpt   string   `json:"excerpt" label:"Excerpt" validate:"required"`
	Link      string   `json:"link" label:"Link" validate:"omitempty,url"`
	Tags      []string `json:"tags" label:"Tags" validate:"omitempty,dive,max=5"`
	Published bool     `json:"published"`
}

type job struct {
	Company string `json:"company" label:"Company" validate:"required"`
}

type profileSchema struct {
	Bio  string `json:"bio" label:"Bio" validate:"required"`
	Jobs []job  `json:"jobs" label:"Jobs" validate:"required,min=1,dive"`
}

func parse(t *testing.T, body string) Payload {
	t.Helper()
	p, err := ParsePayload(strings.NewReader(body))
	require.NoError(t, err)
	return p
}

func invalidFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var invalid *Invalid
	require.ErrorAs(t, err, &invalid)
	return invalid.Fields
}

func TestDecode_Valid(t *testing.T) {
	g := New()

	got, err := Decode[postSchema](g, parse(t, `{"title":"Hello","excerpt":"x","tags":["go","web"],"extra":1}`))

	require.NoError(t, err)
	assert.Equal(t, &postSchema{Title: "Hello", Excerpt: "x", Tags: []string{"go", "web"}}, got)
}

func TestDecode_ReportsEveryMissingField(t *testing.T) {
	g := New()

	_, err := Decode[postSchema](g, parse(t, `{}`))

	assert.Equal(t, map[string]string{
		"title":   "Title is required",
		"excerpt": "Excerpt is required",
	}, invalidFields(t, err))
}

func TestDecode_Rules(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string]string
	}{
		{
			name: "empty string is missing",
			body: `{"title":"","excerpt":"x"}`,
			want: map[string]string{"title": "Title is required"},
		},
		{
			name: "whitespace only is missing",
			body: `{"title":"   ","excerpt":"x"}`,
			want: map[string]string{"title": "Title is required"},
		},
		{
			name: "too long",
			body: `{"title":"` + strings.Repeat("a", 21) + `","excerpt":"x"}`,
			want: map[string]string{"title": "Title must be at most 20 characters"},
		},
		{
			name: "bad url",
			body: `{"title":"a","excerpt":"x","link":"not a url"}`,
			want: map[string]string{"link": "Link must be a valid URL"},
		},
		{
			name: "comma separated string is not an array",
			body: `{"title":"a","excerpt":"x","tags":"go,web"}`,
			want: map[string]string{"tags": "Tags has an invalid type"},
		},
		{
			name: "number for string",
			body: `{"title":42,"excerpt":"x"}`,
			want: map[string]string{"title": "Title has an invalid type"},
		},
		{
			name: "string for bool",
			body: `{"title":"a","excerpt":"x","published":"yes"}`,
			want: map[string]string{"published": "Published has an invalid type"},
		},
		{
			name: "array element too long",
			body: `{"title":"a","excerpt":"x","tags":["ok","toolong"]}`,
			want: map[string]string{"tags[1]": "Tags must be at most 5 characters"},
		},
	}

	g := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[postSchema](g, parse(t, tt.body))
			assert.Equal(t, tt.want, invalidFields(t, err))
		})
	}
}

func TestDecode_BoolDefaultsToFalse(t *testing.T) {
	g := New()

	got, err := Decode[postSchema](g, parse(t, `{"title":"a","excerpt":"x","published":null}`))

	require.NoError(t, err)
	assert.False(t, got.Published)
}

func TestDecode_NestedPaths(t *testing.T) {
	g := New()

	_, err := Decode[profileSchema](g, parse(t, `{"bio":"hi","jobs":[{"company":"acme"},{"company":""}]}`))
	assert.Equal(t, map[string]string{"jobs[1].company": "Company is required"}, invalidFields(t, err))

	_, err = Decode[profileSchema](g, parse(t, `{"bio":"hi","jobs":[]}`))
	assert.Equal(t, map[string]string{"jobs": "Jobs must contain at least 1 item"}, invalidFields(t, err))
}

func TestDecode_Idempotent(t *testing.T) {
	g := New()
	p := parse(t, `{"title":"Hello","excerpt":"x","tags":["go"],"published":true}`)

	first, err := Decode[postSchema](g, p)
	require.NoError(t, err)
	second, err := Decode[postSchema](g, p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NoError(t, g.Struct(first))
}

func TestStruct(t *testing.T) {
	g := New()

	err := g.Struct(&postSchema{Excerpt: "x"})

	assert.Equal(t, map[string]string{"title": "Title is required"}, invalidFields(t, err))
}

func TestParsePayload_RejectsNonObjects(t *testing.T) {
	for _, body := range []string{``, `null`, `[1,2]`, `"text"`, `{"title":`} {
		_, err := ParsePayload(strings.NewReader(body))
		assert.ErrorIs(t, err, ErrNotObject, body)
	}
}
