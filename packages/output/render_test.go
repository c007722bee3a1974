package output

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header http.Header
		want   string
	}{
		{
			name:   "empty",
			header: http.Header{},
			want:   `{}`,
		},
		{
			name:   "nil",
			header: nil,
			want:   `{}`,
		},
		{
			name: "sorted and lower-cased",
			header: http.Header{
				"Content-Type":   {"text/plain"},
				"Content-Length": {"5"},
				"Date":           {"Mon, 02 Jan 2006 15:04:05 GMT"},
			},
			want: `{"content-length": "5", "content-type": "text/plain", "date": "Mon, 02 Jan 2006 15:04:05 GMT"}`,
		},
		{
			name:   "repeated header keeps every value in order",
			header: http.Header{"Set-Cookie": {"a=1", "b=2"}},
			want:   `{"set-cookie": "a=1", "set-cookie": "b=2"}`,
		},
		{
			name:   "quotes are escaped",
			header: http.Header{"Etag": {`"v1"`}},
			want:   `{"etag": "\"v1\""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderHeaders(tt.header))
		})
	}
}

func TestRenderHeaders_Deterministic(t *testing.T) {
	h := http.Header{}
	for _, name := range []string{"X-C", "X-A", "X-B", "Accept", "Vary"} {
		h.Set(name, "v")
	}
	first := RenderHeaders(h)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, RenderHeaders(h))
	}
}

func TestApplyQuery(t *testing.T) {
	out, err := ApplyQuery("not json", "")
	require.NoError(t, err)
	assert.Equal(t, "not json", out)

	out, err = ApplyQuery(`{"a": {"b": "c"}}`, "a")
	require.NoError(t, err)
	assert.Equal(t, `{"b": "c"}`, out)

	_, err = ApplyQuery(`{"a": `, "a")
	assert.Error(t, err)
}
