package splice

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestHasTraceParent(t *testing.T) {
	tests := []struct {
		name string
		set  func(http.Header)
		want bool
	}{
		{
			name: "absent",
			set:  func(http.Header) {},
			want: false,
		},
		{
			name: "present",
			set: func(h http.Header) {
				h.Set("traceparent", sampleTraceParent)
			},
			want: true,
		},
		{
			name: "mixed case",
			set: func(h http.Header) {
				h.Set("TraceParent", sampleTraceParent)
			},
			want: true,
		},
		{
			name: "empty value",
			set: func(h http.Header) {
				h.Set("traceparent", "")
			},
			want: false,
		},
		{
			name: "repeated with one empty",
			set: func(h http.Header) {
				h.Add("traceparent", "")
				h.Add("traceparent", sampleTraceParent)
			},
			want: true,
		},
		{
			name: "malformed still counts as present",
			set: func(h http.Header) {
				h.Set("traceparent", "not-a-trace-context")
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			tt.set(h)
			assert.Equal(t, tt.want, HasTraceParent(h))
		})
	}
}

func TestHasTraceParentMD(t *testing.T) {
	assert.False(t, HasTraceParentMD(metadata.MD{}))
	assert.False(t, HasTraceParentMD(metadata.Pairs("traceparent", "")))
	assert.True(t, HasTraceParentMD(metadata.Pairs("traceparent", sampleTraceParent)))
	// metadata lowercases keys, so casing on the producer side is irrelevant
	assert.True(t, HasTraceParentMD(metadata.Pairs("TraceParent", sampleTraceParent)))
}

func TestIsUpgrade(t *testing.T) {
	h := http.Header{}
	assert.False(t, isUpgrade(h))

	h.Set("Connection", "keep-alive")
	assert.False(t, isUpgrade(h))

	h.Set("Connection", "Upgrade")
	assert.True(t, isUpgrade(h))

	h.Set("Connection", "keep-alive, Upgrade")
	assert.True(t, isUpgrade(h))
}
