package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		got  any
		want string
	}{
		{
			name: "success omits empty message",
			got:  SuccessResponse(map[string]int{"n": 1}),
			want: `{"status":"success","data":{"n":1}}`,
		},
		{
			name: "refreshed carries the marker",
			got:  Refreshed(true),
			want: `{"status":"success","data":true,"message":"refreshed"}`,
		},
		{
			name: "not found names the record",
			got:  NotFound("page"),
			want: `{"status":"error","error":"not_found","details":"page not found"}`,
		},
		{
			name: "preset keeps the error status",
			got:  ErrInternal,
			want: `{"status":"error","error":"internal_error","details":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.got)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}
