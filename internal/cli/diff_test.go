package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineDiff(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   string
	}{
		{
			name:   "equal",
			before: "a\nb\n",
			after:  "a\nb\n",
			want:   "",
		},
		{
			name:   "insert between",
			before: "a\nb\n",
			after:  "a\nx\ny\nb\n",
			want:   "@@ 1 unchanged line(s)\n+ x\n+ y\n@@ 1 unchanged line(s)\n",
		},
		{
			name:   "replace line",
			before: "a\nold\nb\n",
			after:  "a\nnew\nb\n",
			want:   "@@ 1 unchanged line(s)\n- old\n+ new\n@@ 1 unchanged line(s)\n",
		},
		{
			name:   "append without trailing newline",
			before: "a\n",
			after:  "a\nz",
			want:   "@@ 1 unchanged line(s)\n+ z\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lineDiff(tt.before, tt.after))
		})
	}
}
