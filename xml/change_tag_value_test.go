package xml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/rewrite"
	"github.com/dhamidi/recast/xml"
)

func TestChangeTagValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		before string
		xPath  string
		value  string
		want   string
		status rewrite.Status
	}{
		{
			name:   "text",
			before: "<project>\n  <version>1.0</version>\n</project>",
			xPath:  "/project/version",
			value:  "2.0",
			want:   "<project>\n  <version>2.0</version>\n</project>",
			status: rewrite.StatusApplied,
		},
		{
			name:   "self-closing",
			before: "<project><version/></project>",
			xPath:  "/project/version",
			value:  "1 < 2",
			want:   "<project><version>1 &lt; 2</version></project>",
			status: rewrite.StatusApplied,
		},
		{
			name:   "same value",
			before: "<project><version> 1.0 </version></project>",
			xPath:  "/project/version",
			value:  "1.0",
			want:   "<project><version> 1.0 </version></project>",
			status: rewrite.StatusUnchanged,
		},
		{
			name:   "every match",
			before: "<a><b>x</b><b>y</b></a>",
			xPath:  "/a/b",
			value:  "z",
			want:   "<a><b>z</b><b>z</b></a>",
			status: rewrite.StatusApplied,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := rewrite.NewPipeline().Run(parse(t, tt.before), xml.NewChangeTagValue(tt.xPath, tt.value))
			require.NoError(t, res.Err)
			assert.Equal(t, tt.want, res.Fixed.Print())
			assert.Equal(t, tt.status, res.Outcomes[0].Status)
		})
	}
}
