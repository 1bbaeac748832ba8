package markdown

import (
	"reflect"
	"testing"
)

func TestSections(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want []string
	}{
		{
			name: "level two only",
			md:   "# Meeting Notes\n\n## Executive Summary\ntext\n## Action Items\n- a\n",
			want: []string{"Executive Summary", "Action Items"},
		},
		{
			name: "summary document",
			md: "# Standup - 2024-01-15\n\n## Executive Summary\n- point\n\n## Action Items\n" +
				"| Task | Owner |\n\n## Key Decisions\n\n## Discussion Topics\n\n### Budget\n\n## Full Transcript\n",
			want: []string{"Executive Summary", "Action Items", "Key Decisions", "Discussion Topics", "Full Transcript"},
		},
		{
			name: "duplicates kept",
			md:   "## A\n## B\n## A\n",
			want: []string{"A", "B", "A"},
		},
		{
			name: "trimmed",
			md:   "##   Spaced Title   \n",
			want: []string{"Spaced Title"},
		},
		{
			name: "deeper and missing space ignored",
			md:   "### Sub\n##NoSpace\n# Title\n",
			want: nil,
		},
		{
			name: "empty",
			md:   "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sections(tt.md)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sections = %#v, want %#v", got, tt.want)
			}
		})
	}
}
