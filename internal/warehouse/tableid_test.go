package warehouse

import "testing"

func TestParseTableID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  TableID
	}{
		{
			name:  "dataset and table",
			input: "traces.spans",
			want:  TableID{Dataset: "traces", Table: "spans"},
		},
		{
			name:  "fully qualified",
			input: "my-project.traces.spans",
			want:  TableID{Project: "my-project", Dataset: "traces", Table: "spans"},
		},
		{
			name:  "surrounding whitespace",
			input: "  traces.spans\n",
			want:  TableID{Dataset: "traces", Table: "spans"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTableID(tt.input)
			if err != nil {
				t.Fatalf("ParseTableID(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTableID(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTableID_Invalid(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"spans",
		"a.b.c.d",
		"traces..spans",
		".traces.spans",
		"traces.spans.",
	} {
		if _, err := ParseTableID(input); err == nil {
			t.Errorf("ParseTableID(%q) = nil error, want error", input)
		}
	}
}

func TestTableIDString(t *testing.T) {
	short := TableID{Dataset: "traces", Table: "spans"}
	if got := short.String(); got != "traces.spans" {
		t.Errorf("String() = %q, want %q", got, "traces.spans")
	}

	full := TableID{Project: "p", Dataset: "traces", Table: "spans"}
	if got := full.String(); got != "p.traces.spans" {
		t.Errorf("String() = %q, want %q", got, "p.traces.spans")
	}
}
