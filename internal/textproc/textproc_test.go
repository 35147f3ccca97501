// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textproc

import "testing"

func TestStripXML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"header tags", "<h4>Supplementary info</h4>", "Supplementary info"},
		{"subscript tags", "H<sub>2</sub>O<sub>2</sub>", "H2O2"},
		{"italic tags", "the <i>Bacillus pumilus</i> group.", "the Bacillus pumilus group."},
		{"header after sentence", "MS/MS spectra.<h4>Availability", "MS/MS spectra. Availability"},
		{"header after URL", "http://proteomics.ucsd.edu/Software.html<h4>Contact", "http://proteomics.ucsd.edu/Software.html Contact"},
		{"closing header between words", "<h4>Summary</h4>Neuropeptides", "Summary Neuropeptides"},
		{"header after exclamation", "<h4>Wow!</h4>Go on", "Wow! Go on"},
		{"no tags", "plain text stays as-is", "plain text stays as-is"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripXML(tt.in)
			if got != tt.want {
				t.Errorf("StripXML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConcatTitleAbstract(t *testing.T) {
	got := ConcatTitleAbstract("A database of things", "We describe a database.")
	want := "A database of things - We describe a database."
	if got != want {
		t.Errorf("ConcatTitleAbstract = %q, want %q", got, want)
	}
}
