// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textproc prepares article text for classification: XML tag
// stripping and title/abstract concatenation.
package textproc

import "regexp"

// headerTagPattern matches a header tag squeezed directly between two words
// (or sentence punctuation and a word). EuropePMC abstracts contain strings
// like "spectra.<h4>Availability" where dropping the tag outright would glue
// the words together.
var headerTagPattern = regexp.MustCompile(`([\w.?!])</?h\d>(\w)`)

// xmlTagPattern matches the simple XML tags EuropePMC abstracts carry
// (<i>, <sub>, </h4>, ...).
var xmlTagPattern = regexp.MustCompile(`<[\w/]+>`)

// StripXML removes XML tags from text. A header tag wedged between two
// adjacent words is replaced with a space; every other tag is removed
// outright, so "H<sub>2</sub>O<sub>2</sub>" stays "H2O2".
func StripXML(text string) string {
	text = headerTagPattern.ReplaceAllString(text, "$1 $2")
	return xmlTagPattern.ReplaceAllString(text, "")
}

// ConcatTitleAbstract joins a title and abstract into the combined
// predictive field used for classification.
func ConcatTitleAbstract(title, abstract string) string {
	return title + " - " + abstract
}
