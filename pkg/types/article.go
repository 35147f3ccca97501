// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the inventory pipeline.
package types

// Article is one literature record as it moves through the pipeline. The
// query stage fills ID, Title, and Abstract; later stages add the remaining
// fields. URL-related fields hold ", "-delimited lists, matching the CSV
// representation.
type Article struct {
	// ID is the PubMed identifier returned by EuropePMC.
	ID string `json:"id" yaml:"id"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the article abstract, XML tags stripped.
	Abstract string `json:"abstract" yaml:"abstract"`

	// PredictedLabel is the classification assigned by the external
	// classifier (e.g. "bio-resource", "not-bio-resource").
	PredictedLabel string `json:"predicted_label,omitempty" yaml:"predicted_label,omitempty"`

	// ExtractedURLs is the delimited list of URLs extracted from the text.
	ExtractedURLs string `json:"extracted_url,omitempty" yaml:"extracted_url,omitempty"`

	// URLStatuses is the delimited list of per-URL check outcomes, one per
	// extracted URL, in the same order.
	URLStatuses string `json:"extracted_url_status,omitempty" yaml:"extracted_url_status,omitempty"`

	// WaybackURLs is the delimited list of archive snapshot URLs (or the
	// "no_wayback" sentinel), one per extracted URL, in the same order.
	WaybackURLs string `json:"wayback_url,omitempty" yaml:"wayback_url,omitempty"`
}
