// Package model contains simple struct definitions shared across packages.
package model

import (
	"time"
)

// Status describes where a complaint sits in the municipal workflow. In Go a
// type declared via "type X string" creates a new named type with string as
// the underlying representation, enabling better type safety than using plain
// strings.
type Status string

const (
	StatusSubmitted  Status = "Submitted"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// Location is an optional geotag captured at submission time. Accuracy is in
// meters as reported by the browser geolocation API.
type Location struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	Address   string   `json:"address,omitempty"`
}

// ImageAttachment records where an uploaded photo ended up. FileName is
// derived from the complaint id so the file stays recoverable from the record
// alone.
type ImageAttachment struct {
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	URL          string `json:"url"`
}

// Analysis is advisory classification metadata folded into a complaint. It is
// never authoritative; the citizen-selected categories are.
type Analysis struct {
	Provider              string   `json:"provider,omitempty"`
	SuggestedCategory     string   `json:"suggestedCategory,omitempty"`
	SuggestedMainCategory *string  `json:"suggestedMainCategory"`
	SuggestedSubCategory  *string  `json:"suggestedSubCategory"`
	SuggestedDescription  string   `json:"suggestedDescription,omitempty"`
	Confidence            *float64 `json:"confidence"`
}

// ClassificationSuggestion is the transient output of the vision classifier.
// Main/SubCategory are taxonomy ids, or nil when the model's answer could not
// be reconciled against the taxonomy.
type ClassificationSuggestion struct {
	MainCategory *string `json:"mainCategory"`
	SubCategory  *string `json:"subCategory"`
	Description  string  `json:"description"`
	Confidence   float64 `json:"confidence"`
}

// Complaint is the persisted citizen-submitted record. Struct tags such as
// `json:"id"` instruct the encoding/json package to use custom field names
// when marshalling/unmarshalling.
type Complaint struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Status    Status    `json:"status"`
	// Category is a legacy free-form field kept for older clients.
	Category     string           `json:"category,omitempty"`
	MainCategory string           `json:"mainCategory"`
	SubCategory  string           `json:"subCategory"`
	Description  string           `json:"description"`
	Location     *Location        `json:"location"`
	UserPhone    string           `json:"userPhone,omitempty"`
	UserID       string           `json:"userId,omitempty"`
	UserName     string           `json:"userName,omitempty"`
	Image        *ImageAttachment `json:"image"`
	Analysis     *Analysis        `json:"analysis"`
}
