package media

// Image is the payload the collection carries for one product image.
// The default flag on the generic item marks the principal image shown
// on listings; order drives the gallery sequence.
type Image struct {
	URL         string `json:"url,omitempty"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	// Data rides only on the upload leg; the backend answers with a URL
	// and never echoes the bytes back.
	Data []byte `json:"data,omitempty"`
}
