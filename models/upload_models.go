package models

// ExternalUploadRequest asks the server to import an image from a remote URL.
// Confirm must be explicitly true: the client acknowledges that the server
// will make an outbound request on its behalf.
type ExternalUploadRequest struct {
	URL     string `json:"url" binding:"required,max=2048" example:"https://example.com/banner.png"`
	Scope   string `json:"scope" binding:"required" example:"community"`
	Confirm *bool  `json:"confirm" example:"true"`
}

// UploadResponse describes a stored upload.
type UploadResponse struct {
	URL         SafeURLString `json:"url" example:"/uploads/community/2026/10/5f0c8e1a.png"`
	Path        string        `json:"path" example:"community/2026/10/5f0c8e1a.png"`
	Scope       string        `json:"scope" example:"community"`
	ContentType string        `json:"content_type" example:"image/png"`
	Extension   string        `json:"extension" example:".png"`
	Size        int64         `json:"size" example:"48213"`
	SourceURL   SafeURLString `json:"source_url,omitempty"`
}
