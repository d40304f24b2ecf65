package blobref

// DeleteRequest is the body of a blob deletion call.
type DeleteRequest struct {
	PDFURL string `json:"pdfUrl"`
}

// DeleteResponse is returned by the blob deletion endpoint for every status.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// DeletePath is the route of the blob deletion endpoint.
const DeletePath = "/api/delete-pdf"
