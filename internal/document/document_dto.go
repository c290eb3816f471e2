package document

type CreateDocumentRequest struct {
	ProjectID   string `json:"project_id" binding:"required,uuid"`
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required,max=120"`
	SizeBytes   int64  `json:"size_bytes" binding:"required,min=1"`
	StorageKey  string `json:"storage_key" binding:"required,max=512"`
}

type DocumentResponse struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	StorageKey  string `json:"storage_key"`
	UploadedBy  string `json:"uploaded_by"`
	CreatedAt   string `json:"created_at"`
}
