package invoice

type InvoiceItemRequest struct {
	Description string `json:"description" binding:"required,min=1,max=255"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	UnitCents   int64  `json:"unit_cents" binding:"required,min=0"`
}

type CreateInvoiceRequest struct {
	ClientCompanyID string               `json:"client_company_id" binding:"required,uuid"`
	ProjectID       *string              `json:"project_id" binding:"omitempty,uuid"`
	Currency        string               `json:"currency" binding:"omitempty,len=3"`
	IssuedAt        string               `json:"issued_at" binding:"required,datetime=2006-01-02"`
	DueDate         string               `json:"due_date" binding:"required,datetime=2006-01-02"`
	Items           []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateStatusRequest moves an invoice between lifecycle states with the
// same read-guard the other status transitions use.
type UpdateStatusRequest struct {
	ExpectedStatus string `json:"expected_status" binding:"required,oneof=draft sent paid overdue cancelled"`
	Status         string `json:"status" binding:"required,oneof=draft sent paid overdue cancelled"`
}

type InvoiceItemResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitCents   int64  `json:"unit_cents"`
	TotalCents  int64  `json:"total_cents"`
}

type InvoiceResponse struct {
	ID              string                `json:"id"`
	InvoiceNumber   string                `json:"invoice_number"`
	ClientCompanyID string                `json:"client_company_id"`
	ProjectID       *string               `json:"project_id,omitempty"`
	Status          string                `json:"status"`
	Currency        string                `json:"currency"`
	IssuedAt        string                `json:"issued_at"`
	DueDate         string                `json:"due_date"`
	TotalCents      int64                 `json:"total_cents"`
	Items           []InvoiceItemResponse `json:"items,omitempty"`
}
