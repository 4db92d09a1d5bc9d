package fulfillment

// Wire DTOs mirror the remote service's JSON shapes. Timestamps travel as
// RFC 3339 strings and are parsed by the context adapters so that malformed
// payloads are caught at the boundary instead of leaking into the domain.

// LineItemDTO is one order line with its price snapshot in minor units.
type LineItemDTO struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// OrderDTO is the authoritative post-mutation order record the remote echoes.
type OrderDTO struct {
	ID               string        `json:"id"`
	Number           string        `json:"orderNumber"`
	CustomerName     string        `json:"customerName"`
	Status           string        `json:"status"`
	Paid             bool          `json:"isPaid"`
	PaidAt           *string       `json:"paidAt,omitempty"`
	PaymentCondition string        `json:"paymentCondition"`
	Priority         string        `json:"priority"`
	AssignedTo       *string       `json:"assignedTo,omitempty"`
	CreatedBy        *string       `json:"createdBy,omitempty"`
	DispatchDate     *string       `json:"dispatchDate,omitempty"`
	Items            []LineItemDTO `json:"items"`
	Total            int64         `json:"total"`
	CreatedAt        string        `json:"createdAt"`
}

// OrderDraftDTO is the creation payload.
type OrderDraftDTO struct {
	Number           string        `json:"orderNumber,omitempty"`
	CustomerName     string        `json:"customerName"`
	PaymentCondition string        `json:"paymentCondition"`
	Priority         string        `json:"priority"`
	AssignedTo       *string       `json:"assignedTo,omitempty"`
	CreatedBy        string        `json:"createdBy"`
	Items            []LineItemDTO `json:"items"`
	Total            int64         `json:"total"`
}

// OrderPatchDTO carries only the lifecycle fields a transition may touch.
type OrderPatchDTO struct {
	Status           *string `json:"status,omitempty"`
	Paid             *bool   `json:"isPaid,omitempty"`
	AssignedTo       *string `json:"assignedTo,omitempty"`
	Priority         *string `json:"priority,omitempty"`
	PaymentCondition *string `json:"paymentCondition,omitempty"`
}

// ProductDTO is one inventory item.
type ProductDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Stock     int64  `json:"stock"`
	Dimension string `json:"dimension"`
	Threshold *int64 `json:"threshold,omitempty"`
	UnitPrice int64  `json:"unitPrice"`
	UpdatedAt string `json:"updatedAt"`
}

// ProductDraftDTO creates or replaces a product.
type ProductDraftDTO struct {
	Name      string `json:"name"`
	Stock     int64  `json:"stock"`
	Dimension string `json:"dimension"`
	Threshold *int64 `json:"threshold,omitempty"`
	UnitPrice int64  `json:"unitPrice"`
}

// StockAdjustmentDTO shifts a product's stock by a signed delta.
type StockAdjustmentDTO struct {
	Delta int64 `json:"delta"`
}

// MemberDTO is one staff directory entry.
type MemberDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// MemberDraftDTO creates or replaces a staff member.
type MemberDraftDTO struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// errorBody is the remote's error envelope.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
