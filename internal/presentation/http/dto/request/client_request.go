package request

// CreateClientRequest represents a client creation request
type CreateClientRequest struct {
	Name      string  `json:"name" binding:"max=255"`
	Telephone *string `json:"telephone" binding:"omitempty,max=50"`
}

// UpdateClientRequest represents a client update request. Absent fields are kept.
type UpdateClientRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=255"`
	Telephone *string `json:"telephone" binding:"omitempty,max=50"`
}

// TypeRequest is the body of type create and update
type TypeRequest struct {
	Name string `json:"name" binding:"max=255"`
}

// ListRequest holds the query of the client and type listings
type ListRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
