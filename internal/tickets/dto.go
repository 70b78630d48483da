package tickets

type CreateTicketRequest struct {
	Title       string `json:"title" validate:"required,min=5,max=200"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Priority    string `json:"priority,omitempty"`
	Requester   string `json:"requester" validate:"required,max=50"`
}

type UpdateTicketRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=5,max=200"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

type AssignRequest struct {
	AssignedTo string `json:"assigned_to" validate:"required,max=50"`
}

type ListTicketsRequest struct {
	Status   *string `json:"status,omitempty"`
	Priority *string `json:"priority,omitempty"`
	Category *string `json:"category,omitempty"`
	Page     int     `json:"page" validate:"gte=0"`
	PerPage  int     `json:"per_page" validate:"gte=0,lte=200"`
}
