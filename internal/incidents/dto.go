package incidents

type CreateIncidentRequest struct {
	Title        string `json:"title" validate:"required,min=5,max=200"`
	Description  string `json:"description" validate:"required"`
	IncidentDate string `json:"incident_date" validate:"required"`
	Severity     string `json:"severity,omitempty"`
	ReportedBy   string `json:"reported_by,omitempty" validate:"omitempty,max=50"`
}

type UpdateIncidentRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=5,max=200"`
	Description *string `json:"description,omitempty"`
	Severity    *string `json:"severity,omitempty"`
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

type AssignRequest struct {
	AssignedTo string `json:"assigned_to" validate:"required,max=50"`
}

type ListIncidentsRequest struct {
	Status   *string `json:"status,omitempty"`
	Severity *string `json:"severity,omitempty"`
	Page     int     `json:"page" validate:"gte=0"`
	PerPage  int     `json:"per_page" validate:"gte=0,lte=200"`
}
