package datasets

type CreateDatasetRequest struct {
	Name           string  `json:"name" validate:"required,min=3,max=100"`
	Description    string  `json:"description" validate:"required"`
	Source         string  `json:"source" validate:"required,max=200"`
	Classification string  `json:"classification,omitempty"`
	Format         string  `json:"format" validate:"required"`
	SizeMB         float64 `json:"size_mb" validate:"gte=0"`
}

type UpdateDatasetRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string  `json:"description,omitempty"`
	Source      *string  `json:"source,omitempty" validate:"omitempty,max=200"`
	Format      *string  `json:"format,omitempty"`
	SizeMB      *float64 `json:"size_mb,omitempty" validate:"omitempty,gte=0"`
}

type ListDatasetsRequest struct {
	Classification *string `json:"classification,omitempty"`
	Format         *string `json:"format,omitempty"`
	Page           int     `json:"page" validate:"gte=0"`
	PerPage        int     `json:"per_page" validate:"gte=0,lte=200"`
}
