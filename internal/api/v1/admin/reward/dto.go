package reward

type CreateRewardRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
	Cost        int64  `json:"cost" binding:"required,gt=0"`
	Stock       int64  `json:"stock" binding:"gte=0"`
	Category    string `json:"category" binding:"required,max=50"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,url"`
	IsActive    *bool  `json:"isActive"`
}

type UpdateRewardRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	Cost        *int64  `json:"cost" binding:"omitempty,gt=0"`
	Stock       *int64  `json:"stock" binding:"omitempty,gte=0"`
	Category    *string `json:"category" binding:"omitempty,max=50"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url"`
	IsActive    *bool   `json:"isActive"`
}

type DeleteRewardResponse struct {
	Deleted     bool `json:"deleted"`
	Deactivated bool `json:"deactivated"`
}

type ImageUploadResponse struct {
	URL string `json:"url"`
}
