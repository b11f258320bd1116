package profile

// UpdateProfileRequest: omitted or empty fields are left unchanged.
type UpdateProfileRequest struct {
	Name         string `json:"name" binding:"omitempty,min=2,max=120"`
	Email        string `json:"email" binding:"omitempty,email"`
	ProfileImage string `json:"profile_image"`
}
