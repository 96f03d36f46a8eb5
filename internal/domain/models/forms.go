package models

// SearchForm is the body of POST /search.
type SearchForm struct {
	Search string `form:"search"`
}

// MaterialForm is the body of POST /add. Values are stored exactly as submitted.
type MaterialForm struct {
	Name         string `form:"name"`
	Lab          string `form:"lab"`
	Email        string `form:"email"`
	Availability string `form:"availability"`
	Preference   string `form:"preference"`
	Phone        string `form:"phone"`
	Description  string `form:"description"`
}

// Material maps the submitted fields onto a new, unsaved Material.
func (f MaterialForm) Material() Material {
	return Material{
		Name:         f.Name,
		Lab:          f.Lab,
		Email:        f.Email,
		Preference:   f.Preference,
		Availability: f.Availability,
		Phone:        f.Phone,
		Description:  f.Description,
	}
}

// IDQuery carries the material id for GET /reserve and GET /remove.
type IDQuery struct {
	ID string `form:"id" binding:"required"`
}

// RemoveForm is the body of POST /remove.
type RemoveForm struct {
	Remove string `form:"remove"`
}
