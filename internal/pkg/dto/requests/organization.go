package requests

type CreateOrganization struct {
	Name string `json:"name" validate:"required,max=200"`
}

type UpdateOrganization struct {
	NewName string `json:"new_name" validate:"required,max=200"`
}
