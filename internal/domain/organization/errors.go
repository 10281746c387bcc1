package organization

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrNameTaken            = errors.New("organization name already exists")
)
