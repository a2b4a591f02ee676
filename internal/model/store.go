package model

// Store is the tenant root. The slug is the public identifier and is
// immutable after onboarding; Timezone is an IANA zone name and is fixed
// for the lifetime of the store.
type Store struct {
	Base
	Slug     string `db:"slug" json:"slug"`
	Name     string `db:"name" json:"name"`
	Timezone string `db:"timezone" json:"timezone"`
}

type UpdateStoreRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=120"`
}
