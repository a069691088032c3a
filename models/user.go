package models

// Company is the nested company record carried on upstream users.
type Company struct {
	Name string `json:"name"`
}

// Address is the nested address record carried on upstream users.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
}

// User mirrors the upstream wire format. Users are fetched fresh on every
// load and never persisted locally; edits are scoped to the working set.
type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Company  Company `json:"company"`
	Address  Address `json:"address"`
}
