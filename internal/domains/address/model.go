package address

// Address is the payload the collection carries for one shipping address.
// Collection bookkeeping (id, order, default flag) lives on the generic
// item, not here.
type Address struct {
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"` // 2-letter UF code
	Nickname     string `json:"nickname"`
}
