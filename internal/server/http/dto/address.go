package dto

// AddressRequest carries address fields for create and update.
type AddressRequest struct {
	Label      string `json:"label"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	Default    bool   `json:"default"`
}

// AddressResponse is the stored address view.
type AddressResponse struct {
	ID         int64  `json:"id"`
	Label      string `json:"label,omitempty"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	Default    bool   `json:"default"`
}
