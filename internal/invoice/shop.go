// Package invoice renders order invoices and the WhatsApp share text.
package invoice

// Bank is the account printed on invoices for transfers.
type Bank struct {
	Name    string `json:"name"`
	Account string `json:"account"`
	IFSC    string `json:"ifsc"`
	Branch  string `json:"branch"`
}

// Shop carries the seller details printed on invoices and share messages.
type Shop struct {
	Name           string   `json:"name"`
	Tagline        string   `json:"tagline"`
	Footer         string   `json:"footer"`
	WhatsAppNumber string   `json:"whatsappNumber"`
	Bank           Bank     `json:"bank"`
	Terms          []string `json:"terms"`
}

// DefaultShop returns the storefront's seller details.
func DefaultShop() Shop {
	return Shop{
		Name:           "Sri Akilesh Agency",
		Tagline:        "Sivakasi's Most Popular Cracker Shop",
		Footer:         "Retail & Wholesale | Since 2010",
		WhatsAppNumber: "919363453590",
		Bank: Bank{
			Name:    "HDFC Bank",
			Account: "50200012345678",
			IFSC:    "HDFC0001234",
			Branch:  "Sivakasi",
		},
		Terms: []string{
			"Goods once sold cannot be returned",
			"Payment to be made on delivery",
			"Subject to Sivakasi jurisdiction",
			"This is a computer-generated invoice",
			"Valid for retail and wholesale purchases",
		},
	}
}
