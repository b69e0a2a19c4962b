package domain

// SettingsList names one of the two controlled vocabulary lists.
type SettingsList string

const (
	ListFields       SettingsList = "fields"
	ListPaymentTerms SettingsList = "paymentTerms"
)

// Valid reports whether the list name is known.
func (l SettingsList) Valid() bool {
	return l == ListFields || l == ListPaymentTerms
}

// SettingsLists holds both controlled vocabularies. The two lists share one
// physical table as parallel columns but are semantically independent.
type SettingsLists struct {
	Fields       []string
	PaymentTerms []string
}

// DefaultPaymentTerms seeds the payment-term vocabulary for a fresh
// deployment.
var DefaultPaymentTerms = []string{"שוטף+30", "שוטף+60", "שוטף+90", "מזומן", "אשראי"}
