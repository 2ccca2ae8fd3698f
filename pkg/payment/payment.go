package payment

// Method is how a transaction was paid.
type Method string

const (
	Cash           Method = "CASH"
	CreditCard     Method = "CREDIT_CARD"
	BankTransfer   Method = "BANK_TRANSFER"
	MobilePayment  Method = "MOBILE_PAYMENT"
	PayPal         Method = "PAYPAL"
	Cryptocurrency Method = "CRYPTOCURRENCY"
	Check          Method = "CHECK"
	DirectDebit    Method = "DIRECT_DEBIT"
)

// Valid reports whether m is one of the known payment methods.
func (m Method) Valid() bool {
	switch m {
	case Cash, CreditCard, BankTransfer, MobilePayment, PayPal, Cryptocurrency, Check, DirectDebit:
		return true
	}
	return false
}
