package gateway

import "strings"

// Provider identifiers carry literal prefixes. Handlers validate these before
// any network call so malformed input never reaches the gateway.
const (
	sessionIDPrefix       = "cs_"
	customerIDPrefix      = "cus_"
	paymentMethodIDPrefix = "pm_"
	priceIDPrefix         = "price_"
)

func ValidSessionID(id string) bool {
	return strings.HasPrefix(id, sessionIDPrefix) && len(id) > len(sessionIDPrefix)
}

func ValidCustomerID(id string) bool {
	return strings.HasPrefix(id, customerIDPrefix) && len(id) > len(customerIDPrefix)
}

func ValidPaymentMethodID(id string) bool {
	return strings.HasPrefix(id, paymentMethodIDPrefix) && len(id) > len(paymentMethodIDPrefix)
}

func ValidPriceID(id string) bool {
	return strings.HasPrefix(id, priceIDPrefix) && len(id) > len(priceIDPrefix)
}
