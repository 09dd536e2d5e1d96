package model

// Relationship type names as stored in the graph. DEBIT/CREDIT carry the money
// flow, SENT/RECEIVED are their presentation-facing aliases used on view edges,
// and the SHARED_* types link entities that reuse the same attribute value.
const (
	RelDebit    = "DEBIT"
	RelCredit   = "CREDIT"
	RelSent     = "SENT"
	RelReceived = "RECEIVED"

	RelSharedEmail         = "SHARED_EMAIL"
	RelSharedPhone         = "SHARED_PHONE"
	RelSharedAddress       = "SHARED_ADDRESS"
	RelSharedPaymentMethod = "SHARED_PAYMENT_METHOD"

	RelSharedIP     = "SHARED_IP"
	RelSharedDevice = "SHARED_DEVICE"
	RelRelatedTo    = "RELATED_TO"
)

// SharedUserAttributes maps a User attribute name to the relationship type
// created when two users share that attribute's value.
var SharedUserAttributes = map[string]string{
	"email":         RelSharedEmail,
	"phone":         RelSharedPhone,
	"address":       RelSharedAddress,
	"paymentMethod": RelSharedPaymentMethod,
}

// SharedTransactionAttributes maps a Transaction attribute name to the
// relationship type created when two transactions share that value.
var SharedTransactionAttributes = map[string]string{
	"ip":       RelSharedIP,
	"deviceId": RelSharedDevice,
}
