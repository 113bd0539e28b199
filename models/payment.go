package models

import "time"

// Payment transaction statuses as stored and as returned by verification.
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// PaymentCurrency is the only currency the platform charges in.
const PaymentCurrency = "ETB"

// PaymentTransaction tracks one payment attempt against the Chapa gateway.
// TransactionReference is generated as "tx-<unix-millis>" when the attempt
// is initialized and is the key the gateway callback verifies against.
type PaymentTransaction struct {
	TransactionReference string     `bson:"transactionReference" json:"transactionReference"`
	SessionID            string     `bson:"sessionId" json:"sessionId"`
	ClientID             string     `bson:"clientId" json:"clientId"`
	CounselorID          string     `bson:"counselorId" json:"counselorId"`
	ScheduleID           string     `bson:"scheduleId" json:"scheduleId"`
	Amount               float64    `bson:"amount" json:"amount"`
	Currency             string     `bson:"currency" json:"currency"`
	Status               string     `bson:"status" json:"status"`
	CheckoutURL          string     `bson:"checkoutUrl,omitempty" json:"chapaRedirectUrl,omitempty"`
	VerifiedAt           *time.Time `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	CreatedAt            time.Time  `bson:"createdAt" json:"createdAt"`
}
