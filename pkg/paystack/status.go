package paystack

// Gateway transaction statuses that get distinct local handling.
const (
	StatusSuccess    = "success"
	StatusFailed     = "failed"
	StatusAbandoned  = "abandoned"
	StatusProcessing = "processing"
	StatusOngoing    = "ongoing"
)

// MapStatus maps a gateway transaction status onto the local payment status
// plus a payment note. "processing"/"ongoing" keep the payment pending;
// "abandoned" and anything unrecognised fail it, with a note saying why.
func MapStatus(status string) (local string, note string) {
	switch status {
	case StatusSuccess:
		return "paid", ""
	case StatusFailed:
		return "failed", ""
	case StatusAbandoned:
		return "failed", "Payment was abandoned"
	case StatusProcessing, StatusOngoing:
		return "pending", "Payment is still processing"
	default:
		return "failed", "Payment failed due to unknown reason"
	}
}
