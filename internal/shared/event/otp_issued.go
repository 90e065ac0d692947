package event

const OTPIssuedDestination string = "auth_otp_issued"
const OTPIssuedDestinationConsumerNotification string = "auth_otp_issued_notification"

// OTPIssuedMessage carries a freshly issued one-time code to the
// notification module. The plaintext code lives only on the wire and in the
// outgoing email; it is never persisted.
type OTPIssuedMessage struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Code      string `json:"code"`
	Purpose   string `json:"purpose"`
	ExpiresAt string `json:"expires_at"`
}
