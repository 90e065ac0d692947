package entity

// OTPPurpose names the flow a one-time code was issued for.
//
// It is a closed set: only the constants below are valid. The string form is
// what gets stored, so adding a purpose never requires a data migration.
type OTPPurpose string

const (
	// OTPPurposeLogin is a code issued to complete a password login.
	OTPPurposeLogin OTPPurpose = "login"
)

func (p OTPPurpose) String() string {
	return string(p)
}

// IsValid reports whether p is one of the known purposes.
func (p OTPPurpose) IsValid() bool {
	switch p {
	case OTPPurposeLogin:
		return true
	default:
		return false
	}
}
