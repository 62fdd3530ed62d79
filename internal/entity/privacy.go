package entity

// PrivacyLevel is the per-account visibility setting inherited by every
// resource the account owns. It is stored as a small integer; the raw
// integer never crosses into the policy engine, form handlers convert it
// at the boundary.
type PrivacyLevel int

const (
	PrivacyPublic  PrivacyLevel = 1
	PrivacyPrivate PrivacyLevel = 2
)

func (p PrivacyLevel) Valid() bool {
	return p == PrivacyPublic || p == PrivacyPrivate
}

func (p PrivacyLevel) String() string {
	switch p {
	case PrivacyPublic:
		return "Public"
	case PrivacyPrivate:
		return "Private"
	}
	return "Unknown"
}
