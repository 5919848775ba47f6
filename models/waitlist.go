package models

// Role values accepted on the waitlist form
const (
	RoleIndividual    = "individual"
	RoleBusinessOwner = "business_owner"
	RoleLawyer        = "lawyer"
	RoleLawStudent    = "law_student"
	RoleInvestor      = "investor"
	RoleOther         = "other"
)

// Waitlist field names, as used in form posts and in the signup API
const (
	FieldFullName  = "full_name"
	FieldEmail     = "email"
	FieldLocation  = "location"
	FieldRole      = "role"
	FieldInterests = "interests"
)

// WaitlistFields lists the form fields in display order
var WaitlistFields = []string{FieldFullName, FieldEmail, FieldLocation, FieldRole, FieldInterests}

// RoleOption is one entry of the role picker
type RoleOption struct {
	Value    string
	LabelKey string // i18n key for the label
	Label    string // English label
}

// RoleOptions lists the accepted roles in display order
var RoleOptions = []RoleOption{
	{Value: RoleIndividual, LabelKey: "waitlist.role.individual", Label: "Individual needing legal help"},
	{Value: RoleBusinessOwner, LabelKey: "waitlist.role.business_owner", Label: "Business Owner/Manager"},
	{Value: RoleLawyer, LabelKey: "waitlist.role.lawyer", Label: "Lawyer/Legal Professional"},
	{Value: RoleLawStudent, LabelKey: "waitlist.role.law_student", Label: "Law Student"},
	{Value: RoleInvestor, LabelKey: "waitlist.role.investor", Label: "Investor/Partner"},
	{Value: RoleOther, LabelKey: "waitlist.role.other", Label: "Other"},
}

// IsValidRole reports whether role is one of the accepted values
func IsValidRole(role string) bool {
	for _, opt := range RoleOptions {
		if opt.Value == role {
			return true
		}
	}
	return false
}

// RoleLabel returns the English label for a role, or the raw value if unknown
func RoleLabel(role string) string {
	for _, opt := range RoleOptions {
		if opt.Value == role {
			return opt.Label
		}
	}
	return role
}

// WaitlistSubmission is a single request to join the pre-launch waitlist.
// Location and Interests are optional; absence is encoded as an empty string.
type WaitlistSubmission struct {
	FullName  string `json:"full_name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Location  string `json:"location"`
	Role      string `json:"role" validate:"required,oneof=individual business_owner lawyer law_student investor other"`
	Interests string `json:"interests"`
}

// Get returns the value of a field by its form name
func (s WaitlistSubmission) Get(field string) string {
	switch field {
	case FieldFullName:
		return s.FullName
	case FieldEmail:
		return s.Email
	case FieldLocation:
		return s.Location
	case FieldRole:
		return s.Role
	case FieldInterests:
		return s.Interests
	}
	return ""
}

// With returns a copy of s with one field replaced. Unknown fields are ignored.
func (s WaitlistSubmission) With(field, value string) WaitlistSubmission {
	switch field {
	case FieldFullName:
		s.FullName = value
	case FieldEmail:
		s.Email = value
	case FieldLocation:
		s.Location = value
	case FieldRole:
		s.Role = value
	case FieldInterests:
		s.Interests = value
	}
	return s
}

// IsWaitlistField reports whether name is a known waitlist field
func IsWaitlistField(name string) bool {
	for _, f := range WaitlistFields {
		if f == name {
			return true
		}
	}
	return false
}
