package domain

// Gender enumerates the allowed values for a user's gender field.
type Gender string

// Allowed Gender values.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// IsValid reports whether g is one of the defined gender values.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Role enumerates the allowed values for entries of a user's roles list.
type Role string

// Allowed Role values. A user may hold several roles at once.
const (
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// IsValid reports whether r is one of the defined role values.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleStudent, RoleTeacher:
		return true
	}
	return false
}

// UserRecord represents a registered user in the users collection.
// The ID is assigned by the store on insert and is immutable; the
// email address serves as the externally visible business key for
// read, update and delete operations.
type UserRecord struct {
	ID           string   `json:"id,omitempty"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	MiddleName   string   `json:"middle_name,omitempty"`
	Gender       Gender   `json:"gender"`
	EmailAddress string   `json:"email_address"`
	PhoneNumber  string   `json:"phone_number"`
	Roles        []Role   `json:"roles"`
	OtherNames   []string `json:"other_names,omitempty"`
	Age          *int     `json:"age,omitempty"`
}

// Validate checks the record against the data contract: required
// fields present and enum fields inside their allowed sets. It returns
// a *ValidationError itemizing every offending field, or nil.
func (u *UserRecord) Validate() error {
	var ve ValidationError

	if u.FirstName == "" {
		ve.Fields = append(ve.Fields, FieldError{Field: "first_name", Message: "is required"})
	}
	if u.LastName == "" {
		ve.Fields = append(ve.Fields, FieldError{Field: "last_name", Message: "is required"})
	}
	if u.EmailAddress == "" {
		ve.Fields = append(ve.Fields, FieldError{Field: "email_address", Message: "is required"})
	}
	if u.PhoneNumber == "" {
		ve.Fields = append(ve.Fields, FieldError{Field: "phone_number", Message: "is required"})
	}
	if !u.Gender.IsValid() {
		ve.Fields = append(ve.Fields, FieldError{Field: "gender", Message: "must be one of: male, female"})
	}
	// roles may be empty, but every entry must be a defined role
	if u.Roles == nil {
		ve.Fields = append(ve.Fields, FieldError{Field: "roles", Message: "is required"})
	}
	for _, r := range u.Roles {
		if !r.IsValid() {
			ve.Fields = append(ve.Fields, FieldError{
				Field:   "roles",
				Message: "must each be one of: admin, user, student, teacher",
			})
			break
		}
	}

	if len(ve.Fields) > 0 {
		return &ve
	}
	return nil
}

// UserPatch is a sparse update to an existing UserRecord. Pointer
// fields distinguish "not sent" (nil) from "sent as zero value", so an
// absent field never overwrites a stored one.
type UserPatch struct {
	OtherNames *[]string `json:"other_names,omitempty"`
	Age        *int      `json:"age,omitempty"`
}

// IsEmpty reports whether no recognized field is present in the patch.
func (p *UserPatch) IsEmpty() bool {
	return p.OtherNames == nil && p.Age == nil
}

// Fields returns the fields explicitly present in the patch, keyed by
// their stored names. Only these are applied by the merge-patch update.
func (p *UserPatch) Fields() map[string]any {
	fields := make(map[string]any, 2)
	if p.OtherNames != nil {
		fields["other_names"] = *p.OtherNames
	}
	if p.Age != nil {
		fields["age"] = *p.Age
	}
	return fields
}
