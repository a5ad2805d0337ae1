package models

const (
	FirestoreAdminRolesCollection = "roles_admin"
)

// Profile is a collection of standard profile information for a user.
// This struct separates client-safe profile information from internal user metadata.
type Profile struct {
	DisplayName string `json:"displayName" mapstructure:"displayName"`
	Email       string `json:"email" mapstructure:"email"`
	PhotoURL    string `json:"photoUrl,omitempty" mapstructure:"photoUrl"`
	IsAdmin     bool   `json:"isAdmin" mapstructure:"isAdmin"`
}

// User represents a registered user.
type User struct {
	*Profile
	ID                 string `json:"id" mapstructure:"id"`
	Disabled           bool   `json:"disabled"`
	CreationTimestamp  int64  `json:"creationTimestamp"`
	LastLogInTimestamp int64  `json:"lastLogInTimestamp"`
}

// AdminRolePath returns the document path whose presence marks a user as an admin.
func AdminRolePath(userID string) string {
	return FirestoreAdminRolesCollection + "/" + userID
}
