package schema

// ProfilesTable represents the 'public.profiles' table
type ProfilesTable struct {
	Table     string
	ID        string
	Email     string
	Username  string
	CreatedAt string
}

// Profiles is the schema definition for public.profiles
var Profiles = ProfilesTable{
	Table:     "public.profiles",
	ID:        "id",
	Email:     "email",
	Username:  "username",
	CreatedAt: "created_at",
}

// Columns returns all standard column names
func (t ProfilesTable) Columns() []string {
	return []string{t.ID, t.Email, t.Username, t.CreatedAt}
}
