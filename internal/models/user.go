package models

// User represents an admin user record. Credentials live in the identity
// provider; this document only mirrors profile and role membership.
type User struct {
	ID        string `bson:"_id" json:"id"`
	Email     string `bson:"email" json:"email"`
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	IsActive  bool   `bson:"isActive" json:"isActive"`
	Version   int64  `bson:"version" json:"version"`

	Audit      `bson:",inline"`
	SoftDelete `bson:",inline"`

	// Populated from user_roles on read; never persisted on this document.
	Roles []Role `bson:"-" json:"roles,omitempty"`
}

// Role represents an authorization role. Roles are removed physically.
type Role struct {
	ID          string `bson:"_id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
	Version     int64  `bson:"version" json:"version"`

	Audit `bson:",inline"`
}

// UserRole is the join document linking users to roles.
type UserRole struct {
	ID     string `bson:"_id" json:"id"`
	UserID string `bson:"userId" json:"userId"`
	RoleID string `bson:"roleId" json:"roleId"`

	Audit `bson:",inline"`
}
