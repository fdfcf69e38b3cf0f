package model

import (
	"time"
)

const (
	GenderMale        = "Male"
	GenderFemale      = "Female"
	GenderOther       = "Other"
	GenderUnspecified = ""
)

type User struct {
	ID                string    `db:"id" bson:"_id"`
	Name              string    `db:"name" bson:"name"`
	Email             string    `db:"email" bson:"email"`
	PasswordHash      string    `db:"password_hash" bson:"password_hash,omitempty"` // Only loaded by credential lookups
	Age               *int      `db:"age" bson:"age"`
	Gender            string    `db:"gender" bson:"gender"`
	Phone             string    `db:"phone" bson:"phone"`
	Location          string    `db:"location" bson:"location"`
	Goal              string    `db:"goal" bson:"goal"`
	Bio               string    `db:"bio" bson:"bio"`
	PhotoPath         string    `db:"photo_path" bson:"photo_path"` // Empty, absolute URL or server-relative path
	IsProfileComplete bool      `db:"is_profile_complete" bson:"is_profile_complete"`
	CreatedAt         time.Time `db:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" bson:"updated_at"`
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Public returns a copy of the user without credential material.
func (u *User) Public() *User {
	c := *u
	c.PasswordHash = ""
	return &c
}

// ProfileChanges is the set of profile columns an update touches.
// A nil field is left untouched in the store.
type ProfileChanges struct {
	Name      *string
	Bio       *string
	Location  *string
	Phone     *string
	Age       *int
	Gender    *string
	Goal      *string
	PhotoPath *string
}

// IsEmpty reports whether the update would touch no profile column.
func (c ProfileChanges) IsEmpty() bool {
	return c.Name == nil && c.Bio == nil && c.Location == nil && c.Phone == nil &&
		c.Age == nil && c.Gender == nil && c.Goal == nil && c.PhotoPath == nil
}
