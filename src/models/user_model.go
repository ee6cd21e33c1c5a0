package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name           string   `json:"fullName"`
	Username       string   `json:"username" gorm:"uniqueIndex"`
	Email          string   `json:"email" gorm:"uniqueIndex"`
	Password       string   `json:"-"`
	ProfilePicture string   `json:"profilePicture"`
	Location       string   `json:"location"`
	Interests      []string `json:"interests" gorm:"serializer:json"`
}

// MarshalJSON personaliza la serialización para cambiar ID a _id
func (u User) MarshalJSON() ([]byte, error) {
	type Alias User
	return json.Marshal(&struct {
		ID uint `json:"_id"`
		*Alias
	}{
		ID:    u.ID,
		Alias: (*Alias)(&u),
	})
}

// UserDto is the reduced public profile embedded in request, connection and
// notification payloads.
type UserDto struct {
	ID             uint     `json:"_id"`
	Name           string   `json:"fullName"`
	Username       string   `json:"username"`
	ProfilePicture string   `json:"profilePicture"`
	Location       string   `json:"location,omitempty"`
	Interests      []string `json:"interests,omitempty"`
}

// ToDto extracts the public profile fields of a user
func (u *User) ToDto() UserDto {
	return UserDto{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		Location:       u.Location,
		Interests:      u.Interests,
	}
}
