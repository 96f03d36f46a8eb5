package models

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Availability values. Only AvailabilityAvailable is treated as the positive case;
// any other stored value renders as unavailable.
const (
	AvailabilityAvailable = "Available"
	AvailabilityReserved  = "Reserved"
)

// Contact preference values.
const (
	PreferenceEmail = "Email"
	PreferencePhone = "Phone"
)

// ErrInvalidID is returned when an identifier cannot be parsed into an ObjectID.
var ErrInvalidID = errors.New("invalid material id")

// Material is a shared lab material entry stored in the materials collection.
type Material struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Lab          string             `bson:"lab" json:"lab"`
	Email        string             `bson:"email" json:"email"`
	Preference   string             `bson:"preference" json:"preference"`
	Availability string             `bson:"availability" json:"availability"`
	Phone        string             `bson:"phone" json:"phone"`
	Description  string             `bson:"description" json:"description"`
}

// IsAvailable reports whether the material can be reserved.
func (m Material) IsAvailable() bool {
	return m.Availability == AvailabilityAvailable
}

// ContactLine resolves the authoritative contact field from the preference.
func (m Material) ContactLine() string {
	if m.Preference == PreferenceEmail {
		return "Email: " + m.Email
	}
	return "Phone: " + m.Phone
}

// ParseID converts the 24 character hex representation used in URLs.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w %q: %v", ErrInvalidID, hex, err)
	}
	return id, nil
}
