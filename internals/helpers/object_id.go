package helper

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewObjectID returns a fresh 24-hex-character identifier.
func NewObjectID() string {
	return primitive.NewObjectID().Hex()
}

// IsObjectID reports whether id is a well-formed identifier for the store.
func IsObjectID(id string) bool {
	return primitive.IsValidObjectID(id)
}
