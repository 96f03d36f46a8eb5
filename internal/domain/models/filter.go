package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Filter maps a document field to the exact value it must equal.
// An empty Filter matches every material.
type Filter map[string]any

// MatchAll returns a filter that matches every material.
func MatchAll() Filter {
	return Filter{}
}

// ByName matches materials whose name equals name exactly.
func ByName(name string) Filter {
	return Filter{"name": name}
}

// ByID matches the material with the given identifier.
func ByID(id primitive.ObjectID) Filter {
	return Filter{"_id": id}
}
