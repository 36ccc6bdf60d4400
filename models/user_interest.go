// models/user_interest.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserInterest is static reference data used to populate selectable
// interest lists. Replaced wholesale by the importer, no other lifecycle.
type UserInterest struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Category string             `json:"category" bson:"category"`
	Name     string             `json:"name" bson:"name"`
}

// UserInterestsResponse groups interest names by category.
type UserInterestsResponse struct {
	Interests map[string][]string `json:"interests"`
}
