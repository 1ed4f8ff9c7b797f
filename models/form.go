package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Form struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Author      string             `bson:"author" json:"author"`
	Name        string             `bson:"name,omitempty" json:"name,omitempty"`

	// Questions live in their own collection keyed by form_id; they are
	// attached here on lookup and never written as part of the form document.
	Questions []Question `bson:"-" json:"questions,omitempty"`
}
