package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Question struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Index    int                `bson:"index" json:"index"`
	Question string             `bson:"question" json:"question"`
	Type     string             `bson:"type" json:"type"`
	Options  []Option           `bson:"options" json:"options"`
	FormID   primitive.ObjectID `bson:"form_id" json:"form_id"`
}
