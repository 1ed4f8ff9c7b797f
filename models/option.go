package models

type Option struct {
	Option    string `bson:"option" json:"option"`
	IsCorrect bool   `bson:"is_correct" json:"is_correct"`
}
