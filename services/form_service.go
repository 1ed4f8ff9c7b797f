package services

import (
	"context"
	"errors"

	"hpquiz/database"
	"hpquiz/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	formsCollection     = "forms"
	questionsCollection = "questions"
)

var (
	// ErrMissingLookupParam is returned when a lookup supplies neither an
	// identifier nor a name. No store call is made in that case.
	ErrMissingLookupParam = errors.New("either 'id' or 'name' must be provided")

	// ErrInvalidFormID is returned when a form identifier is not a valid
	// ObjectID hex string. Checked before any store call.
	ErrInvalidFormID = errors.New("invalid form ID")
)

// Store is the slice of the data access layer the form service uses.
// *database.Database satisfies it.
type Store interface {
	InsertOne(ctx context.Context, collection string, document interface{}) (*mongo.InsertOneResult, error)
	InsertMany(ctx context.Context, collection string, documents []interface{}) (*mongo.InsertManyResult, error)
	FindOne(ctx context.Context, collection string, filter interface{}, result interface{}) error
	Find(ctx context.Context, collection string, filter interface{}, results interface{}, sortKey string, order database.SortOrder) error
}

type FormService struct {
	store Store
}

func NewFormService(store Store) *FormService {
	return &FormService{store: store}
}

type CreateFormRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Author      string `json:"author" binding:"required"`
}

type CreateQuestionRequest struct {
	Index    int                   `json:"index"`
	Question string                `json:"question" binding:"required"`
	Type     string                `json:"type" binding:"required"`
	Options  []CreateOptionRequest `json:"options" binding:"required,min=1"`
}

type CreateOptionRequest struct {
	Option    string `json:"option" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// GetForm resolves a form by identifier or by name and attaches its questions
// sorted ascending by index. Exactly one of id and name must be given; the
// identifier takes precedence when both are present.
func (s *FormService) GetForm(ctx context.Context, id, name string) (*models.Form, error) {
	if id == "" && name == "" {
		return nil, ErrMissingLookupParam
	}

	var form models.Form
	if id != "" {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, ErrInvalidFormID
		}
		if err := s.store.FindOne(ctx, formsCollection, bson.M{"_id": oid}, &form); err != nil {
			return nil, err
		}
	} else {
		if err := s.store.FindOne(ctx, formsCollection, bson.M{"name": name}, &form); err != nil {
			return nil, err
		}
	}

	questions := []models.Question{}
	err := s.store.Find(ctx, questionsCollection, bson.M{"form_id": form.ID}, &questions, "index", database.Ascending)
	if err != nil {
		return nil, err
	}
	form.Questions = questions

	return &form, nil
}

// CreateForm persists a new form. The identifier is left unset so the store
// assigns a fresh one; the returned form carries it.
func (s *FormService) CreateForm(ctx context.Context, req *CreateFormRequest) (*models.Form, error) {
	form := models.Form{
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
	}

	result, err := s.store.InsertOne(ctx, formsCollection, form)
	if err != nil {
		return nil, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		form.ID = oid
	}
	return &form, nil
}

// CreateQuestions persists a batch of questions under the given form, each
// tagged with the form's identifier. The batch is atomic: either every
// question is stored or none is. It runs in its own transaction, independent
// of the form's creation.
func (s *FormService) CreateQuestions(ctx context.Context, formID string, reqs []CreateQuestionRequest) error {
	oid, err := primitive.ObjectIDFromHex(formID)
	if err != nil {
		return ErrInvalidFormID
	}

	documents := make([]interface{}, 0, len(reqs))
	for _, req := range reqs {
		options := make([]models.Option, 0, len(req.Options))
		for _, opt := range req.Options {
			options = append(options, models.Option{
				Option:    opt.Option,
				IsCorrect: opt.IsCorrect,
			})
		}

		documents = append(documents, models.Question{
			Index:    req.Index,
			Question: req.Question,
			Type:     req.Type,
			Options:  options,
			FormID:   oid,
		})
	}

	_, err = s.store.InsertMany(ctx, questionsCollection, documents)
	return err
}
