package database_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"hpquiz/database"
	"hpquiz/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestOperationsRequireConnection(t *testing.T) {
	db := &database.Database{}
	ctx := context.Background()

	_, err := db.GetCollection("forms")
	assert.ErrorIs(t, err, database.ErrNotConnected)

	_, err = db.ExecuteWithSession(ctx, func(mongo.SessionContext) (interface{}, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, database.ErrNotConnected)

	_, err = db.InsertOne(ctx, "forms", bson.M{})
	assert.ErrorIs(t, err, database.ErrNotConnected)

	err = db.FindOne(ctx, "forms", bson.M{}, &bson.M{})
	assert.ErrorIs(t, err, database.ErrNotConnected)
}

// newTestDatabase connects to the store named by MONGO_TEST_URI. Transactions
// need a replica set, so the URI must point at one (a single-node replica set
// is enough). Tests are skipped when the variable is unset.
func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set; skipping store integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	dbName := fmt.Sprintf("hpquiz_test_%d", time.Now().UnixNano())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Database(dbName).Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return database.New(client, dbName)
}

func TestInsertOneRoundTrip(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	form := models.Form{Title: "T1", Description: "D", Author: "A"}
	result, err := db.InsertOne(ctx, "forms", form)
	require.NoError(t, err)

	oid, ok := result.InsertedID.(primitive.ObjectID)
	require.True(t, ok)

	var got models.Form
	require.NoError(t, db.FindOne(ctx, "forms", bson.M{"_id": oid}, &got))
	assert.Equal(t, oid, got.ID)
	assert.Equal(t, "T1", got.Title)
	assert.Equal(t, "D", got.Description)
	assert.Equal(t, "A", got.Author)
}

func TestFindOneByNameMatchesFindOneByID(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	form := models.Form{Title: "T1", Description: "D", Author: "A", Name: "hp-quiz"}
	result, err := db.InsertOne(ctx, "forms", form)
	require.NoError(t, err)
	oid := result.InsertedID.(primitive.ObjectID)

	var byID, byName models.Form
	require.NoError(t, db.FindOne(ctx, "forms", bson.M{"_id": oid}, &byID))
	require.NoError(t, db.FindOne(ctx, "forms", bson.M{"name": "hp-quiz"}, &byName))
	assert.Equal(t, byID, byName)
}

func TestFindOneMissReturnsNotFound(t *testing.T) {
	db := newTestDatabase(t)

	var got models.Form
	err := db.FindOne(context.Background(), "forms", bson.M{"_id": primitive.NewObjectID()}, &got)

	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestFindSortsAscendingRegardlessOfInsertOrder(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	formID := primitive.NewObjectID()
	_, err := db.InsertMany(ctx, "questions", []interface{}{
		models.Question{Index: 2, Question: "third", FormID: formID},
		models.Question{Index: 0, Question: "first", FormID: formID},
		models.Question{Index: 1, Question: "second", FormID: formID},
	})
	require.NoError(t, err)

	var questions []models.Question
	require.NoError(t, db.Find(ctx, "questions", bson.M{"form_id": formID}, &questions, "index", database.Ascending))

	require.Len(t, questions, 3)
	for i, q := range questions {
		assert.Equal(t, i, q.Index)
	}
}

func TestFindDescending(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	formID := primitive.NewObjectID()
	_, err := db.InsertMany(ctx, "questions", []interface{}{
		models.Question{Index: 0, FormID: formID},
		models.Question{Index: 1, FormID: formID},
	})
	require.NoError(t, err)

	var questions []models.Question
	require.NoError(t, db.Find(ctx, "questions", bson.M{"form_id": formID}, &questions, "index", database.Descending))

	require.Len(t, questions, 2)
	assert.Equal(t, 1, questions[0].Index)
	assert.Equal(t, 0, questions[1].Index)
}

func TestInsertManyIsAllOrNothing(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	dup := primitive.NewObjectID()
	formID := primitive.NewObjectID()

	// The second document collides with the first on _id, failing the batch
	// partway through. The transaction must roll back the first insert too.
	_, err := db.InsertMany(ctx, "questions", []interface{}{
		bson.M{"_id": dup, "index": 0, "form_id": formID},
		bson.M{"_id": dup, "index": 1, "form_id": formID},
	})
	require.Error(t, err)

	var questions []models.Question
	require.NoError(t, db.Find(ctx, "questions", bson.M{"form_id": formID}, &questions, "", 0))
	assert.Empty(t, questions)
}

func TestExecuteWithSessionAbortsOnError(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	opErr := fmt.Errorf("operation failed")
	_, err := db.ExecuteWithSession(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		coll, err := db.GetCollection("forms")
		if err != nil {
			return nil, err
		}
		if _, err := coll.InsertOne(sc, models.Form{Title: "doomed"}); err != nil {
			return nil, err
		}
		return nil, opErr
	})
	assert.ErrorIs(t, err, opErr)

	var got models.Form
	err = db.FindOne(ctx, "forms", bson.M{"title": "doomed"}, &got)
	assert.ErrorIs(t, err, database.ErrNotFound, "aborted writes must not be visible")
}

func TestUpdateOne(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	result, err := db.InsertOne(ctx, "forms", models.Form{Title: "before"})
	require.NoError(t, err)
	oid := result.InsertedID.(primitive.ObjectID)

	updateResult, err := db.UpdateOne(ctx, "forms", bson.M{"_id": oid}, bson.M{"$set": bson.M{"title": "after"}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, updateResult.ModifiedCount)

	var got models.Form
	require.NoError(t, db.FindOne(ctx, "forms", bson.M{"_id": oid}, &got))
	assert.Equal(t, "after", got.Title)
}

func TestDeleteOne(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	result, err := db.InsertOne(ctx, "forms", models.Form{Title: "T1"})
	require.NoError(t, err)
	oid := result.InsertedID.(primitive.ObjectID)

	deleteResult, err := db.DeleteOne(ctx, "forms", bson.M{"_id": oid})
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleteResult.DeletedCount)

	var got models.Form
	err = db.FindOne(ctx, "forms", bson.M{"_id": oid}, &got)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
