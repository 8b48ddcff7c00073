package mongodb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/todobook/todobook/internal/errs"
	"github.com/todobook/todobook/internal/model"
)

func TestUserRepo_FindByEmail_OK(t *testing.T) {
	fc := &fakeCollection{findOneDoc: bson.D{{Key: "email", Value: "a@x.com"}, {Key: "name", Value: "Alice"}}}
	r := NewUserRepoWithCollection(fc)

	doc, err := r.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", model.Email(doc))
	require.Equal(t, "Alice", doc["name"])
	require.Equal(t, bson.M{"email": "a@x.com"}, fc.lastFindOneIn)
}

func TestUserRepo_FindByEmail_NotFound(t *testing.T) {
	r := NewUserRepoWithCollection(&fakeCollection{})

	_, err := r.FindByEmail(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_FindByEmail_StoreError(t *testing.T) {
	boom := errors.New("socket closed")
	r := NewUserRepoWithCollection(&fakeCollection{findOneErr: boom})

	_, err := r.FindByEmail(context.Background(), "a@x.com")
	require.Error(t, err)
	require.NotErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_Insert_Verbatim(t *testing.T) {
	oid := bson.NewObjectID()
	fc := &fakeCollection{insertRes: &mongo.InsertOneResult{InsertedID: oid}}
	r := NewUserRepoWithCollection(fc)

	user := model.Document{"email": "a@x.com", "plan": "free", "age": 30}
	res, err := r.Insert(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, oid, res.InsertedID)
	require.Equal(t, user, fc.insertedDoc)
}

func TestUserRepo_Insert_StoreError(t *testing.T) {
	r := NewUserRepoWithCollection(&fakeCollection{insertErr: errors.New("write failed")})

	_, err := r.Insert(context.Background(), model.Document{"email": "a@x.com"})
	require.Error(t, err)
}
