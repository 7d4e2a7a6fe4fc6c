package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func counterResponse(seq int64) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
		{Key: "_id", Value: accountsCollection},
		{Key: "seq", Value: seq},
	}})
}

func accountDocument(id int64, status string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Alice"},
		{Key: "surname", Value: "Smith"},
		{Key: "age", Value: 25},
		{Key: "username", Value: "Alice123"},
		{Key: "password", Value: validPassword},
		{Key: "status", Value: status},
	}
}

func TestMongoAccountRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("store", func(mt *mtest.T) {
		repo := NewMongoAccountRepository(mt.DB)
		acc := newPendingAccount("Alice123")
		mt.AddMockResponses(counterResponse(4), mtest.CreateSuccessResponse())

		require.NoError(mt, repo.Store(ctx, acc))
		assert.Equal(mt, ID(4), acc.ID)
	})

	mt.Run("store duplicate username", func(mt *mtest.T) {
		repo := NewMongoAccountRepository(mt.DB)
		acc := newPendingAccount("Alice123")
		mt.AddMockResponses(counterResponse(5), mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: accounts index: username_unique",
		}))

		assert.Equal(mt, ErrExistingUsername, repo.Store(ctx, acc))
		assert.Zero(mt, acc.ID)
	})

	mt.Run("store without counter", func(mt *mtest.T) {
		repo := NewMongoAccountRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
		}))

		err := repo.Store(ctx, newPendingAccount("Alice123"))
		assert.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrExistingUsername)
	})

	mt.Run("find by credentials", func(mt *mtest.T) {
		repo := NewMongoAccountRepository(mt.DB)
		ns := mt.DB.Name() + "." + accountsCollection
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, accountDocument(4, "In progress")),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
		)

		acc, err := repo.FindByCredentials(ctx, "Alice123", validPassword)
		require.NoError(mt, err)
		assert.Equal(mt, &Account{
			ID:          4,
			Name:        "Alice",
			Surname:     "Smith",
			Age:         25,
			Credentials: Credentials{Username: "Alice123", Password: validPassword},
			Status:      StatusInProgress,
		}, acc)

		_, err = repo.FindByCredentials(ctx, "Alice123", "Wrong12345")
		assert.Equal(mt, ErrNotFound, err)
	})

	mt.Run("find by name with unknown status", func(mt *mtest.T) {
		repo := NewMongoAccountRepository(mt.DB)
		ns := mt.DB.Name() + "." + accountsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, accountDocument(4, "Suspended")))

		_, err := repo.FindByName(ctx, "Alice123")
		assert.ErrorIs(mt, err, ErrUnknownStatus)
	})

	mt.Run("update status", func(mt *mtest.T) {
		repo := NewMongoAccountRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		assert.NoError(mt, repo.UpdateStatus(ctx, 4, StatusActive))
		assert.Equal(mt, ErrNotFound, repo.UpdateStatus(ctx, 99, StatusActive))
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, EnsureMongoIndexes(ctx, mt.DB))
	})
}

func TestDBAccountMapping(t *testing.T) {
	acc := newPendingAccount("Alice123")
	acc.ID = 12

	dba := dbAccountFromAccount(acc)
	assert.Equal(t, "In progress", dba.Status)
	assert.Equal(t, "Alice123", dba.Username)

	back, err := accountFromDBAccount(dba)
	require.NoError(t, err)
	assert.Equal(t, acc, back)
}
