package accounts

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	accountsCollection = "accounts"
	countersCollection = "counters"
)

type mongoAccountRepository struct {
	accounts *mongo.Collection
	counters *mongo.Collection
}

type dbAccount struct {
	ID       ID `bson:"_id"`
	Name     string
	Surname  string
	Age      int
	Username string
	Password string
	Status   string
}

type counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

func NewMongoAccountRepository(db *mongo.Database) Repository {
	return &mongoAccountRepository{
		accounts: db.Collection(accountsCollection),
		counters: db.Collection(countersCollection),
	}
}

// EnsureMongoIndexes creates the unique username index that Store relies on
// to reject duplicates.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(accountsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return fmt.Errorf("creating username index: %w", err)
	}
	return nil
}

func (m *mongoAccountRepository) Store(ctx context.Context, acc *Account) error {
	id, err := m.nextID(ctx)
	if err != nil {
		return err
	}

	dba := dbAccountFromAccount(acc)
	dba.ID = id
	if _, err := m.accounts.InsertOne(ctx, &dba); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrExistingUsername
		}
		return fmt.Errorf("db error: %w", err)
	}

	acc.ID = id
	return nil
}

func (m *mongoAccountRepository) nextID(ctx context.Context) (ID, error) {
	var c counter
	err := m.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": accountsCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)

	if err != nil {
		return 0, fmt.Errorf("db error: next account id: %w", err)
	}
	return ID(c.Seq), nil
}

func (m *mongoAccountRepository) FindByCredentials(ctx context.Context, username, password string) (*Account, error) {
	return m.findAccountBy(ctx, bson.M{"username": username, "password": password})
}

func (m *mongoAccountRepository) FindByName(ctx context.Context, username string) (*Account, error) {
	return m.findAccountBy(ctx, bson.M{"username": username})
}

func (m *mongoAccountRepository) findAccountBy(ctx context.Context, filter bson.M) (*Account, error) {
	var dba dbAccount
	err := m.accounts.FindOne(ctx, filter).Decode(&dba)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return accountFromDBAccount(dba)
}

func (m *mongoAccountRepository) UpdateStatus(ctx context.Context, id ID, s Status) error {
	res, err := m.accounts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": s.String()}})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func dbAccountFromAccount(a *Account) dbAccount {
	return dbAccount{a.ID, a.Name, a.Surname, a.Age, a.Credentials.Username, a.Credentials.Password, a.Status.String()}
}

func accountFromDBAccount(a dbAccount) (*Account, error) {
	s, err := ParseStatus(a.Status)
	if err != nil {
		return nil, fmt.Errorf("account %d: %w", a.ID, err)
	}
	return &Account{
		ID:          a.ID,
		Name:        a.Name,
		Surname:     a.Surname,
		Age:         a.Age,
		Credentials: Credentials{Username: a.Username, Password: a.Password},
		Status:      s,
	}, nil
}
