package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

// Collection names
const (
	UsersCollection = "users"
	TasksCollection = "todos"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *userDocument) toEntity() *entities.User {
	return &entities.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
	}
}

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Tag         string             `bson:"tag"`
	Deadline    time.Time          `bson:"deadline"`
	Section     string             `bson:"section"`
	Done        bool               `bson:"done"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *taskDocument) toEntity() *entities.Task {
	return &entities.Task{
		ID:          d.ID.Hex(),
		OwnerID:     d.UserID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Tag:         entities.Tag(d.Tag),
		Deadline:    d.Deadline,
		Section:     entities.Section(d.Section),
		Done:        d.Done,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoUserRepository implements the UserRepository interface on MongoDB.
// Email uniqueness relies on the index created by EnsureIndexes.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a new user repository on db
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(UsersCollection)}
}

var _ ports.UserRepository = (*MongoUserRepository)(nil)

func (r *MongoUserRepository) Create(ctx context.Context, user *entities.User) error {
	doc := userDocument{
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.PasswordHash,
		CreatedAt: user.CreatedAt,
	}
	if user.ID != "" {
		oid, err := primitive.ObjectIDFromHex(user.ID)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		doc.ID = oid
	} else {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entities.ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}

	user.ID = doc.ID.Hex()
	return nil
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, entities.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, "get user by id")
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, "get user by email")
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, op string) (*entities.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toEntity(), nil
}

// MongoTaskRepository implements the TaskRepository interface on MongoDB
type MongoTaskRepository struct {
	coll *mongo.Collection
}

// NewMongoTaskRepository creates a new task repository on db
func NewMongoTaskRepository(db *mongo.Database) *MongoTaskRepository {
	return &MongoTaskRepository{coll: db.Collection(TasksCollection)}
}

var _ ports.TaskRepository = (*MongoTaskRepository)(nil)

// oldest first, so content matches act on the earliest task
var firstBySort = bson.D{{Key: "_id", Value: 1}}

func (r *MongoTaskRepository) Create(ctx context.Context, task *entities.Task) error {
	owner, err := primitive.ObjectIDFromHex(task.OwnerID)
	if err != nil {
		return fmt.Errorf("create task: invalid owner id: %w", err)
	}

	doc := taskDocument{
		ID:          primitive.NewObjectID(),
		UserID:      owner,
		Title:       task.Title,
		Description: task.Description,
		Tag:         string(task.Tag),
		Deadline:    task.Deadline,
		Section:     string(task.Section),
		Done:        task.Done,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.ID != "" {
		if doc.ID, err = primitive.ObjectIDFromHex(task.ID); err != nil {
			return fmt.Errorf("create task: %w", err)
		}
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	task.ID = doc.ID.Hex()
	return nil
}

func (r *MongoTaskRepository) GetByID(ctx context.Context, ownerID, id string) (*entities.Task, error) {
	filter, ok := ownedFilter(ownerID, id)
	if !ok {
		return nil, entities.ErrTaskNotFound
	}

	var doc taskDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *MongoTaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Task, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []*entities.Task{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"userId": owner}, options.Find().SetSort(firstBySort))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]*entities.Task, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, docs[i].toEntity())
	}
	return tasks, nil
}

func (r *MongoTaskRepository) Update(ctx context.Context, task *entities.Task) error {
	filter, ok := ownedFilter(task.OwnerID, task.ID)
	if !ok {
		return entities.ErrTaskNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       task.Title,
		"description": task.Description,
		"tag":         string(task.Tag),
		"deadline":    task.Deadline,
		"section":     string(task.Section),
		"done":        task.Done,
		"updatedAt":   task.UpdatedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if result.MatchedCount == 0 {
		return entities.ErrTaskNotFound
	}
	return nil
}

func (r *MongoTaskRepository) UpdateMatching(ctx context.Context, match ports.TaskMatch, update ports.TaskUpdate) (*entities.Task, error) {
	filter, ok := matchFilter(match)
	if !ok {
		return nil, entities.ErrTaskNotFound
	}

	staged := &entities.Task{}
	update.Apply(staged)
	set := bson.M{"$set": bson.M{
		"title":       staged.Title,
		"description": staged.Description,
		"tag":         string(staged.Tag),
		"deadline":    staged.Deadline,
		"section":     string(staged.Section),
		"updatedAt":   staged.UpdatedAt,
	}}

	opts := options.FindOneAndUpdate().SetSort(firstBySort).SetReturnDocument(options.After)
	return r.findOneAndUpdate(ctx, filter, set, opts, "update task by match")
}

func (r *MongoTaskRepository) SetDone(ctx context.Context, ownerID, id string, done bool) (*entities.Task, error) {
	filter, ok := ownedFilter(ownerID, id)
	if !ok {
		return nil, entities.ErrTaskNotFound
	}

	set := bson.M{"$set": bson.M{"done": done, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return r.findOneAndUpdate(ctx, filter, set, opts, "set task done")
}

func (r *MongoTaskRepository) DeleteByID(ctx context.Context, ownerID, id string) error {
	filter, ok := ownedFilter(ownerID, id)
	if !ok {
		return entities.ErrTaskNotFound
	}

	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return entities.ErrTaskNotFound
	}
	return nil
}

func (r *MongoTaskRepository) DeleteMatching(ctx context.Context, match ports.TaskMatch) error {
	filter, ok := matchFilter(match)
	if !ok {
		return entities.ErrTaskNotFound
	}

	err := r.coll.FindOneAndDelete(ctx, filter, options.FindOneAndDelete().SetSort(firstBySort)).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("delete task by match: %w", err)
	}
	return nil
}

func (r *MongoTaskRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M, opts *options.FindOneAndUpdateOptions, op string) (*entities.Task, error) {
	var doc taskDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toEntity(), nil
}

// ownedFilter selects one task by id within an owner's tasks.
// Malformed ids can never match, reported as ok=false.
func ownedFilter(ownerID, id string) (bson.M, bool) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, false
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "userId": owner}, true
}

func matchFilter(match ports.TaskMatch) (bson.M, bool) {
	owner, err := primitive.ObjectIDFromHex(match.OwnerID)
	if err != nil {
		return nil, false
	}
	filter := bson.M{
		"userId":      owner,
		"title":       match.Title,
		"description": match.Description,
	}
	if match.Tag != nil {
		filter["tag"] = string(*match.Tag)
	}
	return filter, true
}

// EnsureIndexes creates the unique email index and the owner lookup index
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	_, err = db.Collection(TasksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("owner_lookup"),
	})
	if err != nil {
		return fmt.Errorf("create todos owner index: %w", err)
	}

	return nil
}
