// Package mongodb persists activity templates and planned activities.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aquarian247/aquamind-planning/internal/domain/models"
)

const (
	templatesCollection  = "activity_templates"
	activitiesCollection = "planned_activities"
)

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrConflict indicates a conditional update matched no document because the
// document's state no longer permits the change.
var ErrConflict = errors.New("document state conflict")

// Repository defines the storage operations the planning engine relies on.
type Repository interface {
	ListTemplates(ctx context.Context, onlyActive bool) ([]models.ActivityTemplate, error)
	GetTemplate(ctx context.Context, id string) (models.ActivityTemplate, error)
	CreateTemplate(ctx context.Context, tmpl models.ActivityTemplate) (models.ActivityTemplate, error)
	UpdateTemplate(ctx context.Context, tmpl models.ActivityTemplate) error
	DeleteTemplate(ctx context.Context, id string) error

	ListActivities(ctx context.Context, scenarioID, batchID string) ([]models.PlannedActivity, error)
	ListActivitiesByBatch(ctx context.Context, batchID string) ([]models.PlannedActivity, error)
	GetActivity(ctx context.Context, id string) (models.PlannedActivity, error)
	CreateActivity(ctx context.Context, a models.PlannedActivity) (models.PlannedActivity, error)
	CreateActivities(ctx context.Context, activities []models.PlannedActivity) error
	UpdateActivity(ctx context.Context, a models.PlannedActivity) error
	MarkCompleted(ctx context.Context, id string, at time.Time, by string) (models.PlannedActivity, error)
	AttachWorkflow(ctx context.Context, id, workflowID string, at time.Time) (models.PlannedActivity, error)
}

// MongoRepository implements Repository on top of the mongo driver.
type MongoRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoRepository connects and pings the database.
func NewMongoRepository(ctx context.Context, uri, dbName string) (*MongoRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoRepository{client: client, dbName: dbName}, nil
}

// Close disconnects the underlying client.
func (r *MongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoRepository) templates() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(templatesCollection)
}

func (r *MongoRepository) activities() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(activitiesCollection)
}

// ListTemplates returns templates, optionally only the active ones.
func (r *MongoRepository) ListTemplates(ctx context.Context, onlyActive bool) ([]models.ActivityTemplate, error) {
	filter := bson.M{}
	if onlyActive {
		filter["is_active"] = true
	}

	cursor, err := r.templates().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.ActivityTemplate
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}
	return result, nil
}

// GetTemplate loads one template by id.
func (r *MongoRepository) GetTemplate(ctx context.Context, id string) (models.ActivityTemplate, error) {
	var tmpl models.ActivityTemplate
	err := r.templates().FindOne(ctx, bson.M{"_id": id}).Decode(&tmpl)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return tmpl, fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return tmpl, fmt.Errorf("get template %s: %w", id, err)
	}
	return tmpl, nil
}

// CreateTemplate validates and inserts a template. Malformed trigger
// definitions are rejected here and never reach the evaluator.
func (r *MongoRepository) CreateTemplate(ctx context.Context, tmpl models.ActivityTemplate) (models.ActivityTemplate, error) {
	if err := tmpl.Validate(); err != nil {
		return tmpl, err
	}

	now := time.Now().UTC()
	tmpl.ID = primitive.NewObjectID().Hex()
	tmpl.CreatedAt = now
	tmpl.UpdatedAt = now

	if _, err := r.templates().InsertOne(ctx, tmpl); err != nil {
		return tmpl, fmt.Errorf("insert template: %w", err)
	}
	return tmpl, nil
}

// UpdateTemplate validates and replaces a template. Already-materialized
// activities are untouched; deactivation only affects future generation.
func (r *MongoRepository) UpdateTemplate(ctx context.Context, tmpl models.ActivityTemplate) error {
	if err := tmpl.Validate(); err != nil {
		return err
	}

	tmpl.UpdatedAt = time.Now().UTC()
	result, err := r.templates().ReplaceOne(ctx, bson.M{"_id": tmpl.ID}, tmpl)
	if err != nil {
		return fmt.Errorf("update template %s: %w", tmpl.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("template %s: %w", tmpl.ID, ErrNotFound)
	}
	return nil
}

// DeleteTemplate removes a template.
func (r *MongoRepository) DeleteTemplate(ctx context.Context, id string) error {
	result, err := r.templates().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete template %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListActivities returns activities filtered by scenario and/or batch; empty
// arguments impose no constraint. Results come back ordered by due date with
// creation time breaking ties, matching the view ordering contract.
func (r *MongoRepository) ListActivities(ctx context.Context, scenarioID, batchID string) ([]models.PlannedActivity, error) {
	filter := bson.M{}
	if scenarioID != "" {
		filter["scenario_id"] = scenarioID
	}
	if batchID != "" {
		filter["batch_id"] = batchID
	}

	cursor, err := r.activities().Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}, {Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.PlannedActivity
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return result, nil
}

// ListActivitiesByBatch returns every activity for one batch.
func (r *MongoRepository) ListActivitiesByBatch(ctx context.Context, batchID string) ([]models.PlannedActivity, error) {
	return r.ListActivities(ctx, "", batchID)
}

// GetActivity loads one activity by id.
func (r *MongoRepository) GetActivity(ctx context.Context, id string) (models.PlannedActivity, error) {
	var a models.PlannedActivity
	err := r.activities().FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return a, fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return a, fmt.Errorf("get activity %s: %w", id, err)
	}
	return a, nil
}

// CreateActivity inserts one planned activity.
func (r *MongoRepository) CreateActivity(ctx context.Context, a models.PlannedActivity) (models.PlannedActivity, error) {
	a.ID = primitive.NewObjectID().Hex()
	if a.Status == "" {
		a.Status = models.StatusPending
	}

	if _, err := r.activities().InsertOne(ctx, a); err != nil {
		return a, fmt.Errorf("insert activity: %w", err)
	}
	return a, nil
}

// CreateActivities bulk-inserts materialized activities.
func (r *MongoRepository) CreateActivities(ctx context.Context, activities []models.PlannedActivity) error {
	if len(activities) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(activities))
	for _, a := range activities {
		a.ID = primitive.NewObjectID().Hex()
		if a.Status == "" {
			a.Status = models.StatusPending
		}
		docs = append(docs, a)
	}

	if _, err := r.activities().InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %d activities: %w", len(activities), err)
	}
	return nil
}

// UpdateActivity replaces an activity document.
func (r *MongoRepository) UpdateActivity(ctx context.Context, a models.PlannedActivity) error {
	a.UpdatedAt = time.Now().UTC()
	result, err := r.activities().ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return fmt.Errorf("update activity %s: %w", a.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("activity %s: %w", a.ID, ErrNotFound)
	}
	return nil
}

// MarkCompleted sets the completion fields in a single conditional update so
// they can only ever be written once: the filter excludes terminal statuses.
func (r *MongoRepository) MarkCompleted(ctx context.Context, id string, at time.Time, by string) (models.PlannedActivity, error) {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": bson.A{string(models.StatusPending), string(models.StatusInProgress)}},
	}
	update := bson.M{"$set": bson.M{
		"status":       string(models.StatusCompleted),
		"completed_at": at.UTC(),
		"completed_by": by,
		"updated_at":   at.UTC(),
	}}

	var a models.PlannedActivity
	err := r.activities().
		FindOneAndUpdate(ctx, filter, update, options.FindOneAndUpdate().SetReturnDocument(options.After)).
		Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return a, fmt.Errorf("complete activity %s: %w", id, ErrConflict)
	}
	if err != nil {
		return a, fmt.Errorf("complete activity %s: %w", id, err)
	}
	return a, nil
}

// AttachWorkflow links a spawned transfer workflow. The filter requires the
// link to be absent, so a concurrent double-spawn loses instead of
// overwriting.
func (r *MongoRepository) AttachWorkflow(ctx context.Context, id, workflowID string, at time.Time) (models.PlannedActivity, error) {
	filter := bson.M{
		"_id":               id,
		"transfer_workflow": bson.M{"$exists": false},
		"status":            bson.M{"$in": bson.A{string(models.StatusPending), string(models.StatusInProgress)}},
	}
	update := bson.M{"$set": bson.M{
		"transfer_workflow": workflowID,
		"updated_at":        at.UTC(),
	}}

	var a models.PlannedActivity
	err := r.activities().
		FindOneAndUpdate(ctx, filter, update, options.FindOneAndUpdate().SetReturnDocument(options.After)).
		Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return a, fmt.Errorf("attach workflow to activity %s: %w", id, ErrConflict)
	}
	if err != nil {
		return a, fmt.Errorf("attach workflow to activity %s: %w", id, err)
	}
	return a, nil
}
