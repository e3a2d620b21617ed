// internal/repository/mongo/schedule_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"workout-scheduler/internal/domain"
	"workout-scheduler/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const scheduleCollectionName = "workout_schedules"

// mongoScheduleRepository implements repository.ScheduleRepository. The
// one-per-day invariant is backed by the unique (userId, scheduledDay)
// index, so Create stays an atomic check-then-insert on the database side.
type mongoScheduleRepository struct {
	collection *mongo.Collection
}

// NewMongoScheduleRepository creates a new schedule repository.
func NewMongoScheduleRepository(db *mongo.Database) repository.ScheduleRepository {
	return &mongoScheduleRepository{
		collection: db.Collection(scheduleCollectionName),
	}
}

// Create inserts a new schedule. A duplicate key error on the
// (userId, scheduledDay) index maps to ErrDuplicate.
func (r *mongoScheduleRepository) Create(ctx context.Context, schedule *domain.WorkoutSchedule) error {
	if schedule.ID == "" || schedule.UserID == "" {
		return errors.New("schedule requires id and userId")
	}
	stored := *schedule
	stored.ScheduledDay = domain.TruncateToDay(schedule.ScheduledDay)

	_, err := r.collection.InsertOne(ctx, stored)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *mongoScheduleRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*domain.WorkoutSchedule, error) {
	var schedule domain.WorkoutSchedule
	filter := bson.M{"_id": id, "userId": userID}
	err := r.collection.FindOne(ctx, filter).Decode(&schedule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *mongoScheduleRepository) GetByUser(ctx context.Context, userID string) ([]domain.WorkoutSchedule, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

// GetByUserAndDayRange returns the user's schedules with scheduledDay in
// [start, end] inclusive, sorted by day.
func (r *mongoScheduleRepository) GetByUserAndDayRange(ctx context.Context, userID string, start, end time.Time) ([]domain.WorkoutSchedule, error) {
	filter := bson.M{
		"userId": userID,
		"scheduledDay": bson.M{
			"$gte": domain.TruncateToDay(start),
			"$lte": domain.TruncateToDay(end),
		},
	}
	return r.find(ctx, filter)
}

func (r *mongoScheduleRepository) find(ctx context.Context, filter bson.M) ([]domain.WorkoutSchedule, error) {
	var schedules []domain.WorkoutSchedule
	findOptions := options.Find().SetSort(bson.D{{Key: "scheduledDay", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// Update overwrites workoutId and scheduledTime. The scheduled day is
// deliberately not part of the update document.
func (r *mongoScheduleRepository) Update(ctx context.Context, schedule *domain.WorkoutSchedule) error {
	if schedule.ID == "" || schedule.UserID == "" {
		return errors.New("schedule id and userId are required for update")
	}

	filter := bson.M{"_id": schedule.ID, "userId": schedule.UserID}
	updateDoc := bson.M{
		"$set": bson.M{
			"workoutId":     schedule.WorkoutID,
			"scheduledTime": schedule.ScheduledTime,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoScheduleRepository) Delete(ctx context.Context, id, userID string) error {
	// Filter ensures the schedule exists AND belongs to the caller.
	filter := bson.M{"_id": id, "userId": userID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureScheduleIndexes creates necessary indexes. Call during startup.
// The unique compound index carries the one-schedule-per-day rule.
func EnsureScheduleIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "scheduledDay", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
