package groups

import (
	"context"
	"meetcue-service/internal/app/contracts"
	"meetcue-service/internal/app/models"
	"meetcue-service/internal/app/services/availability"
	"meetcue-service/internal/pkg/constvars"
	"meetcue-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type GroupMongoRepository struct {
	Collection *mongo.Collection
}

func NewGroupMongoRepository(db *mongo.Client, dbName string) contracts.GroupRepository {
	return &GroupMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionGroups),
	}
}

func (r *GroupMongoRepository) FindByID(ctx context.Context, groupID string) (*models.Group, error) {
	objectID, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var group models.Group
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	group.ID = groupID
	return &group, nil
}

func (r *GroupMongoRepository) FindByCode(ctx context.Context, code string) (*models.Group, error) {
	var raw bson.M
	err := r.Collection.FindOne(ctx, bson.M{"code": code}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return r.decodeWithID(raw)
}

func (r *GroupMongoRepository) FindByMemberUserID(ctx context.Context, userID string) ([]models.Group, error) {
	return r.findAll(ctx, bson.M{"userIDs": userID})
}

func (r *GroupMongoRepository) FindBySelection(ctx context.Context, selectionID string) ([]models.Group, error) {
	return r.findAll(ctx, bson.M{"selections": selectionID})
}

func (r *GroupMongoRepository) FindUpdatedBefore(ctx context.Context, cutoff time.Time) ([]models.Group, error) {
	return r.findAll(ctx, bson.M{"lastUpdated": bson.M{"$lt": cutoff}})
}

func (r *GroupMongoRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"code": code})
	if err != nil {
		return false, exceptions.ErrMongoDBFindDocument(err)
	}
	return count > 0, nil
}

func (r *GroupMongoRepository) Insert(ctx context.Context, group *models.Group) (string, error) {
	result, err := r.Collection.InsertOne(ctx, group)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *GroupMongoRepository) AddSelection(ctx context.Context, groupID, selectionID, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{
		"$addToSet": bson.M{
			"selections": selectionID,
			"userIDs":    userID,
		},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *GroupMongoRepository) RemoveSelection(ctx context.Context, groupID, selectionID, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{
		"$pull": bson.M{
			"selections": selectionID,
			"userIDs":    userID,
		},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *GroupMongoRepository) UpdateSelections(ctx context.Context, groupID string, selections, userIDs []string) error {
	objectID, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{
		"$set": bson.M{
			"selections": selections,
			"userIDs":    userIDs,
		},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *GroupMongoRepository) UpdateCompaction(ctx context.Context, groupID string, compacted map[string]availability.Grid, lastUpdated time.Time) error {
	objectID, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{
		"$set": bson.M{
			"compactedAvailability": compacted,
			"lastUpdated":           lastUpdated,
		},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *GroupMongoRepository) Delete(ctx context.Context, groupID string) error {
	objectID, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (r *GroupMongoRepository) findAll(ctx context.Context, filter bson.M) ([]models.Group, error) {
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		group, err := r.decodeWithID(raw)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	return groups, nil
}

// decodeWithID re-decodes a raw document into the model and lifts the
// ObjectID into the string ID field.
func (r *GroupMongoRepository) decodeWithID(raw bson.M) (*models.Group, error) {
	bytes, err := bson.Marshal(raw)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	var group models.Group
	if err := bson.Unmarshal(bytes, &group); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	if objectID, ok := raw["_id"].(primitive.ObjectID); ok {
		group.ID = objectID.Hex()
	}
	return &group, nil
}
