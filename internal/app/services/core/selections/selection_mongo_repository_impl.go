package selections

import (
	"context"
	"meetcue-service/internal/app/contracts"
	"meetcue-service/internal/app/models"
	"meetcue-service/internal/pkg/constvars"
	"meetcue-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SelectionMongoRepository struct {
	Collection *mongo.Collection
}

func NewSelectionMongoRepository(db *mongo.Client, dbName string) contracts.SelectionRepository {
	return &SelectionMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSelections),
	}
}

// FindByID decodes into a raw document because week grids live in dynamic
// top-level date fields. The legacy return is non-nil when the document still
// carries the trimmed hour-window schema.
func (r *SelectionMongoRepository) FindByID(ctx context.Context, selectionID string) (*models.Selection, *models.LegacySelection, error) {
	objectID, err := primitive.ObjectIDFromHex(selectionID)
	if err != nil {
		return nil, nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var doc bson.M
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, nil
		}
		return nil, nil, exceptions.ErrMongoDBFindDocument(err)
	}

	selection, legacy, err := models.SelectionFromBson(selectionID, doc)
	if err != nil {
		return nil, nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return selection, legacy, nil
}

func (r *SelectionMongoRepository) FindByUserID(ctx context.Context, userID string) ([]models.Selection, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"userID": userID})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var selections []models.Selection
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}

		id := ""
		if objectID, ok := doc["_id"].(primitive.ObjectID); ok {
			id = objectID.Hex()
		}
		selection, legacy, err := models.SelectionFromBson(id, doc)
		if err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		if legacy != nil {
			selection = legacy.Migrate()
		}
		selections = append(selections, *selection)
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	return selections, nil
}

func (r *SelectionMongoRepository) Insert(ctx context.Context, selection *models.Selection) (string, error) {
	result, err := r.Collection.InsertOne(ctx, selection.ToBson())
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Replace writes the whole document. Legacy hour-window fields are absent
// from ToBson output, so replacing a migrated selection strips them.
func (r *SelectionMongoRepository) Replace(ctx context.Context, selection *models.Selection) error {
	objectID, err := primitive.ObjectIDFromHex(selection.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	_, err = r.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, selection.ToBson())
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *SelectionMongoRepository) Delete(ctx context.Context, selectionID string) error {
	objectID, err := primitive.ObjectIDFromHex(selectionID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
