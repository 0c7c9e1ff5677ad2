package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"veloura/models"
)

// objectIDVar parses a path variable as a Mongo object id.
func objectIDVar(r *http.Request, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(mux.Vars(r)[name])
}

// productsByID loads the products for a set of references, keyed by id.
// Dangling references simply have no entry in the result.
func productsByID(ctx context.Context, products *mongo.Collection, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	byID := map[primitive.ObjectID]models.Product{}
	if len(ids) == 0 {
		return byID, nil
	}

	cursor, err := products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []models.Product
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}
	for _, p := range found {
		byID[p.ID] = p
	}
	return byID, nil
}
