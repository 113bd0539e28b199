package reviewRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"unityconsult/models"
)

// Averages computes the mean rating and review count per counselor.
func (r *mongoReviewRepo) Averages(ctx context.Context) ([]models.ReviewAverage, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":           "$counselorId",
			"averageRating": bson.M{"$avg": "$rating"},
			"reviewCount":   bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"averageRating": -1}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var averages []models.ReviewAverage
	if err := cursor.All(ctx, &averages); err != nil {
		return nil, err
	}
	return averages, nil
}
