package articleRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"unityconsult/models"
)

const opTimeout = 5 * time.Second

func (r *mongoArticleRepo) Create(ctx context.Context, article *models.Article) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	_, err := r.coll.InsertOne(ctx, article)
	return err
}

func (r *mongoArticleRepo) ListAll(ctx context.Context) ([]models.Article, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoArticleRepo) ListByCounselor(ctx context.Context, counselorID string) ([]models.Article, error) {
	return r.find(ctx, bson.M{"counselorId": counselorID})
}

func (r *mongoArticleRepo) find(ctx context.Context, filter bson.M) ([]models.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var articles []models.Article
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}
