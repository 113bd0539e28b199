package articleRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"unityconsult/database"
	"unityconsult/models"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	ListAll(ctx context.Context) ([]models.Article, error)
	ListByCounselor(ctx context.Context, counselorID string) ([]models.Article, error)
}

type mongoArticleRepo struct {
	coll *mongo.Collection
}

// NewMongoArticleRepo constructs a new MongoDB ArticleRepository.
func NewMongoArticleRepo() ArticleRepository {
	return &mongoArticleRepo{coll: database.DB().Collection("articles")}
}
