package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/productreport/internal/domain/models"
)

// ArchivedReport is the document stored for every generated report.
type ArchivedReport struct {
	ID          string    `bson:"_id" json:"id"`
	Category    string    `bson:"category" json:"category"`
	StartDate   string    `bson:"start_date" json:"start_date"`
	EndDate     string    `bson:"end_date" json:"end_date"`
	Description string    `bson:"description" json:"description"`
	RowCount    int       `bson:"row_count" json:"row_count"`
	Aggregate   string    `bson:"aggregate,omitempty" json:"aggregate,omitempty"`
	Text        string    `bson:"text" json:"text"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// NewArchivedReport maps a report and its rendered text onto the archive document.
func NewArchivedReport(report models.Report, text string, now time.Time) ArchivedReport {
	doc := ArchivedReport{
		ID:          report.ID.String(),
		Category:    string(report.Category),
		StartDate:   report.Range.Start.Format(models.DateLayout),
		EndDate:     report.Range.End.Format(models.DateLayout),
		Description: report.Description,
		RowCount:    len(report.Rows),
		Text:        text,
		CreatedAt:   now.UTC(),
	}
	if report.Aggregate != nil {
		doc.Aggregate = report.Aggregate.Value()
	}
	return doc
}

// MongoDBRepository archives generated reports in MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
	now      func() time.Time
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "report_archive",
		now:      time.Now,
	}, nil
}

// SaveReport inserts an archived report document.
func (r *MongoDBRepository) SaveReport(ctx context.Context, report ArchivedReport) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	_, err := collection.InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to insert archived report: %w", err)
	}
	return nil
}

// Name identifies the mirror in logs.
func (r *MongoDBRepository) Name() string {
	return "mongodb"
}

// Mirror archives a generated report.
func (r *MongoDBRepository) Mirror(ctx context.Context, report models.Report, text string) error {
	return r.SaveReport(ctx, NewArchivedReport(report, text, r.now()))
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
