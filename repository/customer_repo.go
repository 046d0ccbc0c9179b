package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/utils"
)

type mongoCustomerRepository struct {
	coll *mongo.Collection
}

// NewCustomerRepository 客户仓储
func NewCustomerRepository(db *mongo.Database) CustomerRepository {
	return &mongoCustomerRepository{coll: db.Collection(CustomersCollection)}
}

func (r *mongoCustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	customers := []models.Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *mongoCustomerRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&customer); err != nil {
		return nil, mapError(err)
	}
	return &customer, nil
}

func (r *mongoCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	utils.LogDbOperation("insertOne", CustomersCollection, bson.M{"name": customer.Name})
	_, err := r.coll.InsertOne(ctx, customer)
	return mapError(err)
}

func (r *mongoCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": customer.ID}, bson.M{"$set": bson.M{
		"name":      customer.Name,
		"sector":    customer.Sector,
		"updatedAt": customer.UpdatedAt,
	}})
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCustomerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Names 批量查询客户名称，用于项目列表
func (r *mongoCustomerRepository) Names(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

type mongoCustomerPICRepository struct {
	coll *mongo.Collection
}

// NewCustomerPICRepository 客户联系人仓储
func NewCustomerPICRepository(db *mongo.Database) CustomerPICRepository {
	return &mongoCustomerPICRepository{coll: db.Collection(CustomerPICsCollection)}
}

func (r *mongoCustomerPICRepository) ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.CustomerPIC, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"customerId": customerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	pics := []models.CustomerPIC{}
	if err := cursor.All(ctx, &pics); err != nil {
		return nil, err
	}
	return pics, nil
}

func (r *mongoCustomerPICRepository) Create(ctx context.Context, pic *models.CustomerPIC) error {
	if pic.ID.IsZero() {
		pic.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, pic)
	return mapError(err)
}

func (r *mongoCustomerPICRepository) Update(ctx context.Context, pic *models.CustomerPIC) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": pic.ID, "customerId": pic.CustomerID},
		bson.M{"$set": bson.M{
			"namaPic": pic.NamaPIC,
			"email":   pic.Email,
			"noHp":    pic.NoHP,
			"jabatan": pic.Jabatan,
		}},
	)
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCustomerPICRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return mapError(err)
}

func (r *mongoCustomerPICRepository) DeleteByCustomer(ctx context.Context, customerID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"customerId": customerID})
	return mapError(err)
}
