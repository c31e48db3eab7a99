package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hotel_booking/internal/domain"
)

type Repo struct{ hotels *mongo.Collection }

func New(db *mongo.Database) *Repo { return &Repo{hotels: db.Collection("hotels")} }

// Search runs the filtered page fetch and the filtered count as two
// independent reads. They are not transactionally consistent; pagination
// may drift slightly under concurrent writes, which callers tolerate.
func (r *Repo) Search(ctx context.Context, f domain.Filter, sort domain.SortOption, pg domain.PageQuery) (domain.HotelsPage, error) {
	query := BuildQuery(f)

	opts := options.Find().SetSkip(pg.Skip()).SetLimit(int64(pg.Size))
	if sd := sortDoc(sort); sd != nil {
		opts.SetSort(sd)
	}

	cur, err := r.hotels.Find(ctx, query, opts)
	if err != nil {
		return domain.HotelsPage{}, fmt.Errorf("find hotels: %w", err)
	}
	var items []domain.Hotel
	if err := cur.All(ctx, &items); err != nil {
		return domain.HotelsPage{}, fmt.Errorf("decode hotels: %w", err)
	}

	total, err := r.hotels.CountDocuments(ctx, query)
	if err != nil {
		return domain.HotelsPage{}, fmt.Errorf("count hotels: %w", err)
	}

	return domain.HotelsPage{
		Items: items,
		Total: total,
		Page:  pg.Page,
		Pages: domain.PageCount(total, pg.Size),
	}, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Hotel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lastUpdated", Value: -1}})
	cur, err := r.hotels.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	var out []domain.Hotel
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode hotels: %w", err)
	}
	return out, nil
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Hotel{}, domain.ErrNotFound
	}
	var h domain.Hotel
	if err := r.hotels.FindOne(ctx, bson.M{"_id": oid}).Decode(&h); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, fmt.Errorf("get hotel: %w", err)
	}
	return h, nil
}

// AppendBooking pushes one booking onto the hotel document. The push is
// a single-document update; Mongo serializes it, so no extra locking.
func (r *Repo) AppendBooking(ctx context.Context, hotelID string, b domain.Booking) error {
	oid, err := primitive.ObjectIDFromHex(hotelID)
	if err != nil {
		return domain.ErrNotFound
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	res, err := r.hotels.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"bookings": b}},
	)
	if err != nil {
		return fmt.Errorf("append booking: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	if h.ID.IsZero() {
		h.ID = primitive.NewObjectID()
	}
	_, err := r.hotels.ReplaceOne(ctx,
		bson.M{"_id": h.ID},
		h,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert hotel: %w", err)
	}
	return nil
}
