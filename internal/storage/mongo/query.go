package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hotel_booking/internal/domain"
)

// BuildQuery translates a domain.Filter into the Mongo query document.
// This is the only place that knows the collection's field names and
// operator vocabulary; swapping the datastore means swapping this file.
func BuildQuery(f domain.Filter) bson.M {
	q := bson.M{}

	if f.Destination != "" {
		// QuoteMeta keeps user text a literal substring; raw input would
		// otherwise be compiled as a pattern.
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Destination), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"city": re},
			bson.M{"country": re},
		}
	}
	if f.MinAdultCount != nil {
		q["adultCount"] = bson.M{"$gte": *f.MinAdultCount}
	}
	if f.MinChildCount != nil {
		q["childCount"] = bson.M{"$gte": *f.MinChildCount}
	}
	if len(f.Facilities) > 0 {
		q["facilities"] = bson.M{"$all": f.Facilities}
	}
	if len(f.Types) > 0 {
		q["type"] = bson.M{"$in": f.Types}
	}
	if f.StarRating != nil {
		q["starRating"] = bson.M{"$eq": *f.StarRating}
	}
	if f.MaxPrice != nil {
		q["pricePerNight"] = bson.M{"$lte": *f.MaxPrice}
	}
	return q
}

// sortDoc maps a sort option onto a Mongo sort document. Default order
// imposes no sort key at all.
func sortDoc(s domain.SortOption) bson.D {
	switch s {
	case domain.SortStarRatingDesc:
		return bson.D{{Key: "starRating", Value: -1}}
	case domain.SortPriceAsc:
		return bson.D{{Key: "pricePerNight", Value: 1}}
	case domain.SortPriceDesc:
		return bson.D{{Key: "pricePerNight", Value: -1}}
	}
	return nil
}
