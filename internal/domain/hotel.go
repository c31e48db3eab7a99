package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Hotel struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID        string             `bson:"userId" json:"userId"`
	Name          string             `bson:"name" json:"name"`
	City          string             `bson:"city" json:"city"`
	Country       string             `bson:"country" json:"country"`
	Description   string             `bson:"description" json:"description"`
	Type          string             `bson:"type" json:"type"`
	AdultCount    int                `bson:"adultCount" json:"adultCount"`
	ChildCount    int                `bson:"childCount" json:"childCount"`
	Facilities    []string           `bson:"facilities" json:"facilities"`
	PricePerNight int                `bson:"pricePerNight" json:"pricePerNight"`
	StarRating    int                `bson:"starRating" json:"starRating"`
	ImageURLs     []string           `bson:"imageUrls" json:"imageUrls"`
	LastUpdated   time.Time          `bson:"lastUpdated" json:"lastUpdated"`
	Bookings      []Booking          `bson:"bookings" json:"bookings"`
}

type Booking struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID     string             `bson:"userId" json:"userId"`
	FirstName  string             `bson:"firstName" json:"firstName"`
	LastName   string             `bson:"lastName" json:"lastName"`
	Email      string             `bson:"email" json:"email"`
	AdultCount int                `bson:"adultCount" json:"adultCount"`
	ChildCount int                `bson:"childCount" json:"childCount"`
	CheckIn    time.Time          `bson:"checkIn" json:"checkIn"`
	CheckOut   time.Time          `bson:"checkOut" json:"checkOut"`
	TotalCost  int                `bson:"totalCost" json:"totalCost"`
}
