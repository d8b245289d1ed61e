package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
)

// BuildFilter builds a BSON filter from key-value pairs
func BuildFilter(pairs ...interface{}) bson.M {
	filter := bson.M{}
	for i := 0; i < len(pairs)-1; i += 2 {
		if key, ok := pairs[i].(string); ok {
			filter[key] = pairs[i+1]
		}
	}
	return filter
}

// SortDescending creates a descending sort option
func SortDescending(field string) bson.D {
	return bson.D{{Key: field, Value: -1}}
}
