// Package model defines domain entities used by services and repositories.
package model

import "go.mongodb.org/mongo-driver/v2/bson"

// Document is a schemaless record stored and returned verbatim.
// Both users and todos carry arbitrary caller-supplied fields, so the
// canonical representation is the raw document rather than a fixed struct.
type Document = bson.M

// Email returns the owner email of a document, or "" when absent.
func Email(d Document) string {
	e, _ := d["email"].(string)
	return e
}

// InsertResult reports a successful insertion.
type InsertResult struct {
	InsertedID any `json:"insertedId"`
}

// RegisterResult reports the outcome of idempotent user registration.
// A duplicate registration is not an error: InsertedID stays null and
// Message explains why.
type RegisterResult struct {
	Message    string `json:"message,omitempty"`
	InsertedID any    `json:"insertedId"`
}

// UpdateResult mirrors the store's update acknowledgement.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult mirrors the store's delete acknowledgement. A zero count
// means the id matched nothing; that is not an error.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
