package limiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const limiterCollection = "issuance_limiter"

// Mongo is a MongoDB-backed limiter with a sliding window and lockout.
type Mongo struct {
	c           querier
	window      time.Duration
	maxAttempts int
	blockFor    time.Duration
	now         func() time.Time
}

// querier is the slice of *mongo.Collection the limiter needs.
type querier interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter any, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
}

// NewMongo constructs a MongoDB-backed limiter.
func NewMongo(db *mongo.Database, window time.Duration, maxAttempts int, blockFor time.Duration) *Mongo {
	return NewMongoWithQuerier(db.Collection(limiterCollection), window, maxAttempts, blockFor)
}

// NewMongoWithQuerier constructs a MongoDB-backed limiter over a custom querier.
func NewMongoWithQuerier(q querier, window time.Duration, maxAttempts int, blockFor time.Duration) *Mongo {
	return &Mongo{c: q, window: window, maxAttempts: maxAttempts, blockFor: blockFor, now: time.Now}
}

type limiterDoc struct {
	Email        string    `bson:"email"`
	IPHash       []byte    `bson:"ip_hash"`
	Attempts     int       `bson:"attempts"`
	WindowStart  time.Time `bson:"window_start"`
	BlockedUntil time.Time `bson:"blocked_until"`
}

// step advances the counter state for one attempt at the given instant.
// It reports whether the attempt may proceed and whether the state changed
// and needs persisting (an attempt inside an active block changes nothing).
func step(d limiterDoc, now time.Time, window, blockFor time.Duration, maxAttempts int) (next limiterDoc, allowed bool, retryAfter time.Duration, dirty bool) {
	if d.BlockedUntil.After(now) {
		return d, false, d.BlockedUntil.Sub(now), false
	}
	if now.Sub(d.WindowStart) > window {
		d.WindowStart = now
		d.Attempts = 0
	}
	d.Attempts++
	if d.Attempts > maxAttempts {
		d.BlockedUntil = now.Add(blockFor)
		return d, false, blockFor, true
	}
	return d, true, 0, true
}

// Allow records an issuance attempt for (email, ipHash) and reports whether
// it may proceed. The read-modify-write is not atomic; concurrent attempts
// may briefly overshoot the window, which is acceptable for throttling.
func (l *Mongo) Allow(ctx context.Context, email string, ipHash []byte) (bool, time.Duration, error) {
	filter := bson.M{"email": email, "ip_hash": ipHash}

	var d limiterDoc
	err := l.c.FindOne(ctx, filter).Decode(&d)
	switch {
	case err == nil:
	case errors.Is(err, mongo.ErrNoDocuments):
		d = limiterDoc{Email: email, IPHash: ipHash}
	default:
		return false, 0, fmt.Errorf("limiter lookup: %w", err)
	}

	next, allowed, retryAfter, dirty := step(d, l.now(), l.window, l.blockFor, l.maxAttempts)
	if !dirty {
		return allowed, retryAfter, nil
	}

	update := bson.M{"$set": bson.M{
		"attempts":      next.Attempts,
		"window_start":  next.WindowStart,
		"blocked_until": next.BlockedUntil,
	}}
	if _, err := l.c.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true)); err != nil {
		return false, 0, fmt.Errorf("limiter update: %w", err)
	}
	return allowed, retryAfter, nil
}
