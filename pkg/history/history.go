// Package history records the outcome of sampling runs.
//
// Every CLI run produces one [Record]: which instance was sampled, with
// which algorithm and heuristics, how many construction runs were made and
// the best solution found. Records are kept in a [Store]:
//   - [FileStore]: one JSON file per record (CLI default)
//   - [MongoStore]: a MongoDB collection, for sharing history between
//     machines
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/permsample/pkg/buildinfo"
)

// Record describes one completed sampling run.
type Record struct {
	ID           string        `json:"id" bson:"_id"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	Instance     string        `json:"instance" bson:"instance"`
	InstanceHash string        `json:"instance_hash" bson:"instance_hash"`
	Algorithm    string        `json:"algorithm" bson:"algorithm"`
	Heuristics   []string      `json:"heuristics" bson:"heuristics"`
	Seed         uint64        `json:"seed" bson:"seed"`
	Workers      int           `json:"workers" bson:"workers"`
	Runs         int64         `json:"runs" bson:"runs"`
	Cost         float64       `json:"cost" bson:"cost"`
	Solution     []int         `json:"solution" bson:"solution"`
	Elapsed      time.Duration `json:"elapsed" bson:"elapsed"`
	Optimal      bool          `json:"optimal,omitempty" bson:"optimal,omitempty"`
	Stopped      string        `json:"stopped,omitempty" bson:"stopped,omitempty"`
	Version      string        `json:"version,omitempty" bson:"version,omitempty"`
}

// NewRecord returns a record with a fresh random ID, the current time and
// the version of the running build.
func NewRecord() *Record {
	return &Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Version:   buildinfo.Get().Short(),
	}
}

// ListOptions filters and limits List results.
type ListOptions struct {
	// InstanceHash, if set, restricts results to one instance.
	InstanceHash string

	// Limit caps the number of records. Zero means DefaultLimit.
	Limit int
}

// DefaultLimit is the number of records List returns by default.
const DefaultLimit = 20

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

// Store is the interface for history backends.
type Store interface {
	// Put stores a record, replacing any record with the same ID.
	Put(ctx context.Context, r *Record) error

	// Get returns the record with the given ID, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns records, newest first.
	List(ctx context.Context, opts ListOptions) ([]*Record, error)

	// Close releases the backend's resources.
	Close() error
}
