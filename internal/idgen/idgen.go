// Package idgen wraps bson's ObjectID generator with logging: a thin
// driver-facing layer over the otherwise pure bson.Generator, the way
// kolide-launcher wraps low-level capabilities with a logged facade
// before handing them to cmd/launcher.
package idgen

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/alex-klepa/mongo-ruby-driver-go/bson"
)

// Generator logs a warning on every failed ID generation (hostname
// lookup failure, the one error bson.Generator.New can return) instead
// of silently propagating it, then returns the wrapped error to the
// caller regardless.
type Generator struct {
	inner  *bson.Generator
	logger log.Logger
}

// New builds a Generator backed by the stdlib-default bson.Generator.
func New(logger log.Logger) *Generator {
	return &Generator{inner: bson.NewGenerator(), logger: logger}
}

// NewID produces one ObjectID, tagging the log line with a correlation
// id so repeated failures from the same call site can be grouped.
func (g *Generator) NewID() (bson.ObjectID, error) {
	id, err := g.inner.New()
	if err != nil {
		level.Warn(g.logger).Log(
			"msg", "object id generation failed",
			"correlation_id", uuid.New().String(),
			"err", err,
		)
		return id, errors.Wrap(err, "generating object id")
	}
	return id, nil
}

// NewIDs produces n consecutive ObjectIDs, returning early on the first
// error.
func (g *Generator) NewIDs(n int) ([]bson.ObjectID, error) {
	ids := make([]bson.ObjectID, 0, n)
	for i := 0; i < n; i++ {
		id, err := g.NewID()
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
