package sketch

import (
	"fmt"

	"partforge/domain/geometry"
	pkgerrors "partforge/pkg/errors"
)

// The transform engine. Every operation follows the same shape: validate
// inputs, compute the new geometry locally, construct or mutate items,
// then record provenance. Transforms with copy=true append fresh items to
// the sketch and leave the originals untouched; copy=false mutates the
// items in place, keeping their identity.

func (s *Sketch) applyTransform(op string, items []Item, copy bool, apply func(Item)) ([]Item, error) {
	if len(items) == 0 {
		return nil, pkgerrors.NewParameterError(op + " requires at least one item")
	}

	var out []Item
	for _, item := range items {
		target := item
		if copy {
			target = item.Clone()
		}
		apply(target)
		if err := target.Validate(); err != nil {
			return nil, pkgerrors.Wrapf(err, "%s produced degenerate geometry", op)
		}
		if copy {
			if err := s.add(target); err != nil {
				return nil, err
			}
		} else {
			s.derived = nil
		}
		s.journal = append(s.journal, TransformRecord{
			Op:       op,
			SourceID: item.TransientID(),
			ResultID: target.TransientID(),
			Copied:   copy,
		})
		out = append(out, target)
	}
	return out, nil
}

// Translate moves items by (dx, dy). With copy=true the translated items
// are fresh copies appended to the sketch; otherwise the items are moved
// in place.
func (s *Sketch) Translate(items []Item, dx, dy float64, copy bool) ([]Item, error) {
	return s.applyTransform("translate", items, copy, func(i Item) {
		i.translate(dx, dy)
	})
}

// Rotate rotates items about origin by theta degrees,
// counterclockwise-positive.
func (s *Sketch) Rotate(items []Item, origin geometry.Point2, theta float64, copy bool) ([]Item, error) {
	return s.applyTransform("rotate", items, copy, func(i Item) {
		i.rotate(origin, theta)
	})
}

// Mirror reflects items across the line through linePoint with direction
// lineDir.
func (s *Sketch) Mirror(items []Item, linePoint geometry.Point2, lineDir geometry.Vector2, copy bool) ([]Item, error) {
	if lineDir.Hypot() < geometry.Epsilon {
		return nil, pkgerrors.NewZeroVectorError()
	}
	return s.applyTransform("mirror", items, copy, func(i Item) {
		i.mirror(linePoint, lineDir)
	})
}

// LinearPattern repeats items numSteps times at offsets (i*dx, i*dy) for
// i in 1..numSteps. The originals do not count as a step but are included
// in the returned collection, followed by every step's copies in step
// order.
func (s *Sketch) LinearPattern(items []Item, numSteps int, dx, dy float64) ([]Item, error) {
	if numSteps < 1 {
		return nil, pkgerrors.NewParameterError(fmt.Sprintf("linear pattern needs at least 1 step, got %d", numSteps))
	}
	out := append([]Item(nil), items...)
	for i := 1; i <= numSteps; i++ {
		copies, err := s.Translate(items, float64(i)*dx, float64(i)*dy, true)
		if err != nil {
			return nil, err
		}
		out = append(out, copies...)
	}
	return out, nil
}

// CircularPattern repeats items numSteps times, rotated about origin by
// i*theta degrees for i in 1..numSteps. Returns the originals plus every
// step's copies, in step order.
func (s *Sketch) CircularPattern(items []Item, origin geometry.Point2, numSteps int, theta float64) ([]Item, error) {
	if numSteps < 1 {
		return nil, pkgerrors.NewParameterError(fmt.Sprintf("circular pattern needs at least 1 step, got %d", numSteps))
	}
	out := append([]Item(nil), items...)
	for i := 1; i <= numSteps; i++ {
		copies, err := s.Rotate(items, origin, float64(i)*theta, true)
		if err != nil {
			return nil, err
		}
		out = append(out, copies...)
	}
	return out, nil
}
