package builder

import (
	"fmt"
	"strings"

	"partforge/domain/entity"
	"partforge/domain/feature"
	pkgerrors "partforge/pkg/errors"
)

// renderQuery turns a query expression into the script form the remote
// evaluator parses. The switch is exhaustive over the closed expression
// set; an unknown node is a programming error.
func (b *Builder) renderQuery(expr entity.QueryExpression) (string, error) {
	switch q := expr.(type) {
	case entity.SketchRegion:
		if q.FeatureID == "" {
			return "", pkgerrors.NewParameterError("query references a sketch that has not been submitted")
		}
		return fmt.Sprintf("qSketchRegion(makeId(%q), false)", q.FeatureID), nil

	case entity.CreatedBy:
		if q.FeatureID == "" {
			return "", pkgerrors.NewParameterError("query references a feature that has not been submitted")
		}
		return fmt.Sprintf("qCreatedBy(makeId(%q), EntityType.%s)", q.FeatureID, q.Kind), nil

	case entity.OwnedBy:
		return fmt.Sprintf("qOwnedByBody(qTransient(%q), EntityType.%s)", q.PartID, q.Kind), nil

	case entity.Transient:
		if len(q.IDs) == 0 {
			return "", pkgerrors.NewParameterError("transient query with no ids")
		}
		if len(q.IDs) == 1 {
			return fmt.Sprintf("qTransient(%q)", q.IDs[0]), nil
		}
		parts := make([]string, len(q.IDs))
		for i, id := range q.IDs {
			parts[i] = fmt.Sprintf("qTransient(%q)", id)
		}
		return fmt.Sprintf("qUnion([%s])", strings.Join(parts, ", ")), nil

	case entity.Intersects:
		inner, err := b.renderQuery(q.Inner)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("qIntersectsLine(%s, line(%s, %s))",
			inner, b.vectorMeters(q.Origin), vectorRaw(q.Direction)), nil

	case entity.Largest:
		return b.renderUnary("qLargest", q.Inner)

	case entity.Smallest:
		return b.renderUnary("qSmallest", q.Inner)

	case entity.ClosestTo:
		inner, err := b.renderQuery(q.Inner)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("qClosestTo(%s, %s)", inner, b.vectorMeters(q.Point)), nil

	case entity.ContainsPoint:
		inner, err := b.renderQuery(q.Inner)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("qContainsPoint(%s, %s)", inner, b.vectorMeters(q.Point)), nil

	case entity.OfKind:
		inner, err := b.renderQuery(q.Inner)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("qEntityFilter(%s, EntityType.%s)", inner, q.Kind), nil

	case entity.UnionOf:
		parts := make([]string, len(q.Operands))
		for i, op := range q.Operands {
			s, err := b.renderQuery(op)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return fmt.Sprintf("qUnion([%s])", strings.Join(parts, ", ")), nil

	default:
		return "", pkgerrors.NewInternalError(fmt.Sprintf("unknown query node %T", expr))
	}
}

func (b *Builder) renderUnary(fn string, inner entity.QueryExpression) (string, error) {
	s, err := b.renderQuery(inner)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", fn, s), nil
}

// vectorMeters renders a point in user units as a meter-valued vector.
func (b *Builder) vectorMeters(p entity.Point3) string {
	f := b.units.Factor()
	return fmt.Sprintf("vector([%s, %s, %s]) * meter", num(p.X*f), num(p.Y*f), num(p.Z*f))
}

// vectorRaw renders a unitless direction vector.
func vectorRaw(p entity.Point3) string {
	return fmt.Sprintf("vector([%s, %s, %s])", num(p.X), num(p.Y), num(p.Z))
}

func num(v float64) string {
	return fmt.Sprintf("%g", v)
}

// PlaneLookupScript returns the query selecting a default plane's face.
func PlaneLookupScript(o feature.Orientation) string {
	return fmt.Sprintf("qCreatedBy(makeId(%q), EntityType.FACE)", string(o))
}
