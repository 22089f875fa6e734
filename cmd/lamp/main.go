// Command lamp builds a small desk lamp: a filleted base plate, a rod
// merged into it, and a lofted shade floating above on an offset plane.
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"partforge/application/builder"
	"partforge/application/partstudio"
	"partforge/domain/feature"
	"partforge/domain/geometry"
	"partforge/domain/sketch"
	"partforge/infrastructure/config"
	"partforge/infrastructure/onshape"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	creds, err := config.LoadCredentials()
	if err != nil {
		log.Fatalf("loading credentials: %v", err)
	}
	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer logger.Sync()

	client := onshape.NewClient(cfg, creds, logger)
	studio := partstudio.New(client, builder.New(builder.UnitSystem(cfg.UnitSystem), logger), logger)
	ctx := context.Background()

	top, err := studio.TopPlane(ctx)
	if err != nil {
		logger.Fatal("resolving top plane", zap.Error(err))
	}

	base, err := buildBase(ctx, studio, top)
	if err != nil {
		logger.Fatal("building base", zap.Error(err))
	}

	if err := buildRod(ctx, studio, top, base); err != nil {
		logger.Fatal("building rod", zap.Error(err))
	}

	shade, err := buildShade(ctx, studio, top)
	if err != nil {
		logger.Fatal("building shade", zap.Error(err))
	}

	logger.Info("lamp complete",
		zap.String("baseId", base.PartID),
		zap.String("shadeId", shade.PartID),
		zap.Int("features", studio.Features().Len()))
}

// buildBase extrudes a rounded 4x4 plate.
func buildBase(ctx context.Context, studio *partstudio.PartStudio, top feature.PlaneRef) (*feature.Part, error) {
	sk := studio.NewSketch(top, "base profile")
	lines, err := sk.AddCornerRectangle(geometry.Pt(-2, -2), geometry.Pt(2, 2))
	if err != nil {
		return nil, err
	}
	for i := range lines {
		next := lines[(i+1)%len(lines)]
		if _, err := sk.AddFillet(lines[i], next, 0.5); err != nil {
			return nil, err
		}
	}
	if err := studio.AddSketch(ctx, sk); err != nil {
		return nil, err
	}
	return studio.AddExtrude(ctx, feature.NewExtrude(sk, 0.5).Named("base"))
}

// buildRod merges a thin vertical cylinder into the base.
func buildRod(ctx context.Context, studio *partstudio.PartStudio, top feature.PlaneRef, base *feature.Part) error {
	sk := studio.NewSketch(top, "rod profile")
	if _, err := sk.AddCircle(geometry.Pt(0, 0), 0.25); err != nil {
		return err
	}
	if err := studio.AddSketch(ctx, sk); err != nil {
		return err
	}
	_, err := studio.AddExtrude(ctx, feature.NewExtrude(sk, 10).Named("rod").Merging(base))
	return err
}

// buildShade lofts between a wide circle and a narrow one an inch
// higher, sitting on offset planes near the top of the rod.
func buildShade(ctx context.Context, studio *partstudio.PartStudio, top feature.PlaneRef) (*feature.Part, error) {
	lower := feature.NewOffsetPlane(top, 7.5).Named("shade bottom")
	if err := studio.AddOffsetPlane(ctx, lower); err != nil {
		return nil, err
	}
	upper := feature.NewOffsetPlane(top, 10).Named("shade top")
	if err := studio.AddOffsetPlane(ctx, upper); err != nil {
		return nil, err
	}

	wide, err := circleSketch(ctx, studio, lower, "shade bottom profile", 2)
	if err != nil {
		return nil, err
	}
	narrow, err := circleSketch(ctx, studio, upper, "shade top profile", 1.25)
	if err != nil {
		return nil, err
	}

	return studio.AddLoft(ctx, feature.NewLoft(wide, narrow).Named("shade"))
}

func circleSketch(ctx context.Context, studio *partstudio.PartStudio, plane feature.PlaneRef, name string, radius float64) (*sketch.Sketch, error) {
	sk := studio.NewSketch(plane, name)
	if _, err := sk.AddCircle(geometry.Pt(0, 0), radius); err != nil {
		return nil, err
	}
	if err := studio.AddSketch(ctx, sk); err != nil {
		return nil, err
	}
	return sk, nil
}

func buildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl
	return cfg.Build()
}
