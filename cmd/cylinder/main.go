// Command cylinder sketches a circle on the top plane and extrudes it
// into a cylindrical part.
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"partforge/application/builder"
	"partforge/application/partstudio"
	"partforge/domain/feature"
	"partforge/domain/geometry"
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

	sk := studio.NewSketch(top, "base sketch")
	if _, err := sk.AddCircle(geometry.Pt(0, 0), 0.5); err != nil {
		logger.Fatal("drawing profile", zap.Error(err))
	}
	if err := studio.AddSketch(ctx, sk); err != nil {
		logger.Fatal("submitting sketch", zap.Error(err))
	}

	part, err := studio.AddExtrude(ctx, feature.NewExtrude(sk, 1).Named("cylinder"))
	if err != nil {
		logger.Fatal("extruding", zap.Error(err))
	}

	logger.Info("created cylinder",
		zap.String("partId", part.PartID),
		zap.String("name", part.PartName))
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
