package engine

import "github.com/keydrill/keydrill/internal/model"

// FilterPool derives the active pool from the catalog. Beginner keeps only
// Beginner items, Intermediate adds Intermediate items, Advanced keeps
// everything, and Custom keeps items whose type toggle is enabled. An empty
// result falls back to the full catalog so training never runs dry.
func FilterPool(catalog []model.TrainingItem, settings model.Settings) []model.TrainingItem {
	pool := make([]model.TrainingItem, 0, len(catalog))
	for _, item := range catalog {
		include := false
		switch settings.Difficulty {
		case model.Beginner:
			include = item.MinDifficulty == model.Beginner
		case model.Intermediate:
			include = item.MinDifficulty == model.Beginner || item.MinDifficulty == model.Intermediate
		case model.Advanced:
			include = true
		case model.Custom:
			include = settings.TypeEnabled(item.Type)
		}
		if include {
			pool = append(pool, item)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, catalog...)
	}
	return pool
}
