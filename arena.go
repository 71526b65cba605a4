package main

import "fmt"

// Tree is a static arena obstacle. Trees are render-only: the tick engine
// does not route around them, they just give the arena its look.
type Tree struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Decoration is a purely cosmetic arena prop.
type Decoration struct {
	ID   string  `json:"id"`
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

var decorationKinds = []string{"grass", "flower", "rock"}

// generateTrees scatters trees inside the arena margins using the dedicated
// subsystem RNG so arena generation is stable for a given seed.
func (w *World) generateTrees(count int) []Tree {
	if count <= 0 {
		return nil
	}
	rng := w.subsystemRNG("arena.trees")
	trees := make([]Tree, 0, count)
	for i := 0; i < count; i++ {
		radius := treeMinRadius + rng.Float64()*(treeMaxRadius-treeMinRadius)
		x := arenaSpawnMargin + rng.Float64()*(worldWidth-2*arenaSpawnMargin)
		y := arenaSpawnMargin + rng.Float64()*(worldHeight-2*arenaSpawnMargin)
		trees = append(trees, Tree{
			ID:     treeID(i),
			X:      x,
			Y:      y,
			Radius: radius,
		})
	}
	return trees
}

func (w *World) generateDecorations(count int) []Decoration {
	if count <= 0 {
		return nil
	}
	rng := w.subsystemRNG("arena.decorations")
	decorations := make([]Decoration, 0, count)
	for i := 0; i < count; i++ {
		decorations = append(decorations, Decoration{
			ID:   decorationID(i),
			Kind: decorationKinds[rng.Intn(len(decorationKinds))],
			X:    rng.Float64() * worldWidth,
			Y:    rng.Float64() * worldHeight,
		})
	}
	return decorations
}

func treeID(i int) string {
	return fmt.Sprintf("tree-%d", i)
}

func decorationID(i int) string {
	return fmt.Sprintf("decor-%d", i)
}
