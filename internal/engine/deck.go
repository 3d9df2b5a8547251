package engine

import "github.com/JosephWong123/ExplodingPetrs/internal/models"

// Card names used by the default deck.
const (
	CardBomb    = "Bomb"
	CardDefuse  = "Defuse"
	CardAttack  = "Attack"
	CardSkip    = "Skip"
	CardFavor   = "Favor"
	CardShuffle = "Shuffle"
	CardFuture  = "See the Future"
)

// catNames are the five stealing-combo varieties. Pairs steal blind,
// triples steal by name, all five distinct reclaim from the history.
var catNames = []string{"Taco Cat", "Rainbow Cat", "Potato Cat", "Beard Cat", "Cattermelon"}

// baseCounts is the draw pool for up to five players; it is doubled for
// larger rooms. Bombs and defuses are handled separately by deal.
var baseCounts = map[string]int{
	CardAttack:  4,
	CardSkip:    4,
	CardFavor:   4,
	CardShuffle: 4,
	CardFuture:  5,
}

const (
	startingHand = 7 // dealt per player, on top of one guaranteed defuse
	spareDefuses = 2
)

func isCat(name string) bool {
	for _, c := range catNames {
		if c == name {
			return true
		}
	}
	return false
}

func kindOf(name string) string {
	switch {
	case name == CardBomb:
		return models.KindBomb
	case isCat(name):
		return models.KindCat
	default:
		return models.KindAction
	}
}

// buildPool assembles the shuffle-ready pool of non-bomb, non-defuse
// cards for the given player count.
func buildPool(players int) []models.Card {
	mult := 1
	if players > 5 {
		mult = 2
	}
	var pool []models.Card
	for name, n := range baseCounts {
		for i := 0; i < n*mult; i++ {
			pool = append(pool, models.Card{Name: name, Kind: models.KindAction})
		}
	}
	for _, name := range catNames {
		for i := 0; i < 4*mult; i++ {
			pool = append(pool, models.Card{Name: name, Kind: models.KindCat})
		}
	}
	return pool
}
