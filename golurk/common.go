package golurk

func InvertPlayerIndex(initial int) int {
	if initial == HOST {
		return PEER
	} else {
		return HOST
	}
}

// getPlayerPair returns both the player with the given index as the first value and the opposing player as the second value
func getPlayerPair(gameState *GameState, activePlayerIndex int) (*Player, *Player) {
	player := gameState.GetPlayer(activePlayerIndex)
	opposingPlayer := gameState.GetPlayer(InvertPlayerIndex(activePlayerIndex))

	return player, opposingPlayer
}
