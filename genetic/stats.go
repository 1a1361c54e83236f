package genetic

// Summarize computes best/worst/average over scores (higher = better)
// Empty input returns zero Stats
func Summarize[F Numeric](scores []F) Stats[F] {
	if len(scores) == 0 {
		return Stats[F]{}
	}

	stats := Stats[F]{
		Count: len(scores),
		Best:  scores[0],
		Worst: scores[0],
	}

	total := F(0)
	for _, s := range scores {
		if s > stats.Best {
			stats.Best = s
		}
		if s < stats.Worst {
			stats.Worst = s
		}
		total += s
	}

	stats.Average = total / F(len(scores))
	return stats
}
