package pitch

// Rank maps a final score to its title. The maximum achievable score is
// 5250: five questions per level at 50+100+150+200+250+300 points.
func Rank(score int) string {
	switch {
	case score >= 5000:
		return "Absolute God"
	case score >= 4000:
		return "Maestro"
	case score >= 3000:
		return "Professional"
	case score >= 2000:
		return "Musician"
	case score >= 1000:
		return "Student"
	default:
		return "Novice"
	}
}
