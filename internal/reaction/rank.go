package reaction

// Rank maps a mean latency in milliseconds to its tier label.
func Rank(meanMs int64) string {
	switch {
	case meanMs < 200:
		return "GOD"
	case meanMs < 250:
		return "Pro Gamer"
	case meanMs < 300:
		return "Excellent"
	case meanMs < 350:
		return "Good"
	case meanMs < 400:
		return "Normal"
	default:
		return "Turtle"
	}
}
