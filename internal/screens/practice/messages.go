package practice

// tickMsg is sent once per second while a round is playing. Ticks for
// rounds other than the current one are dropped.
type tickMsg struct {
	round int
}
