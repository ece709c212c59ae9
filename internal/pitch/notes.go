// Package pitch implements the pitch-matching game engine.
package pitch

// Note describes one key of the C4..C5 octave.
type Note struct {
	Name  string
	Freq  float64
	Black bool
}

// Notes is the keyboard layout, C4 through C5.
var Notes = []Note{
	{Name: "C", Freq: 261.63},
	{Name: "C#", Freq: 277.18, Black: true},
	{Name: "D", Freq: 293.66},
	{Name: "D#", Freq: 311.13, Black: true},
	{Name: "E", Freq: 329.63},
	{Name: "F", Freq: 349.23},
	{Name: "F#", Freq: 369.99, Black: true},
	{Name: "G", Freq: 392.00},
	{Name: "G#", Freq: 415.30, Black: true},
	{Name: "A", Freq: 440.00},
	{Name: "A#", Freq: 466.16, Black: true},
	{Name: "B", Freq: 493.88},
	{Name: "C5", Freq: 523.25},
}
