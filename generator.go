package voicenav

// Generator renders a speech-recognition dispatch script.
type Generator interface {
	// Generate returns script source with one command block per selection,
	// in order. Returns ENOSELECTION for an empty list and EUNSAFENAME when
	// a command name cannot be embedded safely.
	Generate(selections []Selection) (string, error)
}
