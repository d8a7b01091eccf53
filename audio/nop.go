package audio

// Nop discards every request. It stands in for Player in tests and headless
// runs.
type Nop struct{}

func (Nop) PlayEffect(Cue) {}
func (Nop) PlayMusic(int) {}
func (Nop) PauseMusic() {}
func (Nop) ResumeMusic() {}
func (Nop) SeekMusic(int) {}
func (Nop) SetGains(float64, float64) {}
func (Nop) Close() error { return nil }
