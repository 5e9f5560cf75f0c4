package sim

import "strconv"

// Phase is the round state.
type Phase int

const (
	PhasePlaying   Phase = iota // Hazards are live
	PhaseAllClear               // Transient: the last hazard just left
	PhaseCountdown              // Countdown entity is running
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseAllClear:
		return "all-clear"
	case PhaseCountdown:
		return "countdown"
	default:
		return "phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// census counts live hazards and countdowns.
func (w *World) census() (hazards, countdowns int) {
	for _, e := range w.live {
		switch e.Kind {
		case KindHazard:
			hazards++
		case KindCountdown:
			countdowns++
		}
	}
	return hazards, countdowns
}

// checkCleared runs after the purge. With no hazards and no countdown left,
// it enters AllClear, starts a countdown and advances the round.
func (w *World) checkCleared() bool {
	if hazards, countdowns := w.census(); hazards > 0 || countdowns > 0 {
		return false
	}
	w.phase = PhaseAllClear
	center := w.arena.Center()
	w.adopt(w.spawner.Countdown(center))
	w.round++
	w.phase = PhaseCountdown
	return true
}

// spawnWave populates the arena for the current round: round*2 Large
// hazards with per-axis speed below round*50, plus a round announcement.
func (w *World) spawnWave() {
	wave := w.spawner.Wave(w.round*WaveHazardsPerRound, w.arena, float64(w.round)*WaveSpeedPerRound)
	for _, h := range wave {
		w.adopt(h)
	}
	w.adopt(w.spawner.Announcement(w.arena.Center(), "ROUND "+strconv.Itoa(w.round)))
	w.phase = PhasePlaying
}
