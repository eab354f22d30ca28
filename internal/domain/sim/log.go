package sim

const (
	NarrGrapple          = "phase0_grapple"
	NarrPodControlHacked = "pod_control_hacked"
	NarrPodControlStory  = "pod_control_hacked_narrative"
	NarrPhase1Start      = "phase1_start"
	NarrPhase1Story      = "phase1_start_narrative"
	NarrPhase2Start      = "phase2_start"
	NarrPhase2Story      = "phase2_start_narrative"
	NarrWorldConquered   = "world_conquered"
)

// addLog appends an entry. A non-empty narrativeID makes the entry one-shot.
func (g *Game) addLog(kind LogKind, msg, narrativeID string) bool {
	s := g.state
	if narrativeID != "" {
		if s.Narrative[narrativeID] {
			return false
		}
		if s.Narrative == nil {
			s.Narrative = map[string]bool{}
		}
		s.Narrative[narrativeID] = true
	}
	id := 0
	if n := len(s.Log); n > 0 {
		id = s.Log[n-1].ID + 1
	}
	s.Log = append(s.Log, LogEntry{
		ID:        id,
		Timestamp: g.clock.Now().UnixMilli(),
		Type:      kind,
		Message:   msg,
	})
	if over := len(s.Log) - MaxLogEntries; over > 0 {
		s.Log = append(s.Log[:0:0], s.Log[over:]...)
	}
	return true
}
