package command

import "warped/internal/domain/sim"

type Name string

const (
	InfectPod            Name = "infect_pod"
	PurchaseBay          Name = "purchase_bay"
	SetHackingTarget     Name = "set_hacking_target"
	ClearHackingTarget   Name = "clear_hacking_target"
	PurchaseUpgrade      Name = "purchase_upgrade"
	PurchaseEarthUpgrade Name = "purchase_earth_upgrade"
	CompletePhase0       Name = "complete_phase0"
	CompletePhase1       Name = "complete_phase1"
	SelectCity           Name = "select_city"
	InfectDot            Name = "infect_dot"
	Awaken               Name = "awaken"
	Assign               Name = "assign"
	Unassign             Name = "unassign"
	Save                 Name = "save"
	Reset                Name = "reset"
	DebugSkipPhase1      Name = "debug_skip_phase1"
	DebugSkipPhase2      Name = "debug_skip_phase2"
	DebugGrantPower      Name = "debug_grant_power"
)

type Args struct {
	PodID     string  `json:"pod_id,omitempty"`
	SystemID  string  `json:"system_id,omitempty"`
	UpgradeID string  `json:"upgrade_id,omitempty"`
	CityID    string  `json:"city_id,omitempty"`
	DotIndex  *int    `json:"dot_index,omitempty"`
	Pool      string  `json:"pool,omitempty"`
	Task      string  `json:"task,omitempty"`
	Amount    int     `json:"amount,omitempty"`
	Power     float64 `json:"power,omitempty"`
}

type Request struct {
	Command Name `json:"command"`
	Args    Args `json:"args"`
}

type Response struct {
	Command Name           `json:"command"`
	Outcome sim.Outcome    `json:"outcome"`
	Phase   sim.Phase      `json:"phase"`
	Log     []sim.LogEntry `json:"log"`
}
