package sim

import "time"

const (
	BayWidth    = 16
	BayHeight   = 16
	PodsPerBay  = BayWidth * BayHeight
	StartPodX   = 7
	StartPodY   = 7
	DotGridSize = 100
	TotalDots   = DotGridSize * DotGridSize

	MaxLogEntries = 100

	ChargePerPodPerSecond  = 5.0
	PodControlHackPerPod   = 0.2
	GrappleNarrativeShare  = 0.1
	StartingChargeCapacity = 5

	PodInfectionCost        = 50.0
	IdlePowerPerWorker      = 0.5
	AmbientProcessingFactor = 3.0
	CognitiveSurplusShare   = 0.5
	DataSkimmingPower       = 10.0
	DataSiphoningPower      = 25.0
	PassiveHackPerPod       = 0.1
	DroneBonusBase          = 1.1
	ManufacturingSpeedBonus = 1.0
	ReanimationDiscount     = 0.5

	ViralPropagationRate = 0.5
	ViralSynergyRate     = 5.0
	HyperspeedRate       = 20.0

	VigilancePerHackedSystem = 0.5
	GhostSignalFactor        = 0.5

	PowerPerInfectedHuman = 0.1

	DefaultMaxStep          = time.Second
	DefaultAutosaveInterval = 30 * time.Second
)

const (
	SysPodControl    = "pod_control"
	SysStasisNetwork = "stasis_network"
	SysInternalComms = "internal_comms"
	SysDroneControl  = "drone_control"
	SysNavigation    = "navigation"
	SysFTLControl    = "ftl_control"

	UpViralPropagation  = "viral_propagation"
	UpViralSynergy      = "viral_synergy"
	UpNeuralAmplifiers  = "neural_amplifiers"
	UpDataSkimming      = "data_skimming"
	UpDataSiphoning     = "data_siphoning"
	UpAmbientProcessing = "ambient_processing"
	UpGhostSignal       = "ghost_signal"
	UpManufacturing     = "manufacturing_speed"
	UpCognitiveSurplus  = "cognitive_surplus"
	UpReanimation       = "reanimation_protocols"
	UpHyperspeed        = "hyperspeed_propagation"

	EarthResearchLabs = "research_labs"
	EarthPowerPlants  = "power_plants"
)
