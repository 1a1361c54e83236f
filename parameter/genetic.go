package parameter

import "time"

// Complex encoding
const (
	// CenterToken is the metal marker leading every encoding
	CenterToken = "Pd"

	// EncodingSeparator joins center and ligands
	EncodingSeparator = "_"

	// LigandSlots is the number of coordination sites on a square-planar complex
	LigandSlots = 4

	// CenterCharge is the fixed formal charge of the metal center
	CenterCharge = 2
)

// Charge band accepted for newly produced complexes (closed interval)
const (
	ChargeBandMin = -1
	ChargeBandMax = 1
)

// Genetic Algorithm - Operator Configuration
const (
	// GACrossoverMaxAttempts caps donor redraws before falling back to the base
	GACrossoverMaxAttempts = 10

	// GACrossoverMinDegree and GACrossoverMaxDegree bound the slots swapped per crossover
	GACrossoverMinDegree = 1
	GACrossoverMaxDegree = 3

	// GACrossoverThreshold: a uniform draw above it selects crossover, otherwise mutation
	GACrossoverThreshold = 0.5

	// GAMutationAttempts is one pass over the enumerated valid replacements
	GAMutationAttempts = 1

	// GADefaultOffspring is used when a caller asks for fewer than one offspring
	GADefaultOffspring = 1
)

// Optimization run defaults
const (
	DefaultProperty   = "gap"
	DefaultIterations = 20
	DefaultPopulation = 20
	DefaultOffspring  = 10
	DefaultSeed       = 0
	DefaultModel      = "ga"
	DefaultStrategy   = "all"
	DefaultOutputPath = "./llm-results"
	DefaultLigandFile = "../data/1M-space_50-ligands-full.csv"
	DefaultSpaceFile  = "../data/ground_truth_fitness_values.csv"
	DefaultReplicates = 1
	DefaultLogLevel   = "info"
)

// Monitor
const (
	// MonitorRefresh is the redraw interval of the terminal dashboard
	MonitorRefresh = 100 * time.Millisecond

	// MonitorEventBuffer is the channel capacity between optimizer and dashboard
	MonitorEventBuffer = 64

	// MonitorHistoryWidth caps the best-score history bar length
	MonitorHistoryWidth = 60

	// MonitorChimeFrequency is the tone played when a new best appears (Hz)
	MonitorChimeFrequency = 880

	// MonitorChimeDuration is the tone length
	MonitorChimeDuration = 60 * time.Millisecond

	// MonitorSampleRate for the audio speaker
	MonitorSampleRate = 44100
)

// Telemetry
const (
	// TelemetryBroadcastBuffer is the websocket hub queue capacity
	TelemetryBroadcastBuffer = 256

	// TelemetryWriteTimeout bounds a single client write
	TelemetryWriteTimeout = 10 * time.Second

	// TelemetryEnqueueTimeout bounds waiting on a full hub queue
	TelemetryEnqueueTimeout = time.Second
)
