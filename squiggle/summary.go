package main

// RunSummary stores the result of one simulate-decode-score run.
type RunSummary struct {
	// Reads is the number of simulated reads.
	Reads int `json:"reads"`
	// TotalBases is the total number of simulated bases.
	TotalBases int `json:"totalBases"`
	// TotalSamples is the total number of signal samples.
	TotalSamples int `json:"totalSamples"`
	// MeanAccuracy is the mean reconstruction accuracy over reads.
	MeanAccuracy float64 `json:"meanAccuracy"`
	// MinAccuracy is the worst read accuracy.
	MinAccuracy float64 `json:"minAccuracy"`
	// MaxAccuracy is the best read accuracy.
	MaxAccuracy float64 `json:"maxAccuracy"`
	// Time is the wall-clock running time in seconds.
	Time float64 `json:"time"`
	// Version of the program.
	Version string `json:"version"`
	// CommandLine is the command line.
	CommandLine []string `json:"commandLine"`
	// Seed is the random generator seed.
	Seed int64 `json:"seed"`
}
