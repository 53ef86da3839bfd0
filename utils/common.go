package utils

const (
	NODETOL = 1.e-12
	// DEDUPTOL is the default coincident-node tolerance used when merging
	// independently built beams.
	DEDUPTOL = 1.e-6
)
