package gait

// Command is a single locomotion request. All axes are dimensionless
// with a nominal range of [-1, 1]. Values outside that range are not
// rejected, the per-cycle limits keep their effect bounded.
//
// Commands follow latest-value semantics: a new command replaces the
// previous one, there is no queueing.
type Command struct {
	// Surge is the forward drive component.
	Surge float64 `json:"surge"`
	// Sway is the lateral drive component. Positive sway engages the
	// port fin, negative sway the starboard fin.
	Sway float64 `json:"sway"`
	// Pitch is accepted for completeness but reserved for a future
	// rudder control path. It does not influence the fins.
	Pitch float64 `json:"pitch"`
	// Yaw is the turn component. Positive yaw speeds up the port fin
	// and slows down the starboard fin.
	Yaw float64 `json:"yaw"`
	// Amplitude scales the fin deflection.
	Amplitude float64 `json:"amplitude"`
}
