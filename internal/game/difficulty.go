package game

type Difficulty struct {
	HPDrainRate       float64
	CircleSize        float64 // Key count of the source chart
	OverallDifficulty float64
}

// ControlCount is the number of physical controls, each covering two lanes.
const ControlCount = 4

// ControlLanes returns the two radially opposite lanes a control covers.
func ControlLanes(control int) ([2]int, bool) {
	if control < 0 || control >= ControlCount {
		return [2]int{}, false
	}
	return [2]int{control, control + LaneCount/2}, true
}

// LaneControl is the inverse of ControlLanes.
func LaneControl(lane int) int {
	return lane % ControlCount
}
