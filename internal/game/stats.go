package game

type Stats struct {
	Score    int64
	Combo    int
	MaxCombo int
	Perfect  int
	Good     int
	Bad      int
	Miss     int
	Accuracy float64
}
