package gamedata

import "fmt"

// RoomSizeDef is one entry of the room size distribution.
type RoomSizeDef struct {
	Multiplier  int     `json:"multiplier"`
	Probability float64 `json:"probability"`
}

// RoomSizesFile represents the structure of room_sizes.json.
type RoomSizesFile struct {
	BaseWidth  int           `json:"baseWidth"`
	BaseHeight int           `json:"baseHeight"`
	Sizes      []RoomSizeDef `json:"sizes"`
}

// TotalProbability returns the sum of all size probabilities.
func (f RoomSizesFile) TotalProbability() float64 {
	total := 0.0
	for _, s := range f.Sizes {
		total += s.Probability
	}
	return total
}

// LoadRoomSizes loads the room size distribution from the embedded room_sizes.json file.
func LoadRoomSizes() (RoomSizesFile, error) {
	file, err := Load[RoomSizesFile]("room_sizes.json")
	if err != nil {
		return file, err
	}
	if len(file.Sizes) == 0 {
		return file, fmt.Errorf("room_sizes.json: no sizes defined")
	}
	return file, nil
}
