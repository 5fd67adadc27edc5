package gamedata

import (
	"errors"
	"fmt"
)

// BuildingRegistry holds loaded building definitions keyed by ID.
type BuildingRegistry struct {
	byID map[string]*BuildingDef
	all  []BuildingDef
}

// NewBuildingRegistry creates a registry from loaded building definitions.
func NewBuildingRegistry(buildings []BuildingDef) *BuildingRegistry {
	r := &BuildingRegistry{
		byID: make(map[string]*BuildingDef, len(buildings)),
		all:  buildings,
	}
	for i := range buildings {
		r.byID[buildings[i].ID] = &buildings[i]
	}
	return r
}

// LoadBuildingRegistry loads and creates a registry from the embedded buildings.json.
func LoadBuildingRegistry() (*BuildingRegistry, error) {
	buildings, err := LoadBuildings()
	if err != nil {
		return nil, err
	}
	if len(buildings) == 0 {
		return nil, errors.New("no buildings loaded from buildings.json")
	}
	for _, b := range buildings {
		if b.WidthTiles < 1 || b.HeightTiles < 1 {
			return nil, fmt.Errorf("building %q has an empty footprint", b.ID)
		}
	}
	return NewBuildingRegistry(buildings), nil
}

// MustLoadBuildingRegistry loads a registry, panicking on error.
func MustLoadBuildingRegistry() *BuildingRegistry {
	registry, err := LoadBuildingRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the building definition with the given ID, or nil if not found.
func (r *BuildingRegistry) GetByID(id string) *BuildingDef {
	return r.byID[id]
}

// All returns all building definitions.
func (r *BuildingRegistry) All() []BuildingDef {
	return r.all
}

// Count returns the number of building types in the registry.
func (r *BuildingRegistry) Count() int {
	return len(r.all)
}
