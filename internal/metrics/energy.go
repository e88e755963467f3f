package metrics

import (
	"math"

	"github.com/san-kum/numkit/internal/numeric"
)

// EnergyFunc maps a state to a conserved (or dissipated) quantity.
type EnergyFunc func(y numeric.Vector) float64

// EnergyDrift is the maximum relative change of an energy function from its
// value at the first observed sample.
type EnergyDrift struct {
	energy        EnergyFunc
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(energy EnergyFunc) *EnergyDrift {
	return &EnergyDrift{energy: energy}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(_ float64, y, _ numeric.Vector) {
	energy := e.energy(y)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
