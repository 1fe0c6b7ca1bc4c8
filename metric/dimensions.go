package metric

import "github.com/warp/dimensional/algebra"

// Derived dimensions declared by Register, by name.
var (
	Area                = algebra.Derive(algebra.T(algebra.Length, 2))
	Volume              = algebra.Derive(algebra.T(algebra.Length, 3))
	Velocity            = algebra.Derive(algebra.T(algebra.Length, 1), algebra.T(algebra.Time, -1))
	Acceleration        = algebra.Derive(algebra.T(algebra.Length, 1), algebra.T(algebra.Time, -2))
	Force               = algebra.Derive(algebra.T(algebra.Length, 1), algebra.T(algebra.Mass, 1), algebra.T(algebra.Time, -2))
	Energy              = algebra.Derive(algebra.T(algebra.Length, 2), algebra.T(algebra.Mass, 1), algebra.T(algebra.Time, -2))
	Power               = algebra.Derive(algebra.T(algebra.Length, 2), algebra.T(algebra.Mass, 1), algebra.T(algebra.Time, -3))
	Pressure            = algebra.Derive(algebra.T(algebra.Length, -1), algebra.T(algebra.Mass, 1), algebra.T(algebra.Time, -2))
	Frequency           = algebra.Derive(algebra.T(algebra.Time, -1))
	Momentum            = algebra.Derive(algebra.T(algebra.Length, 1), algebra.T(algebra.Mass, 1), algebra.T(algebra.Time, -1))
	Density             = algebra.Derive(algebra.T(algebra.Length, -3), algebra.T(algebra.Mass, 1))
	Charge              = algebra.Derive(algebra.T(algebra.Time, 1), algebra.T(algebra.Current, 1))
	Voltage             = algebra.Derive(algebra.T(algebra.Length, 2), algebra.T(algebra.Mass, 1), algebra.T(algebra.Time, -3), algebra.T(algebra.Current, -1))
	SpecificGasConstant = algebra.Derive(algebra.T(algebra.Length, 2), algebra.T(algebra.Time, -2), algebra.T(algebra.Temperature, -1))
	AngularVelocity     = algebra.Derive(algebra.T(algebra.PlaneAngle, 1), algebra.T(algebra.Time, -1))
)

var derivedDimensions = []struct {
	name string
	dim  algebra.DimensionVector
}{
	{"area", Area},
	{"volume", Volume},
	{"velocity", Velocity},
	{"acceleration", Acceleration},
	{"force", Force},
	{"energy", Energy},
	{"power", Power},
	{"pressure", Pressure},
	{"frequency", Frequency},
	{"momentum", Momentum},
	{"density", Density},
	{"charge", Charge},
	{"voltage", Voltage},
	{"specific_gas_constant", SpecificGasConstant},
	{"angular_velocity", AngularVelocity},
}
