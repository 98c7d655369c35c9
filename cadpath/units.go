package cadpath

import (
	"fmt"
	"strings"
)

// inches per unit
var unitScales = map[string]float64{
	"in":         1,
	"inch":       1,
	"inches":     1,
	"ft":         12,
	"foot":       12,
	"feet":       12,
	"yd":         36,
	"yard":       36,
	"yards":      36,
	"mi":         63360,
	"mil":        1e-3,
	"mils":       1e-3,
	"uin":        1e-6,
	"microinch":  1e-6,
	"pt":         1. / 72,
	"mm":         1 / 25.4,
	"millimeter": 1 / 25.4,
	"cm":         1 / 2.54,
	"centimeter": 1 / 2.54,
	"dm":         10 / 2.54,
	"m":          100 / 2.54,
	"meter":      100 / 2.54,
	"km":         100000 / 2.54,
	"um":         1 / 25400.,
	"µm":         1 / 25400.,
	"micron":     1 / 25400.,
	"nm":         1 / 25400000.,
}

// UnitScale returns the number of inches in one drawing unit
// of the given name, such as "mm" or "ft".
func UnitScale(name string) (float64, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if s, ok := unitScales[key]; ok {
		return s, nil
	}
	if s, ok := unitScales[strings.TrimSuffix(key, "s")]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}

// inches per unit, indexed by the $INSUNITS header codes of DXF files
var insUnits = map[int]float64{
	1:  1,                         // inches
	2:  12,                        // feet
	3:  63360,                     // miles
	4:  1 / 25.4,                  // millimeters
	5:  1 / 2.54,                  // centimeters
	6:  100 / 2.54,                // meters
	7:  100000 / 2.54,             // kilometers
	8:  1e-6,                      // microinches
	9:  1e-3,                      // mils
	10: 36,                        // yards
	11: 1 / 254000000.,            // angstroms
	12: 1 / 25400000.,             // nanometers
	13: 1 / 25400.,                // microns
	14: 10 / 2.54,                 // decimeters
	15: 1000 / 2.54,               // decameters
	16: 10000 / 2.54,              // hectometers
	21: 1200. / 3937 * 100 / 2.54, // US survey feet, 1200/3937 m
}

// InsUnitsScale returns the number of inches in one drawing unit,
// for a DXF $INSUNITS code. The code 0 (unitless) and unknown codes
// are reported with ErrUnknownUnit.
func InsUnitsScale(code int) (float64, error) {
	if s, ok := insUnits[code]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: $INSUNITS code %d", ErrUnknownUnit, code)
}
