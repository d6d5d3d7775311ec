package components

import "fmt"

// cropCoefficients gives reasonable default Kc values per crop type,
// exposed through CropCoefficient. Grounded on the Kc/ETc
// crop-coefficient concept used for irrigation scheduling in the
// olive-grove irrigation reference model in the example pack
// (growth-stage Kc driving ETc = Kc * ET0); this table collapses that to
// one representative mid-season value per crop. NewDemand and the
// component factory do not consult it: an agricultural Demand uses the
// crop_coefficient parameter exactly as given (0 when absent).
var cropCoefficients = map[string]float64{
	"alfalfa": 0.95,
	"corn":    1.15,
	"cotton":  1.10,
	"grapes":  0.70,
	"olives":  0.65,
	"pasture": 0.90,
	"wheat":   1.05,
	"citrus":  0.65,
}

// CropCoefficient looks up the default Kc for a named crop.
func CropCoefficient(crop string) (float64, error) {
	kc, ok := cropCoefficients[crop]
	if !ok {
		return 0, fmt.Errorf("no default crop coefficient for crop %q", crop)
	}
	return kc, nil
}
