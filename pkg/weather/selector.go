package weather

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/travigo/railresched/pkg/model"
)

// Selector decides which stations a provisioning run covers
type Selector func(station *model.Station) (bool, error)

func selectorEnv(station *model.Station) map[string]interface{} {
	return map[string]interface{}{
		"code":      station.StationCode,
		"name":      station.StationName,
		"lat":       station.Lat,
		"lon":       station.Lon,
		"altitude":  station.Altitude,
		"forecasts": len(station.Forecasts),
	}
}

// CompileSelector compiles a boolean expression over code, name, lat, lon,
// altitude and forecasts, eg. `altitude > 500 && code != "MAS"`.
// An empty expression selects every station.
func CompileSelector(where string) (Selector, error) {
	if where == "" {
		return func(*model.Station) (bool, error) { return true, nil }, nil
	}

	program, err := expr.Compile(where, expr.Env(selectorEnv(&model.Station{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling station selector: %w", err)
	}

	return func(station *model.Station) (bool, error) {
		return run(program, station)
	}, nil
}

func run(program *vm.Program, station *model.Station) (bool, error) {
	output, err := expr.Run(program, selectorEnv(station))
	if err != nil {
		return false, err
	}

	return output.(bool), nil
}

func Select(stations []*model.Station, selector Selector) ([]*model.Station, error) {
	selected := []*model.Station{}

	for _, station := range stations {
		ok, err := selector(station)
		if err != nil {
			return nil, fmt.Errorf("selecting station %s: %w", station.StationCode, err)
		}
		if ok {
			selected = append(selected, station)
		}
	}

	return selected, nil
}
