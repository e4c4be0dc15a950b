package weather

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/travigo/railresched/pkg/model"
)

// WriteCSV writes observations with a header row, one record per line
func WriteCSV(w io.Writer, observations []*model.Observation) error {
	if observations == nil {
		observations = []*model.Observation{}
	}

	return gocsv.Marshal(observations, w)
}
