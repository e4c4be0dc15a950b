package timetable

import (
	"strconv"
	"time"

	"github.com/travigo/railresched/pkg/model"
	"github.com/travigo/railresched/pkg/pagination"
	"github.com/travigo/railresched/pkg/util"
)

func trainStops(train *model.Train) []*model.Stop {
	return train.Schedule
}

// ArrivesOnDate matches trains with at least one stop arriving within the calendar day of day
func ArrivesOnDate(day time.Time) pagination.Predicate[*model.Train] {
	startOfDay := util.StartOfDay(day)
	endOfDay := util.EndOfDay(day)

	return pagination.Any(trainStops, func(stop *model.Stop) bool {
		return stop != nil && stop.ArrivesWithin(startOfDay, endOfDay)
	})
}

func MatchesText(term string) pagination.Predicate[*model.Train] {
	stationMatches := pagination.Any(trainStops, func(stop *model.Stop) bool {
		return stop != nil && (util.ContainsFold(stop.StationName, term) || util.ContainsFold(stop.StationCode, term))
	})

	return func(train *model.Train) bool {
		return util.ContainsFold(train.TrainName, term) ||
			util.ContainsFold(strconv.Itoa(train.TrainNumber), term) ||
			stationMatches(train)
	}
}
