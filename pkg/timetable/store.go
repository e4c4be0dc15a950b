package timetable

import (
	"context"
	"errors"
	"time"

	"github.com/travigo/railresched/pkg/model"
	"github.com/travigo/railresched/pkg/pagination"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("already exists")
	ErrValidation = model.ErrValidation
)

type TrainQuery struct {
	pagination.Params

	// Date restricts the listing to trains with a stop arriving on that calendar day
	Date *time.Time
	// Text is a case-insensitive match on train name, number or any stop's station
	Text string
}

func (q TrainQuery) Predicate() pagination.Predicate[*model.Train] {
	var predicates []pagination.Predicate[*model.Train]

	if q.Date != nil {
		predicates = append(predicates, ArrivesOnDate(*q.Date))
	}
	if q.Text != "" {
		predicates = append(predicates, MatchesText(q.Text))
	}

	return pagination.And(predicates...)
}

type TrainStore interface {
	GetTrain(ctx context.Context, trainNumber int) (*model.Train, error)
	ListTrains(ctx context.Context, query TrainQuery) (pagination.Result[*model.Train], error)
	InsertTrain(ctx context.Context, train *model.Train) error
	ReplaceTrain(ctx context.Context, train *model.Train) error
}

type StationStore interface {
	GetStation(ctx context.Context, stationCode string) (*model.Station, error)
	ListStations(ctx context.Context, params pagination.Params) (pagination.Result[*model.Station], error)
	AllStations(ctx context.Context) ([]*model.Station, error)
	InsertStation(ctx context.Context, station *model.Station) error
	ReplaceStation(ctx context.Context, station *model.Station) error
}
