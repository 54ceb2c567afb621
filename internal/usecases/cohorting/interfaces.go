package cohorting

import "github.com/vfg2006/cohort-roas-api/internal/domain"

// SeriesGenerator produz uma nova série de cohorts a cada chamada
type SeriesGenerator interface {
	Generate() domain.CohortSeries
}
