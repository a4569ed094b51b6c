package report

import (
	"time"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// SplitPeriods divide [from, to] en períodos de mes calendario. El primero
// empieza en from y el último termina en to. from posterior a to no produce
// períodos.
func SplitPeriods(from, to time.Time) []entity.Period {
	start := dateOnly(from)
	end := dateOnly(to)

	var periods []entity.Period
	for !start.After(end) {
		lastDay := time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		if lastDay.After(end) {
			lastDay = end
		}
		periods = append(periods, entity.Period{Start: start, End: lastDay})
		start = lastDay.AddDate(0, 0, 1)
	}
	return periods
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
