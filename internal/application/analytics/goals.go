package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/sales"
)

// Etiquetas de estado de una meta según el progreso.
const (
	GoalReached  = "Meta Atingida!"
	GoalNear     = "Próximo da Meta"
	GoalOnTrack  = "No Caminho"
	GoalBehind   = "Abaixo do Esperado"
	goalTodayTag = "Hoje"
)

// GoalTargets metas configuradas.
type GoalTargets struct {
	Monthly decimal.Decimal
	Daily   decimal.Decimal
}

// Goals progreso de la meta mensal (mes de today) y diaria (today).
func Goals(records []entity.ProcessedSale, targets GoalTargets, today sales.CalendarDate) []dto.GoalDTO {
	month := decimal.Zero
	day := decimal.Zero
	for _, r := range records {
		d, ok := sales.ParseDisplayDate(r.Data)
		if !ok || d.Year != today.Year || d.Month != today.Month {
			continue
		}
		month = month.Add(r.Valor)
		if d.Day == today.Day {
			day = day.Add(r.Valor)
		}
	}

	return []dto.GoalDTO{
		goal("Meta Mensal", fmt.Sprintf("%02d/%d", int(today.Month), today.Year), month, targets.Monthly),
		goal("Meta Diária", goalTodayTag, day, targets.Daily),
	}
}

func goal(title, period string, current, target decimal.Decimal) dto.GoalDTO {
	progress := hundred
	if target.IsPositive() {
		progress = decimal.Min(current.Mul(hundred).Div(target), hundred).Round(2)
	}
	return dto.GoalDTO{
		Title:    title,
		Period:   period,
		Current:  current,
		Goal:     target,
		Progress: progress,
		Status:   GoalStatus(progress),
	}
}

// GoalStatus etiqueta de estado para un progreso en porcentaje.
func GoalStatus(progress decimal.Decimal) string {
	switch {
	case progress.GreaterThanOrEqual(hundred):
		return GoalReached
	case progress.GreaterThanOrEqual(decimal.NewFromInt(75)):
		return GoalNear
	case progress.GreaterThanOrEqual(decimal.NewFromInt(50)):
		return GoalOnTrack
	default:
		return GoalBehind
	}
}
