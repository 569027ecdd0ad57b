// Package rentalperiod реализует расчёт оплачиваемых дней аренды
// и корректную конвертацию дат между представлением виджета выбора даты
// (полночь UTC) и локальной полуночью.
package rentalperiod

import "time"

// DateRange период аренды двумя моментами времени.
// Порядок не гарантируется: перевёрнутый или пустой период
// даёт ноль оплачиваемых дней.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// WeekendPolicy флаги учёта выходных при расчёте оплачиваемых дней.
type WeekendPolicy struct {
	IncludeSaturday bool
	IncludeSunday   bool
}

// Calculator выполняет все расчёты в одной фиксированной таймзоне.
type Calculator struct {
	loc *time.Location
}

// New создаёт Calculator для указанной таймзоны.
// nil означает локальную таймзону процесса.
func New(loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.Local
	}
	return &Calculator{loc: loc}
}

// ChargeableDays возвращает количество оплачиваемых дней в периоде.
// Считаются календарные дни полуинтервала [начало, конец):
// день окончания не оплачивается. Суббота и воскресенье
// пропускаются, если соответствующий флаг политики выключен.
// Для пустого или перевёрнутого периода возвращает 0.
func (c *Calculator) ChargeableDays(r DateRange, p WeekendPolicy) int {
	start := c.truncateToDate(r.Start)
	end := c.truncateToDate(r.End)
	if !end.After(start) {
		return 0
	}

	days := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday:
			if !p.IncludeSaturday {
				continue
			}
		case time.Sunday:
			if !p.IncludeSunday {
				continue
			}
		}
		days++
	}
	return days
}

// NormalizeToLocalMidnight переносит метку времени из виджета выбора даты
// (полночь выбранного дня в UTC) на полночь того же календарного дня
// в таймзоне калькулятора. Без этого переноса в зонах с отрицательным
// смещением выбранная дата отображается предыдущим днём.
func (c *Calculator) NormalizeToLocalMidnight(utcMillis int64) int64 {
	y, m, d := time.UnixMilli(utcMillis).In(time.UTC).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc).UnixMilli()
}

// DenormalizeToPickerMillis обратная операция: по локальной полуночи
// возвращает полночь того же календарного дня в UTC для передачи
// обратно в виджет выбора даты.
func (c *Calculator) DenormalizeToPickerMillis(localMillis int64) int64 {
	y, m, d := time.UnixMilli(localMillis).In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).UnixMilli()
}

// LocalDate возвращает полночь календарного дня метки времени
// в таймзоне калькулятора.
func (c *Calculator) LocalDate(millis int64) time.Time {
	return c.truncateToDate(time.UnixMilli(millis).In(c.loc))
}

func (c *Calculator) truncateToDate(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}
