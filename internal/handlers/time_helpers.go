package handlers

import (
	"strconv"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// --------------------------------------------------
// Datas sempre no fuso oficial do negócio
// --------------------------------------------------

func parseDate(clock timezone.Clock, dateStr string) (time.Time, error) {
	return timezone.ParseDate(clock.Location(), dateStr)
}

func parseDateTime(clock timezone.Clock, dateStr, timeStr string) (time.Time, error) {
	return timezone.ParseDateTime(clock.Location(), dateStr, timeStr)
}

// dateOrToday devolve hoje quando dateStr está vazio.
func dateOrToday(clock timezone.Clock, dateStr string) (time.Time, error) {
	if dateStr == "" {
		return timezone.StartOfDay(clock.Now(), clock.Location()), nil
	}
	return parseDate(clock, dateStr)
}

func parseUintParam(raw string) (uint, bool) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
