package service

import "time"

const (
	// Opening is the first slot of the day in minutes after midnight (08:30).
	Opening = 8*60 + 30
	// Closing is the end of the bookable window (19:30); no slot starts at or after it.
	Closing = 19*60 + 30
	// SlotStep is the distance between two consecutive slots.
	SlotStep = 30 * time.Minute
)

// SlotCalendar enumerates the bookable start times of a day.
type SlotCalendar interface {
	SlotsForDay(day time.Time) []time.Time
	IsValidSlot(t time.Time) bool
}

type slotCalendar struct{}

func NewSlotCalendar() SlotCalendar {
	return slotCalendar{}
}

// SlotsForDay returns the slots of the calendar day of day, in day's location.
// The time-of-day component of day is ignored.
func (slotCalendar) SlotsForDay(day time.Time) []time.Time {
	y, m, d := day.Date()
	step := int(SlotStep / time.Minute)

	slots := make([]time.Time, 0, (Closing-Opening)/step)
	for minute := Opening; minute < Closing; minute += step {
		slots = append(slots, time.Date(y, m, d, minute/60, minute%60, 0, 0, day.Location()))
	}
	return slots
}

// IsValidSlot reports whether t falls on a slot of its own day.
// Seconds and sub-seconds are ignored.
func (c slotCalendar) IsValidSlot(t time.Time) bool {
	for _, slot := range c.SlotsForDay(t) {
		if sameMinute(slot, t) {
			return true
		}
	}
	return false
}

func sameMinute(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd && a.Hour() == b.Hour() && a.Minute() == b.Minute()
}
