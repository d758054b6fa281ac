package cheatsheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rating-manager/rating/hastus"
)

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func TestExceptionCombinationStringSimple(t *testing.T) {
	combo := ExceptionCombination{Service: "011"}
	assert.Equal(t, "011", combo.String())
}

func TestExceptionCombinationStringWithExceptions(t *testing.T) {
	combo := ExceptionCombination{
		Service: "016",
		GarageExceptions: map[string][]string{
			"sa6": {"BennTT", "Somvl"},
			"os6": {"Albny"},
		},
	}
	assert.Equal(t, "016, os6 (Albny), sa6 (BennTT, Somvl)", combo.String())
}

func TestExceptionCombinationStringTakeOut(t *testing.T) {
	combo := ExceptionCombination{
		Service:          "016",
		GarageExceptions: map[string][]string{"l36": {"Somvl"}},
	}
	assert.Equal(t, "016, l36 (Somvl) *** TAKE THIS OUT", combo.String())
}

func TestFromGaragesSimple(t *testing.T) {
	actual := FromGarages(map[string]string{"Albny": "011", "Arbor": "011"})
	assert.True(t, actual.Equal(ExceptionCombination{Service: "011"}))
}

func TestFromGaragesWithExceptions(t *testing.T) {
	actual := FromGarages(map[string]string{
		"BenTT": "016",
		"Cabot": "sa6",
		"Charl": "016",
		"Fells": "016",
		"Somvl": "sa6",
	})
	expected := ExceptionCombination{
		Service:          "016",
		GarageExceptions: map[string][]string{"sa6": {"Cabot", "Somvl"}},
	}
	assert.True(t, actual.Equal(expected))
}

func TestFromGaragesWithoutService(t *testing.T) {
	actual := FromGarages(map[string]string{
		"BenTT": "016",
		"Fells": "016",
		"Somvl": "",
	})
	assert.True(t, actual.Equal(ExceptionCombination{Service: "016"}))
}

func TestShouldTakeOut(t *testing.T) {
	assert.False(t, ExceptionCombination{Service: "011"}.ShouldTakeOut())
	assert.True(t, ExceptionCombination{Service: "l31"}.ShouldTakeOut())
	assert.True(t, ExceptionCombination{Service: "a31"}.ShouldTakeOut())
	assert.True(t, ExceptionCombination{Service: "b41"}.ShouldTakeOut())
	assert.True(t, ExceptionCombination{Service: "we1"}.ShouldTakeOut())
	assert.True(t, ExceptionCombination{
		Service:          "016",
		GarageExceptions: map[string][]string{"l36": {"Somvl"}},
	}.ShouldTakeOut())
}

func TestFromRecordsSimple(t *testing.T) {
	records := []hastus.Record{
		hastus.CalendarDate{Date: day(2020, 12, 20), Garage: "Albny", ServiceKey: "017", DayType: "Sunday"},
		hastus.CalendarDate{Date: day(2020, 12, 21), Garage: "Albny", ServiceKey: "011", DayType: "Weekday"},
		hastus.CalendarDate{Date: day(2020, 12, 22), Garage: "Albny", ServiceKey: "011", DayType: "Weekday"},
		hastus.CalendarDate{Date: day(2020, 12, 23), Garage: "Albny", ServiceKey: "l31", DayType: "Weekday"},
		hastus.CalendarDate{Date: day(2020, 12, 26), Garage: "Albny", ServiceKey: "016", DayType: "Saturday"},
	}

	actual := FromRecords(records)
	assert.Equal(t, "Winter", actual.SeasonName)
	assert.Equal(t, day(2020, 12, 20), actual.StartDate)
	assert.Equal(t, day(2020, 12, 26), actual.EndDate)
	assert.Equal(t, "011", actual.WeekdayBase.String())
	assert.Equal(t, "016", actual.SaturdayBase.String())
	assert.Equal(t, "017", actual.SundayBase.String())
	assert.Len(t, actual.DateCombos, 1)
	assert.Equal(t, "l31 *** TAKE THIS OUT", actual.DateCombos[day(2020, 12, 23)].String())
}

func TestCheatSheetString(t *testing.T) {
	records := []hastus.Record{
		hastus.CalendarDate{Date: day(2020, 12, 20), Garage: "Albny", ServiceKey: "017", DayType: "Sunday"},
		hastus.CalendarDate{Date: day(2020, 12, 21), Garage: "Albny", ServiceKey: "011", DayType: "Weekday"},
		hastus.CalendarDate{Date: day(2020, 12, 22), Garage: "Albny", ServiceKey: "011", DayType: "Weekday"},
		hastus.CalendarDate{Date: day(2020, 12, 23), Garage: "Albny", ServiceKey: "ns1", DayType: "Weekday"},
		hastus.CalendarDate{Date: day(2020, 12, 24), Garage: "Albny", ServiceKey: "ns1", DayType: "Weekday"},
		hastus.CalendarDate{Date: day(2020, 12, 25), Garage: "Albny", ServiceKey: "011", DayType: "Weekday"},
		hastus.CalendarDate{Date: day(2020, 12, 26), Garage: "Albny", ServiceKey: "016", DayType: "Saturday"},
	}

	expected := `Winter 2020

Sun 12/20/2020 - Sat 12/26/2020

Weekday 011
Saturday 016
Sunday 017

Mon 12/21 011 DR1 ST1 *** TAKE THIS OUT
Wed 12/23 - Thu 12/24 ns1
`
	assert.Equal(t, expected, FromRecords(records).String())
}
