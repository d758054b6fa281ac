package hastus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClockTime(t *testing.T) {
	cases := map[string]ClockTime{
		"0123a": NewClockTime(1, 23),
		"1055p": NewClockTime(22, 55),
		"1200a": NewClockTime(0, 0),
		"1200p": NewClockTime(12, 0),
		"1200x": NewClockTime(0, 0),
		"1235x": NewClockTime(0, 35),
		" 0415a": NewClockTime(4, 15),
	}
	for field, expected := range cases {
		actual, err := ParseClockTime(field)
		if assert.NoError(t, err, field) {
			assert.Equal(t, expected, actual, field)
		}
	}
}

func TestParseClockTimeInvalid(t *testing.T) {
	for _, field := range []string{"", "123a", "1300a", "1261a", "1200z", "ab00a"} {
		_, err := ParseClockTime(field)
		assert.Error(t, err, field)
	}
}

func TestClockTimeMinutes(t *testing.T) {
	assert.Equal(t, 0, NewClockTime(0, 0).Minutes())
	assert.Equal(t, 565, NewClockTime(9, 25).Minutes())
}

func TestClockTimeString(t *testing.T) {
	assert.Equal(t, "04:05", NewClockTime(4, 5).String())
	assert.Equal(t, "22:55", NewClockTime(22, 55).String())
}
