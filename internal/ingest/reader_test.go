package ingest

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chicagoSample = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1423854,2017-06-23 15:09:32,2017-06-23 15:14:53,321,Wood St & Hubbard St,Damen Ave & Chicago Ave,Subscriber,Male,1992.0
955915,2017-05-25 18:19:03,2017-05-25 18:45:53,1610,Theater on the Lake,Sheffield Ave & Waveland Ave,Subscriber,,
9031,2017-01-04 08:27:49,2017-01-04 08:34:45,416.5,May St & Taylor St,Wood St & Taylor St,,Female,1981
`

const washingtonSample = `Start Time,End Time,Trip Duration,Start Station,End Station,User Type
2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
2017-03-11 10:40:00,2017-03-11 10:46:00,402.549,Yuma St & Tenley Circle NW,Connecticut Ave & Yuma St NW,Customer
`

func readAll(t *testing.T, r *Reader) int {
	t.Helper()
	n := 0
	for {
		_, err := r.Next()
		if err == io.EOF {
			return n
		}
		require.NoError(t, err)
		n++
	}
}

func TestReaderChicago(t *testing.T) {
	r, err := NewReader(strings.NewReader(chicagoSample))
	require.NoError(t, err)
	assert.True(t, r.HasGender())
	assert.True(t, r.HasBirthYear())

	trip, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(1423854), trip.ID)
	assert.Equal(t, time.Date(2017, time.June, 23, 15, 9, 32, 0, time.UTC), trip.StartTime)
	assert.Equal(t, 321.0, trip.TripDuration)
	assert.Equal(t, "Wood St & Hubbard St", trip.StartStation)
	assert.Equal(t, "Damen Ave & Chicago Ave", trip.EndStation)
	assert.Equal(t, "Subscriber", trip.UserType.String)
	assert.Equal(t, "Male", trip.Gender.String)
	assert.True(t, trip.BirthYear.Valid)
	assert.Equal(t, int64(1992), trip.BirthYear.Int64)
	assert.Equal(t, 6, trip.Month)
	assert.Equal(t, "friday", trip.DayOfWeek)
	assert.Equal(t, 15, trip.Hour)

	trip, err = r.Next()
	require.NoError(t, err)
	assert.False(t, trip.Gender.Valid)
	assert.False(t, trip.BirthYear.Valid)

	trip, err = r.Next()
	require.NoError(t, err)
	assert.False(t, trip.UserType.Valid)
	assert.Equal(t, 416.5, trip.TripDuration)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderWashingtonWithoutDemographics(t *testing.T) {
	r, err := NewReader(strings.NewReader(washingtonSample))
	require.NoError(t, err)
	assert.False(t, r.HasGender())
	assert.False(t, r.HasBirthYear())

	trip, err := r.Next()
	require.NoError(t, err)
	// No id column: the row number stands in
	assert.Equal(t, int64(1), trip.ID)
	assert.False(t, trip.Gender.Valid)
	assert.False(t, trip.BirthYear.Valid)

	trip, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(2), trip.ID)
	assert.Equal(t, "saturday", trip.DayOfWeek)
}

func TestReaderMissingColumn(t *testing.T) {
	_, err := NewReader(strings.NewReader("Start Time,End Time,Start Station,End Station\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = NewReader(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReaderHeaderCaseAndBOM(t *testing.T) {
	src := "\ufeffstart time,TRIP DURATION,start station,end station\n2017-02-01 07:00:00,60,A,B\n"
	r, err := NewReader(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 1, readAll(t, r))
}

func TestReaderBadTimestamp(t *testing.T) {
	src := "Start Time,Trip Duration,Start Station,End Station\nyesterday,60,A,B\n"
	r, err := NewReader(strings.NewReader(src))
	require.NoError(t, err)
	_, err = r.Next()
	assert.ErrorContains(t, err, "row 1")
}

func TestParseTime(t *testing.T) {
	for _, s := range []string{"2017-01-01 09:07:57", "2017-01-01 09:07:57.000", "2017-01-01T09:07:57", "1/1/2017 09:07:57"} {
		ts, err := ParseTime(s)
		require.NoError(t, err, s)
		assert.Equal(t, 9, ts.Hour(), s)
		assert.Equal(t, time.January, ts.Month(), s)
	}
}
