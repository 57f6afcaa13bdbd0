package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

func TestLocalDateKey(t *testing.T) {
	utc := time.UTC
	newYork := time.FixedZone("UTC-5", -5*60*60)

	// UTC 午夜在 UTC-5 下属于前一天
	instant := time.Date(2024, 3, 10, 0, 0, 0, 0, utc)
	require.Equal(t, "2024-03-10", LocalDateKey(instant, utc))
	require.Equal(t, "2024-03-09", LocalDateKey(instant, newYork))

	// 东八区下 UTC 的傍晚已经是次日
	shanghai := time.FixedZone("UTC+8", 8*60*60)
	evening := time.Date(2024, 3, 10, 18, 0, 0, 0, utc)
	require.Equal(t, "2024-03-11", LocalDateKey(evening, shanghai))
}

func TestParseInstant(t *testing.T) {
	// 带时区标记的正常解析
	withZone, err := ParseInstant("2024-03-10T08:00:00Z")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC), withZone.UTC())

	withOffset, err := ParseInstant("2024-03-10T08:00:00+08:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), withOffset.UTC())

	// 裸时间戳按 UTC 处理
	naive, err := ParseInstant("2024-03-10T08:00:00")
	require.NoError(t, err)
	require.Equal(t, withZone, naive)

	_, err = ParseInstant("不是时间戳")
	require.Error(t, err)
}

func TestMatchesUsesLocalDate(t *testing.T) {
	newYork := time.FixedZone("UTC-5", -5*60*60)

	// 本地 3 月 9 日 19 点（即 UTC 3 月 10 日零点）开始的班次
	shift := &domain.Shift{
		EmployeeID: 1,
		StartTime:  time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	march9 := time.Date(2024, 3, 9, 0, 0, 0, 0, newYork)
	march10 := time.Date(2024, 3, 10, 0, 0, 0, 0, newYork)

	require.True(t, Matches(shift, march9, newYork))
	require.False(t, Matches(shift, march10, newYork))

	// 同一时刻按 UTC 观察则属于 3 月 10 日
	require.True(t, Matches(shift, march10.In(time.UTC), time.UTC))
}

func TestShiftsOn(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, loc)

	shifts := []*domain.Shift{
		{ID: 1, EmployeeID: 1, StartTime: time.Date(2024, 6, 1, 9, 0, 0, 0, loc)},
		{ID: 2, EmployeeID: 2, StartTime: time.Date(2024, 6, 1, 9, 0, 0, 0, loc)},
		{ID: 3, EmployeeID: 1, StartTime: time.Date(2024, 6, 2, 9, 0, 0, 0, loc)},
	}

	matched := ShiftsOn(shifts, 1, day, loc)
	require.Len(t, matched, 1)
	require.Equal(t, int64(1), matched[0].ID)
}
